package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"equipment-backend/internal/platform/apierr"
	"equipment-backend/internal/platform/docstore/docstoretest"
	"equipment-backend/internal/platform/ids"
	"equipment-backend/internal/site/projects"
	"equipment-backend/internal/site/toolgroups"
)

const (
	groupID   = "01HZX3K6Q8W2T9V7B5N4M3C2G1"
	projectID = "01HZX3K6Q8W2T9V7B5N4M3C2P1"
	missingID = "01HZX3K6Q8W2T9V7B5N4M3C2Z9"
)

type projectsStub map[string]projects.Summary

func (p projectsStub) Exists(ctx context.Context, id string) (bool, error) {
	_, ok := p[id]
	return ok, nil
}

func (p projectsStub) Summaries(ctx context.Context, list []string) (map[string]projects.Summary, error) {
	out := map[string]projects.Summary{}
	for _, id := range list {
		if v, ok := p[id]; ok {
			out[id] = v
		}
	}
	return out, nil
}

type groupsStub map[string]toolgroups.Summary

func (g groupsStub) Exists(ctx context.Context, id string) (bool, error) {
	_, ok := g[id]
	return ok, nil
}

func (g groupsStub) Summaries(ctx context.Context, list []string) (map[string]toolgroups.Summary, error) {
	out := map[string]toolgroups.Summary{}
	for _, id := range list {
		if v, ok := g[id]; ok {
			out[id] = v
		}
	}
	return out, nil
}

func ptr[T any](v T) *T { return &v }

func newService() (*Service, *docstoretest.Memory[Tool]) {
	store := docstoretest.NewMemory(ByName)
	p := projectsStub{projectID: {ID: projectID, Name: "Harbor Bridge", Address: "Main Street 1", ProjectNumber: 1001}}
	g := groupsStub{groupID: {ID: groupID, Name: "Power Tools", Description: "Electric hand tools"}}
	return NewService(store, p, g, ids.NewULID()), store
}

func TestCreateDefaultsAndExpansion(t *testing.T) {
	svc, _ := newService()
	res, err := svc.Create(context.Background(), ToolRequest{
		Name: "Hammer Drill", SerieNumber: ptr(int64(42)), ToolGroup: groupID, Project: ptr(projectID),
	})
	require.NoError(t, err)

	assert.True(t, res.Available)
	assert.False(t, res.Reparation)
	require.NotNil(t, res.ToolGroup)
	assert.Equal(t, "Power Tools", res.ToolGroup.Name)
	require.NotNil(t, res.Project)
	assert.Equal(t, int64(1001), res.Project.ProjectNumber)
}

func TestCreateWithoutProject(t *testing.T) {
	svc, store := newService()
	res, err := svc.Create(context.Background(), ToolRequest{
		Name: "Angle Grinder", SerieNumber: ptr(int64(7)), ToolGroup: groupID,
	})
	require.NoError(t, err)
	assert.Nil(t, res.Project)

	stored, err := store.Get(context.Background(), res.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Project)
}

func TestCreateChecksReferences(t *testing.T) {
	svc, store := newService()
	ctx := context.Background()

	_, err := svc.Create(ctx, ToolRequest{Name: "Hammer Drill", SerieNumber: ptr(int64(1)), ToolGroup: missingID})
	assert.True(t, apierr.Is(err, apierr.CodeNotFound))

	_, err = svc.Create(ctx, ToolRequest{Name: "Hammer Drill", SerieNumber: ptr(int64(1)), ToolGroup: groupID, Project: ptr(missingID)})
	assert.True(t, apierr.Is(err, apierr.CodeNotFound))
	assert.Zero(t, store.Len())
}

func TestUpdateKeepsFlagsWhenOmitted(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	res, err := svc.Create(ctx, ToolRequest{
		Name: "Hammer Drill", SerieNumber: ptr(int64(42)), ToolGroup: groupID, Reparation: ptr(true), Available: ptr(false),
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, res.ID, ToolRequest{Name: "Hammer Drill XL", SerieNumber: ptr(int64(43)), ToolGroup: groupID})
	require.NoError(t, err)
	assert.Equal(t, "Hammer Drill XL", updated.Name)
	assert.False(t, updated.Available)
	assert.True(t, updated.Reparation)

	updated, err = svc.Update(ctx, res.ID, ToolRequest{Name: "Hammer Drill XL", SerieNumber: ptr(int64(43)), ToolGroup: groupID, Reparation: ptr(false)})
	require.NoError(t, err)
	assert.False(t, updated.Reparation)

	_, err = svc.Update(ctx, missingID, ToolRequest{Name: "Hammer Drill XL", SerieNumber: ptr(int64(43)), ToolGroup: groupID})
	assert.True(t, apierr.Is(err, apierr.CodeNotFound))
}

func TestListAndDelete(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	for _, name := range []string{"Table Saw", "Angle Grinder"} {
		_, err := svc.Create(ctx, ToolRequest{Name: name, SerieNumber: ptr(int64(1)), ToolGroup: groupID})
		require.NoError(t, err)
	}

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Angle Grinder", list[0].Name)

	deleted, err := svc.Delete(ctx, list[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Angle Grinder", deleted.Name)

	_, err = svc.Delete(ctx, list[0].ID)
	assert.True(t, apierr.Is(err, apierr.CodeNotFound))
}
