package rentedtools_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"equipment-backend/internal/platform/apierr"
	"equipment-backend/internal/platform/ids"
	"equipment-backend/internal/site/projects"
	"equipment-backend/internal/site/rentedtools"
	"equipment-backend/internal/site/rentedtools/rentedtoolstest"
)

const (
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

func newService() (*rentedtools.Service, *rentedtoolstest.Memory) {
	store := rentedtoolstest.NewMemory()
	p := projectsStub{projectID: {ID: projectID, Name: "Harbor Bridge", Address: "Main Street 1", ProjectNumber: 1001}}
	return rentedtools.NewService(store, p, ids.NewULID()), store
}

func request(name string) rentedtools.RentedToolRequest {
	return rentedtools.RentedToolRequest{Name: name, RentedTo: "Acme Rentals", RentStart: "2024-04-01", Project: projectID}
}

func TestCreateAndGet(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	req := request("Excavator 320")
	end := "2024-06-30"
	req.RentEnd = &end
	res, err := svc.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), res.RentStart)
	require.NotNil(t, res.RentEnd)
	assert.Equal(t, time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC), *res.RentEnd)
	require.NotNil(t, res.Project)
	assert.Equal(t, "Harbor Bridge", res.Project.Name)

	got, err := svc.Get(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, res, got)
}

func TestCreateRequiresProject(t *testing.T) {
	svc, store := newService()
	req := request("Excavator 320")
	req.Project = missingID
	_, err := svc.Create(context.Background(), req)
	assert.True(t, apierr.Is(err, apierr.CodeNotFound))
	assert.Zero(t, store.Len())
}

func TestMarkReturnedOnce(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	res, err := svc.Create(ctx, request("Excavator 320"))
	require.NoError(t, err)

	at := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, svc.MarkReturned(ctx, res.ID, at))
	err = svc.MarkReturned(ctx, res.ID, at)
	assert.True(t, apierr.Is(err, apierr.CodeConflict))

	err = svc.MarkReturned(ctx, missingID, at)
	assert.True(t, apierr.Is(err, apierr.CodeNotFound))

	// an update must not reopen a returned rental
	updated, err := svc.Update(ctx, res.ID, request("Excavator 330"))
	require.NoError(t, err)
	require.NotNil(t, updated.ReturnedAt)
	assert.Equal(t, at, *updated.ReturnedAt)

	require.NoError(t, svc.ClearReturned(ctx, res.ID))
	assert.NoError(t, svc.MarkReturned(ctx, res.ID, at))
}

func TestListAndDelete(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	for _, name := range []string{"Mobile Crane", "Excavator 320"} {
		_, err := svc.Create(ctx, request(name))
		require.NoError(t, err)
	}
	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Excavator 320", list[0].Name)

	_, err = svc.Delete(ctx, list[0].ID)
	require.NoError(t, err)
	_, err = svc.Get(ctx, list[0].ID)
	assert.True(t, apierr.Is(err, apierr.CodeNotFound))
}
