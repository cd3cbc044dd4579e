package worklog

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"equipment-backend/internal/platform/apierr"
	"equipment-backend/internal/platform/auth"
	"equipment-backend/internal/site/projects"
)

type usersStub map[string]auth.UserSummary

func (u usersStub) Exists(ctx context.Context, id string) (bool, error) {
	_, ok := u[id]
	return ok, nil
}

func (u usersStub) Summaries(ctx context.Context, list []string) (map[string]auth.UserSummary, error) {
	out := map[string]auth.UserSummary{}
	for _, id := range list {
		if v, ok := u[id]; ok {
			out[id] = v
		}
	}
	return out, nil
}

type projectsStub struct {
	known   map[string]projects.Summary
	checked []string
}

func (p *projectsStub) Exists(ctx context.Context, id string) (bool, error) {
	p.checked = append(p.checked, id)
	_, ok := p.known[id]
	return ok, nil
}

func (p *projectsStub) Summaries(ctx context.Context, list []string) (map[string]projects.Summary, error) {
	out := map[string]projects.Summary{}
	for _, id := range list {
		if v, ok := p.known[id]; ok {
			out[id] = v
		}
	}
	return out, nil
}

const (
	worker   = "01HZX3K6Q8W2T9V7B5N4M3C2W1"
	projectA = "01HZX3K6Q8W2T9V7B5N4M3C2A1"
	projectB = "01HZX3K6Q8W2T9V7B5N4M3C2B1"
	missing  = "01HZX3K6Q8W2T9V7B5N4M3C2Z9"
)

func setup() (*Resolver, *projectsStub) {
	log, _ := test.NewNullLogger()
	p := &projectsStub{known: map[string]projects.Summary{
		projectA: {ID: projectA, Name: "Harbor Bridge", ProjectNumber: 1},
		projectB: {ID: projectB, Name: "North Tunnel", ProjectNumber: 2},
	}}
	u := usersStub{worker: {ID: worker, Name: "Mika Virtanen"}}
	return NewResolver(u, p, log), p
}

func TestCheckWorkerFirst(t *testing.T) {
	r, p := setup()
	err := r.Check(context.Background(), missing, []string{projectA})
	assert.Equal(t, ErrWorkerNotFound, err)
	assert.Empty(t, p.checked)
}

func TestCheckStopsAtFirstMissingProject(t *testing.T) {
	r, p := setup()
	err := r.Check(context.Background(), worker, []string{projectA, projectA, missing, projectB})
	require.Error(t, err)
	assert.True(t, apierr.Is(err, apierr.CodeNotFound))
	assert.Equal(t, []string{projectA, missing}, p.checked)
}

func TestPersistSkipsWriteOnMissingReference(t *testing.T) {
	r, _ := setup()
	wrote := false
	err := r.Persist(context.Background(), worker, []string{missing},
		func(context.Context) error { wrote = true; return nil },
		func(context.Context) error { return nil })
	assert.Equal(t, ErrProjectNotFound, err)
	assert.False(t, wrote)
}

func TestPersistUndoesWhenReferenceVanishes(t *testing.T) {
	r, p := setup()
	undone := false
	err := r.Persist(context.Background(), worker, []string{projectB},
		func(context.Context) error {
			// concurrent delete of the project between check and write
			delete(p.known, projectB)
			return nil
		},
		func(context.Context) error { undone = true; return nil })
	assert.Equal(t, ErrProjectNotFound, err)
	assert.True(t, undone)
}

func TestPersistReturnsWriteError(t *testing.T) {
	r, _ := setup()
	boom := errors.New("boom")
	err := r.Persist(context.Background(), worker, []string{projectA},
		func(context.Context) error { return boom },
		func(context.Context) error { t.Fatal("undo must not run"); return nil })
	assert.ErrorIs(t, err, boom)
}

func TestExpand(t *testing.T) {
	r, _ := setup()
	e, err := r.Expand(context.Background(), []string{worker, missing}, []string{projectA, missing})
	require.NoError(t, err)

	require.NotNil(t, e.Worker(worker))
	assert.Equal(t, "Mika Virtanen", e.Worker(worker).Name)
	assert.Nil(t, e.Worker(missing))

	places := e.Places([]Place{{Project: projectA, Hours: 8}, {Project: missing, Hours: 2.5}})
	require.Len(t, places, 2)
	assert.Equal(t, "Harbor Bridge", places[0].Project.Name)
	assert.Nil(t, places[1].Project)
	assert.Equal(t, 2.5, places[1].Hours)
}

func TestDistinct(t *testing.T) {
	assert.Equal(t, []string{"b", "a", "c"}, Distinct([]string{"b", "a", "b", "c", "a"}))
	assert.Empty(t, Distinct(nil))
}
