// Package worklog holds what daily and salary reports share: the place
// entry, reference checks for worker and projects, and read projections.
package worklog

import (
	"context"

	"github.com/sirupsen/logrus"

	"equipment-backend/internal/platform/apierr"
	"equipment-backend/internal/platform/auth"
	"equipment-backend/internal/site/projects"
)

// Place is hours worked on one project.
type Place struct {
	Project string  `bson:"project"`
	Hours   float64 `bson:"hours"`
}

type PlaceRequest struct {
	Project string   `json:"project" validate:"required,ulid"`
	Hours   *float64 `json:"hours" validate:"required,min=1,max=20"`
}

type PlaceResponse struct {
	Project *projects.Summary `json:"project"`
	Hours   float64           `json:"hours"`
}

func ToPlaces(req []PlaceRequest) []Place {
	out := make([]Place, 0, len(req))
	for _, p := range req {
		out = append(out, Place{Project: p.Project, Hours: *p.Hours})
	}
	return out
}

type Workers interface {
	Exists(ctx context.Context, id string) (bool, error)
	Summaries(ctx context.Context, ids []string) (map[string]auth.UserSummary, error)
}

type Projects interface {
	Exists(ctx context.Context, id string) (bool, error)
	Summaries(ctx context.Context, ids []string) (map[string]projects.Summary, error)
}

var (
	ErrWorkerNotFound  = apierr.ErrNotFound("user with the given id was not found")
	ErrProjectNotFound = apierr.ErrNotFound("one of the project ids does not match an existing project")
)

// Resolver checks the references of a report against the user and project
// registries.
type Resolver struct {
	workers  Workers
	projects Projects
	log      logrus.FieldLogger
}

func NewResolver(w Workers, p Projects, log logrus.FieldLogger) *Resolver {
	return &Resolver{workers: w, projects: p, log: log}
}

// Check resolves the worker, then every distinct project in the order given.
// It stops at the first missing reference.
func (r *Resolver) Check(ctx context.Context, worker string, projectIDs []string) error {
	ok, err := r.workers.Exists(ctx, worker)
	if err != nil {
		return err
	}
	if !ok {
		return ErrWorkerNotFound
	}
	for _, id := range Distinct(projectIDs) {
		ok, err := r.projects.Exists(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return ErrProjectNotFound
		}
	}
	return nil
}

// Persist runs write once every reference resolves, then checks the
// references again. A reference deleted in between makes Persist call undo
// and return the check error.
func (r *Resolver) Persist(ctx context.Context, worker string, projectIDs []string, write, undo func(context.Context) error) error {
	if err := r.Check(ctx, worker, projectIDs); err != nil {
		return err
	}
	if err := write(ctx); err != nil {
		return err
	}
	cerr := r.Check(ctx, worker, projectIDs)
	if cerr == nil {
		return nil
	}
	// 書き込みは済んでいるのでキャンセルされても戻す
	if uerr := undo(context.WithoutCancel(ctx)); uerr != nil {
		r.log.WithError(uerr).WithField("worker", worker).Error("could not undo report write")
	}
	return cerr
}

// Expansion holds the display projections for a batch of reports.
type Expansion struct {
	workers  map[string]auth.UserSummary
	projects map[string]projects.Summary
}

func (r *Resolver) Expand(ctx context.Context, workerIDs, projectIDs []string) (Expansion, error) {
	w, err := r.workers.Summaries(ctx, Distinct(workerIDs))
	if err != nil {
		return Expansion{}, err
	}
	p, err := r.projects.Summaries(ctx, Distinct(projectIDs))
	if err != nil {
		return Expansion{}, err
	}
	return Expansion{workers: w, projects: p}, nil
}

// Worker is nil when the user no longer exists.
func (e Expansion) Worker(id string) *auth.UserSummary {
	w, ok := e.workers[id]
	if !ok {
		return nil
	}
	return &w
}

func (e Expansion) Places(places []Place) []PlaceResponse {
	out := make([]PlaceResponse, 0, len(places))
	for _, p := range places {
		res := PlaceResponse{Hours: p.Hours}
		if s, ok := e.projects[p.Project]; ok {
			res.Project = &s
		}
		out = append(out, res)
	}
	return out
}

// Distinct keeps the first occurrence of each id.
func Distinct(list []string) []string {
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0, len(list))
	for _, id := range list {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// ProjectIDs lists the project of every place, in order.
func ProjectIDs(places []Place) []string {
	out := make([]string, 0, len(places))
	for _, p := range places {
		out = append(out, p.Project)
	}
	return out
}
