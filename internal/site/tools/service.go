package tools

import (
	"context"
	"errors"

	"equipment-backend/internal/platform/apierr"
	"equipment-backend/internal/platform/docstore"
	"equipment-backend/internal/platform/ids"
	"equipment-backend/internal/site/projects"
	"equipment-backend/internal/site/toolgroups"
)

type Projects interface {
	Exists(ctx context.Context, id string) (bool, error)
	Summaries(ctx context.Context, ids []string) (map[string]projects.Summary, error)
}

type Groups interface {
	Exists(ctx context.Context, id string) (bool, error)
	Summaries(ctx context.Context, ids []string) (map[string]toolgroups.Summary, error)
}

type Service struct {
	store    Store
	projects Projects
	groups   Groups
	ids      ids.Generator
}

func NewService(store Store, p Projects, g Groups, gen ids.Generator) *Service {
	return &Service{store: store, projects: p, groups: g, ids: gen}
}

var errNotFound = apierr.ErrNotFound("tool with the given id was not found")

func (s *Service) List(ctx context.Context) ([]ToolResponse, error) {
	list, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.expand(ctx, list...)
}

func (s *Service) Get(ctx context.Context, id string) (ToolResponse, error) {
	t, err := s.store.Get(ctx, id)
	if err != nil {
		return ToolResponse{}, mapErr(err)
	}
	return s.expandOne(ctx, *t)
}

// Create stores a new tool. It is available and not in repair unless the
// payload says otherwise.
func (s *Service) Create(ctx context.Context, req ToolRequest) (ToolResponse, error) {
	if err := s.checkRefs(ctx, req); err != nil {
		return ToolResponse{}, err
	}
	t := Tool{ID: s.ids.New(), Available: true}
	apply(&t, req)
	if err := s.store.Insert(ctx, t); err != nil {
		return ToolResponse{}, err
	}
	return s.expandOne(ctx, t)
}

// Update replaces the tool; available and reparation keep their stored
// values when omitted.
func (s *Service) Update(ctx context.Context, id string, req ToolRequest) (ToolResponse, error) {
	cur, err := s.store.Get(ctx, id)
	if err != nil {
		return ToolResponse{}, mapErr(err)
	}
	if err := s.checkRefs(ctx, req); err != nil {
		return ToolResponse{}, err
	}
	t := *cur
	apply(&t, req)
	if err := s.store.Replace(ctx, t); err != nil {
		return ToolResponse{}, mapErr(err)
	}
	return s.expandOne(ctx, t)
}

func (s *Service) Delete(ctx context.Context, id string) (ToolResponse, error) {
	t, err := s.store.Delete(ctx, id)
	if err != nil {
		return ToolResponse{}, mapErr(err)
	}
	return s.expandOne(ctx, *t)
}

func apply(t *Tool, req ToolRequest) {
	t.Name = req.Name
	t.SerieNumber = *req.SerieNumber
	t.ToolGroup = req.ToolGroup
	t.Project = ""
	if req.Project != nil {
		t.Project = *req.Project
	}
	if req.Available != nil {
		t.Available = *req.Available
	}
	if req.Reparation != nil {
		t.Reparation = *req.Reparation
	}
}

func (s *Service) checkRefs(ctx context.Context, req ToolRequest) error {
	ok, err := s.groups.Exists(ctx, req.ToolGroup)
	if err != nil {
		return err
	}
	if !ok {
		return apierr.ErrNotFound("tool group with the given id was not found")
	}
	if req.Project == nil || *req.Project == "" {
		return nil
	}
	ok, err = s.projects.Exists(ctx, *req.Project)
	if err != nil {
		return err
	}
	if !ok {
		return apierr.ErrNotFound("project with the given id was not found")
	}
	return nil
}

func (s *Service) expandOne(ctx context.Context, t Tool) (ToolResponse, error) {
	out, err := s.expand(ctx, t)
	if err != nil {
		return ToolResponse{}, err
	}
	return out[0], nil
}

func (s *Service) expand(ctx context.Context, list ...Tool) ([]ToolResponse, error) {
	var groupIDs, projectIDs []string
	for _, t := range list {
		groupIDs = append(groupIDs, t.ToolGroup)
		if t.Project != "" {
			projectIDs = append(projectIDs, t.Project)
		}
	}
	groups, err := s.groups.Summaries(ctx, groupIDs)
	if err != nil {
		return nil, err
	}
	projs, err := s.projects.Summaries(ctx, projectIDs)
	if err != nil {
		return nil, err
	}

	out := make([]ToolResponse, 0, len(list))
	for _, t := range list {
		res := ToolResponse{
			ID:          t.ID,
			Name:        t.Name,
			SerieNumber: t.SerieNumber,
			Available:   t.Available,
			Reparation:  t.Reparation,
		}
		if g, ok := groups[t.ToolGroup]; ok {
			res.ToolGroup = &g
		}
		if p, ok := projs[t.Project]; ok {
			res.Project = &p
		}
		out = append(out, res)
	}
	return out, nil
}

func mapErr(err error) error {
	if errors.Is(err, docstore.ErrNotFound) {
		return errNotFound
	}
	return err
}
