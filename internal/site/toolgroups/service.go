package toolgroups

import (
	"context"
	"errors"

	"equipment-backend/internal/platform/apierr"
	"equipment-backend/internal/platform/docstore"
	"equipment-backend/internal/platform/ids"
)

type ReferenceGuard interface {
	ToolGroupReferenced(ctx context.Context, id string) (bool, error)
}

type Service struct {
	store Store
	refs  ReferenceGuard
	ids   ids.Generator
}

func NewService(store Store, refs ReferenceGuard, gen ids.Generator) *Service {
	return &Service{store: store, refs: refs, ids: gen}
}

var errNotFound = apierr.ErrNotFound("tool group with the given id was not found")

func (s *Service) List(ctx context.Context) ([]ToolGroup, error) {
	return s.store.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (ToolGroup, error) {
	g, err := s.store.Get(ctx, id)
	if err != nil {
		return ToolGroup{}, mapErr(err)
	}
	return *g, nil
}

func (s *Service) Create(ctx context.Context, req ToolGroupRequest) (ToolGroup, error) {
	g := ToolGroup{ID: s.ids.New(), Name: req.Name, Description: req.Description}
	if err := s.store.Insert(ctx, g); err != nil {
		return ToolGroup{}, err
	}
	return g, nil
}

func (s *Service) Update(ctx context.Context, id string, req ToolGroupRequest) (ToolGroup, error) {
	g := ToolGroup{ID: id, Name: req.Name, Description: req.Description}
	if err := s.store.Replace(ctx, g); err != nil {
		return ToolGroup{}, mapErr(err)
	}
	return g, nil
}

func (s *Service) Delete(ctx context.Context, id string) (ToolGroup, error) {
	if _, err := s.store.Get(ctx, id); err != nil {
		return ToolGroup{}, mapErr(err)
	}
	used, err := s.refs.ToolGroupReferenced(ctx, id)
	if err != nil {
		return ToolGroup{}, err
	}
	if used {
		return ToolGroup{}, apierr.ErrConflict("tool group is still referenced by tools")
	}
	g, err := s.store.Delete(ctx, id)
	if err != nil {
		return ToolGroup{}, mapErr(err)
	}
	return *g, nil
}

func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	return s.store.Exists(ctx, id)
}

func (s *Service) Summaries(ctx context.Context, groupIDs []string) (map[string]Summary, error) {
	list, err := s.store.FindByIDs(ctx, groupIDs)
	if err != nil {
		return nil, err
	}
	out := make(map[string]Summary, len(list))
	for _, g := range list {
		out[g.ID] = g
	}
	return out, nil
}

func mapErr(err error) error {
	if errors.Is(err, docstore.ErrNotFound) {
		return errNotFound
	}
	return err
}
