package rentedtools

import (
	"context"
	"errors"
	"time"

	"equipment-backend/internal/platform/apierr"
	"equipment-backend/internal/platform/docstore"
	"equipment-backend/internal/platform/ids"
	"equipment-backend/internal/platform/validation"
	"equipment-backend/internal/site/projects"
)

type Projects interface {
	Exists(ctx context.Context, id string) (bool, error)
	Summaries(ctx context.Context, ids []string) (map[string]projects.Summary, error)
}

type Service struct {
	store    Store
	projects Projects
	ids      ids.Generator
}

func NewService(store Store, p Projects, gen ids.Generator) *Service {
	return &Service{store: store, projects: p, ids: gen}
}

var errNotFound = apierr.ErrNotFound("rented tool with the given id was not found")

func (s *Service) List(ctx context.Context) ([]RentedToolResponse, error) {
	list, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.expand(ctx, list...)
}

func (s *Service) Get(ctx context.Context, id string) (RentedToolResponse, error) {
	t, err := s.Find(ctx, id)
	if err != nil {
		return RentedToolResponse{}, err
	}
	return s.expandOne(ctx, t)
}

// Find returns the stored record without projections.
func (s *Service) Find(ctx context.Context, id string) (RentedTool, error) {
	t, err := s.store.Get(ctx, id)
	if err != nil {
		return RentedTool{}, mapErr(err)
	}
	return *t, nil
}

func (s *Service) Create(ctx context.Context, req RentedToolRequest) (RentedToolResponse, error) {
	if err := s.checkProject(ctx, req.Project); err != nil {
		return RentedToolResponse{}, err
	}
	t := fromRequest(s.ids.New(), req)
	if err := s.store.Insert(ctx, t); err != nil {
		return RentedToolResponse{}, err
	}
	return s.expandOne(ctx, t)
}

// Update replaces the descriptive fields. The return flag is kept.
func (s *Service) Update(ctx context.Context, id string, req RentedToolRequest) (RentedToolResponse, error) {
	cur, err := s.store.Get(ctx, id)
	if err != nil {
		return RentedToolResponse{}, mapErr(err)
	}
	if err := s.checkProject(ctx, req.Project); err != nil {
		return RentedToolResponse{}, err
	}
	t := fromRequest(id, req)
	t.ReturnedAt = cur.ReturnedAt
	if err := s.store.Replace(ctx, t); err != nil {
		return RentedToolResponse{}, mapErr(err)
	}
	return s.expandOne(ctx, t)
}

func (s *Service) Delete(ctx context.Context, id string) (RentedToolResponse, error) {
	t, err := s.store.Delete(ctx, id)
	if err != nil {
		return RentedToolResponse{}, mapErr(err)
	}
	return s.expandOne(ctx, *t)
}

// MarkReturned flags the rented tool as returned at the given time. A tool
// can be returned once.
func (s *Service) MarkReturned(ctx context.Context, id string, at time.Time) error {
	err := s.store.MarkReturned(ctx, id, at)
	if errors.Is(err, ErrAlreadyReturned) {
		return apierr.ErrConflict("rented tool has already been returned")
	}
	return mapErr(err)
}

func (s *Service) ClearReturned(ctx context.Context, id string) error {
	return s.store.ClearReturned(ctx, id)
}

func (s *Service) checkProject(ctx context.Context, id string) error {
	ok, err := s.projects.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apierr.ErrNotFound("project with the given id was not found")
	}
	return nil
}

func (s *Service) expandOne(ctx context.Context, t RentedTool) (RentedToolResponse, error) {
	out, err := s.expand(ctx, t)
	if err != nil {
		return RentedToolResponse{}, err
	}
	return out[0], nil
}

func (s *Service) expand(ctx context.Context, list ...RentedTool) ([]RentedToolResponse, error) {
	projectIDs := make([]string, 0, len(list))
	for _, t := range list {
		projectIDs = append(projectIDs, t.Project)
	}
	projs, err := s.projects.Summaries(ctx, projectIDs)
	if err != nil {
		return nil, err
	}
	out := make([]RentedToolResponse, 0, len(list))
	for _, t := range list {
		res := RentedToolResponse{
			ID:         t.ID,
			Name:       t.Name,
			RentedTo:   t.RentedTo,
			RentStart:  t.RentStart,
			RentEnd:    t.RentEnd,
			ReturnedAt: t.ReturnedAt,
		}
		if p, ok := projs[t.Project]; ok {
			res.Project = &p
		}
		out = append(out, res)
	}
	return out, nil
}

func fromRequest(id string, req RentedToolRequest) RentedTool {
	t := RentedTool{
		ID:        id,
		Name:      req.Name,
		RentedTo:  req.RentedTo,
		RentStart: validation.MustDate(req.RentStart),
		Project:   req.Project,
	}
	if req.RentEnd != nil && *req.RentEnd != "" {
		end := validation.MustDate(*req.RentEnd)
		t.RentEnd = &end
	}
	return t
}

func mapErr(err error) error {
	if errors.Is(err, docstore.ErrNotFound) {
		return errNotFound
	}
	return err
}
