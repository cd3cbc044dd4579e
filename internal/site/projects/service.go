package projects

import (
	"context"
	"errors"

	"equipment-backend/internal/platform/apierr"
	"equipment-backend/internal/platform/auth"
	"equipment-backend/internal/platform/docstore"
	"equipment-backend/internal/platform/ids"
	"equipment-backend/internal/platform/validation"
)

// Supervisors resolves the user a project is assigned to.
type Supervisors interface {
	Exists(ctx context.Context, id string) (bool, error)
	Summaries(ctx context.Context, ids []string) (map[string]auth.UserSummary, error)
}

type ReferenceGuard interface {
	ProjectReferenced(ctx context.Context, id string) (bool, error)
}

type Service struct {
	store       Store
	supervisors Supervisors
	refs        ReferenceGuard
	ids         ids.Generator
}

func NewService(store Store, supervisors Supervisors, refs ReferenceGuard, gen ids.Generator) *Service {
	return &Service{store: store, supervisors: supervisors, refs: refs, ids: gen}
}

var errNotFound = apierr.ErrNotFound("project with the given id was not found")

func (s *Service) List(ctx context.Context) ([]ProjectResponse, error) {
	list, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.expand(ctx, list...)
}

func (s *Service) Get(ctx context.Context, id string) (ProjectResponse, error) {
	p, err := s.store.Get(ctx, id)
	if err != nil {
		return ProjectResponse{}, mapErr(err)
	}
	return s.expandOne(ctx, *p)
}

func (s *Service) Create(ctx context.Context, req ProjectRequest) (ProjectResponse, error) {
	if err := s.checkSupervisor(ctx, req.Supervisor); err != nil {
		return ProjectResponse{}, err
	}
	p := fromRequest(s.ids.New(), req)
	if err := s.store.Insert(ctx, p); err != nil {
		return ProjectResponse{}, err
	}
	return s.expandOne(ctx, p)
}

// Update replaces every field of the project.
func (s *Service) Update(ctx context.Context, id string, req ProjectRequest) (ProjectResponse, error) {
	if _, err := s.store.Get(ctx, id); err != nil {
		return ProjectResponse{}, mapErr(err)
	}
	if err := s.checkSupervisor(ctx, req.Supervisor); err != nil {
		return ProjectResponse{}, err
	}
	p := fromRequest(id, req)
	if err := s.store.Replace(ctx, p); err != nil {
		return ProjectResponse{}, mapErr(err)
	}
	return s.expandOne(ctx, p)
}

func (s *Service) Delete(ctx context.Context, id string) (ProjectResponse, error) {
	p, err := s.store.Get(ctx, id)
	if err != nil {
		return ProjectResponse{}, mapErr(err)
	}
	used, err := s.refs.ProjectReferenced(ctx, id)
	if err != nil {
		return ProjectResponse{}, err
	}
	if used {
		return ProjectResponse{}, apierr.ErrConflict("project is still referenced by tools, rented tools or reports")
	}
	if _, err := s.store.Delete(ctx, id); err != nil {
		return ProjectResponse{}, mapErr(err)
	}
	return s.expandOne(ctx, *p)
}

// Exists reports whether a project with id is stored.
func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	return s.store.Exists(ctx, id)
}

// Summaries returns the projection of every known id. Unknown ids are absent.
func (s *Service) Summaries(ctx context.Context, projectIDs []string) (map[string]Summary, error) {
	list, err := s.store.FindByIDs(ctx, projectIDs)
	if err != nil {
		return nil, err
	}
	out := make(map[string]Summary, len(list))
	for _, p := range list {
		out[p.ID] = toSummary(p)
	}
	return out, nil
}

func (s *Service) checkSupervisor(ctx context.Context, id string) error {
	ok, err := s.supervisors.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apierr.ErrNotFound("supervisor with the given id was not found")
	}
	return nil
}

func (s *Service) expandOne(ctx context.Context, p Project) (ProjectResponse, error) {
	out, err := s.expand(ctx, p)
	if err != nil {
		return ProjectResponse{}, err
	}
	return out[0], nil
}

func (s *Service) expand(ctx context.Context, list ...Project) ([]ProjectResponse, error) {
	supIDs := make([]string, 0, len(list))
	for _, p := range list {
		supIDs = append(supIDs, p.Supervisor)
	}
	sups, err := s.supervisors.Summaries(ctx, supIDs)
	if err != nil {
		return nil, err
	}
	out := make([]ProjectResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toResponse(p, sups))
	}
	return out, nil
}

func fromRequest(id string, req ProjectRequest) Project {
	return Project{
		ID:            id,
		Name:          req.Name,
		Address:       req.Address,
		ProjectNumber: *req.ProjectNumber,
		Active:        req.Active != nil && *req.Active,
		Supervisor:    req.Supervisor,
		StartDate:     validation.MustDate(req.StartDate),
		EndDate:       validation.MustDate(req.EndDate),
	}
}

func mapErr(err error) error {
	if errors.Is(err, docstore.ErrNotFound) {
		return errNotFound
	}
	return err
}
