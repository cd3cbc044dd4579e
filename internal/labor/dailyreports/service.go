package dailyreports

import (
	"context"
	"errors"

	"equipment-backend/internal/labor/worklog"
	"equipment-backend/internal/platform/apierr"
	"equipment-backend/internal/platform/docstore"
	"equipment-backend/internal/platform/ids"
	"equipment-backend/internal/platform/validation"
)

type Service struct {
	store    Store
	resolver *worklog.Resolver
	ids      ids.Generator
}

func NewService(store Store, resolver *worklog.Resolver, gen ids.Generator) *Service {
	return &Service{store: store, resolver: resolver, ids: gen}
}

var errNotFound = apierr.ErrNotFound("daily report with the given id was not found")

func (s *Service) List(ctx context.Context) ([]DailyReportResponse, error) {
	list, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.expand(ctx, list...)
}

func (s *Service) Get(ctx context.Context, id string) (DailyReportResponse, error) {
	r, err := s.store.Get(ctx, id)
	if err != nil {
		return DailyReportResponse{}, mapErr(err)
	}
	return s.expandOne(ctx, *r)
}

func (s *Service) Create(ctx context.Context, req DailyReportRequest) (DailyReportResponse, error) {
	r := fromRequest(s.ids.New(), req)
	err := s.resolver.Persist(ctx, r.Worker, worklog.ProjectIDs(r.Places),
		func(ctx context.Context) error { return s.store.Insert(ctx, r) },
		func(ctx context.Context) error {
			_, err := s.store.Delete(ctx, r.ID)
			return err
		})
	if err != nil {
		return DailyReportResponse{}, err
	}
	return s.expandOne(ctx, r)
}

// Update replaces the whole report. The previous version is put back when a
// reference disappears during the write.
func (s *Service) Update(ctx context.Context, id string, req DailyReportRequest) (DailyReportResponse, error) {
	prev, err := s.store.Get(ctx, id)
	if err != nil {
		return DailyReportResponse{}, mapErr(err)
	}
	r := fromRequest(id, req)
	err = s.resolver.Persist(ctx, r.Worker, worklog.ProjectIDs(r.Places),
		func(ctx context.Context) error { return mapErr(s.store.Replace(ctx, r)) },
		func(ctx context.Context) error { return s.store.Replace(ctx, *prev) })
	if err != nil {
		return DailyReportResponse{}, err
	}
	return s.expandOne(ctx, r)
}

func (s *Service) Delete(ctx context.Context, id string) (DailyReportResponse, error) {
	r, err := s.store.Delete(ctx, id)
	if err != nil {
		return DailyReportResponse{}, mapErr(err)
	}
	return s.expandOne(ctx, *r)
}

func (s *Service) expandOne(ctx context.Context, r DailyReport) (DailyReportResponse, error) {
	out, err := s.expand(ctx, r)
	if err != nil {
		return DailyReportResponse{}, err
	}
	return out[0], nil
}

func (s *Service) expand(ctx context.Context, list ...DailyReport) ([]DailyReportResponse, error) {
	var workers, projectIDs []string
	for _, r := range list {
		workers = append(workers, r.Worker)
		projectIDs = append(projectIDs, worklog.ProjectIDs(r.Places)...)
	}
	e, err := s.resolver.Expand(ctx, workers, projectIDs)
	if err != nil {
		return nil, err
	}
	out := make([]DailyReportResponse, 0, len(list))
	for _, r := range list {
		out = append(out, DailyReportResponse{
			ID:     r.ID,
			Worker: e.Worker(r.Worker),
			Date:   r.Date,
			Places: e.Places(r.Places),
		})
	}
	return out, nil
}

func fromRequest(id string, req DailyReportRequest) DailyReport {
	return DailyReport{
		ID:     id,
		Worker: req.Worker,
		Date:   validation.MustDate(req.Date),
		Places: worklog.ToPlaces(req.Places),
	}
}

func mapErr(err error) error {
	if errors.Is(err, docstore.ErrNotFound) {
		return errNotFound
	}
	return err
}
