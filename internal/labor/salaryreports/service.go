package salaryreports

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

var errNotFound = apierr.ErrNotFound("salary report with the given id was not found")

func (s *Service) List(ctx context.Context) ([]SalaryReportResponse, error) {
	list, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.expand(ctx, list...)
}

func (s *Service) Get(ctx context.Context, id string) (SalaryReportResponse, error) {
	r, err := s.store.Get(ctx, id)
	if err != nil {
		return SalaryReportResponse{}, mapErr(err)
	}
	return s.expandOne(ctx, *r)
}

func (s *Service) Create(ctx context.Context, req SalaryReportRequest) (SalaryReportResponse, error) {
	r := fromRequest(s.ids.New(), req)
	err := s.resolver.Persist(ctx, r.Worker, r.projectIDs(),
		func(ctx context.Context) error { return s.store.Insert(ctx, r) },
		func(ctx context.Context) error {
			_, err := s.store.Delete(ctx, r.ID)
			return err
		})
	if err != nil {
		return SalaryReportResponse{}, err
	}
	return s.expandOne(ctx, r)
}

func (s *Service) Update(ctx context.Context, id string, req SalaryReportRequest) (SalaryReportResponse, error) {
	prev, err := s.store.Get(ctx, id)
	if err != nil {
		return SalaryReportResponse{}, mapErr(err)
	}
	r := fromRequest(id, req)
	err = s.resolver.Persist(ctx, r.Worker, r.projectIDs(),
		func(ctx context.Context) error { return mapErr(s.store.Replace(ctx, r)) },
		func(ctx context.Context) error { return s.store.Replace(ctx, *prev) })
	if err != nil {
		return SalaryReportResponse{}, err
	}
	return s.expandOne(ctx, r)
}

func (s *Service) Delete(ctx context.Context, id string) (SalaryReportResponse, error) {
	r, err := s.store.Delete(ctx, id)
	if err != nil {
		return SalaryReportResponse{}, mapErr(err)
	}
	return s.expandOne(ctx, *r)
}

func (s *Service) expandOne(ctx context.Context, r SalaryReport) (SalaryReportResponse, error) {
	out, err := s.expand(ctx, r)
	if err != nil {
		return SalaryReportResponse{}, err
	}
	return out[0], nil
}

func (s *Service) expand(ctx context.Context, list ...SalaryReport) ([]SalaryReportResponse, error) {
	var workers, projectIDs []string
	for _, r := range list {
		workers = append(workers, r.Worker)
		projectIDs = append(projectIDs, r.projectIDs()...)
	}
	e, err := s.resolver.Expand(ctx, workers, projectIDs)
	if err != nil {
		return nil, err
	}
	out := make([]SalaryReportResponse, 0, len(list))
	for _, r := range list {
		res := SalaryReportResponse{
			ID:       r.ID,
			Worker:   e.Worker(r.Worker),
			Date:     r.Date,
			WorkDays: make([]WorkDayResponse, 0, len(r.WorkDays)),
		}
		for _, d := range r.WorkDays {
			res.WorkDays = append(res.WorkDays, WorkDayResponse{Date: d.Date, Places: e.Places(d.Places)})
		}
		out = append(out, res)
	}
	return out, nil
}

func fromRequest(id string, req SalaryReportRequest) SalaryReport {
	r := SalaryReport{
		ID:       id,
		Worker:   req.Worker,
		Date:     validation.MustDate(req.Date),
		WorkDays: make([]WorkDay, 0, len(req.WorkDays)),
	}
	for _, d := range req.WorkDays {
		r.WorkDays = append(r.WorkDays, WorkDay{
			Date:   validation.MustDate(d.Date),
			Places: worklog.ToPlaces(d.Places),
		})
	}
	return r
}

func mapErr(err error) error {
	if errors.Is(err, docstore.ErrNotFound) {
		return errNotFound
	}
	return err
}
