package returns

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"equipment-backend/internal/platform/apierr"
	"equipment-backend/internal/platform/docstore"
	"equipment-backend/internal/platform/ids"
	"equipment-backend/internal/site/projects"
	"equipment-backend/internal/site/rentedtools"
)

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }

type RentedTools interface {
	Find(ctx context.Context, id string) (rentedtools.RentedTool, error)
	MarkReturned(ctx context.Context, id string, at time.Time) error
	ClearReturned(ctx context.Context, id string) error
}

type Projects interface {
	Summaries(ctx context.Context, ids []string) (map[string]projects.Summary, error)
}

type Service struct {
	store    Store
	rented   RentedTools
	projects Projects
	ids      ids.Generator
	clock    Clock
	log      logrus.FieldLogger
}

func NewService(store Store, rented RentedTools, p Projects, gen ids.Generator, log logrus.FieldLogger) *Service {
	return &Service{store: store, rented: rented, projects: p, ids: gen, clock: realClock{}, log: log}
}

func (s *Service) List(ctx context.Context) ([]ReturnResponse, error) {
	list, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.expand(ctx, list...)
}

func (s *Service) Get(ctx context.Context, id string) (ReturnResponse, error) {
	r, err := s.store.Get(ctx, id)
	if errors.Is(err, docstore.ErrNotFound) {
		return ReturnResponse{}, apierr.ErrNotFound("return with the given id was not found")
	}
	if err != nil {
		return ReturnResponse{}, err
	}
	return s.expandOne(ctx, *r)
}

// Create records the return of a rented tool. The rented tool is flagged
// first so that a second return of the same rental fails with a conflict;
// the flag is cleared again if the record cannot be stored.
func (s *Service) Create(ctx context.Context, req ReturnRequest) (ReturnResponse, error) {
	rt, err := s.rented.Find(ctx, req.Tool)
	if err != nil {
		return ReturnResponse{}, err
	}

	now := s.clock.Now()
	if err := s.rented.MarkReturned(ctx, rt.ID, now); err != nil {
		return ReturnResponse{}, err
	}

	r := Return{
		ID: s.ids.New(),
		Tool: ToolSnapshot{
			Name:      rt.Name,
			Project:   rt.Project,
			RentStart: rt.RentStart,
			RentedTo:  rt.RentedTo,
		},
		RentedTool:    rt.ID,
		RentStartDate: rt.RentStart,
		ReturnDate:    now,
		RentCompany:   rt.RentedTo,
	}
	if err := s.store.Insert(ctx, r); err != nil {
		if cerr := s.rented.ClearReturned(ctx, rt.ID); cerr != nil {
			s.log.WithError(cerr).WithField("rented_tool", rt.ID).Error("could not clear return flag")
		}
		return ReturnResponse{}, err
	}
	return s.expandOne(ctx, r)
}

func (s *Service) expandOne(ctx context.Context, r Return) (ReturnResponse, error) {
	out, err := s.expand(ctx, r)
	if err != nil {
		return ReturnResponse{}, err
	}
	return out[0], nil
}

func (s *Service) expand(ctx context.Context, list ...Return) ([]ReturnResponse, error) {
	projectIDs := make([]string, 0, len(list))
	for _, r := range list {
		projectIDs = append(projectIDs, r.Tool.Project)
	}
	projs, err := s.projects.Summaries(ctx, projectIDs)
	if err != nil {
		return nil, err
	}
	out := make([]ReturnResponse, 0, len(list))
	for _, r := range list {
		res := ReturnResponse{
			ID: r.ID,
			Tool: ToolSnapshotResponse{
				Name:      r.Tool.Name,
				RentStart: r.Tool.RentStart,
				RentedTo:  r.Tool.RentedTo,
			},
			RentedTool:    r.RentedTool,
			RentStartDate: r.RentStartDate,
			ReturnDate:    r.ReturnDate,
			RentCompany:   r.RentCompany,
		}
		if p, ok := projs[r.Tool.Project]; ok {
			res.Tool.Project = &p
		}
		out = append(out, res)
	}
	return out, nil
}
