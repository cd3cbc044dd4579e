package router

import (
	"context"

	"github.com/sirupsen/logrus"

	"equipment-backend/internal/labor/dailyreports"
	"equipment-backend/internal/labor/salaryreports"
	"equipment-backend/internal/labor/worklog"
	"equipment-backend/internal/platform/auth"
	"equipment-backend/internal/platform/ids"
	"equipment-backend/internal/site/projects"
	"equipment-backend/internal/site/rentedtools"
	"equipment-backend/internal/site/returns"
	"equipment-backend/internal/site/toolgroups"
	"equipment-backend/internal/site/tools"
)

// RefGuard blocks deletes of records that are still referenced.
type RefGuard interface {
	UserReferenced(ctx context.Context, id string) (bool, error)
	ProjectReferenced(ctx context.Context, id string) (bool, error)
	ToolGroupReferenced(ctx context.Context, id string) (bool, error)
}

// Stores is one store per collection plus the users table.
type Stores struct {
	Users         auth.UserStore
	Projects      projects.Store
	ToolGroups    toolgroups.Store
	Tools         tools.Store
	RentedTools   rentedtools.Store
	Returns       returns.Store
	DailyReports  dailyreports.Store
	SalaryReports salaryreports.Store
	Refs          RefGuard
}

type Services struct {
	Users         *auth.Service
	Projects      *projects.Service
	ToolGroups    *toolgroups.Service
	Tools         *tools.Service
	RentedTools   *rentedtools.Service
	Returns       *returns.Service
	DailyReports  *dailyreports.Service
	SalaryReports *salaryreports.Service
}

// NewServices wires the services to each other in dependency order.
func NewServices(st Stores, tokens *auth.TokenManager, gen ids.Generator, log logrus.FieldLogger) Services {
	var s Services
	s.Users = auth.NewService(st.Users, tokens, st.Refs, gen, log.WithField("component", "users"))
	s.Projects = projects.NewService(st.Projects, s.Users, st.Refs, gen)
	s.ToolGroups = toolgroups.NewService(st.ToolGroups, st.Refs, gen)
	s.Tools = tools.NewService(st.Tools, s.Projects, s.ToolGroups, gen)
	s.RentedTools = rentedtools.NewService(st.RentedTools, s.Projects, gen)
	s.Returns = returns.NewService(st.Returns, s.RentedTools, s.Projects, gen, log.WithField("component", "returns"))

	resolver := worklog.NewResolver(s.Users, s.Projects, log.WithField("component", "reports"))
	s.DailyReports = dailyreports.NewService(st.DailyReports, resolver, gen)
	s.SalaryReports = salaryreports.NewService(st.SalaryReports, resolver, gen)
	return s
}
