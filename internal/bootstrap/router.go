package bootstrap

import (
	"database/sql"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/stafflow-io/staffing-backend/config"
	httpapi "github.com/stafflow-io/staffing-backend/internal/api/http"
	"github.com/stafflow-io/staffing-backend/internal/api/http/middleware"
	"github.com/stafflow-io/staffing-backend/internal/staffing/cache"
	staffinghttp "github.com/stafflow-io/staffing-backend/internal/staffing/http"
	"github.com/stafflow-io/staffing-backend/internal/staffing/repository"
	"github.com/stafflow-io/staffing-backend/internal/staffing/service"
	"github.com/stafflow-io/staffing-backend/internal/staffing/validation"
	tshttp "github.com/stafflow-io/staffing-backend/internal/timesheet/http"
	tsrepository "github.com/stafflow-io/staffing-backend/internal/timesheet/repository"
	tsservice "github.com/stafflow-io/staffing-backend/internal/timesheet/service"
	"github.com/stafflow-io/staffing-backend/pkg/logger"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	DB          *pgxpool.Pool
	SQLDB       *sql.DB
	Redis       *redis.Client
	RateLimit   config.RateLimitConfig
}

// BuildRouter wires repositories, services and handlers into a gin engine.
func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.Use(cors.Default())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")
	api.Use(middleware.RequestIDMiddleware())
	api.Use(middleware.NewRateLimiter(dep.RateLimit.RPS, dep.RateLimit.Burst).Middleware())

	consultantRepo := repository.NewConsultantRepo(dep.DB)
	roleRepo := repository.NewRoleRepo(dep.DB)
	clientRepo := repository.NewClientRepo(dep.DB)
	projectRepo := repository.NewProjectRepo(dep.DB)
	teamRepo := repository.NewTeamRepo(dep.DB)
	assignmentRepo := repository.NewAssignmentRepo(dep.DB)
	taskRepo := repository.NewTaskRepo(dep.DB)
	entryRepo := tsrepository.NewEntryRepo(dep.SQLDB)

	names := cache.NewNameCache(dep.Redis, consultantRepo, roleRepo, projectRepo)
	validator := validation.New(consultantRepo, teamRepo, roleRepo, nil)

	consultantSvc := service.NewConsultantService(consultantRepo, names, nil)
	roleSvc := service.NewRoleService(roleRepo, names, nil)
	clientSvc := service.NewClientService(clientRepo, nil)
	projectSvc := service.NewProjectService(projectRepo, clientRepo, names, nil)
	taskSvc := service.NewTaskService(taskRepo, projectRepo, nil)
	teamSvc := service.NewTeamService(teamRepo, assignmentRepo, projectRepo, validator, nil)
	assignmentSvc := service.NewAssignmentService(assignmentRepo, validator, names, nil)
	timesheetSvc := tsservice.NewTimesheetService(entryRepo, consultantRepo, taskRepo, nil)

	staffinghttp.NewConsultantHandler(consultantSvc).Register(api.Group("/consultants"))
	staffinghttp.NewRoleHandler(roleSvc).Register(api.Group("/roles"))
	staffinghttp.NewClientHandler(clientSvc).Register(api.Group("/clients"))

	projectHandler := staffinghttp.NewProjectHandler(projectSvc, taskSvc)
	projectHandler.Register(api.Group("/projects"))
	projectHandler.RegisterTasks(api.Group("/tasks"))

	staffinghttp.NewTeamHandler(teamSvc).Register(api.Group("/teams"))
	staffinghttp.NewAssignmentHandler(assignmentSvc).Register(api.Group("/assignments"))
	tshttp.New(timesheetSvc).Register(api.Group("/timesheets"))

	return r
}
