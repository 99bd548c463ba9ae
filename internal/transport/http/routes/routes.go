package routes

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/maverick2062/Gym-Management/internal/core/domain"
	"github.com/maverick2062/Gym-Management/internal/infra/config"
	"github.com/maverick2062/Gym-Management/internal/transport/http/handlers"
	"github.com/maverick2062/Gym-Management/internal/transport/http/middleware"
	"github.com/maverick2062/Gym-Management/internal/usecase"
)

// ServiceSet groups the services the HTTP layer depends on.
type ServiceSet struct {
	Auth         *usecase.AuthService
	Registration *usecase.RegistrationService
	Identities   *usecase.IdentityService
	Equipment    *usecase.EquipmentService
}

// Dependencies encapsulates the objects required to register routes.
type Dependencies struct {
	Config   *config.AppConfig
	Logger   *zap.Logger
	Services ServiceSet
	Database DatabaseChecker
}

// DatabaseChecker exposes readiness behaviour for database connections.
type DatabaseChecker interface {
	Ping(ctx context.Context) error
}

// Role guard sets. Staff access is keyed on the token's role claim, which
// for employees is their job tag rather than the literal "employee".
var (
	staffRoles  = []string{string(domain.RoleAdmin), string(domain.EmployeeRoleIT), string(domain.EmployeeRoleTrainer)}
	recordRoles = []string{string(domain.RoleAdmin), string(domain.EmployeeRoleIT)}
	adminOnly   = []string{string(domain.RoleAdmin)}
)

// Register configures the Gin engine with routes and middleware.
func Register(deps Dependencies) *gin.Engine {
	if deps.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(deps.Logger))

	if metrics, err := middleware.NewHTTPMetrics(middleware.HTTPMetricsOptions{}); err == nil {
		r.Use(metrics.Handler())
	} else {
		deps.Logger.Warn("http metrics disabled", zap.Error(err))
	}

	authMiddleware := middleware.RequireAuth(deps.Services.Auth)

	healthOptions := make([]handlers.HealthOption, 0, 1)
	if deps.Database != nil {
		healthOptions = append(healthOptions, handlers.WithReadinessCheck("database", deps.Database.Ping))
	}
	healthHandler := handlers.NewHealthHandler(healthOptions...)

	r.GET("/healthz", healthHandler.Status)
	r.GET("/readyz", healthHandler.Readiness)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		authHandler := handlers.NewAuthHandler(deps.Services.Auth, deps.Services.Registration)
		authHandler.RegisterRoutes(authGroup)

		adminGroup := api.Group("/admins")
		adminGroup.Use(authMiddleware, middleware.RequireRole(adminOnly...))
		handlers.NewIdentityHandler(domain.RoleAdmin, deps.Services.Identities, deps.Services.Registration).
			RegisterRoutes(adminGroup, adminGroup)

		employeeGroup := api.Group("/employees")
		employeeGroup.Use(authMiddleware, middleware.RequireRole(adminOnly...))
		handlers.NewIdentityHandler(domain.RoleEmployee, deps.Services.Identities, deps.Services.Registration).
			RegisterRoutes(employeeGroup, employeeGroup)

		memberHandler := handlers.NewIdentityHandler(domain.RoleMember, deps.Services.Identities, deps.Services.Registration)
		memberView := api.Group("/members")
		memberView.Use(authMiddleware, middleware.RequireRole(staffRoles...))
		memberMutate := api.Group("/members")
		memberMutate.Use(authMiddleware, middleware.RequireRole(recordRoles...))
		memberHandler.RegisterRoutes(memberView, memberMutate)

		equipmentHandler := handlers.NewEquipmentHandler(deps.Services.Equipment)
		equipmentView := api.Group("/equipment")
		equipmentView.Use(authMiddleware, middleware.RequireRole(staffRoles...))
		equipmentMutate := api.Group("/equipment")
		equipmentMutate.Use(authMiddleware, middleware.RequireRole(recordRoles...))
		equipmentHandler.RegisterRoutes(equipmentView, equipmentMutate)
	}

	return r
}
