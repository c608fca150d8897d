package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/silogtran-api/internal/application/session"
	"github.com/jhoicas/silogtran-api/internal/application/usecase"
	"github.com/jhoicas/silogtran-api/internal/domain/entity"
	"github.com/jhoicas/silogtran-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Session     *session.Service
	SearchUC    *usecase.SearchUseCase
	HistorialUC *usecase.HistorialUseCase
	DashboardUC *usecase.DashboardUseCase
	ManifestUC  *usecase.RecordUseCase[*entity.Manifest]
	RemesaUC    *usecase.RecordUseCase[*entity.Remesa]
	JWTSecret   string
	Logger      *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	authHandler := NewAuthHandler(deps.Session)

	// Auth (público; login reutiliza la sesión del token si viene)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", OptionalSession(deps.JWTSecret), authHandler.Login)
	authGroup.Post("/forgot-password", authHandler.ForgotPassword)
	authGroup.Get("/session", OptionalSession(deps.JWTSecret), authHandler.Session)

	// Pasos del flujo de acceso (token requerido; el servicio valida el paso)
	withToken := SessionMiddleware(deps.JWTSecret)
	authGroup.Post("/two-factor", withToken, authHandler.VerifyTwoFactor)
	authGroup.Post("/two-factor/resend", withToken, authHandler.ResendCode)
	authGroup.Post("/cost-center", withToken, authHandler.SelectCostCenter)
	authGroup.Post("/logout", withToken, authHandler.Logout)
	api.Get("/cost-centers", withToken, RequireStep(deps.Session, entity.StepTwoFactorVerified), authHandler.CostCenters)

	// Consola (sesión completa: login, segundo factor y centro de costos)
	console := api.Group("/", withToken, RequireStep(deps.Session, entity.StepCostCenterSelected))

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	console.Get("/dashboard", dashboardHandler.Get)

	searchHandler := NewSearchHandler(deps.SearchUC)
	console.Get("/search", searchHandler.Search)

	historialHandler := NewHistorialHandler(deps.HistorialUC, deps.Logger)
	console.Get("/historial", historialHandler.List)
	console.Post("/historial", historialHandler.RecordVisit)

	NewRecordHandler(deps.ManifestUC).Register(console.Group("/manifests"))
	NewRecordHandler(deps.RemesaUC).Register(console.Group("/remesas"))
}
