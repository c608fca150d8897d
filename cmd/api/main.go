package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/swaggo/swag"

	_ "github.com/jhoicas/silogtran-api/docs"
	"github.com/jhoicas/silogtran-api/internal/application/historial"
	"github.com/jhoicas/silogtran-api/internal/application/session"
	"github.com/jhoicas/silogtran-api/internal/application/usecase"
	"github.com/jhoicas/silogtran-api/internal/domain/entity"
	"github.com/jhoicas/silogtran-api/internal/domain/repository"
	"github.com/jhoicas/silogtran-api/internal/infrastructure/catalog"
	"github.com/jhoicas/silogtran-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/silogtran-api/internal/infrastructure/pdf"
	"github.com/jhoicas/silogtran-api/internal/infrastructure/postgres"
	"github.com/jhoicas/silogtran-api/internal/infrastructure/storage"
	"github.com/jhoicas/silogtran-api/internal/infrastructure/xmlexport"
	httpRouter "github.com/jhoicas/silogtran-api/internal/interfaces/http"
	"github.com/jhoicas/silogtran-api/pkg/config"
	"github.com/jhoicas/silogtran-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Str("records", cfg.Records.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var pool *pgxpool.Pool
	if cfg.NeedsPostgres() {
		pool, err = postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
	}

	kv, closeKV, err := newKVStore(ctx, cfg, pool)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento de sesiones")
	}
	defer closeKV()

	catalogs, err := loadCatalogs(cfg.App.CatalogFile)
	if err != nil {
		log.Fatal().Err(err).Msg("catálogos de búsqueda")
	}

	var manifestRepo repository.ManifestRepository
	var remesaRepo repository.RemesaRepository
	switch cfg.Records.Driver {
	case config.DriverPostgres:
		manifestRepo = postgres.NewManifestRepository(pool)
		remesaRepo = postgres.NewRemesaRepository(pool)
	default:
		m, r, err := memory.NewSampleRepositories()
		if err != nil {
			log.Fatal().Err(err).Msg("datos de ejemplo")
		}
		manifestRepo, remesaRepo = m, r
	}

	historialStore := historial.NewStore(kv, log, nil)
	sessionSvc, err := session.NewService(kv, historialStore, session.Config{
		Username:          cfg.Console.Username,
		Password:          cfg.Console.Password,
		PasswordHash:      cfg.Console.PasswordHash,
		RecoveryEmail:     cfg.Console.RecoveryEmail,
		LoginLatency:      cfg.Console.LoginLatency,
		TwoFactorLatency:  cfg.Console.TwoFactorLatency,
		CostCenterLatency: cfg.Console.CostCenterLatency,
		RecoveryLatency:   cfg.Console.RecoveryLatency,
		ResendCooldown:    cfg.Console.ResendCooldown,
		CostCenters:       costCenters(cfg.Console.CostCenters),
		JWT: session.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		},
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("servicio de sesión")
	}

	// Exportaciones: PDF (maroto) y XML canónico (etree + c14n)
	pdfExporter := infrapdf.NewMarotoRecordsExporter()
	xmlExporter := xmlexport.NewExporter()

	searchUC := usecase.NewSearchUseCase(catalogs.Engines(), catalogs.Navigation)
	historialUC := usecase.NewHistorialUseCase(historialStore, catalogs.Navigation)
	dashboardUC := usecase.NewDashboardUseCase(historialStore, log, nil)
	manifestUC := usecase.NewManifestUseCase(manifestRepo, pdfExporter, xmlExporter, log)
	remesaUC := usecase.NewRemesaUseCase(remesaRepo, pdfExporter, xmlExporter, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.App.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.App.SwaggerFile,
			Path:     "docs",
			Title:    "Silogtran Console API",
		}))
	} else {
		log.Warn().Str("file", cfg.App.SwaggerFile).Msg("swagger no encontrado, /docs deshabilitado")
	}
	app.Get("/swagger.json", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc()
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
		return c.SendString(doc)
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Session:     sessionSvc,
		SearchUC:    searchUC,
		HistorialUC: historialUC,
		DashboardUC: dashboardUC,
		ManifestUC:  manifestUC,
		RemesaUC:    remesaUC,
		JWTSecret:   cfg.JWT.Secret,
		Logger:      log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// newKVStore elige el almacenamiento de sesiones según STORAGE_DRIVER.
func newKVStore(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool) (repository.KVStore, func(), error) {
	noop := func() {}
	switch cfg.Storage.Driver {
	case config.DriverFile:
		fs, err := storage.NewFileStore(cfg.Storage.DataDir)
		return fs, noop, err
	case config.DriverRedis:
		rs, err := storage.NewRedisStore(ctx, storage.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.Storage.TTL,
		})
		if err != nil {
			return nil, noop, err
		}
		return rs, func() { _ = rs.Close() }, nil
	case config.DriverPostgres:
		return postgres.NewKVStore(pool), noop, nil
	default:
		return storage.NewMemoryStore(), noop, nil
	}
}

func loadCatalogs(path string) (*catalog.Set, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.LoadFile(path)
}

func costCenters(in []config.CostCenterOption) []entity.CostCenter {
	out := make([]entity.CostCenter, len(in))
	for i, cc := range in {
		out[i] = entity.CostCenter{Code: cc.Code, Name: cc.Name}
	}
	return out
}
