package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/LabOps-api/internal/application/auth"
	"github.com/jhoicas/LabOps-api/internal/application/importing"
	"github.com/jhoicas/LabOps-api/internal/application/reporting"
	"github.com/jhoicas/LabOps-api/internal/application/usecase"
	"github.com/jhoicas/LabOps-api/internal/application/workflow"
	"github.com/jhoicas/LabOps-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/LabOps-api/internal/infrastructure/pdf"
	"github.com/jhoicas/LabOps-api/internal/infrastructure/postgres"
	"github.com/jhoicas/LabOps-api/internal/infrastructure/storage"
	"github.com/jhoicas/LabOps-api/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/LabOps-api/internal/interfaces/http"
	"github.com/jhoicas/LabOps-api/pkg/barcode"
	"github.com/jhoicas/LabOps-api/pkg/config"
	"github.com/jhoicas/LabOps-api/pkg/logger"
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
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, log.Named("postgres").Zerolog())
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool, log.Named("migrate").Zerolog()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	archiver, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Storage.Driver).Msg("almacenamiento de importaciones")
	}

	// Las métricas se registran siempre; /metrics solo se expone si está habilitado.
	reg := metrics.New(true)

	userRepo := postgres.NewUserRepository(pool)
	orgRepo := postgres.NewOrganizationRepository(pool)
	locRepo := postgres.NewLocationRepository(pool)
	contactRepo := postgres.NewContactRepository(pool)
	methodRepo := postgres.NewTestMethodRepository(pool)
	panelRepo := postgres.NewTestPanelRepository(pool)
	protocolRepo := postgres.NewProtocolRepository(pool)
	stepRepo := postgres.NewProtocolStepRepository(pool)
	batchRepo := postgres.NewBatchRepository(pool)
	execRepo := postgres.NewWorkflowExecutionRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	codec := barcode.New(cfg.Barcode.MaxLength)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	orgUC := usecase.NewOrganizationUseCase(orgRepo)
	locUC := usecase.NewLocationUseCase(locRepo, orgRepo)
	contactUC := usecase.NewContactUseCase(contactRepo, orgRepo, locRepo)
	methodUC := usecase.NewTestMethodUseCase(methodRepo)
	panelUC := usecase.NewTestPanelUseCase(panelRepo, methodRepo)
	protocolUC := usecase.NewProtocolUseCase(protocolRepo, stepRepo, methodRepo, batchRepo, codec)
	batchUC := usecase.NewBatchUseCase(batchRepo, protocolRepo, stepRepo, execRepo, orderRepo, codec)
	orderUC := usecase.NewOrderUseCase(orderRepo, orgRepo, locRepo, contactRepo, methodRepo)

	transitionUC := workflow.NewTransitionUseCase(txRunner, stepRepo, reg, log.Named("workflow").Zerolog())
	scanUC := workflow.NewScanUseCase(codec, batchRepo, stepRepo, transitionUC, batchUC, reg)

	importer := importing.NewImporter(importing.Deps{
		TxRunner:   txRunner,
		OrgRepo:    orgRepo,
		LocRepo:    locRepo,
		MethodRepo: methodRepo,
		OrderRepo:  orderRepo,
		Archiver:   archiver,
		Recorder:   reg,
		Log:        log.Named("import").Zerolog(),
	})
	reportUC := reporting.NewReportUseCase(batchUC, orderUC, infrapdf.NewMarotoBarcodeSheet(cfg.App.Name), xlsx.NewExporter())

	bodyLimit := cfg.HTTP.BodyLimitMB
	if bodyLimit <= 0 {
		bodyLimit = 10
	}
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    bodyLimit * 1024 * 1024,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log.Named("http").Zerolog()))
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.HTTP.CORSOriginList(), ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(compress.New())
	app.Use(httpRouter.Metrics(reg))

	// Swagger UI: http://localhost:<port>/docs
	if cfg.Docs.Enabled {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.Docs.FilePath,
			Path:     "docs",
			Title:    "LabOps API",
		}))
	}

	if cfg.Metrics.Enabled {
		app.Get(cfg.Metrics.Path, adaptor.HTTPHandler(reg.Handler()))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		OrganizationUC: orgUC,
		LocationUC:     locUC,
		ContactUC:      contactUC,
		TestMethodUC:   methodUC,
		TestPanelUC:    panelUC,
		ProtocolUC:     protocolUC,
		BatchUC:        batchUC,
		OrderUC:        orderUC,
		TransitionUC:   transitionUC,
		ScanUC:         scanUC,
		Importer:       importer,
		Reports:        reportUC,
		JWTSecret:      cfg.JWT.Secret,
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
