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

	appanalytics "github.com/jhoicas/wegesa-api/internal/application/analytics"
	"github.com/jhoicas/wegesa-api/internal/application/auth"
	"github.com/jhoicas/wegesa-api/internal/application/export"
	"github.com/jhoicas/wegesa-api/internal/application/ledger"
	"github.com/jhoicas/wegesa-api/internal/application/seed"
	"github.com/jhoicas/wegesa-api/internal/application/usecase"
	rules "github.com/jhoicas/wegesa-api/internal/domain/ledger"
	"github.com/jhoicas/wegesa-api/internal/infrastructure/importer"
	"github.com/jhoicas/wegesa-api/internal/infrastructure/kafka"
	infrapdf "github.com/jhoicas/wegesa-api/internal/infrastructure/pdf"
	"github.com/jhoicas/wegesa-api/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/wegesa-api/internal/interfaces/http"
	"github.com/jhoicas/wegesa-api/pkg/config"
	"github.com/jhoicas/wegesa-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

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
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento")
	}
	defer st.close()

	accounting, err := rules.ParseAccounting(cfg.Ledger.ReturnAccounting)
	if err != nil {
		log.Fatal().Err(err).Msg("LEDGER_RETURN_ACCOUNTING")
	}

	// Eventos del libro: Kafka si está habilitado, si no al log.
	var publisher ledger.EventPublisher = kafka.NewLogPublisher(log)
	if cfg.Kafka.Enabled {
		p, err := kafka.NewPublisher(cfg.Kafka, log)
		if err != nil {
			log.Fatal().Err(err).Strs("brokers", cfg.Kafka.Brokers).Msg("productor Kafka")
		}
		defer p.Close()
		publisher = p
	}

	ledgerUC := ledger.NewUseCase(st.tx, st.items, st.movements, st.returns, st.users,
		ledger.WithAccounting(accounting),
		ledger.WithPublisher(publisher),
		ledger.WithLogger(log),
	)

	seeder := seed.NewSeeder(st.users, st.items, st.employees, ledgerUC, log.Component("seed"))
	if cfg.Seed.Demo {
		if _, err := seeder.Demo(ctx, cfg.Seed.Password); err != nil {
			log.Fatal().Err(err).Msg("datos de demostración")
		}
	}
	if cfg.Seed.ItemsCSV != "" {
		rows, err := importer.ReadItemsFile(cfg.Seed.ItemsCSV, cfg.Seed.ItemsCharset)
		if err != nil {
			log.Fatal().Err(err).Str("file", cfg.Seed.ItemsCSV).Msg("leer CSV de artículos")
		}
		if _, err := seeder.Items(ctx, rows); err != nil {
			log.Fatal().Err(err).Msg("importar artículos")
		}
	}

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Warn().Err(err).Str("tz", cfg.App.Timezone).Msg("zona horaria inválida, se usa UTC")
		loc = time.UTC
	}

	exportUC := export.NewUseCase(export.Repos{
		Items:        st.items,
		Movements:    st.movements,
		Returns:      st.returns,
		Users:        st.users,
		Invoices:     st.invoices,
		Transactions: st.transactions,
		Bookings:     st.bookings,
		Employees:    st.employees,
	}, ledgerUC, xlsx.NewWriter(), infrapdf.NewMarotoPDFGenerator())

	authUC := auth.NewAuthUseCase(st.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Wegesa API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":            "ok",
			"service":           cfg.App.Name,
			"store":             cfg.Store.Driver,
			"return_accounting": ledgerUC.Accounting(),
		})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		LedgerUC:      ledgerUC,
		UserUC:        usecase.NewUserUseCase(st.users),
		EmployeeUC:    usecase.NewEmployeeUseCase(st.employees),
		InvoiceUC:     usecase.NewInvoiceUseCase(st.invoices),
		TransactionUC: usecase.NewTransactionUseCase(st.transactions),
		BookingUC:     usecase.NewBookingUseCase(st.bookings),
		DashboardUC:   appanalytics.NewDashboardUseCase(st.items, st.movements, loc),
		SummaryUC:     appanalytics.NewSummaryUseCase(st.invoices, st.transactions, st.bookings, st.employees),
		ExportUC:      exportUC,
		JWTSecret:     cfg.JWT.Secret,
		Log:           log,
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
