package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/garage/internal/appointment"
	appointmentStore "github.com/MrJamesThe3rd/garage/internal/appointment/store"
	"github.com/MrJamesThe3rd/garage/internal/billing"
	billingStore "github.com/MrJamesThe3rd/garage/internal/billing/store"
	"github.com/MrJamesThe3rd/garage/internal/catalog"
	catalogStore "github.com/MrJamesThe3rd/garage/internal/catalog/store"
	"github.com/MrJamesThe3rd/garage/internal/client"
	clientStore "github.com/MrJamesThe3rd/garage/internal/client/store"
	"github.com/MrJamesThe3rd/garage/internal/config"
	"github.com/MrJamesThe3rd/garage/internal/database"
	"github.com/MrJamesThe3rd/garage/internal/event"
	garageHttp "github.com/MrJamesThe3rd/garage/internal/http"
	appointmentHandler "github.com/MrJamesThe3rd/garage/internal/http/appointment"
	billingHandler "github.com/MrJamesThe3rd/garage/internal/http/billing"
	catalogHandler "github.com/MrJamesThe3rd/garage/internal/http/catalog"
	clientHandler "github.com/MrJamesThe3rd/garage/internal/http/client"
	inventoryHandler "github.com/MrJamesThe3rd/garage/internal/http/inventory"
	mechanicHandler "github.com/MrJamesThe3rd/garage/internal/http/mechanic"
	reportHandler "github.com/MrJamesThe3rd/garage/internal/http/report"
	woHandler "github.com/MrJamesThe3rd/garage/internal/http/workorder"
	"github.com/MrJamesThe3rd/garage/internal/importer"
	"github.com/MrJamesThe3rd/garage/internal/inventory"
	inventoryStore "github.com/MrJamesThe3rd/garage/internal/inventory/store"
	"github.com/MrJamesThe3rd/garage/internal/mechanic"
	mechanicStore "github.com/MrJamesThe3rd/garage/internal/mechanic/store"
	"github.com/MrJamesThe3rd/garage/internal/metrics"
	"github.com/MrJamesThe3rd/garage/internal/report"
	"github.com/MrJamesThe3rd/garage/internal/report/cache"
	reportStore "github.com/MrJamesThe3rd/garage/internal/report/store"
	"github.com/MrJamesThe3rd/garage/internal/workorder"
	woStore "github.com/MrJamesThe3rd/garage/internal/workorder/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.DB.Migrate {
		if err := database.Migrate(cfg.ConnectionString()); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
	}

	db, err := database.New(cfg.ConnectionString(), cfg.Pool())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if cfg.DB.Seed {
		empty, err := database.IsEmpty(ctx, db)
		if err != nil {
			slog.Error("failed to inspect database", "error", err)
			os.Exit(1)
		}

		if empty {
			if err := database.Seed(ctx, db); err != nil {
				slog.Error("failed to seed database", "error", err)
				os.Exit(1)
			}

			slog.Info("database seeded")
		}
	}

	m := metrics.New()

	if cfg.Auth.JWTSecret == "" {
		slog.Warn("AUTH_JWT_SECRET is empty, the API accepts unauthenticated requests")
	}

	var publisher event.Publisher = event.Nop{}

	if cfg.AMQP.URL != "" {
		amqpPub, err := event.NewAMQP(cfg.AMQP.URL, cfg.AMQP.Queue)
		if err != nil {
			slog.Warn("event publishing disabled", "error", err)
		} else {
			publisher = amqpPub
		}
	}
	defer publisher.Close()

	reportOpts := []report.Option{report.WithMetrics(m)}

	if cfg.Redis.Addr != "" && cfg.Reports.CacheTTL > 0 {
		if rdb := cache.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB); rdb != nil {
			defer rdb.Close()

			reportOpts = append(reportOpts, report.WithCache(cache.NewRedis(rdb, cfg.App.Name), cfg.Reports.CacheTTL))
		} else {
			slog.Warn("report cache disabled: redis unreachable", "addr", cfg.Redis.Addr)
		}
	}

	reportService := report.NewService(reportStore.New(db), reportOpts...)

	var (
		clientService      = client.NewService(clientStore.New(db), client.WithInvalidator(reportService))
		mechanicService    = mechanic.NewService(mechanicStore.New(db), mechanic.WithInvalidator(reportService))
		catalogService     = catalog.NewService(catalogStore.New(db), catalog.WithInvalidator(reportService))
		inventoryService   = inventory.NewService(inventoryStore.New(db), inventory.WithInvalidator(reportService))
		workOrderService   = workorder.NewService(woStore.New(db), workorder.WithPublisher(publisher), workorder.WithMetrics(m), workorder.WithInvalidator(reportService))
		billingService     = billing.NewService(billingStore.New(db), cfg.Billing.DueDays, billing.WithMetrics(m), billing.WithInvalidator(reportService))
		appointmentService = appointment.NewService(appointmentStore.New(db))
		importService      = importer.NewService()
	)

	handlers := garageHttp.Handlers{
		Clients:      clientHandler.NewHandler(clientService),
		Mechanics:    mechanicHandler.NewHandler(mechanicService),
		Catalog:      catalogHandler.NewHandler(catalogService, importService),
		Inventory:    inventoryHandler.NewHandler(inventoryService, cfg.Reports.LowStockThreshold),
		WorkOrders:   woHandler.NewHandler(workOrderService, billingService),
		Invoices:     billingHandler.NewHandler(billingService),
		Appointments: appointmentHandler.NewHandler(appointmentService),
		Reports: reportHandler.NewHandler(reportService, reportHandler.Defaults{
			LowStockThreshold: cfg.Reports.LowStockThreshold,
			BilledThreshold:   cfg.Reports.BilledThreshold,
			TopClients:        cfg.Reports.TopClients,
		}),
	}

	srv := &http.Server{
		Addr: fmt.Sprintf(":%d", cfg.App.Port),
		Handler: garageHttp.New(handlers, m, garageHttp.Options{
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			JWTSecret:      cfg.Auth.JWTSecret,
			Issuer:         cfg.Auth.Issuer,
		}),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
	}

	go func() {
		slog.Info("starting server", "port", srv.Addr)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to shut down server", "error", err)
	}

	slog.Info("server stopped")
}
