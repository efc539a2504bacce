package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/YelzhanWeb/storefront/internal/adapter/logger"
	"github.com/YelzhanWeb/storefront/internal/adapter/mongodb"
	"github.com/YelzhanWeb/storefront/internal/adapter/postgres"
	"github.com/YelzhanWeb/storefront/internal/adapter/rabbitmq"
	"github.com/YelzhanWeb/storefront/internal/adapter/remotestore"
	"github.com/YelzhanWeb/storefront/internal/adapter/repository"
	"github.com/YelzhanWeb/storefront/internal/app/cart"
	"github.com/YelzhanWeb/storefront/internal/app/menu"
	"github.com/YelzhanWeb/storefront/internal/app/order"
	"github.com/YelzhanWeb/storefront/internal/app/store"
	"github.com/YelzhanWeb/storefront/internal/app/storefront"
	"github.com/YelzhanWeb/storefront/internal/app/ui"
	"github.com/YelzhanWeb/storefront/internal/config"
	"github.com/YelzhanWeb/storefront/internal/interfaces"
	"github.com/YelzhanWeb/storefront/internal/state"

	amqpAdapter "github.com/YelzhanWeb/storefront/internal/adapter/amqp"
	httpAdapter "github.com/YelzhanWeb/storefront/internal/adapter/http"
)

func main() {
	mode := flag.String("mode", "storefront", "Service mode: storefront, notification-subscriber, migrate, emulator")
	configPath := flag.String("config", "config.yaml", "Path to the YAML config")
	port := flag.Int("port", 0, "HTTP port (overrides config)")
	prefetch := flag.Int("prefetch", 10, "RabbitMQ prefetch count")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	lgr := logger.New(*mode, cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch *mode {
	case "storefront":
		err = runStorefront(ctx, cfg, lgr)

	case "notification-subscriber":
		err = runNotificationSubscriber(ctx, cfg, lgr, *prefetch)

	case "migrate":
		err = postgres.Migrate(cfg.Database.MigrationURL())
		if err == nil {
			lgr.Info("migrations_applied", "Database schema is up to date", "startup", map[string]interface{}{
				"host": cfg.Database.Host,
				"db":   cfg.Database.Database,
			})
		}

	case "emulator":
		err = runEmulator(ctx, *port, lgr)

	default:
		log.Fatalf("Invalid mode: %s", *mode)
	}

	if err != nil {
		lgr.Error("service_failed", "Service stopped with error", "runtime", nil, err)
		os.Exit(1)
	}
}

// openRemoteStore connects the configured backend. The returned func releases it.
func openRemoteStore(ctx context.Context, cfg *config.Config, lgr logger.Logger) (interfaces.RemoteStore, func(), error) {
	switch cfg.Store.Backend {
	case config.BackendFirebase:
		remote, err := remotestore.NewFirebaseStore(ctx, remotestore.FirebaseOptions{
			DatabaseURL:     cfg.Firebase.DatabaseURL,
			ProjectID:       cfg.Firebase.ProjectID,
			CredentialsFile: cfg.Firebase.CredentialsFile,
			Timeout:         cfg.Store.Timeout(),
		})
		if err != nil {
			return nil, nil, err
		}
		lgr.Info("store_selected", "Using Firebase remote store", "startup", map[string]interface{}{
			"url":      cfg.Firebase.DatabaseURL,
			"emulator": os.Getenv("FIREBASE_DATABASE_EMULATOR_HOST"),
		})
		return remote, func() {}, nil

	case config.BackendPostgres:
		if err := postgres.Migrate(cfg.Database.MigrationURL()); err != nil {
			return nil, nil, err
		}
		db, err := postgres.Connect(ctx, cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		lgr.Info("db_connected", "Connected to PostgreSQL database", "startup", map[string]interface{}{
			"host": cfg.Database.Host,
			"db":   cfg.Database.Database,
		})
		return postgres.NewDocumentStore(db), db.Close, nil

	case config.BackendMongo:
		client, err := mongodb.Connect(ctx, cfg.Mongo)
		if err != nil {
			return nil, nil, err
		}
		lgr.Info("mongo_connected", "Connected to MongoDB", "startup", map[string]interface{}{
			"db": cfg.Mongo.Database,
		})
		closeFn := func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			client.Disconnect(closeCtx)
		}
		return mongodb.NewDocumentStore(client.Database(cfg.Mongo.Database)), closeFn, nil

	case config.BackendMemory:
		lgr.Warn("store_selected", "Using in-memory remote store, data is lost on exit", "startup", nil)
		return remotestore.NewMemoryStore(), func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
}

func openPublisher(cfg *config.Config, lgr logger.Logger) (interfaces.MessagePublisher, func(), error) {
	if !cfg.RabbitMQ.Enabled {
		return rabbitmq.NewNopPublisher(), func() {}, nil
	}

	mqConn, err := rabbitmq.Connect(cfg.RabbitMQ)
	if err != nil {
		return nil, nil, err
	}
	lgr.Info("rabbitmq_connected", "Connected to RabbitMQ", "startup", map[string]interface{}{
		"host": cfg.RabbitMQ.Host,
	})
	return rabbitmq.NewPublisher(mqConn), func() { mqConn.Close() }, nil
}

func runStorefront(ctx context.Context, cfg *config.Config, lgr logger.Logger) error {
	remote, closeRemote, err := openRemoteStore(ctx, cfg, lgr)
	if err != nil {
		return err
	}
	defer closeRemote()

	publisher, closePublisher, err := openPublisher(cfg, lgr)
	if err != nil {
		return err
	}
	defer closePublisher()

	st := store.New(state.Initial(), lgr)
	defer st.Close()

	// Initialize services
	menuService := menu.NewService(st, repository.NewMenuRepository(remote), lgr)
	orderService := order.NewService(st, repository.NewOrderRepository(remote), publisher, lgr)
	uiService := ui.NewService(st, publisher, lgr)
	cartService := cart.NewService(st, lgr)
	storefrontService := storefront.NewService(st, orderService, uiService, lgr)

	// меню грузим один раз при старте, ошибка остаётся в состоянии
	if _, err := menuService.FetchMenu(ctx); err != nil {
		lgr.Warn("menu_fetch_failed", "Initial menu fetch failed, serving defaults", "startup", map[string]interface{}{
			"error": err.Error(),
		})
	}

	go func() {
		if err := uiService.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			lgr.Error("notification_sweeper_failed", "Notification sweeper stopped", "runtime", nil, err)
		}
	}()

	handler := httpAdapter.NewRouter(httpAdapter.Handlers{
		State:  httpAdapter.NewStateHandler(st, lgr),
		Menu:   httpAdapter.NewMenuHandler(st, menuService, cfg.Server.ImageBaseURL, lgr),
		Cart:   httpAdapter.NewCartHandler(st, cartService, storefrontService, lgr),
		Orders: httpAdapter.NewOrderHandler(st, orderService, storefrontService, lgr),
		UI:     httpAdapter.NewUIHandler(st, uiService, uiService, storefrontService, lgr),
	}, lgr)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	lgr.Info("service_started", fmt.Sprintf("Storefront started on port %d", cfg.Server.Port), "startup", map[string]interface{}{
		"port":     cfg.Server.Port,
		"backend":  cfg.Store.Backend,
		"rabbitmq": cfg.RabbitMQ.Enabled,
	})

	// Graceful shutdown
	go func() {
		<-ctx.Done()

		lgr.Info("shutdown_initiated", "Shutting down Storefront", "shutdown", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			lgr.Error("shutdown_error", "Error during shutdown", "shutdown", nil, err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to serve http: %w", err)
	}
	return nil
}

func runNotificationSubscriber(ctx context.Context, cfg *config.Config, lgr logger.Logger, prefetch int) error {
	mqConn, err := rabbitmq.Connect(cfg.RabbitMQ)
	if err != nil {
		return err
	}
	defer mqConn.Close()

	consumer := rabbitmq.NewConsumer(mqConn, prefetch, lgr)
	orderEvents := amqpAdapter.NewOrderEventHandler(lgr)
	notifications := amqpAdapter.NewNotificationHandler(lgr)

	lgr.Info("service_started", "Notification Subscriber started", "startup", map[string]interface{}{
		"host":     cfg.RabbitMQ.Host,
		"prefetch": prefetch,
	})

	errs := make(chan error, 2)
	go func() {
		errs <- consumer.ConsumeOrderEvents(ctx, orderEvents.HandleOrderEvent)
	}()
	go func() {
		errs <- consumer.ConsumeNotifications(ctx, notifications.HandleNotification)
	}()

	var firstErr error
	for i := 0; i < 2; i++ {
		if err := <-errs; err != nil && !errors.Is(err, context.Canceled) && firstErr == nil {
			firstErr = err
		}
	}

	lgr.Info("shutdown_initiated", "Shutting down Notification Subscriber", "shutdown", nil)
	return firstErr
}

// runEmulator serves an in-memory Realtime Database for local runs of the firebase backend
func runEmulator(ctx context.Context, port int, lgr logger.Logger) error {
	if port == 0 {
		port = 9000
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: httpAdapter.LoggingMiddleware(lgr)(remotestore.EmulatorHandler(remotestore.NewMemoryStore(), "")),
	}

	lgr.Info("service_started", fmt.Sprintf("Database emulator started on port %d", port), "startup", map[string]interface{}{
		"emulator_host": fmt.Sprintf("localhost:%d", port),
	})

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to serve emulator: %w", err)
	}
	return nil
}
