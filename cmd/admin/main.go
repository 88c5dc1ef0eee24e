package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/Skotchmaster/orders_admin/internal/cache"
	"github.com/Skotchmaster/orders_admin/internal/gateway"
	"github.com/Skotchmaster/orders_admin/internal/handlers"
	"github.com/Skotchmaster/orders_admin/internal/mykafka"
	"github.com/Skotchmaster/orders_admin/internal/service"
	"github.com/Skotchmaster/orders_admin/internal/submissionlog"
	httpserver "github.com/Skotchmaster/orders_admin/internal/transport/http"
	"github.com/Skotchmaster/orders_admin/internal/uistate"
	"github.com/Skotchmaster/orders_admin/pkg/config"
	"github.com/Skotchmaster/orders_admin/pkg/db"
	"github.com/Skotchmaster/orders_admin/pkg/logging"
	"github.com/Skotchmaster/orders_admin/pkg/middleware/csrf"
	loggingmw "github.com/Skotchmaster/orders_admin/pkg/middleware/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	config.MustURL(cfg.APIURL, "API_URL")
	config.MustURL(cfg.GraphQLURL, "GRAPHQL_URL")

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logging.IntoContext(ctx, logger)

	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		log.Fatalf("TIME_ZONE: %v", err)
	}

	api := gateway.NewClient(cfg.APIURL, cfg.RequestTimeout)
	gql, err := gateway.NewGraphQLClient(cfg.GraphQLURL, cfg.RequestTimeout, cfg.CSRFToken)
	if err != nil {
		log.Fatal(err)
	}
	if err := gql.Prime(ctx); err != nil {
		logger.Warn("graphql_prime_error", "error", err)
	}

	var store cache.Store
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("redis: %v", err)
		}
		store = cache.NewRedisStore(rdb, cfg.ServiceName)
	}
	bindings := cache.New(api, cfg.CacheStaleTime, store)

	gdb, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	submissions := &submissionlog.GormRepo{DB: gdb}
	if err := submissions.Migrate(ctx); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	var events service.EventPublisher
	var prod *mykafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		prod, err = mykafka.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			log.Fatal(err)
		}
		events = prod
	}

	customerSvc := service.NewCustomerService(bindings.Customers, events, cfg.KafkaTopic)
	productSvc := service.NewProductService(bindings.Products, events, cfg.KafkaTopic)
	orderSvc := service.NewOrderService(bindings.Orders, bindings.OrderItems, service.OrderOptions{
		Recorder:    submissions,
		Events:      events,
		Topic:       cfg.KafkaTopic,
		Location:    loc,
		Concurrency: cfg.SubmitConcurrency,
	})

	sessions := uistate.NewRegistry(gql, uistate.Options{
		Delay:    cfg.SearchDebounce,
		Limit:    cfg.SearchLimit,
		Location: loc,
	})
	go sessions.Run(ctx, time.Minute, cfg.SessionIdleTTL)

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(
		middleware.Recover(),
		middleware.RequestID(),
		loggingmw.RequestLogger(logger, "/health/live", "/health/ready"),
		middleware.CORSWithConfig(middleware.CORSConfig{
			AllowCredentials: true,
			AllowHeaders:     []string{echo.HeaderContentType, "X-CSRFToken"},
		}),
	)

	httpserver.Register(e, &httpserver.Deps{
		CustomerHandler: &handlers.CustomerHTTP{Svc: customerSvc, Status: bindings.Customers.Status},
		ProductHandler:  &handlers.ProductHTTP{Svc: productSvc, Status: bindings.Products.Status},
		OrderHandler:    &handlers.OrderHTTP{Svc: orderSvc, Status: bindings.Orders.Status},
		SearchHandler:   &handlers.SearchHTTP{Lookup: gql, Limit: cfg.SearchLimit},
		UIHandler:       &handlers.UIHTTP{Orders: orderSvc, Lookup: gql},
		Sessions:        sessions,
		SessionTTL:      cfg.SessionIdleTTL,
		CSRF:            csrf.DefaultConfig(),
		Ready: func() error {
			rctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			sqlDB, err := gdb.DB()
			if err != nil {
				return err
			}
			if err := sqlDB.PingContext(rctx); err != nil {
				return fmt.Errorf("database: %w", err)
			}
			if rdb != nil {
				if err := rdb.Ping(rctx).Err(); err != nil {
					return fmt.Errorf("redis: %w", err)
				}
			}
			return nil
		},
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		logger.Info("http_server_start", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http_server_error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting_down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server_shutdown_error", "error", err)
	}
	if sqlDB, err := gdb.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db_close_error", "error", err)
		}
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			logger.Error("redis_close_error", "error", err)
		}
	}
	if prod != nil {
		if err := prod.Close(); err != nil {
			logger.Error("kafka_close_error", "error", err)
		}
	}

	logger.Info("shutdown_complete")
}
