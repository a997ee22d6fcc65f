package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/config"
	httpctrl "storefront/internal/controllers/http"
	"storefront/internal/infra"
	"storefront/internal/infra/database"
	"storefront/internal/infra/kafka"
	"storefront/internal/infra/rabbitmq"
	"storefront/internal/repository/gormrepo"
	"storefront/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var autoMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&autoMigrate, "migrate", false, "migrate the schema before serving")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	if autoMigrate {
		if err := database.Migrate(db); err != nil {
			return fmt.Errorf("failed to migrate: %w", err)
		}
	}

	publisher, closePublisher, err := newPublisher(cfg.Events)
	if err != nil {
		return fmt.Errorf("failed to init publisher: %w", err)
	}
	defer closePublisher()

	rdb := newRedisClient(cmd.Context(), cfg.Redis)
	if rdb != nil {
		defer rdb.Close()
	}

	games := gormrepo.NewVideoGameRepository(db)
	consoles := gormrepo.NewConsoleRepository(db)
	accessories := gormrepo.NewAccessoryRepository(db)
	customerRepo := gormrepo.NewCustomerRepository(db)

	catalog := services.NewCatalogService(games, consoles, accessories)
	customers := services.NewCustomerService(customerRepo, gormrepo.NewSavedDetailsRepository(db))
	orders := services.NewOrderService(gormrepo.NewOrderRepository(db), customerRepo, catalog.Resolver, publisher)

	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	r.Use(gin.Recovery())
	httpctrl.NewHandler(orders, customers, catalog, rdb, cfg.Redis.CacheTTL).RegisterRoutes(r)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("Starting storefront on port %d", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server run: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Println("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// newPublisher picks the order event sink named by events.broker.
func newPublisher(cfg config.EventsConfig) (infra.Publisher, func(), error) {
	switch cfg.Broker {
	case "", "none":
		return infra.NoopPublisher{}, func() {}, nil
	case "rabbitmq":
		p, err := rabbitmq.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			return nil, nil, err
		}
		return p, p.Close, nil
	case "kafka":
		p, err := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			return nil, nil, err
		}
		return p, func() {
			if err := p.Close(); err != nil {
				log.Printf("kafka close: %v", err)
			}
		}, nil
	default:
		return nil, nil, fmt.Errorf("unknown events broker %q", cfg.Broker)
	}
}

// newRedisClient returns nil when no address is configured. An unreachable
// server is logged and kept; the cache falls back to the database.
func newRedisClient(ctx context.Context, cfg config.RedisConfig) *redis.Client {
	if cfg.Address == "" {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     50,
		MinIdleConns: 5,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Printf("redis ping %s: %v", cfg.Address, err)
	}
	return rdb
}
