package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/intania/shop-backend/internal/config"
	"github.com/intania/shop-backend/internal/db"
	"github.com/intania/shop-backend/internal/es"
	"github.com/intania/shop-backend/internal/handlers"
	"github.com/intania/shop-backend/internal/logging"
	"github.com/intania/shop-backend/internal/mykafka"
	authsvc "github.com/intania/shop-backend/internal/service/auth"
	"github.com/intania/shop-backend/internal/service/cart"
	"github.com/intania/shop-backend/internal/service/catalog"
	"github.com/intania/shop-backend/internal/service/favorite"
	"github.com/intania/shop-backend/internal/service/search"
	"github.com/intania/shop-backend/internal/service/token"
	"github.com/intania/shop-backend/internal/store"
	httpserver "github.com/intania/shop-backend/internal/transport/http"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)

	ctx := context.Background()

	gdb, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database error: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	tokens, err := token.New(cfg.JWTSecret, cfg.JWTKeyID)
	if err != nil {
		log.Fatalf("token service error: %v", err)
	}

	// events stays a nil interface when Kafka is not configured; assigning a
	// nil *mykafka.Producer into it would defeat the handlers' nil guard.
	var producer *mykafka.Producer
	var events handlers.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		producer = mykafka.NewProducer(cfg.KafkaBrokers)
		events = producer
	}

	users := store.NewGormUserStore(gdb)
	products := store.NewGormProductStore(gdb)
	carts := store.NewGormCartStore(gdb)
	favorites := store.NewGormFavoriteStore(gdb)

	deps := &httpserver.Deps{
		Tokens:          tokens,
		AuthHandler:     &handlers.AuthHandler{Accounts: authsvc.New(users, tokens), Producer: events},
		ProductHandler:  &handlers.ProductHandler{Catalog: catalog.New(products), Producer: events},
		CartHandler:     &handlers.CartHandler{Carts: cart.New(carts), Producer: events},
		FavoriteHandler: &handlers.FavoriteHandler{Favorites: favorite.New(favorites, products), Producer: events},
	}

	if cfg.ESURL != "" {
		esClient, err := es.NewClient(cfg)
		if err != nil {
			log.Fatalf("elasticsearch error: %v", err)
		}
		deps.SearchHandler = &handlers.SearchHandler{Search: search.New(esClient, "products")}
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			l := logger.With("request_id", c.Response().Header().Get(echo.HeaderXRequestID))
			c.SetRequest(req.WithContext(logging.IntoContext(req.Context(), l)))
			return next(c)
		}
	})

	httpserver.Register(e, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := gdb.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	}

	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Printf("kafka close error: %v", err)
		}
	}

	log.Println("shutdown complete")
}
