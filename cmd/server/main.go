package main // Entry point package

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/MrReptiloid/HotelApp/internal/config"
	"github.com/MrReptiloid/HotelApp/internal/database"
	"github.com/MrReptiloid/HotelApp/internal/handler"
	"github.com/MrReptiloid/HotelApp/internal/middleware"
	"github.com/MrReptiloid/HotelApp/internal/queue"
	"github.com/MrReptiloid/HotelApp/internal/repository"
	"github.com/MrReptiloid/HotelApp/internal/router"
	"github.com/MrReptiloid/HotelApp/internal/service"
)

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	bootCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	if err := database.EnsureSchema(bootCtx, db); err != nil {
		log.Fatalf("schema: %v", err)
	}

	users := repository.NewUserRepo(db)
	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		created, err := users.EnsureAdmin(bootCtx, repository.NormalizeEmail(cfg.AdminEmail), cfg.AdminPassword, cfg.BcryptCost)
		if err != nil {
			log.Fatalf("seed administrator: %v", err)
		}
		if created {
			log.Printf("seeded administrator %s", cfg.AdminEmail)
		}
	}
	cancel()

	// Redis is optional; without it the API runs without rate limiting
	// and caching.
	var rdb *redis.Client
	if c, err := config.NewRedisClient(config.LoadRedisConfig()); err != nil {
		log.Printf("redis disabled: %v", err)
	} else {
		rdb = c
		defer rdb.Close()
	}

	var events service.EventPublisher
	if cfg.Events.Enabled {
		events = service.NewAMQPPublisher(cfg.Events.URL)
		go func() {
			if err := queue.StartBookingConsumer(ctx, cfg.Events.URL, cfg.Events.LogPath); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("booking-consumer stopped: %v", err)
			}
		}()
	}
	bookings := service.NewBookingService(repository.NewBookingRepo(db), events, nil)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			if v.Error != nil {
				log.Printf("%s %s %d %s err=%v", v.Method, v.URI, v.Status, v.Latency, v.Error)
				return nil
			}
			log.Printf("%s %s %d %s", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))

	cacheCfg := config.LoadCacheConfig()
	router.RegisterRoutes(e)
	api := router.API(e, middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	router.RegisterAccount(api, handler.NewAuthHandler(cfg, users, repository.NewTokenRepo(db)), cfg.JWTSecret)
	router.RegisterCatalog(api,
		handler.NewHotelHandler(repository.NewHotelRepo(db)),
		handler.NewRoomHandler(repository.NewRoomRepo(db)),
		cfg.JWTSecret,
		middleware.NewRedisCache(cacheCfg, rdb),
		middleware.PurgeCacheOnWrite(cacheCfg, rdb),
	)
	router.RegisterBookings(api, handler.NewBookingHandler(bookings), cfg.JWTSecret)
	router.RegisterAdmin(api, handler.NewAdminHandler(bookings, repository.NewStatsRepo(db)), cfg.JWTSecret)

	addr := ":" + cfg.Port
	go func() {
		log.Printf("listening on %s (env=%s)", addr, cfg.Env)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Printf("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
