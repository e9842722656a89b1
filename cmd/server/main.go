package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/EmilioNacato/DashboardProcesador/internal/client"
	"github.com/EmilioNacato/DashboardProcesador/internal/config"
	"github.com/EmilioNacato/DashboardProcesador/internal/database"
	"github.com/EmilioNacato/DashboardProcesador/internal/handler"
	"github.com/EmilioNacato/DashboardProcesador/internal/middleware"
	"github.com/EmilioNacato/DashboardProcesador/internal/repository"
	"github.com/EmilioNacato/DashboardProcesador/internal/service"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Caller().Logger()

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	if cfg.AutoMigrate {
		if err := database.RunMigrations(cfg.DatabaseURL()); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
	}

	processor := client.NewProcessor(cfg.TransactionBase, cfg.HistoryBase, cfg.ClientTimeout)

	router := gin.New()
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())
	router.Use(gin.Recovery())

	healthHandler := handler.NewHealthHandler(pool, processor)
	router.GET("/health", healthHandler.Health)

	setupAPIRoutes(router, processor, pool)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}

func setupAPIRoutes(router *gin.Engine, processor *client.Processor, pool *pgxpool.Pool) {
	txnService := service.NewTransactionService(processor)
	filterRepo := repository.NewFilterRepository(pool)

	txnHandler := handler.NewTransactionHandler(txnService)
	statsHandler := handler.NewStatsHandler(txnService)
	filterHandler := handler.NewFilterHandler(filterRepo)

	api := router.Group("/api/v1")
	{
		api.GET("/transactions", txnHandler.List)
		api.GET("/transactions/:code", txnHandler.GetByCode)
		api.GET("/transactions/:code/history", txnHandler.History)
		api.GET("/fraud", txnHandler.Fraudulent)
		api.GET("/stats", statsHandler.GetStats)
		api.GET("/chart", statsHandler.GetChart)
		api.GET("/filters/:client", filterHandler.Get)
		api.PUT("/filters/:client", filterHandler.Save)
	}
}
