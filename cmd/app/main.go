package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"qrlink-go/internal/config"
	"qrlink-go/internal/handler"
	"qrlink-go/internal/i18n"
	"qrlink-go/internal/middleware"
	"qrlink-go/internal/repository"
	"qrlink-go/internal/service"
	"qrlink-go/internal/shortcode"
	"qrlink-go/pkg/logging"
)

func startServer(r *gin.Engine, addr string) {
	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		logging.Logger.Info("Server is running on " + addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logging.Logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logging.Logger.Info("Server exiting")
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to read config: %v", err)
	}

	logging.InitLogger(logging.Options{
		Level:      cfg.Log.Level,
		Path:       cfg.Log.Path,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	})
	logging.Logger.Info("Application started")

	db, err := repository.InitDB(cfg.DB.DSN, logging.Logger, logging.AtomicLevel)
	if err != nil {
		logging.Logger.Fatal("Failed to connect database", zap.Error(err))
	}

	bundle, err := i18n.InitI18n([]string{
		"./i18n/en.toml",
		"./i18n/tr.toml",
	}, "en")
	if err != nil {
		logging.Logger.Fatal("Failed to load i18n messages", zap.Error(err))
	}

	gen := shortcode.NewGenerator(shortcode.DefaultLength)
	qrService := service.NewQRCodeService(db, gen)
	redirectService := service.NewRedirectService(db)
	qrHandler := handler.NewQRCodeHandler(qrService)
	redirectHandler := handler.NewRedirectHandler(redirectService)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.GlobalErrorMiddleware())
	r.Use(middleware.ZapGinLogger(logging.Logger))
	r.Use(middleware.CorsMiddleware())
	r.Use(middleware.I18nMiddleware(bundle))

	q := r.Group("/q")
	{
		q.GET("/:shortCode", redirectHandler.Redirect)
		q.GET("/:shortCode/png", redirectHandler.RenderPNG)
	}

	admin := r.Group("/admin", middleware.AdminKeyMiddleware(cfg.Admin.APIKey))
	{
		admin.POST("/qrcodes", qrHandler.Create)
		admin.GET("/qrcodes", qrHandler.List)
		admin.GET("/qrcodes/:id", qrHandler.Get)
		admin.PUT("/qrcodes/:id", qrHandler.Update)
		admin.POST("/qrcodes/:id/rotate-code", qrHandler.Rotate)
		admin.DELETE("/qrcodes/:id", qrHandler.Delete)
	}

	startServer(r, cfg.Server.Addr)
}
