package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"yt-embed/domain/repository"
	"yt-embed/infrastructure/cache"
	"yt-embed/infrastructure/configuration"
	"yt-embed/infrastructure/embedder"
	"yt-embed/infrastructure/logger"
	httpHandler "yt-embed/interfaces/http"
	"yt-embed/server"
	"yt-embed/usecase"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

func recoverPanic() {
	if err := recover(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Application panic recovered")
	}
}

func main() {
	defer recoverPanic()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.GetLogger().WithField("files", configuration.LoadedEnvFiles).Info("Loaded env files")

	if os.Getenv("ENV") == "prod" || os.Getenv("ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	app := configuration.C.App

	embedUC := usecase.NewEmbedUsecase(embedder.NewLiteYouTube())
	redisClient := initiateCache(ctx)
	if redisClient != nil {
		defer redisClient.Close()
		var embedCache repository.IEmbedCache = cache.NewEmbedCache(redisClient, configuration.C.Embed.KeyPrefix)
		embedUC = embedUC.WithCache(embedCache, configuration.C.Embed.TTL())
	}
	shortcodeUC := usecase.NewShortcodeUsecase(embedUC)

	router := server.InitiateRouter(
		httpHandler.NewEmbedHandler(embedUC, shortcodeUC),
		httpHandler.NewHealthHandler(redisClient != nil),
		configuration.C.Cors.AllowOrigins,
	)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", app.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.GetLogger().WithFields(map[string]interface{}{"port": app.Port, "tls": app.TLSEnabled}).Info("Starting application")
		var err error
		if app.TLSEnabled && app.TLSCertFile != "" && app.TLSKeyFile != "" {
			err = httpServer.ListenAndServeTLS(app.TLSCertFile, app.TLSKeyFile)
		} else {
			if app.TLSEnabled {
				logger.GetLogger().Error("TLS enabled but cert or key path empty; falling back to HTTP")
			}
			err = httpServer.ListenAndServe()
		}
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		logger.GetLogger().Info("Application shutdown requested")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Server returned an error")
		os.Exit(2)
	}
}

// initiateCache returns nil when the render cache is disabled or unreachable.
func initiateCache(ctx context.Context) *redis.Client {
	rc := configuration.C.RedisClient
	if !rc.Enabled {
		logger.GetLogger().Info("Redis cache disabled; rendering every request")
		return nil
	}
	client, err := cache.NewCache(ctx, rc.Addr(), rc.Username, rc.Password, rc.DB)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Redis not available - continuing without render cache")
		_ = client.Close()
		return nil
	}
	return client
}
