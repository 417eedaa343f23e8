package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"faithhub.app/configs"
	"faithhub.app/configs/configsdatabase"
	"faithhub.app/configs/configslog"
	"faithhub.app/pkg/imagestore"
	"faithhub.app/routes"
	"faithhub.app/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func main() {
	configs.LoadEnv()
	configslog.InitLogger()
	defer configslog.SyncLogger()

	configsdatabase.InitDB()
	defer configsdatabase.CloseDB()

	app := fiber.New(fiber.Config{
		AppName:      "faithhub-calendar",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		BodyLimit:    configs.Calendar().MaxImageSizeKB * 1024 * 2,
	})

	routes.SetupRoutes(app, routes.Dependencies{
		Notifier: services.NewNotificationServiceFromEnv(),
		Store:    imagestore.NewDiskStore(configs.ImageStorageRoot()),
	})

	go func() {
		if err := app.Listen(configs.AppPort()); err != nil {
			configslog.Log.Fatal("server stopped", zap.Error(err))
		}
	}()
	configslog.SLog.Infof("listening on %s", configs.AppPort())

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	configslog.SLog.Info("shutting down...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		configslog.Log.Error("graceful shutdown failed", zap.Error(err))
	}
}
