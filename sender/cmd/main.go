package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"faithhub.app/configs"
	"faithhub.app/configs/configslog"
	"faithhub.app/pkg/rabbit"
	"faithhub.app/sender"

	"go.uber.org/zap"
)

func main() {
	configs.LoadEnv()
	configslog.InitLogger()
	defer configslog.SyncLogger()

	host := os.Getenv("RABBITMQ_HOST")
	if host == "" {
		configslog.SLog.Fatal("RABBITMQ_HOST is required for the notification sender")
	}
	port, _ := strconv.Atoi(os.Getenv("RABBITMQ_PORT"))
	if port == 0 {
		port = 5672
	}
	provider := rabbit.New(rabbit.Config{
		Host:     host,
		Port:     port,
		User:     os.Getenv("RABBITMQ_USER"),
		Password: os.Getenv("RABBITMQ_PASSWORD"),
		Queue:    os.Getenv("RABBITMQ_QUEUE"),
	})
	if err := provider.Connect(); err != nil {
		configslog.Log.Fatal("could not connect to rabbitmq", zap.Error(err))
	}
	defer provider.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	configslog.SLog.Info("notification sender started")
	if err := sender.New(provider).Run(ctx); err != nil {
		configslog.Log.Error("sender stopped", zap.Error(err))
	}
}
