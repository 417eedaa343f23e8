package main

import (
	"os"
	"os/signal"
	"syscall"

	"faithhub.app/configs"
	"faithhub.app/configs/configsdatabase"
	"faithhub.app/configs/configslog"
	"faithhub.app/scheduler"
	"faithhub.app/services"

	"go.uber.org/zap"
)

func main() {
	configs.LoadEnv()
	configslog.InitLogger()
	defer configslog.SyncLogger()

	configsdatabase.InitDB()
	defer configsdatabase.CloseDB()

	sched := scheduler.NewReminderScheduler(services.NewNotificationServiceFromEnv())
	if err := sched.Start(); err != nil {
		configslog.Log.Fatal("could not start reminder scheduler", zap.Error(err))
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	sched.Stop()
}
