package main

import (
	"flag"

	"faithhub.app/configs"
	"faithhub.app/configs/configsdatabase"
	"faithhub.app/configs/configslog"
	"faithhub.app/database"
)

func main() {
	configs.LoadEnv()
	configslog.InitLogger()
	defer configslog.SyncLogger()

	migrateFlag := flag.Bool("migrate", false, "run the database migrations")
	seedFlag := flag.Bool("seed", false, "run the database seeders")
	flag.Parse()

	configsdatabase.InitDB()
	defer configsdatabase.CloseDB()

	database.Initialize(configsdatabase.GetDB(), *migrateFlag, *seedFlag)
}
