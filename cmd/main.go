package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ardanlabs/conf"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"worksite/backend/foundation/web"
	"worksite/backend/internal/auth"
	"worksite/backend/internal/commands"
	"worksite/backend/internal/pkg/config"
	"worksite/backend/internal/pkg/repository/postgresql"
	"worksite/backend/internal/router"
)

func main() {
	if err := run(); err != nil {
		if !errors.Is(err, commands.ErrHelp) {
			log.Fatalln("main error:", err)
		}
	}
}

func run() error {
	var cfg struct {
		conf.Version
		ConfigPath string `conf:"default:config.yaml"`
		Port       string `conf:"default::8080"`
		Debug      bool   `conf:"default:false"`
	}
	cfg.Version.SVN = "1.0"
	cfg.Version.Desc = "worksite attendance backend"

	if err := conf.Parse(os.Args[1:], "WORKSITE", &cfg); err != nil {
		switch {
		case errors.Is(err, conf.ErrHelpWanted):
			usage, err := conf.Usage("WORKSITE", &cfg)
			if err != nil {
				return errors.Wrap(err, "generating config usage")
			}
			fmt.Println(usage)
			return commands.ErrHelp
		case errors.Is(err, conf.ErrVersionWanted):
			version, err := conf.VersionString("WORKSITE", &cfg)
			if err != nil {
				return errors.Wrap(err, "generating config version")
			}
			fmt.Println(version)
			return commands.ErrHelp
		}
		return errors.Wrap(err, "parsing config")
	}

	yamlConfig, err := config.NewConfig(cfg.ConfigPath)
	if err != nil {
		return errors.Wrap(err, "reading config file")
	}

	postgresDB := postgresql.NewDatabase(postgresql.Config{
		Username:   yamlConfig.DBUsername,
		Password:   yamlConfig.DBPassword,
		Host:       yamlConfig.DBHost,
		Port:       yamlConfig.DBPort,
		Name:       yamlConfig.DBName,
		DisableTLS: yamlConfig.DisableTLS,
		Debug:      cfg.Debug,
	})
	defer postgresDB.Close()

	commands.MigrateUP(postgresDB)

	redisDB := redis.NewClient(&redis.Options{
		Addr: yamlConfig.RedisHost + ":" + yamlConfig.RedisPort,
	})
	defer redisDB.Close()

	authenticator := auth.New(yamlConfig.JWTKey)

	app := web.NewApp()

	qrWindow := time.Duration(yamlConfig.QRExpiryMinutes) * time.Minute

	r := router.NewRouter(app, postgresDB, redisDB, cfg.Port, authenticator, yamlConfig.JWTKey, qrWindow)

	return r.Init()
}
