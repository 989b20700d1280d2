package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/andescode/event-registration-api/internal/api"
	"github.com/andescode/event-registration-api/internal/cache"
	"github.com/andescode/event-registration-api/internal/config"
	"github.com/andescode/event-registration-api/internal/db"
	"github.com/andescode/event-registration-api/internal/logger"
	"github.com/andescode/event-registration-api/internal/notifier"
	"github.com/andescode/event-registration-api/internal/repository/dao"
	"github.com/andescode/event-registration-api/internal/service"
	"github.com/andescode/event-registration-api/internal/storage"
)

// defaultHealthEntities populates the form's dropdown on first boot.
var defaultHealthEntities = []string{
	"Compensar",
	"Coomeva",
	"Famisanar",
	"Nueva EPS",
	"Salud Total",
	"Sanitas",
	"Sura",
	"Otra",
	"Ninguna",
}

func Start() error {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}

	dbURL := os.Getenv("DATABASE_URL")
	var postgresDB *gorm.DB
	if dbURL != "" {
		postgresDB, err = db.OpenPostgresWithURL(dbURL)
	} else {
		postgresDB, err = db.OpenPostgres(conf.Postgres)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	if err = dao.InitTables(postgresDB); err != nil {
		return fmt.Errorf("failed to migrate tables -> %w", err)
	}

	if err = dao.NewCatalogDAO(postgresDB).SeedHealthEntities(context.Background(), defaultHealthEntities); err != nil {
		return fmt.Errorf("failed to seed health entities -> %w", err)
	}

	if conf.Storage == nil {
		conf.Storage = &config.StorageConfig{ReceiptsDir: "./uploads", PublicURL: "/uploads"}
	}
	uploader := storage.NewLocalStore(conf.Storage.ReceiptsDir, conf.Storage.PublicURL)

	var notify notifier.Notifier = notifier.Nop{}
	if conf.AMQP != nil && conf.AMQP.Enabled {
		amqpNotifier, err := notifier.NewAMQPNotifier(conf.AMQP.URL, conf.AMQP.Queue)
		if err != nil {
			return fmt.Errorf("failed to connect to the message broker -> %w", err)
		}
		defer amqpNotifier.Close()
		notify = amqpNotifier
	}

	var optionCache service.OptionCache
	if conf.Redis != nil && conf.Redis.Enabled {
		catalogCache := cache.NewCatalog(
			conf.Redis.Addr,
			conf.Redis.Password,
			conf.Redis.DB,
			time.Duration(conf.Redis.TTLSeconds)*time.Second,
		)
		defer catalogCache.Close()
		optionCache = catalogCache
	}

	s := api.NewServer(conf, postgresDB, uploader, notify, optionCache)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if conf.Admin != nil {
		if err = s.Auth.SeedAdmin(ctx, conf.Admin.Email, conf.Admin.Password); err != nil {
			return fmt.Errorf("failed to seed the admin account -> %w", err)
		}
	}

	s.Poller.Start(ctx)

	addr := ":" + s.Config.API.Port
	zap.L().Info(fmt.Sprintf("starting server at %v", addr))
	if err = s.Router.Run(addr); err != nil {
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	return nil
}
