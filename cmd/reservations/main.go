package main

import (
	"context"
	"time"

	"hotelbook/internal/catalog"
	"hotelbook/internal/notifications"
	"hotelbook/internal/reports"
	"hotelbook/internal/reservations/handler"
	"hotelbook/internal/reservations/repository"
	"hotelbook/internal/reservations/service"
	"hotelbook/internal/reservations/validator"
	"hotelbook/pkg/app"
	"hotelbook/pkg/config"
	"hotelbook/pkg/kafka"
	kafkamw "hotelbook/pkg/kafka/middleware"
	"hotelbook/pkg/middleware"
)

const (
	ServiceName = "reservations"

	mongoReadTimeout  = 5 * time.Second
	mongoWriteTimeout = 10 * time.Second
)

func main() {
	cfg := config.Load(ServiceName)

	if cfg.NeedsMongo() {
		cfg.SetMongo()
	}
	if cfg.LockBackend == config.LockRedis {
		cfg.SetRedis()
	}
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Reservations service")

	rooms := initCatalog(cfg)
	store, pinger := initStore(cfg)
	locker := initLocker(cfg)
	notifier, closeNotifier := initNotifier(cfg)

	reservationService := service.NewReservationService(
		store,
		locker,
		rooms,
		validator.NewReservationValidator(cfg.Log),
		notifier,
		cfg,
	)

	serverApp := app.NewApplication(cfg)
	serverApp.OnShutdown(closeNotifier)
	serverApp.SetApp(
		handler.NewHealthHandler(pinger, cfg.Log),
		handler.NewReservationHandler(reservationService, cfg.Log),
		initReports(cfg, store),
	)
	serverApp.Run()
}

func initCatalog(cfg *config.Config) *catalog.Catalog {
	if cfg.CatalogFile == "" {
		rooms := catalog.Default()
		cfg.Log.Info("Using built-in room catalog", "rooms", rooms.Len())
		return rooms
	}

	rooms, err := catalog.Load(cfg.CatalogFile)
	if err != nil {
		cfg.Log.Fatal("Failed to load room catalog", "path", cfg.CatalogFile, "error", err)
	}
	cfg.Log.Info("Room catalog loaded", "path", cfg.CatalogFile, "rooms", rooms.Len())
	return rooms
}

// initStore returns a nil Pinger for backends that have nothing to ping.
func initStore(cfg *config.Config) (repository.ReservationStore, repository.Pinger) {
	switch cfg.StoreBackend {
	case config.StoreMongo:
		store := repository.NewMongoStore(cfg.Client.Mongo, cfg.MongoDatabaseName, mongoReadTimeout, mongoWriteTimeout)
		cfg.Log.Info("Reservation store initialized", "backend", cfg.StoreBackend, "database", cfg.MongoDatabaseName)
		return store, store
	case config.StoreMemory:
		cfg.Log.Warn("Reservation store is in memory, data is lost on restart")
		return repository.NewMemoryStore(), nil
	default:
		store, err := repository.NewFileStore(cfg.DataFile)
		if err != nil {
			cfg.Log.Fatal("Failed to open reservation file", "path", cfg.DataFile, "error", err)
		}
		cfg.Log.Info("Reservation store initialized", "backend", cfg.StoreBackend, "path", cfg.DataFile)
		return store, nil
	}
}

func initLocker(cfg *config.Config) repository.RoomLocker {
	cfg.Log.Info("Room locker initialized", "backend", cfg.LockBackend, "ttl", cfg.LockTTL, "wait", cfg.LockWait)
	switch cfg.LockBackend {
	case config.LockMongo:
		return repository.NewMongoRoomLocker(cfg.Client.Mongo, cfg.MongoDatabaseName, cfg.LockTTL, cfg.LockWait, cfg.Log)
	case config.LockRedis:
		return repository.NewRedisRoomLocker(cfg.Client.Redis, cfg.LockTTL, cfg.LockWait, cfg.Log)
	default:
		return repository.NewLocalRoomLocker(cfg.LockWait)
	}
}

func initNotifier(cfg *config.Config) (notifications.Notifier, func()) {
	if !cfg.KafkaEnabled {
		cfg.Log.Info("Kafka disabled, notifications are logged only")
		return notifications.NewLogNotifier(cfg.Log), func() {}
	}

	kafkaCfg := kafka.DefaultConfig(cfg.KafkaBrokers)
	producer, err := kafka.NewProducer(kafkaCfg, cfg.Log, cfg.NotificationsTopic, cfg.NotificationsDLQ)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	producer.Use(kafkamw.LoggingProducerMiddleware(cfg.Log))

	cfg.Log.Info("Kafka notifications enabled",
		"brokers", cfg.KafkaBrokers,
		"topic", cfg.NotificationsTopic,
	)
	return notifications.NewKafkaNotifier(producer), func() {
		if err := producer.Close(); err != nil {
			cfg.Log.Error("Failed to close Kafka producer", "error", err)
		}
	}
}

func initReports(cfg *config.Config, store repository.ReservationStore) *reports.ReportHandler {
	var sink reports.Sink
	switch cfg.ReportSink {
	case config.SinkS3:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s3Sink, err := reports.NewS3Sink(ctx, reports.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Prefix:    cfg.S3Prefix,
		})
		if err != nil {
			cfg.Log.Fatal("Failed to initialize S3 report sink", "error", err)
		}
		sink = s3Sink
		cfg.Log.Info("Reports export to S3", "bucket", cfg.S3Bucket)
	default:
		sink = reports.NewFileSink(cfg.ReportDir)
		cfg.Log.Info("Reports export to local directory", "dir", cfg.ReportDir)
	}

	if cfg.AdminPasswordHash == "" {
		cfg.Log.Warn("ADMIN_PASSWORD_HASH not set, report endpoints will reject every request")
	}

	guard := middleware.AdminAuth(cfg.Log, cfg.AdminUser, cfg.AdminPasswordHash)
	return reports.NewReportHandler(reports.NewExporter(store, sink, cfg.PersistenceRetries, cfg.PersistenceBackoff, cfg.Log), guard, cfg.Log)
}
