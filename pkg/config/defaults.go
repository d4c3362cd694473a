package config

import "time"

const (
	StoreFile   = "file"
	StoreMemory = "memory"
	StoreMongo  = "mongo"

	LockLocal = "local"
	LockMongo = "mongo"
	LockRedis = "redis"

	SinkFile = "file"
	SinkS3   = "s3"
)

const (
	DefaultPort = "8080"

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB
	DefaultIdempotencyTTL = 24 * time.Hour

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultStoreBackend = StoreFile
	DefaultDataFile     = "data/bookings.json"

	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "hotelbook"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultLockBackend = LockLocal
	DefaultLockTTL     = 30 * time.Second
	DefaultLockWait    = 5 * time.Second

	DefaultRedisAddr = "localhost:6379"
	DefaultRedisDB   = 0

	DefaultKafkaBrokers       = "localhost:9092"
	DefaultNotificationsTopic = "reservation-notifications"
	DefaultNotifierGroupID    = "hotelbook-notifier"
	DefaultKafkaMaxRetries    = 3

	DefaultNotifyTimeout      = 5 * time.Second
	DefaultPersistenceRetries = 3
	DefaultPersistenceBackoff = 100 * time.Millisecond
	DefaultCodeAttempts       = 5

	DefaultReportDir  = "reports"
	DefaultReportSink = SinkFile
	DefaultS3Region   = "us-east-1"
	DefaultS3Prefix   = "reports/"

	DefaultAdminUser = "admin"

	DefaultSMTPPort = 587
	DefaultSMTPFrom = "reservations@hotelbook.local"
)
