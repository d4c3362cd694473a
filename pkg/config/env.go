package config

const (
	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"
	EnvEnvFile  = "ENV_FILE"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvStoreBackend = "STORE_BACKEND"
	EnvDataFile     = "DATA_FILE"
	EnvCatalogFile  = "CATALOG_FILE"

	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvLockBackend = "LOCK_BACKEND"
	EnvLockTTL     = "LOCK_TTL"
	EnvLockWait    = "LOCK_WAIT"

	EnvRedisAddr     = "REDIS_ADDR"
	EnvRedisPassword = "REDIS_PASSWORD"
	EnvRedisDB       = "REDIS_DB"

	EnvKafkaEnabled       = "KAFKA_ENABLED"
	EnvKafkaBrokers       = "KAFKA_BROKERS"
	EnvNotificationsTopic = "NOTIFICATIONS_TOPIC"
	EnvNotificationsDLQ   = "NOTIFICATIONS_DLQ_TOPIC"
	EnvNotifierGroupID    = "NOTIFIER_GROUP_ID"
	EnvKafkaMaxRetries    = "KAFKA_CONSUMER_MAX_RETRIES"

	EnvNotifyTimeout      = "NOTIFY_TIMEOUT"
	EnvPersistenceRetries = "PERSISTENCE_RETRIES"
	EnvPersistenceBackoff = "PERSISTENCE_BACKOFF"
	EnvCodeAttempts       = "CODE_ATTEMPTS"

	EnvReportDir  = "REPORT_DIR"
	EnvReportSink = "REPORT_SINK"

	EnvS3Bucket    = "S3_BUCKET"
	EnvS3Region    = "S3_REGION"
	EnvS3Endpoint  = "S3_ENDPOINT"
	EnvS3AccessKey = "S3_ACCESS_KEY"
	EnvS3SecretKey = "S3_SECRET_KEY"
	EnvS3Prefix    = "S3_PREFIX"

	EnvAdminUser         = "ADMIN_USER"
	EnvAdminPasswordHash = "ADMIN_PASSWORD_HASH"

	EnvSMTPHost     = "SMTP_HOST"
	EnvSMTPPort     = "SMTP_PORT"
	EnvSMTPUsername = "SMTP_USERNAME"
	EnvSMTPPassword = "SMTP_PASSWORD"
	EnvSMTPFrom     = "SMTP_FROM"
)
