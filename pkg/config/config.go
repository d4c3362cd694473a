package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"hotelbook/pkg/client"
	"hotelbook/pkg/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	RequestTimeout time.Duration
	MaxRequestSize int
	IdempotencyTTL time.Duration

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	StoreBackend string
	DataFile     string
	CatalogFile  string

	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	LockBackend string
	LockTTL     time.Duration
	LockWait    time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	KafkaEnabled       bool
	KafkaBrokers       []string
	NotificationsTopic string
	NotificationsDLQ   string
	NotifierGroupID    string
	KafkaMaxRetries    int

	NotifyTimeout      time.Duration
	PersistenceRetries int
	PersistenceBackoff time.Duration
	CodeAttempts       int

	ReportDir  string
	ReportSink string

	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Prefix    string

	AdminUser         string
	AdminPasswordHash string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	Log    *logger.Logger
	Client *client.Client
}

// Load reads the environment (after an optional .env file), validates it and
// exits the process on invalid configuration.
func Load(serviceName string) *Config {
	loadEnvFile()

	cfg := FromEnv(serviceName)
	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

func loadEnvFile() {
	path := getEnvStr(EnvEnvFile, ".env")
	if _, err := os.Stat(path); err != nil {
		return
	}
	// Variables already present in the environment win over the file.
	_ = godotenv.Load(path)
}

// FromEnv builds a Config from the current environment without validating it.
func FromEnv(serviceName string) *Config {
	return &Config{
		Port: getEnvStr(EnvPort, DefaultPort),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),
		IdempotencyTTL: getEnvDuration(EnvIdempotencyTTL, DefaultIdempotencyTTL),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		StoreBackend: strings.ToLower(getEnvStr(EnvStoreBackend, DefaultStoreBackend)),
		DataFile:     getEnvStr(EnvDataFile, DefaultDataFile),
		CatalogFile:  getEnvStr(EnvCatalogFile, ""),

		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		LockBackend: strings.ToLower(getEnvStr(EnvLockBackend, DefaultLockBackend)),
		LockTTL:     getEnvDuration(EnvLockTTL, DefaultLockTTL),
		LockWait:    getEnvDuration(EnvLockWait, DefaultLockWait),

		RedisAddr:     getEnvStr(EnvRedisAddr, DefaultRedisAddr),
		RedisPassword: getEnvStr(EnvRedisPassword, ""),
		RedisDB:       getEnvNum(EnvRedisDB, DefaultRedisDB),

		KafkaEnabled:       getEnvBool(EnvKafkaEnabled, false),
		KafkaBrokers:       getEnvList(EnvKafkaBrokers, DefaultKafkaBrokers),
		NotificationsTopic: getEnvStr(EnvNotificationsTopic, DefaultNotificationsTopic),
		NotificationsDLQ:   getEnvStr(EnvNotificationsDLQ, ""),
		NotifierGroupID:    getEnvStr(EnvNotifierGroupID, DefaultNotifierGroupID),
		KafkaMaxRetries:    getEnvNum(EnvKafkaMaxRetries, DefaultKafkaMaxRetries),

		NotifyTimeout:      getEnvDuration(EnvNotifyTimeout, DefaultNotifyTimeout),
		PersistenceRetries: getEnvNum(EnvPersistenceRetries, DefaultPersistenceRetries),
		PersistenceBackoff: getEnvDuration(EnvPersistenceBackoff, DefaultPersistenceBackoff),
		CodeAttempts:       getEnvNum(EnvCodeAttempts, DefaultCodeAttempts),

		ReportDir:  getEnvStr(EnvReportDir, DefaultReportDir),
		ReportSink: strings.ToLower(getEnvStr(EnvReportSink, DefaultReportSink)),

		S3Bucket:    getEnvStr(EnvS3Bucket, ""),
		S3Region:    getEnvStr(EnvS3Region, DefaultS3Region),
		S3Endpoint:  getEnvStr(EnvS3Endpoint, ""),
		S3AccessKey: getEnvStr(EnvS3AccessKey, ""),
		S3SecretKey: getEnvStr(EnvS3SecretKey, ""),
		S3Prefix:    getEnvStr(EnvS3Prefix, DefaultS3Prefix),

		AdminUser:         getEnvStr(EnvAdminUser, DefaultAdminUser),
		AdminPasswordHash: getEnvStr(EnvAdminPasswordHash, ""),

		SMTPHost:     getEnvStr(EnvSMTPHost, ""),
		SMTPPort:     getEnvNum(EnvSMTPPort, DefaultSMTPPort),
		SMTPUsername: getEnvStr(EnvSMTPUsername, ""),
		SMTPPassword: getEnvStr(EnvSMTPPassword, ""),
		SMTPFrom:     getEnvStr(EnvSMTPFrom, DefaultSMTPFrom),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, logger.INFO),
			Format:    logger.JSON,
			AddSource: true,
			Service:   serviceName,
		}),
		Client: client.NewClient(),
	}
}

func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
}

func (cfg *Config) SetRedis() {
	cfg.Client.SetRedis(cfg.Log, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.MongoConnTimeout)
}

// NeedsMongo reports whether any configured backend talks to MongoDB.
func (cfg *Config) NeedsMongo() bool {
	return cfg.StoreBackend == StoreMongo || cfg.LockBackend == LockMongo
}

func (cfg *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	switch cfg.StoreBackend {
	case StoreFile:
		if cfg.DataFile == "" {
			errors = append(errors, "DataFile cannot be empty when STORE_BACKEND=file")
		}
	case StoreMemory, StoreMongo:
	default:
		errors = append(errors, fmt.Sprintf("StoreBackend must be one of [file, memory, mongo], got: %s", cfg.StoreBackend))
	}

	switch cfg.LockBackend {
	case LockLocal, LockMongo:
	case LockRedis:
		if cfg.RedisAddr == "" {
			errors = append(errors, "RedisAddr cannot be empty when LOCK_BACKEND=redis")
		}
	default:
		errors = append(errors, fmt.Sprintf("LockBackend must be one of [local, mongo, redis], got: %s", cfg.LockBackend))
	}

	if cfg.NeedsMongo() {
		if cfg.MongoURI == "" {
			errors = append(errors, "MongoURI cannot be empty")
		} else if len(cfg.MongoURI) < 10 || !regexp.MustCompile(`^mongodb(\+srv)?://`).MatchString(cfg.MongoURI) {
			errors = append(errors, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", redactMongoURI(cfg.MongoURI)))
		}
		if cfg.MongoDatabaseName == "" {
			errors = append(errors, "MongoDatabaseName cannot be empty")
		}
	}

	if cfg.KafkaEnabled {
		if len(cfg.KafkaBrokers) == 0 {
			errors = append(errors, "At least one Kafka broker is required when KAFKA_ENABLED=true")
		}
		if cfg.NotificationsTopic == "" {
			errors = append(errors, "NotificationsTopic cannot be empty when KAFKA_ENABLED=true")
		}
	}

	switch cfg.ReportSink {
	case SinkFile:
		if cfg.ReportDir == "" {
			errors = append(errors, "ReportDir cannot be empty when REPORT_SINK=file")
		}
	case SinkS3:
		if cfg.S3Bucket == "" {
			errors = append(errors, "S3Bucket cannot be empty when REPORT_SINK=s3")
		}
	default:
		errors = append(errors, fmt.Sprintf("ReportSink must be one of [file, s3], got: %s", cfg.ReportSink))
	}

	durations := []struct {
		name  string
		value time.Duration
	}{
		{"MongoConnTimeout", cfg.MongoConnTimeout},
		{"RequestTimeout", cfg.RequestTimeout},
		{"ReadTimeout", cfg.ReadTimeout},
		{"WriteTimeout", cfg.WriteTimeout},
		{"IdleTimeout", cfg.IdleTimeout},
		{"ShutdownTimeout", cfg.ShutdownTimeout},
		{"LockTTL", cfg.LockTTL},
		{"LockWait", cfg.LockWait},
		{"NotifyTimeout", cfg.NotifyTimeout},
		{"IdempotencyTTL", cfg.IdempotencyTTL},
	}
	for _, d := range durations {
		if d.value <= 0 {
			errors = append(errors, fmt.Sprintf("%s must be positive, got: %s", d.name, d.value))
		}
	}
	if cfg.PersistenceBackoff < 0 {
		errors = append(errors, fmt.Sprintf("PersistenceBackoff cannot be negative, got: %s", cfg.PersistenceBackoff))
	}

	if cfg.MaxRequestSize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}
	if cfg.PersistenceRetries < 1 {
		errors = append(errors, fmt.Sprintf("PersistenceRetries must be at least 1, got: %d", cfg.PersistenceRetries))
	}
	if cfg.CodeAttempts < 1 {
		errors = append(errors, fmt.Sprintf("CodeAttempts must be at least 1, got: %d", cfg.CodeAttempts))
	}
	if cfg.KafkaMaxRetries < 0 {
		errors = append(errors, fmt.Sprintf("KafkaMaxRetries cannot be negative, got: %d", cfg.KafkaMaxRetries))
	}
	if cfg.RedisDB < 0 {
		errors = append(errors, fmt.Sprintf("RedisDB cannot be negative, got: %d", cfg.RedisDB))
	}
	if cfg.SMTPPort < 1 || cfg.SMTPPort > 65535 {
		errors = append(errors, fmt.Sprintf("SMTPPort must be between 1 and 65535, got: %d", cfg.SMTPPort))
	}

	if len(errors) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"port", cfg.Port,
		"request_timeout", cfg.RequestTimeout,
		"idempotency_ttl", cfg.IdempotencyTTL,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
		"store_backend", cfg.StoreBackend,
		"data_file", cfg.DataFile,
		"catalog_file", cfg.CatalogFile,
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"mongo_conn_timeout", cfg.MongoConnTimeout,
		"lock_backend", cfg.LockBackend,
		"lock_ttl", cfg.LockTTL,
		"lock_wait", cfg.LockWait,
		"redis_addr", cfg.RedisAddr,
		"redis_password_set", cfg.RedisPassword != "",
		"kafka_enabled", cfg.KafkaEnabled,
		"kafka_brokers", cfg.KafkaBrokers,
		"notifications_topic", cfg.NotificationsTopic,
		"notify_timeout", cfg.NotifyTimeout,
		"persistence_retries", cfg.PersistenceRetries,
		"persistence_backoff", cfg.PersistenceBackoff,
		"code_attempts", cfg.CodeAttempts,
		"report_sink", cfg.ReportSink,
		"report_dir", cfg.ReportDir,
		"s3_bucket", cfg.S3Bucket,
		"s3_region", cfg.S3Region,
		"s3_endpoint", cfg.S3Endpoint,
		"s3_credentials_set", cfg.S3AccessKey != "" && cfg.S3SecretKey != "",
		"admin_user", cfg.AdminUser,
		"admin_password_set", cfg.AdminPasswordHash != "",
		"smtp_host", cfg.SMTPHost,
		"smtp_port", cfg.SMTPPort,
	)
}

func redactMongoURI(uri string) string {
	credentialRegex := regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvList(key, fallback string) []string {
	raw := getEnvStr(key, fallback)
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func (cfg *Config) GracefulShutdown() {
	cfg.Client.GracefulShutdown(cfg.Log)
}
