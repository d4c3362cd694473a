package kafka

import "time"

// Config holds broker and client tuning shared by producers and consumers.
type Config struct {
	Brokers []string

	ProducerMaxAttempts  int
	ProducerBatchTimeout time.Duration
	ProducerRequireAcks  int    // -1 = all, 0 = none, 1 = leader only
	ProducerCompression  string // "none", "gzip", "snappy", "lz4", "zstd"

	ConsumerStartOffset    int64 // -1 = newest, -2 = oldest
	ConsumerMinBytes       int
	ConsumerMaxBytes       int
	ConsumerMaxWait        time.Duration
	ConsumerCommitInterval time.Duration
	ConsumerMaxRetries     int
	ConsumerRetryBackoff   time.Duration
}

func DefaultConfig(brokers []string) *Config {
	return &Config{
		Brokers: brokers,

		ProducerMaxAttempts:  3,
		ProducerBatchTimeout: 10 * time.Millisecond,
		ProducerRequireAcks:  -1,
		ProducerCompression:  "snappy",

		ConsumerStartOffset:    -2,
		ConsumerMinBytes:       1,
		ConsumerMaxBytes:       10e6,
		ConsumerMaxWait:        500 * time.Millisecond,
		ConsumerCommitInterval: 0,
		ConsumerMaxRetries:     3,
		ConsumerRetryBackoff:   500 * time.Millisecond,
	}
}
