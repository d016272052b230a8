package internal

import "time"

type Config struct {
	LogLevel        string        `env:"LOG_LEVEL,default=INFO"`
	BadgerFilepath  string        `env:"BADGER_FILEPATH,required=true"`
	EventBufferSize int           `env:"EVENT_BUFFER_SIZE,default=64"`
	SinkTimeout     time.Duration `env:"SINK_TIMEOUT,default=200ms"`
	RestartInterval time.Duration `env:"RESTART_INTERVAL,default=1s"`
	DebugPort       int           `env:"DEBUG_PORT,default=0"`

	MetricInterval       time.Duration `env:"METRIC_INTERVAL,default=5s"`
	LowCapacityThreshold int           `env:"LOW_CAPACITY_THRESHOLD,default=8"`

	FeedInterval    time.Duration `env:"FEED_INTERVAL,default=10s"`
	FeedProbability float64       `env:"FEED_PROBABILITY,default=0.3"`
	FeedSeed        *int64        `env:"FEED_SEED"`

	WalletIdentity   string        `env:"WALLET_IDENTITY,default=0x742d35Cc6634C0532925a3b8D0Ca05c5E8d9a93e"`
	ConnectLatency   time.Duration `env:"CONNECT_LATENCY,default=1500ms"`
	NotificationTTL  time.Duration `env:"NOTIFICATION_TTL,default=3s"`
	CopiedTTL        time.Duration `env:"COPIED_TTL,default=2s"`
	MaxContentLength int           `env:"MAX_CONTENT_LENGTH,default=200"`
	PageSize         int           `env:"PAGE_SIZE,default=10"`
	SeedDemoContent  bool          `env:"SEED_DEMO_CONTENT,default=true"`

	AuthSecret        string        `env:"AUTH_SECRET"`
	AdminToken        string        `env:"ADMIN_TOKEN"`
	AuthTokenDuration time.Duration `env:"AUTH_TOKEN_DURATION,default=24h"`
}
