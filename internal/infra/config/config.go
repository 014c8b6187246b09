package config

import (
	"errors"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	RaindropToken string `env:"RAINDROP_TOKEN"`
	UserAgent     string `env:"APP_USER_AGENT" envDefault:"RainDigest/1.0"`

	ReadwiseToken string `env:"READWISE_TOKEN"`

	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	GeminiModel  string `env:"GEMINI_MODEL" envDefault:"gemini-2.0-flash"`

	OutputDir string `env:"OUTPUT_DIR" envDefault:"./output"`
	DataDir   string `env:"DATA_DIR"   envDefault:"./data"`

	R2AccountID     string `env:"R2_ACCOUNT_ID"`
	R2AccessKeyID   string `env:"R2_ACCESS_KEY_ID"`
	R2SecretKey     string `env:"R2_SECRET_ACCESS_KEY"`
	R2Bucket        string `env:"R2_BUCKET_NAME"`
	R2PublicDomain  string `env:"R2_PUBLIC_DOMAIN"`
	R2RetentionDays int    `env:"R2_RETENTION_DAYS" envDefault:"30"`

	DryRun     bool `env:"DRY_RUN"     envDefault:"false"`
	MaxItems   int  `env:"MAX_ITEMS"   envDefault:"50"`
	MaxRetries int  `env:"MAX_RETRIES" envDefault:"3"`

	// PerPage is the bookmark fetch page size, independent of MaxItems:
	// already-processed bookmarks are filtered after the fetch, so a page
	// tied to the cap would starve the run once the newest items are done.
	PerPage int `env:"PER_PAGE" envDefault:"50"`

	// AI Director mode only runs on videos shorter than this, to save
	// bandwidth and upload time.
	DirectorMaxDuration float64 `env:"DIRECTOR_MAX_DURATION_SECONDS" envDefault:"600"`

	// Frame selector tuning; the defaults were chosen empirically.
	FrameProbeOffsets []float64 `env:"FRAME_PROBE_OFFSETS" envDefault:"0,1,1.5"`
	EdgeLowThreshold  float64   `env:"EDGE_LOW_THRESHOLD"  envDefault:"100"`
	EdgeHighThreshold float64   `env:"EDGE_HIGH_THRESHOLD" envDefault:"200"`

	SubtitleLangs []string `env:"SUBTITLE_LANGS" envDefault:"zh-Hant,zh-Hans,zh,en"`

	SMTPHost    string `env:"SMTP_HOST"`
	SMTPPort    int    `env:"SMTP_PORT" envDefault:"25"`
	SMTPFrom    string `env:"SMTP_FROM" envDefault:"noreply@raindigest.local"`
	NotifyEmail string `env:"NOTIFY_EMAIL"`

	MetricsPort  int    `env:"METRICS_PORT"  envDefault:"8083"`
	OTLPEndpoint string `env:"OTLP_ENDPOINT"`
	LogLevel     string `env:"LOG_LEVEL"     envDefault:"info"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if cfg.RaindropToken == "" {
		return nil, errors.New("RAINDROP_TOKEN is missing")
	}
	return cfg, nil
}

// R2Configured reports whether every credential needed for image uploads
// is present. When it is not, the pipeline runs without highlights in
// object storage and keeps frames on local disk.
func (c *Config) R2Configured() bool {
	return c.R2AccountID != "" && c.R2AccessKeyID != "" && c.R2SecretKey != "" &&
		c.R2Bucket != "" && c.R2PublicDomain != ""
}

// NotifierConfigured reports whether permanent failures should be mailed.
func (c *Config) NotifierConfigured() bool {
	return c.SMTPHost != "" && c.NotifyEmail != ""
}
