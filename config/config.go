package config

type Mode string

const (
	ModeDebug   Mode = "debug"
	ModeRelease Mode = "release"
)

type Config struct {
	Host   string `envconfig:"HOST" mapstructure:"host"`
	Port   string `envconfig:"PORT" mapstructure:"port"`
	Prefix string `envconfig:"PREFIX" mapstructure:"prefix"`
	AppURL string `envconfig:"APP_URL" mapstructure:"app_url"` // public URL used in emailed links and redirects
	Mode   Mode   `envconfig:"MODE" mapstructure:"mode"`
	Mysql  Mysql  `mapstructure:"mysql"`
	Redis  Redis  `mapstructure:"redis"`
	JWT    JWT    `mapstructure:"jwt"`
	Log    Log    `mapstructure:"log"`
	S3     S3     `mapstructure:"s3"`
	Email  Email  `mapstructure:"email"`
	Sentry Sentry `mapstructure:"sentry"`
}

type Mysql struct {
	DSN      string `envconfig:"DATABASE_URL" mapstructure:"dsn"` // takes precedence over the split fields
	Host     string `envconfig:"MYSQL_HOST" mapstructure:"host"`
	Port     string `envconfig:"MYSQL_PORT" mapstructure:"port"`
	Username string `envconfig:"MYSQL_USERNAME" mapstructure:"username"`
	Password string `envconfig:"MYSQL_PASSWORD" mapstructure:"password"`
	DBName   string `envconfig:"MYSQL_DB_NAME" mapstructure:"db_name"`
}

type Redis struct {
	Host     string `envconfig:"REDIS_HOST" mapstructure:"host"`
	Port     string `envconfig:"REDIS_PORT" mapstructure:"port"`
	Password string `envconfig:"REDIS_PASSWORD" mapstructure:"password"`
	DB       int    `envconfig:"REDIS_DB" mapstructure:"db"`
}

type JWT struct {
	AccessSecret string `envconfig:"ACCESS_SECRET" mapstructure:"access_secret"`
	AccessExpire int64  `envconfig:"ACCESS_EXPIRE" mapstructure:"access_expire"` // seconds
}

type S3 struct {
	Endpoint        string `envconfig:"S3_ENDPOINT" mapstructure:"endpoint"`
	Bucket          string `envconfig:"S3_BUCKET" mapstructure:"bucket"`
	Region          string `envconfig:"S3_REGION" mapstructure:"region"`
	AccessKey       string `envconfig:"S3_ACCESS_KEY" mapstructure:"access_key"`
	SecretAccessKey string `envconfig:"S3_SECRET_KEY" mapstructure:"secret_key"`
	Prefix          string `envconfig:"S3_PREFIX" mapstructure:"prefix"`
	UsePathStyle    bool   `envconfig:"S3_PATH_STYLE" mapstructure:"path_style"`
}

type Email struct {
	APIKey         string `envconfig:"RESEND_API_KEY" mapstructure:"api_key"`
	BaseURL        string `envconfig:"EMAIL_BASE_URL" mapstructure:"base_url"`
	From           string `envconfig:"EMAIL_FROM" mapstructure:"from"`
	ReportReceiver string `envconfig:"REPORT_RECEIVER_EMAIL" mapstructure:"report_receiver"`
}

type Sentry struct {
	Dsn         string  `envconfig:"SENTRY_DSN" mapstructure:"dsn"`
	Environment string  `envconfig:"SENTRY_ENVIRONMENT" mapstructure:"environment"`
	SampleRate  float64 `envconfig:"SENTRY_SAMPLE_RATE" mapstructure:"sample_rate"`
	Tracing     Tracing `mapstructure:"tracing"`
}

type Tracing struct {
	DBSlowThresholdMs    int  `envconfig:"SENTRY_DB_SLOW_THRESHOLD_MS" mapstructure:"db_slow_threshold_ms"`
	RedisSlowThresholdMs int  `envconfig:"SENTRY_REDIS_SLOW_THRESHOLD_MS" mapstructure:"redis_slow_threshold_ms"`
	TraceHTTPCalls       bool `envconfig:"SENTRY_TRACE_HTTP_CALLS" mapstructure:"trace_http_calls"`
}

type Log struct {
	FilePath   string `envconfig:"LOG_FILE_PATH" mapstructure:"file_path"`
	Level      string `envconfig:"LOG_LEVEL" mapstructure:"level"`             // debug, info, warn, error
	MaxSize    int    `envconfig:"LOG_MAX_SIZE" mapstructure:"max_size"`       // MB
	MaxBackups int    `envconfig:"LOG_MAX_BACKUPS" mapstructure:"max_backups"` // rotated files kept
	MaxAge     int    `envconfig:"LOG_MAX_AGE" mapstructure:"max_age"`         // days
	Compress   bool   `envconfig:"LOG_COMPRESS" mapstructure:"compress"`
}
