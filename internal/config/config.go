package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Mail     MailConfig     `yaml:"mail"`
	Loan     LoanConfig     `yaml:"loan"`
	Notify   NotifyConfig   `yaml:"notify"`
	Log      LogConfig      `yaml:"log"`
	CORS     CORSConfig     `yaml:"cors"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	Migrate         bool          `yaml:"migrate"            env:"DATABASE_MIGRATE"            env-default:"false"`
}

// AuthConfig holds JWT authentication settings.
type AuthConfig struct {
	JWTSecret        string        `yaml:"jwt_secret"         env:"AUTH_JWT_SECRET"         env-required:"true"`
	JWTIssuer        string        `yaml:"jwt_issuer"         env:"AUTH_JWT_ISSUER"         env-default:"library"`
	AccessTokenTTL   time.Duration `yaml:"access_token_ttl"   env:"AUTH_ACCESS_TOKEN_TTL"   env-default:"30m"`
	PasswordHashCost int           `yaml:"password_hash_cost" env:"AUTH_PASSWORD_HASH_COST" env-default:"10"`
}

// MailConfig holds SMTP transport settings.
type MailConfig struct {
	Host     string `yaml:"host"     env:"SMTP_HOST"     env-default:"localhost"`
	Port     int    `yaml:"port"     env:"SMTP_PORT"     env-default:"587"`
	User     string `yaml:"user"     env:"SMTP_USER"`
	Password string `yaml:"password" env:"SMTP_PASSWORD"`
	From     string `yaml:"from"     env:"SMTP_FROM"     env-default:"library@localhost"`
}

// LoanConfig holds circulation settings.
type LoanConfig struct {
	// Period is how long a member may keep a book; loans active longer than
	// this are overdue.
	Period        time.Duration `yaml:"period"         env:"LOAN_PERIOD"         env-default:"336h"`
	SweepInterval time.Duration `yaml:"sweep_interval" env:"LOAN_SWEEP_INTERVAL" env-default:"1h"`
	// ConflictRetries bounds re-execution of a borrow/return transaction
	// after a storage write conflict.
	ConflictRetries int `yaml:"conflict_retries" env:"LOAN_CONFLICT_RETRIES" env-default:"3"`
}

// NotifyConfig holds notification dispatcher settings.
type NotifyConfig struct {
	Workers      int           `yaml:"workers"       env:"NOTIFY_WORKERS"       env-default:"4"`
	PollInterval time.Duration `yaml:"poll_interval" env:"NOTIFY_POLL_INTERVAL" env-default:"5s"`
	BatchSize    int           `yaml:"batch_size"    env:"NOTIFY_BATCH_SIZE"    env-default:"50"`
	MaxAttempts  int           `yaml:"max_attempts"  env:"NOTIFY_MAX_ATTEMPTS"  env-default:"3"`
	BackoffBase  time.Duration `yaml:"backoff_base"  env:"NOTIFY_BACKOFF_BASE"  env-default:"60s"`
	SendTimeout  time.Duration `yaml:"send_timeout"  env:"NOTIFY_SEND_TIMEOUT"  env-default:"15s"`
	// LeaseTime is how long a leased job stays invisible to other workers.
	LeaseTime time.Duration `yaml:"lease_time" env:"NOTIFY_LEASE_TIME" env-default:"1m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}
