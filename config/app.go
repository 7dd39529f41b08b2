package config

import (
	"sync"
	"time"
)

// AppConfig holds the process configuration once Load has run.
var AppConfig *Config
var once sync.Once

type Config struct {
	Server  ServerConfig
	Logger  LoggerConfig
	Store   StoreConfig
	Baserow BaserowConfig
	DB      DBConfig
	Redis   RedisConfig
	Elastic ElasticsearchConfig
	Auth    AuthConfig
	Alerts  AlertConfig
	Cron    map[string]string
}

type ServerConfig struct {
	AppName  string
	AppEnv   string
	Port     string
	Debug    bool
	MediaDir string
	MediaURL string
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
}

// StoreConfig selects the row store backend: "baserow" or "local".
type StoreConfig struct {
	Backend  string
	CacheTTL time.Duration
	// SweepInterval drops expired in-memory cache entries; 0 disables it.
	SweepInterval time.Duration
}

type DBConfig struct {
	Driver string // sqlite | mysql
	DSN    string
	Path   string
	LogOff bool
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type ElasticsearchConfig struct {
	Addresses []string
	Username  string
	Password  string
	Index     string
}

type AuthConfig struct {
	Type          string // basic | key | token
	APIKey        string
	BasicUser     string
	BasicPass     string
	AdminEmail    string
	AdminPassword string
	SessionTTL    time.Duration
}

// AlertConfig holds the expiry windows used for CA and training alerts.
type AlertConfig struct {
	CAWarningDays       int
	TrainingWarningDays int
}

// IsDevelopment reports whether the app runs in a development environment.
func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "development" || c.Server.AppEnv == "dev"
}

// Load builds the configuration from the environment.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			AppName:  GetEnv("APP_NAME", "FocoLog"),
			AppEnv:   GetEnv("APP_ENV", "dev"),
			Port:     GetEnv("PORT", "8080"),
			Debug:    getEnvBool("DEBUG", false),
			MediaDir: GetEnv("MEDIA_DIR", "media"),
			MediaURL: GetEnv("MEDIA_URL", "/media/"),
		},
		Logger: LoggerConfig{
			Level:             GetEnv("LOGGER_LEVEL", "info"),
			Encoding:          GetEnv("LOGGER_ENCODING", "json"),
			DisableCaller:     getEnvBool("LOGGER_DISABLE_CALLER", false),
			DisableStacktrace: getEnvBool("LOGGER_DISABLE_STACKTRACE", true),
		},
		Store: StoreConfig{
			Backend:       GetEnv("STORE_BACKEND", "baserow"),
			CacheTTL:      time.Duration(getEnvInt("STORE_CACHE_TTL", 30)) * time.Second,
			SweepInterval: time.Duration(getEnvInt("CACHE_SWEEP_INTERVAL", 300)) * time.Second,
		},
		Baserow: loadBaserow(),
		DB: DBConfig{
			Driver: GetEnv("DB_DRIVER", "sqlite"),
			DSN:    GetEnv("MYSQL_DSN", ""),
			Path:   GetEnv("SQLITE_PATH", "focolog.db"),
			LogOff: GetEnv("GORM_LOG", "off") == "off",
		},
		Redis: RedisConfig{
			Addr:     GetEnv("REDIS_ADDR", ""),
			Password: GetEnv("REDIS_PASS", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Elastic: ElasticsearchConfig{
			Addresses: getEnvSlice("ELASTICSEARCH_ADDRESSES", nil),
			Username:  GetEnv("ELASTICSEARCH_USERNAME", ""),
			Password:  GetEnv("ELASTICSEARCH_PASSWORD", ""),
			Index:     GetEnv("ELASTICSEARCH_INDEX", "focolog_inventory"),
		},
		Auth: AuthConfig{
			Type:          GetEnv("AUTH_TYPE", "token"),
			APIKey:        GetEnv("API_KEY", ""),
			BasicUser:     GetEnv("API_USER", ""),
			BasicPass:     GetEnv("API_PASS", ""),
			AdminEmail:    GetEnv("ADMIN_EMAIL", "admin@focolog.com"),
			AdminPassword: GetEnv("ADMIN_PASSWORD", "admin123"),
			SessionTTL:    time.Duration(getEnvInt("SESSION_TTL_MINUTES", 480)) * time.Minute,
		},
		Alerts: AlertConfig{
			CAWarningDays:       getEnvInt("CA_WARNING_DAYS", 30),
			TrainingWarningDays: getEnvInt("TRAINING_WARNING_DAYS", 30),
		},
		Cron: loadCronSchedules(),
	}
}

// LoadAppConfig initializes the global AppConfig variable.
func LoadAppConfig() *Config {
	once.Do(func() {
		AppConfig = Load()
	})
	return AppConfig
}
