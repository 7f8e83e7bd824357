package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	DB        DBConfig
	Server    ServerConfig
	Redis     RedisConfig
	Logger    LoggerConfig
	Auth      AuthConfig
	CacheTTLs CacheTTLConfig
	RateLimit RateLimitConfig
	Tracing   TracingConfig
	Scheduler SchedulerConfig
}

type AppConfig struct {
	Env             string
	Timezone        string
	EnableDevRoutes bool
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type DBConfig struct {
	Driver   string
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	Path     string
	// AutoMigrate applies pending migrations when the API starts.
	AutoMigrate bool
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimit    int
}

type LoggerConfig struct {
	Env   string
	Level string
	File  string
}

type AuthConfig struct {
	JWTSecret string
	Issuer    string
	AccessTTL time.Duration
}

// CacheTTLConfig holds raw TTL strings ("5m", "1h"); see ParseTTLStringOrDefault.
type CacheTTLConfig struct {
	Leaderboard string
	Lessons     string
}

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

type TracingConfig struct {
	Enabled     bool
	Exporter    string
	Endpoint    string
	SampleRatio float64
}

type SchedulerConfig struct {
	LeaderboardRefresh time.Duration
}

func LoadConfig() (*Config, error) {
	// A missing .env file is fine; real deployments use plain env vars.
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		viper.AddConfigPath("../../config")
		viper.AddConfigPath("../../")
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	configFile := viper.ConfigFileUsed()
	if configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	config := &Config{
		App: AppConfig{
			Env:             viper.GetString("app.env"),
			Timezone:        viper.GetString("app.timezone"),
			EnableDevRoutes: viper.GetBool("app.enable_dev_routes"),
		},
		DB: DBConfig{
			Driver:      viper.GetString("db.driver"),
			Host:        viper.GetString("db.host"),
			Port:        viper.GetInt("db.port"),
			User:        viper.GetString("db.user"),
			Password:    viper.GetString("db.password"),
			DBName:      viper.GetString("db.name"),
			SSLMode:     viper.GetString("db.sslmode"),
			Path:        viper.GetString("db.path"),
			AutoMigrate: viper.GetBool("db.auto_migrate"),
		},
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  viper.GetDuration("server.read_timeout"),
			WriteTimeout: viper.GetDuration("server.write_timeout"),
			BodyLimit:    viper.GetInt("server.body_limit"),
		},
		Redis: RedisConfig{
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		Logger: LoggerConfig{
			Env:   viper.GetString("logger.env"),
			Level: viper.GetString("logger.level"),
			File:  viper.GetString("logger.file"),
		},
		Auth: AuthConfig{
			JWTSecret: viper.GetString("auth.jwt_secret"),
			Issuer:    viper.GetString("auth.issuer"),
			AccessTTL: viper.GetDuration("auth.access_ttl"),
		},
		CacheTTLs: CacheTTLConfig{
			Leaderboard: viper.GetString("cache_ttls.leaderboard"),
			Lessons:     viper.GetString("cache_ttls.lessons"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("rate_limit.requests"),
			Window:   viper.GetDuration("rate_limit.window"),
		},
		Tracing: TracingConfig{
			Enabled:     viper.GetBool("tracing.enabled"),
			Exporter:    viper.GetString("tracing.exporter"),
			Endpoint:    viper.GetString("tracing.endpoint"),
			SampleRatio: viper.GetFloat64("tracing.sample_ratio"),
		},
		Scheduler: SchedulerConfig{
			LeaderboardRefresh: viper.GetDuration("scheduler.leaderboard_refresh"),
		},
	}

	// Override with environment variables if set
	if driver := os.Getenv("DB_DRIVER"); driver != "" {
		config.DB.Driver = driver
	}
	if host := os.Getenv("DB_HOST"); host != "" {
		config.DB.Host = host
	}
	if user := os.Getenv("DB_USER"); user != "" {
		config.DB.User = user
	}
	if password := os.Getenv("DB_PASSWORD"); password != "" {
		config.DB.Password = password
	}
	if dbname := os.Getenv("DB_NAME"); dbname != "" {
		config.DB.DBName = dbname
	}
	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		config.Redis.Address = redisAddress
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		config.Redis.Password = redisPassword
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		config.Auth.JWTSecret = secret
	}
	if env := os.Getenv("ENV"); env != "" && config.App.Env == "" {
		config.App.Env = env
	}
	if tz := os.Getenv("APP_TIMEZONE"); tz != "" {
		config.App.Timezone = tz
	}

	if err := validateTimezone(config.App.Timezone); err != nil {
		return nil, err
	}

	return config, nil
}

// validateTimezone rejects zones time.LoadLocation cannot resolve, so streak days
// never silently fall back to the host zone.
func validateTimezone(tz string) error {
	if tz == "" || tz == "Local" {
		return nil
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return fmt.Errorf("invalid app.timezone %q: %w", tz, err)
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.timezone", "Local")
	viper.SetDefault("db.driver", "postgres")
	viper.SetDefault("db.port", 5432)
	viper.SetDefault("db.sslmode", "disable")
	viper.SetDefault("db.path", "data/skillquest.db")
	viper.SetDefault("server.port", 8090)
	viper.SetDefault("server.read_timeout", "20s")
	viper.SetDefault("server.write_timeout", "20s")
	viper.SetDefault("server.body_limit", 4*1024*1024)
	viper.SetDefault("logger.env", "development")
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("auth.issuer", "skill-quest")
	viper.SetDefault("auth.access_ttl", "24h")
	viper.SetDefault("cache_ttls.leaderboard", "1m")
	viper.SetDefault("cache_ttls.lessons", "10m")
	viper.SetDefault("rate_limit.requests", 30)
	viper.SetDefault("rate_limit.window", "1m")
	viper.SetDefault("tracing.exporter", "stdout")
	viper.SetDefault("tracing.sample_ratio", 0.1)
	viper.SetDefault("scheduler.leaderboard_refresh", "5m")
}

// GetDSN returns the data source name for the configured driver.
func (c *Config) GetDSN() string {
	switch c.DB.Driver {
	case "sqlite3":
		return fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", c.DB.Path)
	default:
		return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
			c.DB.User,
			c.DB.Password,
			c.DB.Host,
			c.DB.Port,
			c.DB.DBName,
			c.DB.SSLMode,
		)
	}
}

// ParseTTLStringOrDefault parses a duration string, falling back to def when empty or invalid.
func (c *Config) ParseTTLStringOrDefault(ttl string, def time.Duration) time.Duration {
	if ttl == "" {
		return def
	}
	d, err := time.ParseDuration(ttl)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

// Location resolves App.Timezone. "Local" yields time.Local; LoadConfig has already
// rejected unknown zones, so the fallback only applies to hand-built configs.
func (c *Config) Location() *time.Location {
	if c.App.Timezone == "" || c.App.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
