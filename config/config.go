package config

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type JWTConfig struct {
	SecretKey  string        `mapstructure:"secret_key"`
	AccessTTL  time.Duration `mapstructure:"access_ttl"`
	RefreshTTL time.Duration `mapstructure:"refresh_ttl"`
}

// RouteConfig maps a path prefix on the gateway to an upstream service.
type RouteConfig struct {
	Prefix    string `mapstructure:"prefix"`
	Upstream  string `mapstructure:"upstream"`
	Protected bool   `mapstructure:"protected"`
}

type RateLimitConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	Capacity       int           `mapstructure:"capacity"`
	RefillTokens   int           `mapstructure:"refill_tokens"`
	RefillInterval time.Duration `mapstructure:"refill_interval"`
	TTL            time.Duration `mapstructure:"ttl"`
	Prefix         string        `mapstructure:"prefix"`
}

type GatewayConfig struct {
	Routes      []RouteConfig   `mapstructure:"routes"`
	RateLimit   RateLimitConfig `mapstructure:"rate_limit"`
	CORSOrigins []string        `mapstructure:"cors_origins"`
}

type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Server   struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	JWT      JWTConfig `mapstructure:"jwt"`
	Password struct {
		BcryptCost int `mapstructure:"bcrypt_cost"`
	} `mapstructure:"password"`
	Gateway  GatewayConfig `mapstructure:"gateway"`
	Services struct {
		SettingsCacheTTL time.Duration `mapstructure:"settings_cache_ttl"`
	} `mapstructure:"services"`
	Events struct {
		AMQPURL  string `mapstructure:"amqp_url"`
		Exchange string `mapstructure:"exchange"`
	} `mapstructure:"events"`
	Migrations struct {
		Path string `mapstructure:"path"`
		Auto bool   `mapstructure:"auto"`
	} `mapstructure:"migrations"`
	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
}

var AppConfig Config

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("jwt.access_ttl", time.Hour)
	v.SetDefault("jwt.refresh_ttl", 7*24*time.Hour)
	v.SetDefault("password.bcrypt_cost", 12)
	v.SetDefault("gateway.rate_limit.enabled", true)
	v.SetDefault("gateway.rate_limit.capacity", 60)
	v.SetDefault("gateway.rate_limit.refill_tokens", 1)
	v.SetDefault("gateway.rate_limit.refill_interval", time.Second)
	v.SetDefault("gateway.rate_limit.ttl", 10*time.Minute)
	v.SetDefault("gateway.rate_limit.prefix", "rl")
	v.SetDefault("gateway.cors_origins", []string{"*"})
	v.SetDefault("gateway.routes", []map[string]interface{}{
		{"prefix": "/auth", "upstream": "http://localhost:8081", "protected": false},
		{"prefix": "/users", "upstream": "http://localhost:8081", "protected": true},
		{"prefix": "/books", "upstream": "http://localhost:8082", "protected": true},
		{"prefix": "/user-settings", "upstream": "http://localhost:8083", "protected": true},
	})
	v.SetDefault("services.settings_cache_ttl", 10*time.Minute)
	v.SetDefault("events.exchange", "ledger.events")
	v.SetDefault("migrations.path", "file://db/migrations")
	v.SetDefault("log.level", "info")
}

// Load reads config.yml from path (optional) and the environment into a Config.
// Environment variables use upper-case keys with "_" separators, e.g. JWT_SECRET_KEY.
func Load(path string) (Config, error) {
	// A missing .env file is the normal case outside local development.
	_ = godotenv.Load()

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	// AutomaticEnv only applies to keys viper already knows about.
	for _, key := range []string{
		"database.user", "database.password", "database.name",
		"redis.host", "redis.password", "redis.db", "jwt.secret_key", "events.amqp_url",
		"migrations.auto",
	} {
		_ = v.BindEnv(key)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig populates AppConfig and exits the process when the config is unusable.
func LoadConfig(path string) {
	cfg, err := Load(path)
	if err != nil {
		log.Fatalf("Error reading config, %s", err)
	}
	AppConfig = cfg
}
