package config

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// AuthMode selects how requests are authenticated.
type AuthMode string

const (
	// AuthModeJWT verifies a signed session token on every request.
	AuthModeJWT AuthMode = "jwt"
	// AuthModeDev treats every request as DevUserID. Never use in production.
	AuthModeDev AuthMode = "dev"
)

// Config holds the application configuration.
type Config struct {
	Port           string   `mapstructure:"PORT"`
	DatabaseURL    string   `mapstructure:"DATABASE_URL"`
	JWTSecret      string   `mapstructure:"JWT_SECRET"`
	RedisURL       string   `mapstructure:"REDIS_URL"`
	RedisPassword  string   `mapstructure:"REDIS_PASSWORD"`
	RedisDB        int      `mapstructure:"REDIS_DB"`
	AuthMode       AuthMode `mapstructure:"AUTH_MODE"`
	DevUserID      string   `mapstructure:"DEV_USER_ID"`
	OTPTTLSeconds  int      `mapstructure:"OTP_TTL_SECONDS"`
	AllowedOrigins string   `mapstructure:"ALLOWED_ORIGINS"`
	LogLevel       string   `mapstructure:"LOG_LEVEL"`
	Timezone       string   `mapstructure:"TIMEZONE"`

	S3Bucket          string `mapstructure:"S3_BUCKET"`
	S3Region          string `mapstructure:"S3_REGION"`
	S3Endpoint        string `mapstructure:"S3_ENDPOINT"`
	S3AccessKeyID     string `mapstructure:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string `mapstructure:"S3_SECRET_ACCESS_KEY"`
	S3PublicURL       string `mapstructure:"S3_PUBLIC_URL"`
}

var AppConfig *Config

// LoadConfig loads the configuration from a .env file and environment variables.
func LoadConfig() {
	v := viper.New()
	v.AddConfigPath(".")
	v.SetConfigName(".env")
	v.SetConfigType("env")

	setDefaults(v)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Msg(".env file not found, loading from environment variables")
	}

	cfg, err := decode(v)
	if err != nil {
		log.Fatal().Err(err).Msg("unable to decode config")
	}
	AppConfig = cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("REDIS_URL", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("AUTH_MODE", string(AuthModeJWT))
	v.SetDefault("OTP_TTL_SECONDS", 600)
	v.SetDefault("ALLOWED_ORIGINS", "*")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("TIMEZONE", "UTC")
	v.SetDefault("S3_REGION", "auto")
	// AutomaticEnv only resolves keys viper already knows about.
	for _, key := range []string{
		"DATABASE_URL", "JWT_SECRET", "REDIS_PASSWORD", "DEV_USER_ID",
		"S3_BUCKET", "S3_ENDPOINT", "S3_ACCESS_KEY_ID", "S3_SECRET_ACCESS_KEY", "S3_PUBLIC_URL",
	} {
		v.SetDefault(key, "")
	}
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if cfg.AuthMode != AuthModeDev {
		cfg.AuthMode = AuthModeJWT
	}
	return &cfg, nil
}

// Origins splits ALLOWED_ORIGINS on commas.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// OTPTTL is how long a verification code stays valid.
func (c *Config) OTPTTL() time.Duration {
	if c.OTPTTLSeconds <= 0 {
		return 10 * time.Minute
	}
	return time.Duration(c.OTPTTLSeconds) * time.Second
}

// AvatarsEnabled reports whether object storage is configured.
func (c *Config) AvatarsEnabled() bool {
	return c.S3Bucket != "" && c.S3PublicURL != ""
}

// Location resolves TIMEZONE, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
