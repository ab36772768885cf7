package configuration

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"yt-embed/infrastructure/logger"

	"github.com/spf13/viper"
)

type Config struct {
	App         App         `json:"app"`
	RedisClient RedisClient `json:"redisClient"`
	Logger      Logger      `json:"logger"`
	Embed       Embed       `json:"embed"`
	Cors        Cors        `json:"cors"`
}

type App struct {
	Port        int    `json:"port"`
	TLSEnabled  bool   `json:"tlsEnabled"`
	TLSCertFile string `json:"tlsCertFile"`
	TLSKeyFile  string `json:"tlsKeyFile"`
}

type RedisClient struct {
	Enabled  bool   `json:"enabled"`
	Host     string `json:"host"`
	Port     string `json:"port"`
	Password string `json:"password"`
	Username string `json:"username"`
	DB       int    `json:"db"`
}

type Logger struct {
	Format string `json:"format"`
	Level  string `json:"level"`
}

// Embed holds rendering options
type Embed struct {
	// CacheTTL is a Go duration string, e.g. "10m"
	CacheTTL  string `json:"cacheTTL"`
	KeyPrefix string `json:"keyPrefix"`
}

type Cors struct {
	AllowOrigins []string `json:"allowOrigins"`
}

var C Config

// LoadedEnvFiles lists the env files applied by the last Init.
var LoadedEnvFiles []string

func init() {
	Init("config.env", ".env")
}

// Init exports the env files, then rebuilds C from the config file and the
// environment. Variables already in the environment win over the files.
func Init(envFiles ...string) {
	LoadedEnvFiles = LoadEnvFromFile(envFiles...)
	C = Config{}
	LoadConfig()
	initApp(&C)
	initRedis(&C)
	initEmbed(&C)
	initCors(&C)
	logger.Configure(C.Logger.Level, C.Logger.Format)
}

func LoadConfig() {
	name := getConfig()
	viper.SetConfigName(name)
	viper.SetConfigType("json")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../")
	viper.AddConfigPath("../../")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logger.GetLogger().Warn("Config file not found")
		} else {
			logger.GetLogger().WithField("error", err).Error("Error reading config file")
		}
	}

	logger.GetLogger().WithField("config", name).Info("Config set up successfully")
	if err := viper.Unmarshal(&C); err != nil {
		logger.GetLogger().WithField("error", err).Error("Viper unable to decode into struct")
	}
}

func getConfig() string {
	name := "config"
	env := os.Getenv("ENV")
	if env != "" {
		name = fmt.Sprintf("%s-%s", name, env)
	}
	return name
}

func initApp(C *Config) {
	// Port resolution order (env overrides config): APP_PORT -> PORT -> config -> default 10002
	if v := os.Getenv("APP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	} else if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	}
	if C.App.Port == 0 {
		C.App.Port = 10002
	}
	if v := os.Getenv("TLS_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			C.App.TLSEnabled = b
		}
	}
	if C.App.TLSCertFile == "" {
		C.App.TLSCertFile = os.Getenv("TLS_CERT_FILE")
	}
	if C.App.TLSKeyFile == "" {
		C.App.TLSKeyFile = os.Getenv("TLS_KEY_FILE")
	}
	if C.App.TLSEnabled {
		logger.GetLogger().WithFields(map[string]interface{}{"cert": C.App.TLSCertFile, "key": C.App.TLSKeyFile}).Info("TLS enabled via configuration")
	}
}

func initRedis(C *Config) {
	if v := os.Getenv("REDIS_HOST"); v != "" {
		C.RedisClient.Host = v
		C.RedisClient.Enabled = true
	}
	if v := os.Getenv("REDIS_PORT"); v != "" {
		C.RedisClient.Port = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		C.RedisClient.Password = v
	}
	if C.RedisClient.Host == "" {
		C.RedisClient.Host = "localhost"
	}
	if C.RedisClient.Port == "" {
		C.RedisClient.Port = "6379"
	}
}

func initEmbed(C *Config) {
	if v := os.Getenv("EMBED_CACHE_TTL"); v != "" {
		C.Embed.CacheTTL = v
	}
	if C.Embed.KeyPrefix == "" {
		C.Embed.KeyPrefix = "embed:youtube:"
	}
}

func initCors(C *Config) {
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		C.Cors.AllowOrigins = splitList(v)
	}
	if len(C.Cors.AllowOrigins) == 0 {
		C.Cors.AllowOrigins = []string{"http://localhost:4321", "http://localhost:3000"}
	}
}

// TTL parses Embed.CacheTTL. Empty or invalid values fall back to 10 minutes.
func (e Embed) TTL() time.Duration {
	if e.CacheTTL == "" {
		return 10 * time.Minute
	}
	d, err := time.ParseDuration(e.CacheTTL)
	if err != nil || d <= 0 {
		logger.GetLogger().WithField("cacheTTL", e.CacheTTL).Warn("Invalid embed cache TTL, using default")
		return 10 * time.Minute
	}
	return d
}

// Addr returns host:port of the configured redis server
func (r RedisClient) Addr() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
