package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Postgres DBConfig
	Redis    RedisConfig
	S3       S3Config
	Storage  StorageConfig
	Auth     AuthConfig
	Logger   Logger
	Worker   WorkerConfig
	Split    SplitConfig
}

type ServerConfig struct {
	AppVersion   string
	Port         string
	Mode         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimit    string
	AllowOrigins []string
}

// AuthConfig holds the single operator account. PasswordHash is a bcrypt hash;
// there are no defaults, both secrets must come from the config file or env.
type AuthConfig struct {
	JwtSecretKey string
	Username     string
	PasswordHash string
	TokenTTL     time.Duration
}

type WorkerConfig struct {
	WorkerCount int
	QueueSize   int
	MaxCPUUsage float64
}

type SplitConfig struct {
	FFmpegPath  string
	WorkDir     string
	ToolTimeout time.Duration
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	PgDriver string
}

type RedisConfig struct {
	RedisAddr     string
	RedisPassword string
	DB            int
	MinIdleConns  int
	PoolSize      int
	PoolTimeout   int
	UseTLS        bool
	JobTTL        time.Duration
}

type S3Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
}

// StorageConfig selects the blob backend. BaseURL is prepended to object keys
// to build the URLs handed back to clients.
type StorageConfig struct {
	Driver   string
	LocalDir string
	BaseURL  string
}

type Logger struct {
	Development       bool
	DisableCaller     bool
	DisableStacktrace bool
	Encoding          string
	Level             string
}

func LoadConfig(filename string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigFile(filename)
	v.AddConfigPath(".")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFound) {
			return nil, errors.New("config file not found")
		}
		return nil, err
	}
	return v, nil
}

func ParseConfig(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c.Auth.JwtSecretKey == "" {
		return errors.New("auth.jwtSecretKey is required")
	}
	if c.Auth.Username == "" || c.Auth.PasswordHash == "" {
		return errors.New("auth.username and auth.passwordHash are required")
	}
	switch c.Storage.Driver {
	case "local", "s3":
	default:
		return errors.New("storage.driver must be one of: local, s3")
	}
	if c.Worker.WorkerCount < 1 {
		return errors.New("worker.workerCount must be at least 1")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", ":5000")
	v.SetDefault("server.mode", "Development")
	v.SetDefault("server.readTimeout", 10*time.Second)
	v.SetDefault("server.writeTimeout", 30*time.Second)
	v.SetDefault("server.bodyLimit", "2G")
	v.SetDefault("server.allowOrigins", []string{"*"})
	v.SetDefault("auth.tokenTTL", 60*time.Minute)
	v.SetDefault("worker.workerCount", 2)
	v.SetDefault("worker.queueSize", 16)
	v.SetDefault("split.ffmpegPath", "ffmpeg")
	v.SetDefault("split.workDir", "tmp_segments")
	v.SetDefault("split.toolTimeout", 10*time.Minute)
	v.SetDefault("redis.jobTTL", 24*time.Hour)
	v.SetDefault("storage.driver", "local")
	v.SetDefault("storage.localDir", "media")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.encoding", "json")
	v.SetDefault("postgres.sslMode", "disable")
}
