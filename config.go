package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Supported shelf storage backends.
const (
	FileBackend = "file"
	BoltBackend = "bolt"
)

// DefaultAdminAPIKey is used when no secret was provided by file or environment.
const DefaultAdminAPIKey = "sekretnyklucz"

// Config defines the structure of the configuration file.
type Config struct {
	GitCommit               string        `yaml:"git_commit" envconfig:"SHELFD_GIT_COMMIT"`
	GitTag                  string        `yaml:"git_tag" envconfig:"SHELFD_GIT_TAG"`
	BuildTime               string        `yaml:"build_time" envconfig:"SHELFD_BUILD_TIME"`
	IsProduction            bool          `yaml:"is_production" envconfig:"SHELFD_IS_PRODUCTION"`
	LogLevel                zapcore.Level `yaml:"log_level" envconfig:"SHELFD_LOG_LEVEL"`
	LogFile                 string        `yaml:"log_file" envconfig:"SHELFD_LOG_FILE"`
	OpsEndpointsEnable      bool          `yaml:"ops_endpoints_enable" envconfig:"SHELFD_OPS_ENDPOINTS_ENABLE"`
	ProfilerEndpointsEnable bool          `yaml:"profiler_endpoints_enable" envconfig:"SHELFD_PROFILER_ENDPOINTS_ENABLE"`
	Server                  ServerConfig  `yaml:"server"`
	Store                   StoreConfig   `yaml:"store"`
	Admin                   AdminConfig   `yaml:"admin"`
}

type ServerConfig struct {
	Host            string        `yaml:"host" envconfig:"SHELFD_SERVER_HOST"`
	Port            string        `yaml:"port" envconfig:"SHELFD_SERVER_PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"SHELFD_SERVER_READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"SHELFD_SERVER_WRITE_TIMEOUT"`
	RequestTimeout  time.Duration `yaml:"request_timeout" envconfig:"SHELFD_SERVER_REQUEST_TIMEOUT"` // Time to wait for a request to finish
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHELFD_SERVER_SHUTDOWN_TIMEOUT"`
}

// StoreConfig describes where and how the shelf document is persisted.
// The file backend keeps one indented JSON document at FilePath. The
// bolt backend keeps the same document under one key of BucketName.
type StoreConfig struct {
	Backend    string        `yaml:"backend" envconfig:"SHELFD_STORE_BACKEND"`
	FilePath   string        `yaml:"filepath" envconfig:"SHELFD_STORE_FILE_PATH"`
	Timeout    time.Duration `yaml:"timeout" envconfig:"SHELFD_STORE_TIMEOUT"`
	BucketName string        `yaml:"bucket_name" envconfig:"SHELFD_STORE_BUCKET_NAME"`
}

// AdminConfig holds the admin endpoints guard settings. Any request whose
// path starts with PathPrefix must carry the X-API-Key header set to APIKey.
type AdminConfig struct {
	APIKey     string `yaml:"api_key" envconfig:"SHELFD_ADMIN_API_KEY"`
	PathPrefix string `yaml:"path_prefix" envconfig:"SHELFD_ADMIN_PATH_PREFIX"`
}

// LoadConfigFile provides an instance of config structure for the all application.
func LoadConfigFile(configFile string) (*Config, error) {
	file, err := os.Open(configFile)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	cfg := &Config{}
	yd := yaml.NewDecoder(file)
	err = yd.Decode(cfg)

	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfigEnvs reads the environments variables and provides an instance of the App config.
func LoadConfigEnvs(prefix string, config *Config) error {
	return envconfig.Process(prefix, config)
}

// InitConfig setup defaults values for non provided parameters
// and configures build tags values to be used if provided.
func InitConfig(config *Config, gitCommit, gitTag, buildTime string) error {
	if len(gitCommit) != 0 {
		config.GitCommit = gitCommit
	}

	if len(gitTag) != 0 {
		config.GitTag = gitTag
	}

	if len(buildTime) != 0 {
		config.BuildTime = buildTime
	}

	if len(config.Server.Host) == 0 || len(config.Server.Port) == 0 {
		return errors.New("make sure to set valid server address and port in configuration file")
	}

	if len(config.Store.Backend) == 0 {
		config.Store.Backend = FileBackend
	}

	if config.Store.Backend != FileBackend && config.Store.Backend != BoltBackend {
		return fmt.Errorf("unknown store backend: %s", config.Store.Backend)
	}

	if len(config.Store.FilePath) == 0 {
		if config.Store.Backend == BoltBackend {
			config.Store.FilePath = "shelf.db"
		} else {
			config.Store.FilePath = "data.json"
		}
	}

	if len(config.Store.BucketName) == 0 {
		config.Store.BucketName = "shelf"
	}

	if len(config.Admin.PathPrefix) == 0 {
		config.Admin.PathPrefix = "/admin/"
	}

	if len(config.Admin.APIKey) == 0 {
		config.Admin.APIKey = DefaultAdminAPIKey
	}

	return nil
}

// LoadAndInitConfigs loads in order the configs from various predefined sources
// then build the App configuration data.
func LoadAndInitConfigs(gitCommit, gitTag, buildTime string) (*Config, error) {
	// Setup the yaml configuration from file.
	config, err := LoadConfigFile("./config.yml")
	if err != nil {
		return config, fmt.Errorf("failed to load configurations from file: %s", err)
	}

	// Set the environment configuration.
	err = godotenv.Load("./config.env")
	if err != nil {
		return config, fmt.Errorf("failed to set environment configurations: %s", err)
	}

	// Use environment variables with prefix `SHELFD`.
	err = LoadConfigEnvs("SHELFD", config)
	if err != nil {
		return config, fmt.Errorf("failed to load configurations from environment: %s", err)
	}

	err = InitConfig(config, gitCommit, gitTag, buildTime)
	if err != nil {
		return config, fmt.Errorf("failed to initialize configurations: %s", err)
	}
	return config, nil
}
