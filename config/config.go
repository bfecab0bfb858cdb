package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/joshnies/pocket/constants"
	"github.com/joshnies/pocket/lib/console"
	"gopkg.in/yaml.v3"
)

type Env string

const (
	// Local environment
	EnvLcl Env = "lcl"
	// Development environment
	EnvDev Env = "dev"
	// Production environment
	EnvPrd Env = "prd"
)

type StoreDriver string

const (
	StoreDriverFile   StoreDriver = "file"
	StoreDriverRedis  StoreDriver = "redis"
	StoreDriverMemory StoreDriver = "memory"
)

type APIConfig struct {
	// Pocket API base URL.
	// Derived from the environment unless set explicitly.
	Host string `yaml:",omitempty"`
}

type StoreConfig struct {
	// Credential store backend.
	Driver StoreDriver `yaml:"driver"`
	// Path to the store file (file driver only).
	Path string `yaml:"path,omitempty"`
	// Redis connection URL (redis driver only).
	RedisURL string `yaml:"redis_url,omitempty"`
	// Prefix applied to every Redis key (redis driver only).
	RedisPrefix string `yaml:"redis_prefix,omitempty"`
}

type GoogleConfig struct {
	// OAuth client ID used for Google Sign-In.
	ClientID string `yaml:"client_id,omitempty"`
	// OAuth client secret, for clients registered with one.
	ClientSecret string `yaml:"client_secret,omitempty"`
	AuthURL      string `yaml:"auth_url,omitempty"`
	TokenURL     string `yaml:"token_url,omitempty"`
	// Port of the local callback server. 0 picks a free port.
	CallbackPort int `yaml:"callback_port,omitempty"`
}

type Config struct {
	// Environment to run the CLI in.
	Env Env `yaml:",omitempty"`
	// Whether or not to print verbose output.
	Verbose bool
	// Show a progress bar while uploading profile pictures.
	UploadProgress bool `yaml:"upload_progress"`
	API            APIConfig
	Store          StoreConfig
	Google         GoogleConfig
}

// Singleton CLI config instance.
var I Config

// Returns path to the Pocket config directory.
func GetConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatal(err)
	}

	return filepath.Join(homeDir, constants.ConfigDirName)
}

// Returns path to the Pocket global config file.
func GetConfigPath() string {
	return filepath.Join(GetConfigDir(), constants.ConfigFileName)
}

// Returns the default config written on first run.
func Default() Config {
	return Config{
		UploadProgress: true,
		Store: StoreConfig{
			Driver: StoreDriverFile,
			Path:   filepath.Join(GetConfigDir(), constants.StoreFileName),
		},
	}
}

// Returns the Pocket API host based on the CLI environment.
func getAPIHost(env Env) string {
	switch env {
	case EnvDev:
		return "https://api-dev.pocketpay.app"
	case EnvLcl:
		return "http://localhost:9000"
	default:
		// Production is the default
		return "https://api.pocketpay.app"
	}
}

// Load config from the file at the given path.
// A default config file is created if it doesn't exist yet.
func Load(cpath string) (Config, error) {
	var cfg Config

	if _, err := os.Stat(cpath); errors.Is(err, os.ErrNotExist) {
		// Create directories if they don't exist
		if err := os.MkdirAll(filepath.Dir(cpath), 0755); err != nil {
			return Config{}, err
		}

		cfg = Default()
		if err := Save(cpath, cfg); err != nil {
			return Config{}, err
		}
	} else {
		cBytes, err := os.ReadFile(cpath)
		if err != nil {
			return Config{}, err
		}

		if err = yaml.Unmarshal(cBytes, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file %s: %w", cpath, err)
		}
	}

	SetInternalConfigFields(&cfg)

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Write config to the file at the given path, without internal fields.
func Save(cpath string, cfg Config) error {
	OmitInternalConfig(&cfg)

	cYaml, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(cpath, cYaml, 0644)
}

// Validate config.
func Validate(cfg Config) error {
	if cfg.API.Host == "" {
		return errors.New("\"api.host\" must be specified")
	}

	if cfg.Google.CallbackPort < 0 || cfg.Google.CallbackPort > 65535 {
		return fmt.Errorf("\"google.callback_port\" must be between 0 and 65535, got %d", cfg.Google.CallbackPort)
	}

	switch cfg.Store.Driver {
	case StoreDriverFile:
		if cfg.Store.Path == "" {
			return errors.New("\"store.path\" must be specified for the file store")
		}
	case StoreDriverRedis:
		if cfg.Store.RedisURL == "" {
			return errors.New("\"store.redis_url\" must be specified for the redis store")
		}
	case StoreDriverMemory:
	default:
		return fmt.Errorf("unknown store driver \"%s\"", cfg.Store.Driver)
	}

	return nil
}

// Initialize the CLI config.
func InitConfig() Config {
	cfg, err := Load(GetConfigPath())
	if err != nil {
		log.Fatal(err)
	}

	I = cfg
	console.VerboseEnabled = console.VerboseEnabled || I.Verbose

	if I.Verbose {
		// Print config as JSON
		cfgJson, err := json.MarshalIndent(I, "", "  ")
		if err != nil {
			log.Fatal(err)
		}

		console.Verbose("Config:")
		console.Verbose(string(cfgJson))
	}

	return I
}

// Set internal config fields.
func SetInternalConfigFields(config *Config) {
	// Set defaults for missing fields
	if config.Env == "" {
		config.Env = EnvPrd
	}
	if config.Store.Driver == "" {
		config.Store.Driver = StoreDriverFile
	}
	if config.Store.Driver == StoreDriverFile && config.Store.Path == "" {
		config.Store.Path = filepath.Join(GetConfigDir(), constants.StoreFileName)
	}
	if config.Store.Driver == StoreDriverRedis && config.Store.RedisPrefix == "" {
		config.Store.RedisPrefix = "pocket:"
	}

	if config.Google.ClientID == "" {
		config.Google.ClientID = constants.GoogleClientID
	}
	if config.Google.AuthURL == "" {
		config.Google.AuthURL = constants.GoogleAuthURL
	}
	if config.Google.TokenURL == "" {
		config.Google.TokenURL = constants.GoogleTokenURL
	}

	if host := os.Getenv(constants.APIHostEnvVar); host != "" {
		config.API.Host = host
	} else if config.API.Host == "" {
		config.API.Host = getAPIHost(config.Env)
	}
}

// Omit internal config fields from a config object.
// This should always be called before writing it to a file.
func OmitInternalConfig(config *Config) {
	if config.API.Host == getAPIHost(config.Env) || config.API.Host == os.Getenv(constants.APIHostEnvVar) {
		config.API.Host = ""
	}
	if config.Google.ClientID == constants.GoogleClientID {
		config.Google.ClientID = ""
	}
	if config.Google.AuthURL == constants.GoogleAuthURL {
		config.Google.AuthURL = ""
	}
	if config.Google.TokenURL == constants.GoogleTokenURL {
		config.Google.TokenURL = ""
	}
}
