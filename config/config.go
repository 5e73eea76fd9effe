package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/sagarc03/dataapi"
	datahttp "github.com/sagarc03/dataapi/http"
	"github.com/sagarc03/dataapi/s3store"
)

// DefaultEnvFile is the local override file read when AWS_REGION is absent.
const DefaultEnvFile = ".env"

// RegionEnv is the variable whose absence marks a local (non-hosted) run.
const RegionEnv = "AWS_REGION"

// DefaultRegionEnv is the SDK's fallback region variable.
const DefaultRegionEnv = "AWS_DEFAULT_REGION"

// configKey is the context key for storing the loaded configuration.
type configKey struct{}

// WithContext returns a new context with the config stored.
func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext retrieves the config from context.
// Returns an error if config is not found.
func FromContext(ctx context.Context) (*Config, error) {
	cfg, ok := ctx.Value(configKey{}).(*Config)
	if !ok || cfg == nil {
		return nil, errors.New("config not found in context")
	}
	return cfg, nil
}

// Config is the root configuration struct for dataapi.
type Config struct {
	Env    string              `mapstructure:"env"`
	Server ServerConfig        `mapstructure:"server"`
	Store  StoreConfig         `mapstructure:"store"`
	CORS   datahttp.CORSConfig `mapstructure:"cors"`
	Log    LogConfig           `mapstructure:"log"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout" validate:"min=1"`
}

// StoreConfig selects and addresses the object store. Region and bucket are
// deliberately not validated: a bad value shows up as an "S3 error" response.
type StoreConfig struct {
	Backend         string `mapstructure:"backend" validate:"required,oneof=s3 filesystem"`
	Key             string `mapstructure:"key" validate:"required"`
	Region          string `mapstructure:"region"`
	Bucket          string `mapstructure:"bucket"`
	Profile         string `mapstructure:"profile"`
	Endpoint        string `mapstructure:"endpoint" validate:"omitempty,url"`
	UsePathStyle    bool   `mapstructure:"use_path_style"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	SessionToken    string `mapstructure:"session_token"`
	Path            string `mapstructure:"path" validate:"required_if=Backend filesystem"`
}

// S3 returns the s3store settings.
func (s StoreConfig) S3() s3store.Config {
	return s3store.Config{
		Region:          s.Region,
		Bucket:          s.Bucket,
		Profile:         s.Profile,
		Endpoint:        s.Endpoint,
		UsePathStyle:    s.UsePathStyle,
		AccessKeyID:     s.AccessKeyID,
		SecretAccessKey: s.SecretAccessKey,
		SessionToken:    s.SessionToken,
	}
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
}

// envBindings maps config keys to the unprefixed variables set by hosting
// environments and the AWS tooling. The DATAAPI_ form keeps working too.
var envBindings = map[string]string{
	"store.region":            RegionEnv,
	"store.bucket":            "S3_BUCKET",
	"store.profile":           "AWS_PROFILE",
	"store.endpoint":          "AWS_ENDPOINT_URL_S3",
	"store.access_key_id":     "AWS_ACCESS_KEY_ID",
	"store.secret_access_key": "AWS_SECRET_ACCESS_KEY",
	"store.session_token":     "AWS_SESSION_TOKEN",
}

// flagToViperKey maps CLI flag names to viper configuration keys.
var flagToViperKey = map[string]string{
	"port":         "server.port",
	"host":         "server.host",
	"backend":      "store.backend",
	"bucket":       "store.bucket",
	"region":       "store.region",
	"profile":      "store.profile",
	"key":          "store.key",
	"endpoint":     "store.endpoint",
	"storage-path": "store.path",
	"log-level":    "log.level",
}

// bindFlags binds CLI flags to viper keys with custom name mapping.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		// Use custom mapping if it exists, otherwise use flag name as-is
		viperKey := f.Name
		if mapped, ok := flagToViperKey[viperKey]; ok {
			viperKey = mapped
		}

		// Only bind if the flag was explicitly set
		if f.Changed {
			_ = v.BindPFlag(viperKey, f)
		}
	})
}

// setDefaults configures default values on the viper instance. Every key
// needs a default so that environment-only values survive Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "dev")

	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.shutdown_timeout", 30) // seconds

	v.SetDefault("store.backend", string(dataapi.BackendS3))
	v.SetDefault("store.key", dataapi.DefaultObjectKey)
	v.SetDefault("store.region", "")
	v.SetDefault("store.bucket", "")
	v.SetDefault("store.profile", "")
	v.SetDefault("store.endpoint", "")
	v.SetDefault("store.use_path_style", false)
	v.SetDefault("store.access_key_id", "")
	v.SetDefault("store.secret_access_key", "")
	v.SetDefault("store.session_token", "")
	v.SetDefault("store.path", "./data")

	v.SetDefault("cors.enabled", false)
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{})
	v.SetDefault("cors.exposed_headers", []string{})
	v.SetDefault("cors.allow_credentials", false)
	v.SetDefault("cors.max_age", 0)

	v.SetDefault("log.level", "info")
}

// Load reads configuration and returns a validated Config struct.
// Order of precedence (highest to lowest):
// flags > env > .env override > config files > defaults
//
// The .env override (path from the "env-file" flag, default ".env") is only
// consulted when AWS_REGION is absent from the environment. Hosted
// environments that inject AWS_REGION never read it.
//
// Parameters:
//   - configFiles: list of config file paths (later files override earlier ones)
//   - flags: cobra flag set for flag binding (can be nil)
func Load(configFiles []string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Read config files
	if len(configFiles) > 0 {
		v.SetConfigFile(configFiles[0])
		if err := v.ReadInConfig(); err != nil {
			slog.Warn("error reading config file", "file", configFiles[0], "err", err)
		}

		for _, cf := range configFiles[1:] {
			v.SetConfigFile(cf)
			if err := v.MergeInConfig(); err != nil {
				slog.Warn("error merging config file", "file", cf, "err", err)
			}
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		if err := v.ReadInConfig(); err != nil {
			var configNotFound viper.ConfigFileNotFoundError
			if !errors.As(err, &configNotFound) {
				slog.Warn("error reading config file", "err", err)
			}
		}
	}

	// 3. Local override file
	if os.Getenv(RegionEnv) == "" {
		if err := mergeEnvFile(v, envFile(flags)); err != nil {
			return nil, err
		}
	}

	// 4. Bind environment variables
	v.SetEnvPrefix("DATAAPI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, name := range envBindings {
		prefixed := "DATAAPI_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		names := []string{key, prefixed, name}
		if name == RegionEnv {
			names = append(names, DefaultRegionEnv)
		}
		if err := v.BindEnv(names...); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", name, err)
		}
	}

	// 5. Bind flags (if provided)
	if flags != nil {
		bindFlags(v, flags)
	}

	// 6. Unmarshal into Config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// 7. Validate using go-playground/validator
	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	if !dataapi.IsValidKey(cfg.Store.Key) {
		return nil, fmt.Errorf("validate config: store.key %q: %w", cfg.Store.Key, dataapi.ErrInvalidInput)
	}

	return &cfg, nil
}

func envFile(flags *pflag.FlagSet) string {
	if flags == nil {
		return DefaultEnvFile
	}
	if f := flags.Lookup("env-file"); f != nil && f.Value.String() != "" {
		return f.Value.String()
	}
	return DefaultEnvFile
}

// mergeEnvFile layers the variables of a dotenv file above the config files.
// Every variable that is unset or empty in the process environment is also
// exported, so the AWS SDK sees settings such as AWS_CONFIG_FILE.
// A missing file is ignored.
func mergeEnvFile(v *viper.Viper, path string) error {
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read env file %s: %w", path, err)
	}

	if err := exportUnset(values); err != nil {
		return fmt.Errorf("export env file %s: %w", path, err)
	}

	if values[RegionEnv] == "" && values[DefaultRegionEnv] != "" {
		values[RegionEnv] = values[DefaultRegionEnv]
	}

	store := make(map[string]any)
	for key, name := range envBindings {
		if val, ok := values[name]; ok && val != "" {
			store[strings.TrimPrefix(key, "store.")] = val
		}
	}
	if len(store) == 0 {
		return nil
	}

	slog.Debug("loaded local env file", "file", path, "keys", len(store))
	if err := v.MergeConfigMap(map[string]any{"store": store}); err != nil {
		return fmt.Errorf("merge env file %s: %w", path, err)
	}
	return nil
}

// exportUnset sets each variable that the environment does not already
// provide with a non-empty value.
func exportUnset(values map[string]string) error {
	for name, val := range values {
		if os.Getenv(name) != "" {
			continue
		}
		if err := os.Setenv(name, val); err != nil {
			return err
		}
	}
	return nil
}
