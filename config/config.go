package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/meysamhadeli/susi/code_analyzer/models"
	"github.com/meysamhadeli/susi/errs"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// ServiceConfig points at the remote analysis and generation service.
type ServiceConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// GenerationConfig controls the progress display and where archives are saved.
type GenerationConfig struct {
	StepDelay time.Duration `mapstructure:"step_delay"`
	OutputDir string        `mapstructure:"output_dir"`
}

// Config represents the structure of the configuration file
type Config struct {
	Version          string            `mapstructure:"version"`
	Theme            string            `mapstructure:"theme"`
	Framework        string            `mapstructure:"framework"`
	EnableCache      bool              `mapstructure:"enable_cache"`
	CacheSize        int               `mapstructure:"cache_size"`
	Verbose          bool              `mapstructure:"verbose"`
	DeployURL        string            `mapstructure:"deploy_url"`
	FeedbackURL      string            `mapstructure:"feedback_url"`
	ServiceConfig    *ServiceConfig    `mapstructure:"service_config"`
	GenerationConfig *GenerationConfig `mapstructure:"generation_config"`
}

// DefaultConfig values
var DefaultConfig = Config{
	Version:     "0.1.0",
	Theme:       "dracula",
	Framework:   models.DefaultFramework,
	EnableCache: true,
	CacheSize:   32,
	DeployURL:   "https://railway.app/new",
	FeedbackURL: "https://forms.gle/xdzg11DWCYSJSZqKA",
	ServiceConfig: &ServiceConfig{
		BaseURL: "https://susi-backend.onrender.com",
		Timeout: 5 * time.Minute,
	},
	GenerationConfig: &GenerationConfig{
		StepDelay: time.Second,
		OutputDir: ".",
	},
}

// cfgFile holds the path to the configuration file (set via CLI)
var cfgFile string

// LoadConfigs resolves the configuration from defaults, the config file, the
// environment (a .env file in cwd included) and the CLI flags, in increasing priority.
func LoadConfigs(rootCmd *cobra.Command, cwd string) (*Config, error) {
	if err := loadDotEnv(cwd); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)
	bindEnv(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file '%s': %w", cfgFile, err)
		}
	} else {
		v.SetConfigName("susi-config")
		v.AddConfigPath(cwd)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	bindFlags(v, rootCmd)

	var config *Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// ConfigFileUsed reports the explicit --config path, if any.
func ConfigFileUsed() string {
	return cfgFile
}

// Validate rejects settings the client cannot work with.
func (c *Config) Validate() error {
	c.Framework = models.NormalizeFramework(c.Framework)
	if !models.IsSupportedFramework(c.Framework) {
		return errs.NewValidationError("framework", fmt.Sprintf("unsupported framework '%s' (use one of %s)", c.Framework, strings.Join(models.SupportedFrameworks, ", ")))
	}

	if c.ServiceConfig == nil || strings.TrimSpace(c.ServiceConfig.BaseURL) == "" {
		return errs.NewValidationError("service_config.base_url", "the service base url is required")
	}
	parsed, err := url.Parse(c.ServiceConfig.BaseURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return errs.NewValidationError("service_config.base_url", fmt.Sprintf("'%s' is not an http(s) url", c.ServiceConfig.BaseURL))
	}
	if c.ServiceConfig.Timeout <= 0 {
		return errs.NewValidationError("service_config.timeout", "the request timeout must be positive")
	}

	if c.GenerationConfig == nil {
		c.GenerationConfig = &GenerationConfig{}
	}
	if c.GenerationConfig.StepDelay < 0 {
		return errs.NewValidationError("generation_config.step_delay", "the step delay cannot be negative")
	}
	if c.GenerationConfig.OutputDir == "" {
		c.GenerationConfig.OutputDir = "."
	}

	if c.EnableCache && c.CacheSize <= 0 {
		return errs.NewValidationError("cache_size", "the cache size must be positive when the cache is enabled")
	}
	return nil
}

func loadDotEnv(cwd string) error {
	path := filepath.Join(cwd, ".env")
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	// Variables already present in the environment win over the file.
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("error loading %s: %w", path, err)
	}
	return nil
}

// setDefaults sets all default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("version", DefaultConfig.Version)
	v.SetDefault("theme", DefaultConfig.Theme)
	v.SetDefault("framework", DefaultConfig.Framework)
	v.SetDefault("enable_cache", DefaultConfig.EnableCache)
	v.SetDefault("cache_size", DefaultConfig.CacheSize)
	v.SetDefault("verbose", DefaultConfig.Verbose)
	v.SetDefault("deploy_url", DefaultConfig.DeployURL)
	v.SetDefault("feedback_url", DefaultConfig.FeedbackURL)
	v.SetDefault("service_config.base_url", DefaultConfig.ServiceConfig.BaseURL)
	v.SetDefault("service_config.timeout", DefaultConfig.ServiceConfig.Timeout)
	v.SetDefault("generation_config.step_delay", DefaultConfig.GenerationConfig.StepDelay)
	v.SetDefault("generation_config.output_dir", DefaultConfig.GenerationConfig.OutputDir)
}

// bindEnv explicitly binds environment variables to configuration keys
func bindEnv(v *viper.Viper) {
	_ = v.BindEnv("theme", "THEME")
	_ = v.BindEnv("framework", "FRAMEWORK")
	_ = v.BindEnv("enable_cache", "ENABLE_CACHE")
	_ = v.BindEnv("cache_size", "CACHE_SIZE")
	_ = v.BindEnv("verbose", "VERBOSE")
	_ = v.BindEnv("deploy_url", "DEPLOY_URL")
	_ = v.BindEnv("feedback_url", "FEEDBACK_URL")
	_ = v.BindEnv("service_config.base_url", "BASE_URL")
	_ = v.BindEnv("service_config.timeout", "REQUEST_TIMEOUT")
	_ = v.BindEnv("generation_config.step_delay", "STEP_DELAY")
	_ = v.BindEnv("generation_config.output_dir", "OUTPUT_DIR")
}

// bindFlags binds the CLI flags to configuration values.
func bindFlags(v *viper.Viper, rootCmd *cobra.Command) {
	flags := rootCmd.PersistentFlags()
	_ = v.BindPFlag("theme", flags.Lookup("theme"))
	_ = v.BindPFlag("framework", flags.Lookup("framework"))
	_ = v.BindPFlag("enable_cache", flags.Lookup("enable_cache"))
	_ = v.BindPFlag("verbose", flags.Lookup("verbose"))
	_ = v.BindPFlag("service_config.base_url", flags.Lookup("base_url"))
	_ = v.BindPFlag("service_config.timeout", flags.Lookup("timeout"))
	_ = v.BindPFlag("generation_config.step_delay", flags.Lookup("step_delay"))
	_ = v.BindPFlag("generation_config.output_dir", flags.Lookup("out"))
}

// InitFlags initializes the flags for the root command.
func InitFlags(rootCmd *cobra.Command) {
	// Use PersistentFlags so that these flags are available in all subcommands
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "Specifies the path to a configuration file (JSON or YAML) that contains all the settings for the application.")

	flags.String("theme", DefaultConfig.Theme, "Set the chroma theme used to render the AI summary (e.g., 'dracula', 'monokai', 'github').")
	flags.String("framework", DefaultConfig.Framework, fmt.Sprintf("Frontend framework hint sent with the project (%s).", strings.Join(models.SupportedFrameworks, ", ")))
	flags.Bool("enable_cache", DefaultConfig.EnableCache, "Enable or disable the in-memory analysis cache.")
	flags.Bool("verbose", DefaultConfig.Verbose, "Print debug logs of every request to stderr.")
	flags.String("base_url", DefaultConfig.ServiceConfig.BaseURL, "The base URL of the analysis and generation service.")
	flags.Duration("timeout", DefaultConfig.ServiceConfig.Timeout, "Timeout of a single request to the service.")
	flags.Duration("step_delay", DefaultConfig.GenerationConfig.StepDelay, "Delay between the steps of the generation progress display.")
	flags.String("out", DefaultConfig.GenerationConfig.OutputDir, "Directory where backend.zip is saved.")

	// Version flag
	rootCmd.Flags().BoolP("version", "v", false, "Specifies the version of the application.")
}

// GetConfigFileType returns the type of the configuration file based on its extension
func GetConfigFileType(filename string) string {
	if strings.HasSuffix(filename, ".json") {
		return "json"
	} else if strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml") {
		return "yaml"
	}
	return ""
}
