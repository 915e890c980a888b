package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultPMIDRoot  = "https://pubmed.ncbi.nlm.nih.gov"
	defaultPMCIDRoot = "https://www.ncbi.nlm.nih.gov/pmc/articles"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName          string `mapstructure:"app_name"`
	Env              string `mapstructure:"app_env"`
	LogLevel         string `mapstructure:"log_level"`
	PublishersFile   string `mapstructure:"publishers_file"`
	PubMedConfigFile string `mapstructure:"pubmed_config_file"`
	MetricsFile      string `mapstructure:"metrics_file"`
	Concurrency      int    `mapstructure:"concurrency"`

	Request RequestConfig `mapstructure:"request"`
	URLs    URLConfig     `mapstructure:"urls"`
}

// RequestConfig mirrors the [request] table of the PubMed config file.
type RequestConfig struct {
	Headers        map[string]string `mapstructure:"headers"`
	TimeoutSeconds float64           `mapstructure:"timeout"`
}

// URLConfig mirrors the [urls] table of the PubMed config file.
type URLConfig struct {
	PMIDRoot  string `mapstructure:"pmid_root"`
	PMCIDRoot string `mapstructure:"pmcid_root"`
}

// PubMed is the fetch and routing configuration handed to the crawler.
// It is a value type; Headers is copied on every call to Config.PubMed.
type PubMed struct {
	Headers   map[string]string
	Timeout   time.Duration
	PMIDRoot  string
	PMCIDRoot string
}

// PubMed returns the fetch settings as an independent value.
func (c *Config) PubMed() PubMed {
	return PubMed{
		Headers:   maps.Clone(c.Request.Headers),
		Timeout:   time.Duration(c.Request.TimeoutSeconds * float64(time.Second)),
		PMIDRoot:  strings.TrimRight(c.URLs.PMIDRoot, "/"),
		PMCIDRoot: strings.TrimRight(c.URLs.PMCIDRoot, "/"),
	}
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "pubmed-buddy")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("publishers_file", "")
	v.SetDefault("pubmed_config_file", "./configs/pubmed.toml")
	v.SetDefault("metrics_file", "")
	v.SetDefault("concurrency", 1)
	v.SetDefault("request.headers", map[string]string{})
	v.SetDefault("request.timeout", 5.0)
	v.SetDefault("urls.pmid_root", defaultPMIDRoot)
	v.SetDefault("urls.pmcid_root", defaultPMCIDRoot)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := readPubMedFile(v, v.GetString("pubmed_config_file")); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// readPubMedFile merges the TOML file at path. A missing file keeps the defaults.
func readPubMedFile(v *viper.Viper, path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat pubmed config: %w", err)
	}

	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read pubmed config %s: %w", path, err)
	}
	return nil
}

func (c *Config) validate() error {
	if c.Concurrency < 1 {
		return fmt.Errorf("invalid concurrency %d (must be at least 1)", c.Concurrency)
	}
	if c.Request.TimeoutSeconds <= 0 {
		return fmt.Errorf("invalid request.timeout (must be positive seconds)")
	}
	if strings.TrimSpace(c.URLs.PMIDRoot) == "" {
		return fmt.Errorf("urls.pmid_root is required")
	}
	if strings.TrimSpace(c.URLs.PMCIDRoot) == "" {
		return fmt.Errorf("urls.pmcid_root is required")
	}
	return nil
}
