package config

import (
	"os"

	"gopkg.in/yaml.v2"
)

type Config struct {
	App struct {
		Ver    string `yaml:"ver"`
		Appid  string `yaml:"appid"`
		Appkey string `yaml:"appkey"`
	} `yaml:"app"`

	Env struct {
		ApiEndpoint string `yaml:"api_endpoint"`
		Debug       string `yaml:"debug"`
	} `yaml:"env"`

	Swap struct {
		DebounceMs      int    `yaml:"debounce_ms"`
		SlippagePercent string `yaml:"slippage_percent"`
		TokenCacheMin   int    `yaml:"token_cache_min"`
	} `yaml:"swap"`
}

var YmlConfig *Config

func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var config Config
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, err
	}

	applyDefaults(&config)

	return &config, nil
}

func applyDefaults(config *Config) {
	if config.Swap.DebounceMs <= 0 {
		config.Swap.DebounceMs = 450
	}
	if config.Swap.SlippagePercent == "" {
		config.Swap.SlippagePercent = "0.5"
	}
	if config.Swap.TokenCacheMin <= 0 {
		config.Swap.TokenCacheMin = 5
	}
}

func init() {
	var confFilePath string
	if configFilePathFromEnv := os.Getenv("SWAPKIT_APP_ENV"); configFilePathFromEnv != "" {
		confFilePath = configFilePathFromEnv
	} else {
		confFilePath = "./prod.yml"
	}
	cfg, err := LoadConfig(confFilePath)
	if err != nil {
		// library consumers and tests run without a config file
		cfg = &Config{}
		cfg.Env.ApiEndpoint = os.Getenv("SWAPKIT_API_ENDPOINT")
		applyDefaults(cfg)
	}
	YmlConfig = cfg
}
