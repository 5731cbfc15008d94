package config

import "github.com/spf13/viper"

// Config holds all runtime configuration for an autocritique session.
// Values are populated from .autocritique.yaml, AUTOCRITIQUE_* env vars,
// and CLI flags.
type Config struct {
	Model            string `mapstructure:"model"`
	BaseURL          string `mapstructure:"base_url"`
	MaxRounds        int    `mapstructure:"max_rounds"`
	DelayMs          int    `mapstructure:"delay_ms"`
	GenerationPrompt string `mapstructure:"generation_prompt"`
	CritiquePrompt   string `mapstructure:"critique_prompt"`
	TraceDir         string `mapstructure:"trace_dir"`
	NoVerify         bool   `mapstructure:"no_verify"`
	Verbose          bool   `mapstructure:"verbose"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() Config {
	viper.SetDefault("model", "llama-3.3-70b-versatile")
	viper.SetDefault("base_url", "")
	viper.SetDefault("max_rounds", 5)
	viper.SetDefault("delay_ms", 300)
	viper.SetDefault("generation_prompt", "")
	viper.SetDefault("critique_prompt", "")
	viper.SetDefault("trace_dir", "")
	viper.SetDefault("no_verify", false)
	viper.SetDefault("verbose", false)

	var cfg Config
	_ = viper.Unmarshal(&cfg)
	return cfg
}
