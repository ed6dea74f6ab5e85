package main

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gogpu/drawing/filter"
)

// Config is the resolved command configuration. Values come from flags,
// INKRENDER_* environment variables and an optional config file, in that
// order of precedence.
type Config struct {
	Output        string         `mapstructure:"output"`
	Scale         float64        `mapstructure:"scale"`
	Outline       bool           `mapstructure:"outline"`
	NoFilters     bool           `mapstructure:"no_filters"`
	FilterQuality filter.Quality `mapstructure:"filter_quality"`
	CacheBudget   int            `mapstructure:"cache_budget"`
	Workers       int            `mapstructure:"workers"`
	LogLevel      string         `mapstructure:"log_level"`
	Watch         bool           `mapstructure:"watch"`
	Debounce      time.Duration  `mapstructure:"debounce"`
}

var boundFlags = []string{
	"output", "scale", "outline", "no_filters", "filter_quality",
	"cache_budget", "workers", "log_level", "watch", "debounce",
}

func addFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP("output", "o", "", "output PNG file (default: scene name with .png)")
	f.Float64P("scale", "s", 1, "device pixels per user unit")
	f.BoolP("outline", "", false, "render outlines only")
	f.BoolP("no_filters", "", false, "skip filter effects")
	f.StringP("filter_quality", "", "best", "filter quality: best, better, normal, worse, worst")
	f.IntP("cache_budget", "", 64<<20, "item cache budget in bytes")
	f.IntP("workers", "", 0, "pixel workers (0 = GOMAXPROCS)")
	f.StringP("log_level", "", "warn", "log level: debug, info, warn, error")
	f.BoolP("watch", "w", false, "re-render when the scene file changes")
	f.DurationP("debounce", "", 300*time.Millisecond, "delay before re-rendering in watch mode")
	f.StringP("config", "c", "", "config file (yaml, toml or json)")
}

// stringToQualityHookFunc decodes quality names into filter.Quality.
func stringToQualityHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf(filter.Quality(0)) {
			return data, nil
		}
		switch strings.ToLower(data.(string)) {
		case "best", "":
			return filter.QualityBest, nil
		case "better":
			return filter.QualityBetter, nil
		case "normal":
			return filter.QualityNormal, nil
		case "worse":
			return filter.QualityWorse, nil
		case "worst":
			return filter.QualityWorst, nil
		}
		return nil, fmt.Errorf("unknown filter quality %q", data)
	}
}

// loadConfig resolves the configuration for cmd. cmd may be nil in tests,
// in which case only the environment and the config file are read.
func loadConfig(cmd *cobra.Command, configFile string) (Config, error) {
	v := viper.NewWithOptions(viper.WithDecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		stringToQualityHookFunc(),
	)))
	v.SetEnvPrefix("INKRENDER")
	v.AutomaticEnv()

	v.SetDefault("scale", 1.0)
	v.SetDefault("filter_quality", "best")
	v.SetDefault("cache_budget", 64<<20)
	v.SetDefault("log_level", "warn")
	v.SetDefault("debounce", "300ms")
	// AutomaticEnv only finds keys viper already knows.
	for _, k := range boundFlags {
		_ = v.BindEnv(k)
	}

	if cmd != nil {
		for _, name := range boundFlags {
			_ = v.BindPFlag(name, cmd.Flags().Lookup(name))
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			var notFound *os.PathError
			if errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("config file %s not found", configFile)
			}
			return Config{}, fmt.Errorf("error reading config file %s: %w", configFile, err)
		}
	}

	var conf Config
	if err := v.Unmarshal(&conf); err != nil {
		return Config{}, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if conf.Scale <= 0 {
		return Config{}, fmt.Errorf("scale must be positive, got %v", conf.Scale)
	}
	return conf, nil
}
