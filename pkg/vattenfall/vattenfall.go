// Package vattenfall renders a photo portfolio as a year/month timeline over a waterfall grid.
package vattenfall

import (
	"errors"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"k8s.io/klog/v2"
)

// Config holds configuration for vattenfall.
type Config struct {
	Manifest     string
	OutDir       string
	AssetsDir    string
	Collection   string
	Description  string
	Copyright    string
	Addr         string
	BaseURL      string
	DefaultWidth int
}

var defaults = map[string]any{
	"manifest":      "photos.json",
	"title":         "vattenfall 📸",
	"description":   "",
	"copyright":     "© ALL RIGHTS RESERVED",
	"addr":          "localhost:12800",
	"default_width": 1280,
}

// LoadConfig reads an optional .env file, an optional config file and VATTENFALL_* variables.
// An empty path searches the working directory for vattenfall.yaml.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		klog.V(1).Infof("no .env loaded: %v", err)
	}

	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvPrefix("VATTENFALL")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("vattenfall")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &nf) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	return &Config{
		Manifest:     v.GetString("manifest"),
		OutDir:       v.GetString("out"),
		AssetsDir:    v.GetString("assets"),
		Collection:   v.GetString("title"),
		Description:  v.GetString("description"),
		Copyright:    v.GetString("copyright"),
		Addr:         v.GetString("addr"),
		BaseURL:      v.GetString("base_url"),
		DefaultWidth: v.GetInt("default_width"),
	}, nil
}
