// Package config loads comicview settings with viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Keys understood in .comicview.yaml and as COMICVIEW_* environment
// variables (dots become underscores).
const (
	KeyName            = "name"
	KeyDataset         = "dataset"
	KeyStoreBackend    = "store.backend"
	KeyStorePath       = "store.path"
	KeyLocation        = "location"
	KeyMediaRoot       = "media.root"
	KeyPrecacheWorkers = "precache.workers"
	KeyPrecacheBytes   = "precache.bytes"
	KeyTitleFormat     = "format.title"
	KeyListFormat      = "format.list"
	KeyLogLevel        = "loglevel"
)

// Config is the resolved configuration.
type Config struct {
	Name            string `json:"name" yaml:"name"`
	Dataset         string `json:"dataset" yaml:"dataset"`
	StoreBackend    string `json:"storeBackend" yaml:"storeBackend"`
	StorePath       string `json:"storePath" yaml:"storePath"`
	Location        string `json:"location" yaml:"location"`
	MediaRoot       string `json:"mediaRoot" yaml:"mediaRoot"`
	PrecacheWorkers int    `json:"precacheWorkers" yaml:"precacheWorkers"`
	PrecacheBytes   int64  `json:"precacheBytes" yaml:"precacheBytes"`
	TitleFormat     string `json:"titleFormat" yaml:"titleFormat"`
	ListFormat      string `json:"listFormat" yaml:"listFormat"`
	LogLevel        string `json:"logLevel" yaml:"logLevel"`

	// File is the config file that was read, if any.
	File string `json:"file,omitempty" yaml:"file,omitempty"`
}

// BasePath is where the session store lives.
func (c *Config) BasePath() string { return c.StorePath }

// Backend names the session store implementation.
func (c *Config) Backend() string { return c.StoreBackend }

// SetDefaults registers defaults on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyName, "comic")
	v.SetDefault(KeyDataset, "resource/db.json")
	v.SetDefault(KeyStoreBackend, "disk")
	v.SetDefault(KeyStorePath, "~/.comicview.db")
	v.SetDefault(KeyLocation, "")
	v.SetDefault(KeyMediaRoot, "comics/")
	v.SetDefault(KeyPrecacheWorkers, 2)
	v.SetDefault(KeyPrecacheBytes, 32<<20)
	v.SetDefault(KeyTitleFormat, "%date% - %title%")
	v.SetDefault(KeyListFormat, "%episode% %title%")
	v.SetDefault(KeyLogLevel, "info")
}

// Load reads .comicview.{yaml,json,...} from $COMICVIEW_CONFIG_PATH, the
// working directory or the home directory, then applies COMICVIEW_*
// environment overrides. A missing config file is not an error.
func Load(v *viper.Viper) (*Config, error) {
	if v == nil {
		v = viper.GetViper()
	}
	SetDefaults(v)
	v.SetConfigName(".comicview")
	v.SetEnvPrefix("COMICVIEW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if override := os.Getenv("COMICVIEW_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}
	return FromViper(v)
}

// FromViper resolves a Config from already populated settings.
func FromViper(v *viper.Viper) (*Config, error) {
	c := &Config{
		Name:            v.GetString(KeyName),
		Dataset:         v.GetString(KeyDataset),
		StoreBackend:    v.GetString(KeyStoreBackend),
		StorePath:       v.GetString(KeyStorePath),
		Location:        v.GetString(KeyLocation),
		MediaRoot:       v.GetString(KeyMediaRoot),
		PrecacheWorkers: v.GetInt(KeyPrecacheWorkers),
		PrecacheBytes:   v.GetInt64(KeyPrecacheBytes),
		TitleFormat:     v.GetString(KeyTitleFormat),
		ListFormat:      v.GetString(KeyListFormat),
		LogLevel:        v.GetString(KeyLogLevel),
		File:            v.ConfigFileUsed(),
	}
	if c.Name == "" {
		return nil, errors.New("config: name must not be empty")
	}
	var err error
	for _, p := range []*string{&c.Dataset, &c.StorePath, &c.Location, &c.MediaRoot} {
		if *p, err = homedir.Expand(*p); err != nil {
			return nil, fmt.Errorf("config: expand path: %w", err)
		}
	}
	if c.Location == "" {
		c.Location = c.StorePath + ".location"
	}
	if c.PrecacheWorkers < 0 {
		c.PrecacheWorkers = 0
	}
	return c, nil
}
