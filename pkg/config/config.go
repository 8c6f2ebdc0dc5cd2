package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/vscode-server-fetcher/pkg/platform"
)

// EnvPrefix prefixes the environment variables that override file values,
// e.g. VSCODE_SERVER_FETCH_DIRECTORY.
const EnvPrefix = "VSCODE_SERVER_FETCH"

type Config struct {
	APIURL    string            `yaml:"api_url"`
	Project   string            `yaml:"project"`
	UpdateURL string            `yaml:"update_url"`
	Directory string            `yaml:"directory"`
	Platforms map[string]string `yaml:"platforms"`
	Platform  string            `yaml:"-"`
	Output    string            `yaml:"-"`
	Token     string            `yaml:"-"`
	Verbose   bool              `yaml:"-"`
}

func Default() *Config {
	platforms := make(map[string]string)
	for name, artifact := range platform.Default() {
		platforms[name] = string(artifact)
	}
	return &Config{
		APIURL:    "https://api.github.com/",
		Project:   "microsoft/vscode",
		UpdateURL: "https://update.code.visualstudio.com",
		Directory: "out",
		Platforms: platforms,
		Platform:  platform.All,
		Output:    "table",
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	defaults := cfg.Platforms
	cfg.Platforms = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	// A platforms table in the file replaces the defaults entirely.
	if cfg.Platforms == nil {
		cfg.Platforms = defaults
	}
	return cfg, nil
}

// ApplyEnv overrides file values with EnvPrefix_* environment variables.
func ApplyEnv(cfg *Config) *Config {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if s := v.GetString("api_url"); s != "" {
		cfg.APIURL = s
	}
	if s := v.GetString("project"); s != "" {
		cfg.Project = s
	}
	if s := v.GetString("update_url"); s != "" {
		cfg.UpdateURL = s
	}
	if s := v.GetString("directory"); s != "" {
		cfg.Directory = s
	}
	return cfg
}

// MergeFlags overrides cfg with every flag the user set explicitly.
func MergeFlags(cfg *Config, flags *pflag.FlagSet) *Config {
	if v, err := flags.GetString("directory"); err == nil && flags.Changed("directory") {
		cfg.Directory = v
	}
	if v, err := flags.GetString("platform"); err == nil && flags.Changed("platform") {
		cfg.Platform = v
	}
	if v, err := flags.GetString("output"); err == nil && flags.Changed("output") {
		cfg.Output = v
	}
	if v, err := flags.GetString("project"); err == nil && flags.Changed("project") {
		cfg.Project = v
	}
	if v, err := flags.GetString("api-url"); err == nil && flags.Changed("api-url") {
		cfg.APIURL = v
	}
	if v, err := flags.GetString("github-token"); err == nil && v != "" {
		cfg.Token = v
	}
	if v, err := flags.GetBool("verbose"); err == nil {
		cfg.Verbose = v
	}
	return cfg
}

// PlatformSet returns the configured platform table.
func (c *Config) PlatformSet() platform.Set {
	set := make(platform.Set, len(c.Platforms))
	for name, artifact := range c.Platforms {
		set[name] = platform.Artifact(artifact)
	}
	return set
}
