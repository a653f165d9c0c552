// Package config loads run settings from a YAML file, a .env file and
// GOBFD_ environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrInvalid is returned for settings that cannot drive a run
var ErrInvalid = errors.New("invalid configuration")

// EnvPrefix prefixes environment overrides, e.g. GOBFD_HATCHING_DENSITY2D
const EnvPrefix = "GOBFD"

// DefaultChain is the central girder of the sample bridge
var DefaultChain = []int{15, 24, 33, 42, 51, 60, 69, 78, 83}

// Hatching holds the stroke densities of the 2D and 3D diagrams
type Hatching struct {
	Density2D int `mapstructure:"density2d"`
	Density3D int `mapstructure:"density3d"`
}

// Scale holds the vertical exaggeration of the 3D diagrams
type Scale struct {
	Moment float64 `mapstructure:"moment"`
	Shear  float64 `mapstructure:"shear"`
}

// Config is one run of the tool
type Config struct {
	Results  string   `mapstructure:"results"`
	Output   string   `mapstructure:"output"`
	Chain    []int    `mapstructure:"chain"`
	Hatching Hatching `mapstructure:"hatching"`
	Scale    Scale    `mapstructure:"scale"`
	Top      int      `mapstructure:"top"`
	Geometry Geometry `mapstructure:"geometry"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("results", "")
	v.SetDefault("output", "output")
	v.SetDefault("chain", DefaultChain)
	v.SetDefault("hatching.density2d", 5)
	v.SetDefault("hatching.density3d", 8)
	v.SetDefault("scale.moment", 0.5)
	v.SetDefault("scale.shear", 2.0)
	v.SetDefault("top", 5)
}

// Default returns the built-in settings with the sample bridge geometry
func Default() *Config {
	return &Config{
		Output:   "output",
		Chain:    append([]int(nil), DefaultChain...),
		Hatching: Hatching{Density2D: 5, Density3D: 8},
		Scale:    Scale{Moment: 0.5, Shear: 2.0},
		Top:      5,
		Geometry: DefaultGeometry(),
	}
}

// Load reads the settings. A .env file in the working directory is applied
// to the environment first. With an empty path, gobfd.yaml is looked up in
// the working directory and the defaults are used when it is absent.
// Without a geometry block the sample bridge is used.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("gobfd")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if len(cfg.Geometry.Nodes) == 0 && len(cfg.Geometry.Members) == 0 {
		cfg.Geometry = DefaultGeometry()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings that every command relies on
func (c *Config) Validate() error {
	var problems []string
	if c.Output == "" {
		problems = append(problems, "output directory is empty")
	}
	if len(c.Chain) == 0 {
		problems = append(problems, "chain is empty")
	}
	if c.Hatching.Density2D < 0 {
		problems = append(problems, fmt.Sprintf("hatching.density2d is negative (%d)", c.Hatching.Density2D))
	}
	if c.Hatching.Density3D < 0 {
		problems = append(problems, fmt.Sprintf("hatching.density3d is negative (%d)", c.Hatching.Density3D))
	}
	if c.Top <= 0 {
		problems = append(problems, fmt.Sprintf("top must be positive (%d)", c.Top))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}
