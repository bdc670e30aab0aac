package hashgrid

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/hupe1980/hashgrid/table"
)

// Defaults follow the published multiresolution hash encoding setup.
const (
	DefaultLevels           = 16
	DefaultFeaturesPerLevel = 2
	DefaultLog2HashmapSize  = 19
	DefaultBaseResolution   = 16
	DefaultFinestResolution = 512
	DefaultSeed             = 1
	DefaultInitScale        = 1e-4

	// MaxResolution bounds the finest grid so corner coordinates stay exact
	// in float32 cell arithmetic.
	MaxResolution = 1 << 20
)

// Config holds the encoder hyperparameters.
type Config struct {
	// Levels is the number of resolution levels (L).
	Levels int `json:"n_levels"`
	// FeaturesPerLevel is the feature vector length per level (F).
	FeaturesPerLevel int `json:"n_features_per_level"`
	// Log2HashmapSize is log2 of the per-level table size (T = 2^Log2HashmapSize).
	Log2HashmapSize int `json:"log2_hashmap_size"`
	// BaseResolution is the coarsest grid resolution (Nmin).
	BaseResolution float64 `json:"base_resolution"`
	// FinestResolution is the finest grid resolution (Nmax).
	FinestResolution float64 `json:"finest_resolution"`
	// Seed drives table initialisation.
	Seed int64 `json:"seed"`
	// InitScale is the half-width of the uniform table initialisation.
	InitScale float32 `json:"init_scale"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Levels:           DefaultLevels,
		FeaturesPerLevel: DefaultFeaturesPerLevel,
		Log2HashmapSize:  DefaultLog2HashmapSize,
		BaseResolution:   DefaultBaseResolution,
		FinestResolution: DefaultFinestResolution,
		Seed:             DefaultSeed,
		InitScale:        DefaultInitScale,
	}
}

// LoadConfig decodes a JSON configuration. Missing fields keep their defaults.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration and returns a *ConfigError on failure.
func (c Config) Validate() error {
	switch {
	case c.Levels < 1:
		return &ConfigError{Field: "n_levels", Value: c.Levels, Reason: "must be >= 1"}
	case c.FeaturesPerLevel < 1:
		return &ConfigError{Field: "n_features_per_level", Value: c.FeaturesPerLevel, Reason: "must be >= 1"}
	case c.Log2HashmapSize < 1 || c.Log2HashmapSize > table.MaxLog2Rows:
		return &ConfigError{Field: "log2_hashmap_size", Value: c.Log2HashmapSize, Reason: fmt.Sprintf("must be in [1, %d]", table.MaxLog2Rows)}
	case !finite(c.BaseResolution) || c.BaseResolution <= 0:
		return &ConfigError{Field: "base_resolution", Value: c.BaseResolution, Reason: "must be finite and > 0"}
	case !finite(c.FinestResolution) || c.FinestResolution < c.BaseResolution:
		return &ConfigError{Field: "finest_resolution", Value: c.FinestResolution, Reason: "must be finite and >= base_resolution"}
	case c.FinestResolution > MaxResolution:
		return &ConfigError{Field: "finest_resolution", Value: c.FinestResolution, Reason: fmt.Sprintf("must be <= %d", MaxResolution)}
	case !finite(float64(c.InitScale)) || c.InitScale < 0:
		return &ConfigError{Field: "init_scale", Value: c.InitScale, Reason: "must be finite and >= 0"}
	}
	return nil
}

// OutDim returns the encoded vector length L*F.
func (c Config) OutDim() int {
	return c.Levels * c.FeaturesPerLevel
}

// Growth returns the per-level resolution factor
// exp((ln Nmax - ln Nmin) / (L-1)). A single level has growth 1.
func (c Config) Growth() float64 {
	if c.Levels <= 1 {
		return 1
	}
	return math.Exp((math.Log(c.FinestResolution) - math.Log(c.BaseResolution)) / float64(c.Levels-1))
}

// Resolutions returns floor(Nmin * growth^i) for every level, at least 1.
func (c Config) Resolutions() []int {
	b := c.Growth()
	res := make([]int, c.Levels)
	for i := range res {
		r := int(math.Floor(c.BaseResolution * math.Pow(b, float64(i))))
		res[i] = max(r, 1)
	}
	return res
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
