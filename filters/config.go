package filters

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the thresholds consumed by the gate pipeline. The defaults
// were calibrated against the historical draw file; each comment records the
// observed capture rate the setting preserves.
type Config struct {
	// Odd/even mix; 2:3 or 3:2 covers about two thirds of draws.
	OddMin int `yaml:"odd_min"`
	OddMax int `yaml:"odd_max"`

	// Low-half count with the same 2:3 / 3:2 shape.
	LowMin int `yaml:"low_min"`
	LowMax int `yaml:"low_max"`
	// Split is the low/high boundary; 0 means the default of 19.
	Split int `yaml:"split"`

	// Sum window capturing ~93.6% of draws.
	SumMin int `yaml:"sum_min"`
	SumMax int `yaml:"sum_max"`

	// Minimum distinct decades; 3+ covers ~85.4%.
	DecadesMin int `yaml:"decades_min"`

	// Longest consecutive run; <=2 covers ~96.1%.
	ConsecutiveMax int `yaml:"consecutive_max"`

	// Prime count window; 1-3 covers ~83.4%.
	PrimeMin int `yaml:"prime_min"`
	PrimeMax int `yaml:"prime_max"`

	// AC value window; 4-6 covers ~94% (6 is the max for five numbers).
	ACMin int `yaml:"ac_min"`
	ACMax int `yaml:"ac_max"`

	// Gap constraints: a min gap of 1 forbids duplicates; the span window
	// rejects tightly clustered and fully stretched combinations.
	MinGapFloor int `yaml:"min_gap_floor"`
	SpanMin     int `yaml:"span_min"`
	SpanMax     int `yaml:"span_max"`

	// Carryover from the previous draw; 0-2 is typical.
	SameLastMax int `yaml:"same_last_max"`
}

// DefaultConfig returns the calibrated thresholds.
func DefaultConfig() Config {
	return Config{
		OddMin:         2,
		OddMax:         3,
		LowMin:         2,
		LowMax:         3,
		Split:          DefaultLowHighSplit,
		SumMin:         50,
		SumMax:         140,
		DecadesMin:     3,
		ConsecutiveMax: 2,
		PrimeMin:       1,
		PrimeMax:       3,
		ACMin:          4,
		ACMax:          6,
		MinGapFloor:    1,
		SpanMin:        20,
		SpanMax:        38,
		SameLastMax:    2,
	}
}

func (c Config) split() int {
	if c.Split > 0 {
		return c.Split
	}
	return DefaultLowHighSplit
}

// LoadConfig reads threshold overrides in YAML form. Fields not present
// keep their defaults.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	data, err := io.ReadAll(r)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing filter config: %w", err)
	}
	return cfg, nil
}

// LoadConfigFile is LoadConfig over a file path.
func LoadConfigFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return DefaultConfig(), err
	}
	defer f.Close()
	return LoadConfig(f)
}
