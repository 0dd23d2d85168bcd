package pulsecore

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig is the YAML shape of a pulseboard config file. Durations are
// strings in Go duration syntax ("300ms", "2s").
type fileConfig struct {
	Port     int     `yaml:"port"`
	Latency  string  `yaml:"latency"`
	FailRate float64 `yaml:"fail_rate"`
	SeedFile string  `yaml:"seed_file"`
	Verbose  bool    `yaml:"verbose"`
}

// applyFile reads a YAML config file and fills in any Config field still at
// its zero value. Flags always win over the file.
func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}

	if c.Port == 0 {
		c.Port = fc.Port
	}
	if c.Latency == 0 && fc.Latency != "" {
		d, err := time.ParseDuration(fc.Latency)
		if err != nil {
			return fmt.Errorf("parsing latency in %s: %w", path, err)
		}
		if d < 0 {
			return fmt.Errorf("latency in %s must not be negative", path)
		}
		c.Latency = d
	}
	if c.FailRate == 0 {
		if fc.FailRate < 0 || fc.FailRate > 1 {
			return fmt.Errorf("fail_rate in %s must be between 0.0 and 1.0", path)
		}
		c.FailRate = fc.FailRate
	}
	if c.SeedFile == "" {
		c.SeedFile = fc.SeedFile
	}
	if !c.Verbose {
		c.Verbose = fc.Verbose
	}
	return nil
}
