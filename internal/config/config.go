// Package config loads training runs from TOML files.
package config

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"

	"github.com/born-ml/densenet/internal/nn"
)

// Config describes one training run: the network and the stages it is
// trained through.
type Config struct {
	BatchSize int       `toml:"batch_size"`
	Seed      int64     `toml:"seed"` // 0 = time seeded
	Momentum  float64   `toml:"momentum"`
	Normalize Normalize `toml:"normalize"`
	Layers    []Layer   `toml:"layers"`
	Stages    []Stage   `toml:"stages"`
}

// Normalize lists the per-feature divisors. Empty disables normalization.
type Normalize struct {
	Scales []float64 `toml:"scales"`
}

// Layer is one entry of the topology.
type Layer struct {
	Inputs     int           `toml:"inputs"`
	Outputs    int           `toml:"outputs"`
	Activation nn.Activation `toml:"activation"`
}

// Stage is a block of epochs at a fixed learning rate.
type Stage struct {
	Epochs       int     `toml:"epochs"`
	LearningRate float64 `toml:"learning_rate"`
}

// Default returns the reference setup: a 4→10→6→1 sigmoid network trained
// in five stages of decreasing learning rate.
func Default() Config {
	return Config{
		BatchSize: 20,
		Normalize: Normalize{Scales: []float64{30, 10, 30, 10}},
		Layers: []Layer{
			{Inputs: 4, Outputs: 10, Activation: nn.Sigmoid},
			{Inputs: 10, Outputs: 6, Activation: nn.Sigmoid},
			{Inputs: 6, Outputs: 1, Activation: nn.Sigmoid},
		},
		Stages: []Stage{
			{Epochs: 100, LearningRate: 0.25},
			{Epochs: 500, LearningRate: 0.25},
			{Epochs: 500, LearningRate: 0.15},
			{Epochs: 500, LearningRate: 0.15},
			{Epochs: 500, LearningRate: 0.05},
		},
	}
}

// Load reads and validates the configuration file at path.
func Load(path string) (Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return finish(cfg, md)
}

// Read decodes and validates a configuration from r.
func Read(r io.Reader) (Config, error) {
	var cfg Config
	md, err := toml.DecodeReader(r, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return finish(cfg, md)
}

func finish(cfg Config, md toml.MetaData) (Config, error) {
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("unknown key %q: %w", undecoded[0].String(), nn.ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Write encodes cfg as TOML.
func (c Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// Validate checks the configuration without building anything.
func (c Config) Validate() error {
	if c.BatchSize < 1 {
		return fmt.Errorf("batch_size %d: %w", c.BatchSize, nn.ErrInvalidConfig)
	}
	if len(c.Layers) == 0 {
		return fmt.Errorf("no layers: %w", nn.ErrTopology)
	}
	for i, l := range c.Layers {
		if l.Inputs < 1 || l.Outputs < 1 {
			return fmt.Errorf("layer %d: %dx%d: %w", i, l.Inputs, l.Outputs, nn.ErrInvalidDimension)
		}
		if !l.Activation.Valid() {
			return fmt.Errorf("layer %d: %w", i, nn.ErrUnknownActivation)
		}
		if i > 0 && l.Inputs != c.Layers[i-1].Outputs {
			return fmt.Errorf("layer %d takes %d inputs, layer %d gives %d: %w",
				i, l.Inputs, i-1, c.Layers[i-1].Outputs, nn.ErrTopology)
		}
	}
	if len(c.Stages) == 0 {
		return fmt.Errorf("no stages: %w", nn.ErrInvalidConfig)
	}
	for i, s := range c.Stages {
		if s.Epochs < 1 || s.LearningRate <= 0 {
			return fmt.Errorf("stage %d: epochs %d, learning_rate %g: %w",
				i, s.Epochs, s.LearningRate, nn.ErrInvalidConfig)
		}
	}
	if err := c.normalizer().Validate(c.Layers[0].Inputs); err != nil {
		return err
	}
	return nil
}

func (c Config) normalizer() *nn.Normalizer {
	if len(c.Normalize.Scales) == 0 {
		return nil
	}
	scales := make([]float64, len(c.Normalize.Scales))
	copy(scales, c.Normalize.Scales)
	return &nn.Normalizer{Scales: scales}
}

// Network converts the configuration into an nn.Config.
func (c Config) Network() nn.Config {
	layers := make([]nn.LayerSpec, len(c.Layers))
	for i, l := range c.Layers {
		layers[i] = nn.LayerSpec{Inputs: l.Inputs, Outputs: l.Outputs, Activation: l.Activation}
	}
	return nn.Config{
		BatchSize:  c.BatchSize,
		Layers:     layers,
		Seed:       c.Seed,
		Momentum:   c.Momentum,
		Normalizer: c.normalizer(),
	}
}

// Epochs returns the total number of epochs over all stages.
func (c Config) Epochs() int {
	n := 0
	for _, s := range c.Stages {
		n += s.Epochs
	}
	return n
}
