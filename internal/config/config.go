package config

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/ordcodec/internal/protocol"
)

type CodecConfig struct {
	Strategy         string `toml:"strategy"`
	MaxDecodeEntries uint32 `toml:"max_decode_entries"`
	MaxCapacityHint  int    `toml:"max_capacity_hint"`
}

// DefaultCodecConfig mirrors protocol.DefaultLimits with iteration order.
func DefaultCodecConfig() CodecConfig {
	limits := protocol.DefaultLimits()
	return CodecConfig{
		Strategy:         string(protocol.ModeIteration),
		MaxDecodeEntries: limits.MaxEntries,
		MaxCapacityHint:  limits.MaxCapacityHint,
	}
}

func LoadCodecConfig(path string) (CodecConfig, error) {
	cfg := DefaultCodecConfig()
	if err := loadToml(path, &cfg); err != nil {
		return CodecConfig{}, err
	}
	if err := ValidateCodecConfig(cfg); err != nil {
		return CodecConfig{}, err
	}
	return cfg, nil
}

func loadToml(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	md, err := toml.Decode(string(data), out)
	if err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("config parse failed (%s): unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

func ValidateCodecConfig(cfg CodecConfig) error {
	if _, err := protocol.ParseMode(cfg.Strategy); err != nil {
		return fmt.Errorf("codec config strategy invalid: %w", err)
	}
	if cfg.MaxDecodeEntries == 0 {
		return fmt.Errorf("codec config max_decode_entries must be positive")
	}
	if cfg.MaxCapacityHint < 0 {
		return fmt.Errorf("codec config max_capacity_hint must not be negative")
	}
	if uint64(cfg.MaxCapacityHint) > math.MaxUint32 {
		return fmt.Errorf("codec config max_capacity_hint exceeds u32 range")
	}
	return nil
}

// Mode returns the configured ordering strategy.
func (c CodecConfig) Mode() (protocol.Mode, error) {
	return protocol.ParseMode(c.Strategy)
}

func (c CodecConfig) Limits() protocol.Limits {
	return protocol.Limits{
		MaxEntries:      c.MaxDecodeEntries,
		MaxCapacityHint: c.MaxCapacityHint,
	}
}

// Options returns codec construction options for this config.
func (c CodecConfig) Options() []protocol.Option {
	return []protocol.Option{protocol.WithLimits(c.Limits())}
}
