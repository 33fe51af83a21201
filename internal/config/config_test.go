package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/danmuck/ordcodec/internal/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "codec.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadCodecConfigAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `strategy = "canonical"`)
	cfg, err := LoadCodecConfig(path)
	require.NoError(t, err)

	mode, err := cfg.Mode()
	require.NoError(t, err)
	assert.Equal(t, protocol.ModeCanonical, mode)
	assert.Equal(t, protocol.DefaultLimits(), cfg.Limits())
}

func TestLoadCodecConfigLimits(t *testing.T) {
	path := writeConfig(t, "strategy = \"insertion\"\nmax_decode_entries = 10\nmax_capacity_hint = 4\n")
	cfg, err := LoadCodecConfig(path)
	require.NoError(t, err)
	assert.Equal(t, protocol.Limits{MaxEntries: 10, MaxCapacityHint: 4}, cfg.Limits())

	mode, err := cfg.Mode()
	require.NoError(t, err)
	assert.Equal(t, protocol.ModeIteration, mode)
	assert.Len(t, cfg.Options(), 1)
}

func TestLoadCodecConfigRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, "strategy = \"canonical\"\nmax_entries = 3\n")
	_, err := LoadCodecConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_entries")
}

func TestLoadCodecConfigValidation(t *testing.T) {
	cases := map[string]string{
		"strategy":  `strategy = "shuffled"`,
		"entries":   `max_decode_entries = 0`,
		"hint":      `max_capacity_hint = -1`,
		"malformed": `strategy = `,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadCodecConfig(writeConfig(t, body))
			require.Error(t, err)
		})
	}

	_, err := LoadCodecConfig(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	err = ValidateCodecConfig(CodecConfig{Strategy: "nope", MaxDecodeEntries: 1})
	assert.True(t, errors.Is(err, protocol.ErrUnknownMode))
}

func TestTemplateLoadsCleanly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "codec.toml")
	require.NoError(t, WriteTemplate(path, "codec", false))
	require.Error(t, WriteTemplate(path, "codec", false), "must not overwrite")
	require.NoError(t, WriteTemplate(path, "codec", true))

	cfg, err := LoadCodecConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultCodecConfig(), cfg)

	_, err = Template("ghost")
	require.Error(t, err)
}
