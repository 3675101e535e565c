package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_ParseFormat(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		expect    Format
		expectErr bool
	}{
		{name: "text", input: "text", expect: FormatText},
		{name: "json upper", input: "JSON", expect: FormatJSON},
		{name: "rezi with space", input: " rezi ", expect: FormatRezi},
		{name: "unknown", input: "yaml", expectErr: true},
		{name: "blank", input: "", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual, err := ParseFormat(tc.input)

			if tc.expectErr {
				assert.Error(err)
				return
			}
			if !assert.NoError(err) {
				return
			}
			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_Config_FillDefaults(t *testing.T) {
	assert := assert.New(t)

	cfg := Config{Width: 120}.FillDefaults()

	assert.Equal("q0", cfg.StartLabel)
	assert.Equal("λ", cfg.EpsilonLabel)
	assert.Equal(120, cfg.Width)
	assert.Equal(FormatText, cfg.Format)
	assert.Equal("localhost:8080", cfg.Listen)
	assert.Equal(64, cfg.MaxStates)
	assert.Equal(5*time.Second, cfg.ConvertTimeout())
	assert.NoError(cfg.Validate())
}

func Test_Config_Validate(t *testing.T) {
	testCases := []struct {
		name      string
		mutate    func(cfg *Config)
		expectErr bool
	}{
		{name: "defaults", mutate: func(cfg *Config) {}},
		{name: "port only listen", mutate: func(cfg *Config) { cfg.Listen = ":6001" }},
		{name: "comma in start", mutate: func(cfg *Config) { cfg.StartLabel = "q0,q1" }, expectErr: true},
		{name: "narrow", mutate: func(cfg *Config) { cfg.Width = 5 }, expectErr: true},
		{name: "bad format", mutate: func(cfg *Config) { cfg.Format = "xml" }, expectErr: true},
		{name: "listen without port", mutate: func(cfg *Config) { cfg.Listen = "localhost" }, expectErr: true},
		{name: "listen with bad port", mutate: func(cfg *Config) { cfg.Listen = "localhost:http" }, expectErr: true},
		{name: "negative max states", mutate: func(cfg *Config) { cfg.MaxStates = -1 }, expectErr: true},
		{name: "negative timeout", mutate: func(cfg *Config) { cfg.ConvertTimeoutMillis = -1 }, expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			cfg := Config{}.FillDefaults()
			tc.mutate(&cfg)

			err := cfg.Validate()

			if tc.expectErr {
				assert.Error(err)
			} else {
				assert.NoError(err)
			}
		})
	}
}

func Test_Load(t *testing.T) {
	testCases := []struct {
		name      string
		content   string
		expect    Config
		expectErr bool
	}{
		{
			name: "all keys",
			content: `start = "s0"
epsilon_label = "eps"
width = 100
output_format = "json"
listen = ":9000"
max_states = 10
convert_timeout_ms = 250
`,
			expect: Config{
				StartLabel:           "s0",
				EpsilonLabel:         "eps",
				Width:                100,
				Format:               FormatJSON,
				Listen:               ":9000",
				MaxStates:            10,
				ConvertTimeoutMillis: 250,
			},
		},
		{
			name:    "some keys",
			content: `width = 40`,
			expect:  Config{Width: 40},
		},
		{
			name:      "unknown key",
			content:   `colour = "blue"`,
			expectErr: true,
		},
		{
			name:      "not toml",
			content:   `width = `,
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// setup
			assert := assert.New(t)
			path := filepath.Join(t.TempDir(), "nfa2dfa.toml")
			if err := os.WriteFile(path, []byte(tc.content), 0660); err != nil {
				t.Fatalf("could not write config file: %v", err)
			}

			// execute
			actual, err := Load(path)

			// assert
			if tc.expectErr {
				assert.Error(err)
				return
			}
			if !assert.NoError(err) {
				return
			}
			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_Config_WithEnv(t *testing.T) {
	assert := assert.New(t)
	t.Setenv(EnvListen, ":7070")

	cfg := Config{Listen: "localhost:8080"}.WithEnv()

	assert.Equal(":7070", cfg.Listen)
}
