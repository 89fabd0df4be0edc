package cli

import (
	"context"
	"maps"
	"strings"
	"testing"

	"github.com/alecthomas/kong"

	"github.com/ardnew/dataindex/value"
)

const testConfig = `
<config type="container">
  <log-level type="string">debug</log-level>
  <log_format type="string">json</log_format>
  <depth type="int">3</depth>
  <ratio type="float">0.5</ratio>
  <bounds type="vecfloat" dim="2">1.5 2</bounds>
  <nested type="container">
    <ignored type="string">x</ignored>
  </nested>
</config>
<other type="container">
  <log-level type="string">error</log-level>
</other>
`

func loadConfig(t *testing.T, text, name string) config {
	t.Helper()

	r, err := resolve(context.Background(), name)(strings.NewReader(text))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	cfg, ok := r.(config)
	if !ok {
		t.Fatalf("resolver type = %T, want config", r)
	}

	return cfg
}

func TestResolveConfigContainer(t *testing.T) {
	cfg := loadConfig(t, testConfig, "config")

	want := config{
		"log-level":  "debug",
		"log_format": "json",
		"depth":      "3",
		"ratio":      "0.5",
		"bounds":     "1.5,2",
	}

	if !maps.Equal(cfg, want) {
		t.Errorf("config = %v, want %v", cfg, want)
	}
}

func TestResolveOtherContainer(t *testing.T) {
	cfg := loadConfig(t, testConfig, "other")

	if got := cfg["log-level"]; got != "error" {
		t.Errorf("log-level = %v, want error", got)
	}
}

func TestResolveUnusableInput(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"malformed", `<config type="container"><a type="int>1</a></config>`},
		{"missing container", `<other type="container"/>`},
		{"not a container", `<config type="string">x</config>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if cfg := loadConfig(t, tt.text, "config"); len(cfg) != 0 {
				t.Errorf("config = %v, want empty", cfg)
			}
		})
	}
}

func TestConfigResolveFlagNames(t *testing.T) {
	cfg := config{
		"log-level":  "debug",
		"log_format": "json",
	}

	tests := []struct {
		flag string
		want any
	}{
		{"log-level", "debug"},
		{"log-format", "json"},
		{"log-caller", nil},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			flag := &kong.Flag{Value: &kong.Value{Name: tt.flag}}

			got, err := cfg.Resolve(nil, nil, flag)
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}

			if got != tt.want {
				t.Errorf("Resolve(%q) = %v, want %v", tt.flag, got, tt.want)
			}
		})
	}
}

func TestFlagString(t *testing.T) {
	tests := []struct {
		name string
		v    value.Value
		want string
		ok   bool
	}{
		{"int", value.NewInt(-7), "-7", true},
		{"float", value.NewFloat(2.25), "2.25", true},
		{"string", value.NewString("  text "), "text", true},
		{"vecfloat", value.NewVecFloat(1, 2.5, -3), "1,2.5,-3", true},
		{"container", value.NewContainer("a"), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := flagString(tt.v)
			if got != tt.want || ok != tt.ok {
				t.Errorf("flagString = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestResolverAppliesToParser(t *testing.T) {
	var cli struct {
		LogLevel  string `default:"info"`
		LogFormat string `default:"text"`
		Depth     int    `default:"1"`
	}

	parser, err := kong.New(&cli,
		kong.Resolvers(loadConfig(t, testConfig, "config")),
		kong.Exit(func(int) { t.Fatal("unexpected exit") }),
	)
	if err != nil {
		t.Fatalf("kong.New: %v", err)
	}

	if _, err := parser.Parse([]string{"--log-format=text"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if cli.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cli.LogLevel)
	}

	if cli.LogFormat != "text" {
		t.Errorf("LogFormat = %q, want text (command line wins)", cli.LogFormat)
	}

	if cli.Depth != 3 {
		t.Errorf("Depth = %d, want 3", cli.Depth)
	}
}
