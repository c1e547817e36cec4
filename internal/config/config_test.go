package config

import (
	"testing"
	"time"
)

func validCfg() Config {
	cfg := DefaultConfig()
	cfg.InputPath = "clip.mov"
	cfg.Bucket = "media-bucket"
	cfg.RoleArn = "arn:aws:iam::123456789012:role/MediaConvertRole"
	cfg.WatermarkURI = "s3://media-bucket/assets/watermark.png"
	return cfg
}

func TestNormalizePrefix(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no trailing slash", "outputs", "outputs"},
		{"single trailing slash", "outputs/", "outputs"},
		{"multiple trailing slashes", "outputs///", "outputs"},
		{"s3 uri", "s3://bucket/outputs/", "s3://bucket/outputs"},
		{"empty string", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizePrefix(tt.in)
			if got != tt.want {
				t.Errorf("NormalizePrefix(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidate_Valid(t *testing.T) {
	cfg := validCfg()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestValidate_ColorMode(t *testing.T) {
	tests := []struct {
		name    string
		mode    ColorMode
		wantErr bool
	}{
		{"auto is valid", ColorAuto, false},
		{"always is valid", ColorAlways, false},
		{"never is valid", ColorNever, false},
		{"empty is invalid", "", true},
		{"unknown is invalid", "rainbow", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validCfg()
			cfg.ColorMode = tt.mode
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_RequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing input", func(c *Config) { c.InputPath = "" }},
		{"missing bucket", func(c *Config) { c.Bucket = "" }},
		{"missing role", func(c *Config) { c.RoleArn = "" }},
		{"missing watermark", func(c *Config) { c.WatermarkURI = "" }},
		{"watermark not s3", func(c *Config) { c.WatermarkURI = "/tmp/watermark.png" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validCfg()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestValidate_CheckOnlySkipsRequirements(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CheckOnly = true
	if err := cfg.Validate(); err != nil {
		t.Errorf("CheckOnly Validate() = %v, want nil", err)
	}
}

func TestValidate_Ranges(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"long edge below 2", func(c *Config) { c.MaxLongEdge = 1 }},
		{"zero bitrate cap", func(c *Config) { c.MaxBitrateBps = 0 }},
		{"opacity above 100", func(c *Config) { c.OverlayOpacity = 101 }},
		{"negative opacity", func(c *Config) { c.OverlayOpacity = -1 }},
		{"zero corner hold", func(c *Config) { c.OverlayCornerMs = 0 }},
		{"zero poll interval", func(c *Config) { c.PollInterval = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validCfg()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestDestination(t *testing.T) {
	cfg := validCfg()
	if got, want := cfg.Destination(), "s3://media-bucket/outputs"; got != want {
		t.Errorf("Destination() = %q, want %q", got, want)
	}

	cfg.DestinationPrefix = "s3://other-bucket/transcodes/"
	if got, want := cfg.Destination(), "s3://other-bucket/transcodes"; got != want {
		t.Errorf("Destination() = %q, want %q", got, want)
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("CLOUDMUX_BUCKET", "env-bucket")
	t.Setenv("CLOUDMUX_MAX_BITRATE", "6000000")
	t.Setenv("CLOUDMUX_POLL_INTERVAL", "2s")

	cfg := DefaultConfig()
	if err := LoadEnv(&cfg); err != nil {
		t.Fatalf("LoadEnv() = %v", err)
	}
	if cfg.Bucket != "env-bucket" {
		t.Errorf("Bucket = %q, want env-bucket", cfg.Bucket)
	}
	if cfg.MaxBitrateBps != 6000000 {
		t.Errorf("MaxBitrateBps = %d, want 6000000", cfg.MaxBitrateBps)
	}
	if cfg.PollInterval != 2*time.Second {
		t.Errorf("PollInterval = %v, want 2s", cfg.PollInterval)
	}
}

func TestLoadEnv_Malformed(t *testing.T) {
	t.Setenv("CLOUDMUX_MAX_BITRATE", "lots")
	cfg := DefaultConfig()
	if err := LoadEnv(&cfg); err == nil {
		t.Error("LoadEnv() = nil, want error for malformed bitrate")
	}
}

func TestParseFlags_Positional(t *testing.T) {
	cfg := DefaultConfig()
	err := ParseFlags(&cfg, "test", []string{"--bucket", "b", "--no-download", "clip.mov"})
	if err != nil {
		t.Fatalf("ParseFlags() = %v", err)
	}
	if cfg.InputPath != "clip.mov" {
		t.Errorf("InputPath = %q, want clip.mov", cfg.InputPath)
	}
	if cfg.Bucket != "b" {
		t.Errorf("Bucket = %q, want b", cfg.Bucket)
	}
	if cfg.Download {
		t.Error("Download = true, want false after --no-download")
	}
}

func TestParseFlags_MissingInput(t *testing.T) {
	cfg := DefaultConfig()
	if err := ParseFlags(&cfg, "test", nil); err == nil {
		t.Error("ParseFlags() = nil, want error without positional arg")
	}
}
