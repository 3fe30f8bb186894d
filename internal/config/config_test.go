package config

import (
	"slices"
	"testing"
)

func validTestConfig() *ServerEnvironment {
	return &ServerEnvironment{
		Environment:     "dev",
		Host:            "0.0.0.0",
		Port:            8080,
		MaxRequestBytes: 1 << 20,
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ServerEnvironment)
		wantErr bool
	}{
		{"defaults are valid", func(c *ServerEnvironment) {}, false},
		{"port zero", func(c *ServerEnvironment) { c.Port = 0 }, true},
		{"port too high", func(c *ServerEnvironment) { c.Port = 70000 }, true},
		{"unknown environment", func(c *ServerEnvironment) { c.Environment = "production" }, true},
		{"staging is accepted", func(c *ServerEnvironment) { c.Environment = "staging" }, false},
		{"zero request size limit", func(c *ServerEnvironment) { c.MaxRequestBytes = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validTestConfig()
			tt.mutate(cfg)

			err := validateConfig(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMissingRequired(t *testing.T) {
	cfg := validTestConfig()

	missing := cfg.MissingRequired()
	if len(missing) != len(requiredVars) {
		t.Fatalf("expected all %d required vars reported, got %d", len(requiredVars), len(missing))
	}
	if !slices.Contains(missing, "SIGNER_CERT_SECRET") {
		t.Error("SIGNER_CERT_SECRET not reported as missing")
	}

	cfg.GCPProject = "my-project"
	cfg.TeamID = "  " // blank counts as unset

	missing = cfg.MissingRequired()
	if slices.Contains(missing, "GCP_PROJECT") {
		t.Error("GCP_PROJECT reported missing despite being set")
	}
	if !slices.Contains(missing, "TEAM_ID") {
		t.Error("whitespace-only TEAM_ID should count as missing")
	}
}

func TestDocumentObjectOverrides(t *testing.T) {
	tests := []struct {
		name      string
		poh       string
		g3000     string
		wantPOH   string
		wantG3000 string
	}{
		{"unset uses defaults", "", "", "POH.pdf", "G3000.pdf"},
		{"explicit empty uses defaults", "  ", "  ", "POH.pdf", "G3000.pdf"},
		{"overrides win", "manuals/POH-v2.pdf", "manuals/G3000-v2.pdf", "manuals/POH-v2.pdf", "manuals/G3000-v2.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validTestConfig()
			cfg.DefaultPOHObject = tt.poh
			cfg.DefaultG3000Object = tt.g3000

			if got := cfg.POHObject(); got != tt.wantPOH {
				t.Errorf("POHObject() = %q, want %q", got, tt.wantPOH)
			}
			if got := cfg.G3000Object(); got != tt.wantG3000 {
				t.Errorf("G3000Object() = %q, want %q", got, tt.wantG3000)
			}
		})
	}
}
