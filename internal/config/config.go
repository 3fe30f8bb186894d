package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/Netflix/go-env"
)

// Request handling limits. The signed-URL expiry below is a data validity
// window, not a request timeout - secret-store and signing calls are expected
// to complete in low-single-digit seconds.
const (
	RequestTimeout        = 60 * time.Second
	ServerShutdownTimeout = 10 * time.Second

	// SignedURLTTL is how long a default-document download URL stays valid
	// after issuance.
	SignedURLTTL = 15 * time.Minute
)

// Default object names for the default-document kinds. Overridable via
// DEFAULT_POH_OBJECT / DEFAULT_G3000_OBJECT.
const (
	DefaultPOHObject   = "POH.pdf"
	DefaultG3000Object = "G3000.pdf"
)

// Environment variables with defaults
type ServerEnvironment struct {

	// http server settings
	Environment     string        `env:"ENVIRONMENT,default=dev"`
	Host            string        `env:"HOST,default=0.0.0.0"`
	Port            int           `env:"PORT,default=8080"`
	LogLevel        string        `env:"LOG_LEVEL,default=debug"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT,default=15s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT,default=30s"`
	IdleTimeout     time.Duration `env:"IDLE_TIMEOUT,default=60s"`
	RateLimitRPS    int32         `env:"RATE_LIMIT_RPS,default=100"`
	RateLimitBurst  int32         `env:"RATE_LIMIT_BURST,default=200"`
	MaxRequestBytes int64         `env:"MAX_REQUEST_BYTES,default=1048576"`

	// GCP settings
	GCPProject string `env:"GCP_PROJECT"`

	// Pass identity - stamped into every signed pass. ORG_NAME is cosmetic
	// branding and falls back to a default when unset; the identifiers are
	// required for signing.
	PassTypeID string `env:"PASS_TYPE_ID"`
	TeamID     string `env:"TEAM_ID"`
	OrgName    string `env:"ORG_NAME"`

	// Names of the secrets holding the signing credentials
	SignerCertSecret          string `env:"SIGNER_CERT_SECRET"`
	SignerKeySecret           string `env:"SIGNER_KEY_SECRET"`
	SignerKeyPassphraseSecret string `env:"SIGNER_KEY_PASSPHRASE_SECRET"`
	WWDRCertSecret            string `env:"WWDR_CERT_SECRET"`

	// Default-document gate settings
	DefaultDocsBucket     string `env:"DEFAULT_DOCS_BUCKET"`
	DefaultDocsCodeSecret string `env:"DEFAULT_DOCS_CODE_SECRET"`
	DefaultPOHObject      string `env:"DEFAULT_POH_OBJECT"`
	DefaultG3000Object    string `env:"DEFAULT_G3000_OBJECT"`
}

var validEnvs = map[string]bool{
	"dev":     true,
	"test":    true,
	"prod":    true,
	"staging": true,
}

// requiredVars are the environment variables the service cannot sign or gate
// without. A missing value is reported at startup but does not prevent the
// server from starting - the affected endpoint fails with a 500 instead.
var requiredVars = []struct {
	name  string
	value func(*ServerEnvironment) string
}{
	{"GCP_PROJECT", func(c *ServerEnvironment) string { return c.GCPProject }},
	{"PASS_TYPE_ID", func(c *ServerEnvironment) string { return c.PassTypeID }},
	{"TEAM_ID", func(c *ServerEnvironment) string { return c.TeamID }},
	{"SIGNER_CERT_SECRET", func(c *ServerEnvironment) string { return c.SignerCertSecret }},
	{"SIGNER_KEY_SECRET", func(c *ServerEnvironment) string { return c.SignerKeySecret }},
	{"SIGNER_KEY_PASSPHRASE_SECRET", func(c *ServerEnvironment) string { return c.SignerKeyPassphraseSecret }},
	{"WWDR_CERT_SECRET", func(c *ServerEnvironment) string { return c.WWDRCertSecret }},
	{"DEFAULT_DOCS_BUCKET", func(c *ServerEnvironment) string { return c.DefaultDocsBucket }},
	{"DEFAULT_DOCS_CODE_SECRET", func(c *ServerEnvironment) string { return c.DefaultDocsCodeSecret }},
}

// NewServerConfig loads environment variables and returns a ServerEnvironment struct that contains the values
func NewServerConfig() (*ServerEnvironment, error) {
	var cfg ServerEnvironment

	_, err := env.UnmarshalFromEnviron(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal environment variables: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validateConfig checks the server settings that must be structurally valid
// before the process can start.
func validateConfig(cfg *ServerEnvironment) error {
	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535")
	}
	if !validEnvs[cfg.Environment] {
		return fmt.Errorf("invalid ENVIRONMENT: %s", cfg.Environment)
	}
	if cfg.MaxRequestBytes < 1 {
		return fmt.Errorf("MAX_REQUEST_BYTES must be at least 1")
	}
	return nil
}

// MissingRequired returns the names of required environment variables that
// are unset or blank. The caller is expected to log each one.
func (cfg *ServerEnvironment) MissingRequired() []string {
	var missing []string
	for _, v := range requiredVars {
		if strings.TrimSpace(v.value(cfg)) == "" {
			missing = append(missing, v.name)
		}
	}
	return missing
}

// POHObject returns the bucket object name for the POH document kind.
// An explicitly-empty override is treated the same as unset.
func (cfg *ServerEnvironment) POHObject() string {
	if name := strings.TrimSpace(cfg.DefaultPOHObject); name != "" {
		return name
	}
	return DefaultPOHObject
}

// G3000Object returns the bucket object name for the G3000 document kind.
// An explicitly-empty override is treated the same as unset.
func (cfg *ServerEnvironment) G3000Object() string {
	if name := strings.TrimSpace(cfg.DefaultG3000Object); name != "" {
		return name
	}
	return DefaultG3000Object
}
