package wallet

// issuer.go runs the full signing pipeline for one request: fetch the four
// credential secrets, build the pass model, sign and bundle it.

import (
	"context"
	"fmt"

	"github.com/eliteair/pass-signing-service/internal/secrets"
)

// IssuerConfig names the pass identity and the credential secrets the
// issuer needs. Everything except OrganizationName is required.
type IssuerConfig struct {
	PassTypeID       string
	TeamID           string
	OrganizationName string

	SignerCertSecret          string
	SignerKeySecret           string
	SignerKeyPassphraseSecret string
	WWDRCertSecret            string
}

// validate reports the first missing required setting, so a misconfigured
// deployment fails fast on its first signing attempt.
func (cfg *IssuerConfig) validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"pass type identifier", cfg.PassTypeID},
		{"team identifier", cfg.TeamID},
		{"signer certificate secret name", cfg.SignerCertSecret},
		{"signer key secret name", cfg.SignerKeySecret},
		{"signer key passphrase secret name", cfg.SignerKeyPassphraseSecret},
		{"WWDR certificate secret name", cfg.WWDRCertSecret},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("pass signing is not configured: %s is empty", r.name)
		}
	}
	return nil
}

// Issuer signs boarding passes. It is stateless: credentials are re-fetched
// from the secret store on every Issue call.
type Issuer struct {
	secrets secrets.Provider
	cfg     IssuerConfig
}

// NewIssuer wires the issuer to its secret provider.
func NewIssuer(provider secrets.Provider, cfg IssuerConfig) *Issuer {
	return &Issuer{
		secrets: provider,
		cfg:     cfg,
	}
}

// Issue builds and signs a pass bundle for the submitted flight details.
// Either a complete, validly signed bundle is returned or no bundle at all.
func (i *Issuer) Issue(ctx context.Context, details FlightDetails) ([]byte, error) {
	if err := i.cfg.validate(); err != nil {
		return nil, err
	}

	signerCert, err := i.secrets.Access(ctx, i.cfg.SignerCertSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch signer certificate: %w", err)
	}
	signerKey, err := i.secrets.Access(ctx, i.cfg.SignerKeySecret)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch signer key: %w", err)
	}
	passphrase, err := secrets.AccessString(ctx, i.secrets, i.cfg.SignerKeyPassphraseSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch signer key passphrase: %w", err)
	}
	wwdrCert, err := i.secrets.Access(ctx, i.cfg.WWDRCertSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch WWDR certificate: %w", err)
	}

	pass := Build(Identity{
		PassTypeID:       i.cfg.PassTypeID,
		TeamID:           i.cfg.TeamID,
		OrganizationName: i.cfg.OrganizationName,
	}, details)

	return pass.Bundle(Credentials{
		SignerCert:          signerCert,
		SignerKey:           signerKey,
		SignerKeyPassphrase: passphrase,
		WWDRCert:            wwdrCert,
	})
}
