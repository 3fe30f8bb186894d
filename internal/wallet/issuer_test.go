package wallet

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/eliteair/pass-signing-service/internal/secrets"
)

type fakeSecrets struct {
	values   map[string][]byte
	accesses []string
}

func (f *fakeSecrets) Access(_ context.Context, name string) ([]byte, error) {
	f.accesses = append(f.accesses, name)
	data, ok := f.values[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", secrets.ErrSecretUnavailable, name)
	}
	return data, nil
}

func testIssuerConfig() IssuerConfig {
	return IssuerConfig{
		PassTypeID:                "pass.com.example.boarding",
		TeamID:                    "TEAM123",
		OrganizationName:          "Elite Air",
		SignerCertSecret:          "signer-cert",
		SignerKeySecret:           "signer-key",
		SignerKeyPassphraseSecret: "signer-key-passphrase",
		WWDRCertSecret:            "wwdr-cert",
	}
}

func newTestIssuer(t *testing.T) (*Issuer, *fakeSecrets) {
	t.Helper()
	creds := testCredentials(t)
	provider := &fakeSecrets{values: map[string][]byte{
		"signer-cert":           creds.SignerCert,
		"signer-key":            creds.SignerKey,
		"signer-key-passphrase": []byte(creds.SignerKeyPassphrase + "\n"),
		"wwdr-cert":             creds.WWDRCert,
	}}
	return NewIssuer(provider, testIssuerConfig()), provider
}

func TestIssueProducesSignedBundle(t *testing.T) {
	issuer, provider := newTestIssuer(t)

	bundle, err := issuer.Issue(context.Background(), FlightDetails{
		FlightName:    "Elite Air",
		FlightNumber:  "TCEZP 001",
		PassengerName: "John Smith",
	})
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	files := readBundle(t, bundle)
	if _, ok := files["signature"]; !ok {
		t.Error("bundle is missing the signature")
	}

	// All four credentials are fetched, every call, in pipeline order.
	want := []string{"signer-cert", "signer-key", "signer-key-passphrase", "wwdr-cert"}
	if len(provider.accesses) != len(want) {
		t.Fatalf("secret accesses = %v, want %v", provider.accesses, want)
	}
	for i, name := range want {
		if provider.accesses[i] != name {
			t.Errorf("access[%d] = %q, want %q", i, provider.accesses[i], name)
		}
	}
}

func TestIssueRefetchesCredentialsPerCall(t *testing.T) {
	issuer, provider := newTestIssuer(t)

	for i := 0; i < 2; i++ {
		if _, err := issuer.Issue(context.Background(), FlightDetails{}); err != nil {
			t.Fatalf("Issue() call %d error = %v", i+1, err)
		}
	}
	if len(provider.accesses) != 8 {
		t.Errorf("secret accesses = %d, want 8 (no caching across calls)", len(provider.accesses))
	}
}

func TestIssueFailsWhenSecretUnavailable(t *testing.T) {
	issuer, provider := newTestIssuer(t)
	delete(provider.values, "wwdr-cert")

	bundle, err := issuer.Issue(context.Background(), FlightDetails{})
	if !errors.Is(err, secrets.ErrSecretUnavailable) {
		t.Fatalf("error = %v, want wrapped ErrSecretUnavailable", err)
	}
	if bundle != nil {
		t.Error("no bundle may be returned on failure")
	}
}

func TestIssueFailsFastWhenUnconfigured(t *testing.T) {
	provider := &fakeSecrets{values: map[string][]byte{}}

	cfg := testIssuerConfig()
	cfg.TeamID = ""
	issuer := NewIssuer(provider, cfg)

	_, err := issuer.Issue(context.Background(), FlightDetails{})
	if err == nil {
		t.Fatal("expected configuration error")
	}
	if !strings.Contains(err.Error(), "not configured") {
		t.Errorf("error = %v, want configuration message", err)
	}
	if len(provider.accesses) != 0 {
		t.Error("secret store must not be contacted when unconfigured")
	}
}
