package handlers

// helpers_test.go provides fake collaborators (secret provider, object
// store) and throwaway signing credentials for the handler tests.

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"fmt"
	"math/big"
	"testing"
	"time"

	"github.com/eliteair/pass-signing-service/internal/secrets"
)

type fakeSecrets struct {
	values map[string][]byte
}

func (f *fakeSecrets) Access(_ context.Context, name string) ([]byte, error) {
	data, ok := f.values[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", secrets.ErrSecretUnavailable, name)
	}
	return data, nil
}

type fakeStore struct {
	objects map[string]bool
	signed  int
}

func (f *fakeStore) Exists(_ context.Context, object string) (bool, error) {
	return f.objects[object], nil
}

func (f *fakeStore) SignedURL(object string, expires time.Time) (string, error) {
	f.signed++
	return fmt.Sprintf("https://storage.example.com/%s?sig=%d&exp=%d", object, f.signed, expires.Unix()), nil
}

// testSigningSecrets generates a self-signed signer certificate, its
// unencrypted PKCS#8 key, a stand-in intermediate certificate and a blank
// passphrase, keyed by the secret names the tests configure.
func testSigningSecrets(t *testing.T) map[string][]byte {
	t.Helper()

	newCert := func(key *rsa.PrivateKey, commonName string) []byte {
		template := &x509.Certificate{
			SerialNumber:          big.NewInt(1),
			Subject:               pkix.Name{CommonName: commonName},
			NotBefore:             time.Now().Add(-time.Hour),
			NotAfter:              time.Now().Add(24 * time.Hour),
			KeyUsage:              x509.KeyUsageDigitalSignature,
			BasicConstraintsValid: true,
		}
		der, err := x509.CreateCertificate(rand.Reader, template, template, &key.PublicKey, key)
		if err != nil {
			t.Fatalf("failed to create certificate: %v", err)
		}
		return pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	}

	signerKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate signer key: %v", err)
	}
	wwdrKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate wwdr key: %v", err)
	}

	keyDER, err := x509.MarshalPKCS8PrivateKey(signerKey)
	if err != nil {
		t.Fatalf("failed to marshal signer key: %v", err)
	}

	return map[string][]byte{
		"signer-cert":           newCert(signerKey, "Pass Signer"),
		"signer-key":            pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: keyDER}),
		"signer-key-passphrase": []byte(""),
		"wwdr-cert":             newCert(wwdrKey, "Intermediate CA"),
	}
}
