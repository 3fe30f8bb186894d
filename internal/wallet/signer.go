package wallet

// signer.go produces the bundle's detached PKCS#7 signature over
// manifest.json. The signature carries the signer certificate and the WWDR
// intermediate so that a wallet application can validate the full chain.

import (
	"crypto"
	"crypto/x509"
	"encoding/pem"
	"fmt"

	"github.com/youmark/pkcs8"
	"go.mozilla.org/pkcs7"
)

// signManifest signs the manifest bytes with the supplied credentials and
// returns the detached CMS signature.
func signManifest(manifest []byte, creds Credentials) ([]byte, error) {
	signerCert, err := parseCertificate(creds.SignerCert)
	if err != nil {
		return nil, fmt.Errorf("failed to parse signer certificate: %w", err)
	}

	signerKey, err := parsePrivateKey(creds.SignerKey, creds.SignerKeyPassphrase)
	if err != nil {
		return nil, fmt.Errorf("failed to parse signer key: %w", err)
	}

	wwdrCert, err := parseCertificate(creds.WWDRCert)
	if err != nil {
		return nil, fmt.Errorf("failed to parse WWDR certificate: %w", err)
	}

	signed, err := pkcs7.NewSignedData(manifest)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize signed data: %w", err)
	}
	signed.SetDigestAlgorithm(pkcs7.OIDDigestAlgorithmSHA256)

	if err := signed.AddSigner(signerCert, signerKey, pkcs7.SignerInfoConfig{}); err != nil {
		return nil, fmt.Errorf("failed to add signer: %w", err)
	}
	signed.AddCertificate(wwdrCert)
	signed.Detach()

	signature, err := signed.Finish()
	if err != nil {
		return nil, fmt.Errorf("failed to sign manifest: %w", err)
	}
	return signature, nil
}

// parseCertificate accepts a certificate as PEM or raw DER.
func parseCertificate(data []byte) (*x509.Certificate, error) {
	der := data
	if block, _ := pem.Decode(data); block != nil {
		der = block.Bytes
	}
	cert, err := x509.ParseCertificate(der)
	if err != nil {
		return nil, err
	}
	return cert, nil
}

// parsePrivateKey accepts a PEM private key in PKCS#1, SEC 1 or PKCS#8 form,
// decrypting it with the passphrase when protected.
func parsePrivateKey(data []byte, passphrase string) (crypto.PrivateKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("no PEM block found in key data")
	}

	der := block.Bytes

	if block.Type == "ENCRYPTED PRIVATE KEY" {
		key, err := pkcs8.ParsePKCS8PrivateKey(der, []byte(passphrase))
		if err != nil {
			return nil, fmt.Errorf("failed to decrypt PKCS#8 key: %w", err)
		}
		return key, nil
	}

	//nolint:staticcheck // legacy encrypted PEM is the traditional format for exported signer keys
	if x509.IsEncryptedPEMBlock(block) {
		decrypted, err := x509.DecryptPEMBlock(block, []byte(passphrase)) //nolint:staticcheck
		if err != nil {
			return nil, fmt.Errorf("failed to decrypt PEM key: %w", err)
		}
		der = decrypted
	}

	if key, err := x509.ParsePKCS8PrivateKey(der); err == nil {
		return key, nil
	}
	if key, err := x509.ParsePKCS1PrivateKey(der); err == nil {
		return key, nil
	}
	if key, err := x509.ParseECPrivateKey(der); err == nil {
		return key, nil
	}
	return nil, fmt.Errorf("unsupported private key format %q", block.Type)
}
