package wallet

// bundle.go assembles the signed .pkpass archive:
//
// i)   serialize the pass model to pass.json
// ii)  add the embedded template assets
// iii) write manifest.json with the SHA-1 of every file
// iv)  sign the manifest (detached PKCS#7, see signer.go)
// v)   zip pass.json, assets, manifest.json and signature
//
// There is no partial success: any failure returns no bundle at all.

import (
	"archive/zip"
	"bytes"
	"crypto/sha1" // #nosec G505 -- the pkpass manifest format mandates SHA-1 digests
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
)

// Credentials is the certificate material used to sign a bundle, fetched
// from the secret store per request.
type Credentials struct {
	// SignerCert is the pass-signing certificate (PEM or DER).
	SignerCert []byte

	// SignerKey is the signing private key (PEM; may be
	// passphrase-protected).
	SignerKey []byte

	// SignerKeyPassphrase decrypts SignerKey when it is protected.
	SignerKeyPassphrase string

	// WWDRCert is the intermediate certificate required to validate the
	// signer certificate chain (PEM or DER).
	WWDRCert []byte
}

// Bundle serializes and signs the pass, returning the complete .pkpass
// archive bytes.
func (p *Pass) Bundle(creds Credentials) ([]byte, error) {
	passJSON, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize pass: %w", err)
	}

	files, err := templateAssets()
	if err != nil {
		return nil, err
	}
	files["pass.json"] = passJSON

	manifest, err := buildManifest(files)
	if err != nil {
		return nil, err
	}

	signature, err := signManifest(manifest, creds)
	if err != nil {
		return nil, err
	}

	files["manifest.json"] = manifest
	files["signature"] = signature

	return zipFiles(files)
}

// buildManifest maps each bundle file to the hex SHA-1 of its content.
// The manifest itself and the signature are excluded by construction: they
// are added to the file set after the manifest is built.
func buildManifest(files map[string][]byte) ([]byte, error) {
	digests := make(map[string]string, len(files))
	for name, data := range files {
		sum := sha1.Sum(data) // #nosec G401 -- mandated by the pkpass manifest format
		digests[name] = hex.EncodeToString(sum[:])
	}

	manifest, err := json.Marshal(digests)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize manifest: %w", err)
	}
	return manifest, nil
}

// zipFiles writes the bundle archive with entries in a stable order.
func zipFiles(files map[string][]byte) ([]byte, error) {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	archive := zip.NewWriter(&buf)
	for _, name := range names {
		entry, err := archive.Create(name)
		if err != nil {
			return nil, fmt.Errorf("failed to create archive entry %s: %w", name, err)
		}
		if _, err := entry.Write(files[name]); err != nil {
			return nil, fmt.Errorf("failed to write archive entry %s: %w", name, err)
		}
	}
	if err := archive.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}
	return buf.Bytes(), nil
}
