package wallet

import (
	"archive/zip"
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"io"
	"testing"

	"go.mozilla.org/pkcs7"
)

// readBundle unpacks an archive into a name -> content map.
func readBundle(t *testing.T, bundle []byte) map[string][]byte {
	t.Helper()

	reader, err := zip.NewReader(bytes.NewReader(bundle), int64(len(bundle)))
	if err != nil {
		t.Fatalf("bundle is not a valid zip archive: %v", err)
	}

	files := make(map[string][]byte, len(reader.File))
	for _, entry := range reader.File {
		rc, err := entry.Open()
		if err != nil {
			t.Fatalf("failed to open %s: %v", entry.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("failed to read %s: %v", entry.Name, err)
		}
		files[entry.Name] = data
	}
	return files
}

func TestBundleContainsSignedManifestAndAssets(t *testing.T) {
	creds := testCredentials(t)
	pass := Build(Identity{PassTypeID: "pass.com.example.boarding", TeamID: "TEAM123"}, FlightDetails{
		FlightNumber: "TCEZP 001",
		Departure:    "LFPT",
		Destination:  "LBTA",
	})

	bundle, err := pass.Bundle(creds)
	if err != nil {
		t.Fatalf("Bundle() error = %v", err)
	}

	files := readBundle(t, bundle)

	for _, name := range []string{"pass.json", "manifest.json", "signature", "icon.png", "icon@2x.png", "logo.png", "logo@2x.png"} {
		if _, ok := files[name]; !ok {
			t.Errorf("bundle is missing %s", name)
		}
	}

	// pass.json round-trips to the model that was signed.
	var unpacked Pass
	if err := json.Unmarshal(files["pass.json"], &unpacked); err != nil {
		t.Fatalf("pass.json does not parse: %v", err)
	}
	if unpacked.SerialNumber != pass.SerialNumber {
		t.Errorf("pass.json serial = %q, want %q", unpacked.SerialNumber, pass.SerialNumber)
	}
	if unpacked.Barcodes[0].Message != "TCEZP 001|LFPT|LBTA" {
		t.Errorf("barcode message = %q", unpacked.Barcodes[0].Message)
	}

	// The manifest covers every file except itself and the signature, with
	// matching SHA-1 digests.
	var manifest map[string]string
	if err := json.Unmarshal(files["manifest.json"], &manifest); err != nil {
		t.Fatalf("manifest.json does not parse: %v", err)
	}
	if _, ok := manifest["manifest.json"]; ok {
		t.Error("manifest must not list itself")
	}
	if _, ok := manifest["signature"]; ok {
		t.Error("manifest must not list the signature")
	}
	for name, data := range files {
		if name == "manifest.json" || name == "signature" {
			continue
		}
		sum := sha1.Sum(data)
		if manifest[name] != hex.EncodeToString(sum[:]) {
			t.Errorf("manifest digest mismatch for %s", name)
		}
	}

	// The signature verifies over the exact manifest bytes in the archive.
	parsed, err := pkcs7.Parse(files["signature"])
	if err != nil {
		t.Fatalf("signature does not parse: %v", err)
	}
	parsed.Content = files["manifest.json"]
	if err := parsed.Verify(); err != nil {
		t.Errorf("signature does not verify over the packaged manifest: %v", err)
	}
}

func TestBundleFailsWithoutValidCredentials(t *testing.T) {
	pass := Build(Identity{PassTypeID: "p", TeamID: "t"}, FlightDetails{})

	bundle, err := pass.Bundle(Credentials{
		SignerCert: []byte("bogus"),
		SignerKey:  []byte("bogus"),
		WWDRCert:   []byte("bogus"),
	})
	if err == nil {
		t.Fatal("expected signing failure")
	}
	if bundle != nil {
		t.Error("no partial bundle may be returned on failure")
	}
}

func TestBuildManifestDigests(t *testing.T) {
	files := map[string][]byte{
		"pass.json": []byte(`{"formatVersion":1}`),
		"icon.png":  {0x89, 0x50, 0x4e, 0x47},
	}

	manifestJSON, err := buildManifest(files)
	if err != nil {
		t.Fatalf("buildManifest() error = %v", err)
	}

	var manifest map[string]string
	if err := json.Unmarshal(manifestJSON, &manifest); err != nil {
		t.Fatalf("manifest does not parse: %v", err)
	}
	if len(manifest) != len(files) {
		t.Fatalf("manifest entries = %d, want %d", len(manifest), len(files))
	}
	for name, data := range files {
		sum := sha1.Sum(data)
		if manifest[name] != hex.EncodeToString(sum[:]) {
			t.Errorf("digest mismatch for %s", name)
		}
	}
}
