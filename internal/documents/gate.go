// Package documents implements the default-document gate: it validates a
// shared access code against the stored secret, resolves a logical document
// kind to a bucket object, and returns a time-limited signed download URL.
package documents

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/eliteair/pass-signing-service/internal/secrets"
	"github.com/eliteair/pass-signing-service/internal/storage"
)

// Gate check failures, in the order the checks run. Anything else coming out
// of SignedDownloadURL is an internal failure and must not be detailed to
// the client.
var (
	ErrMissingInput     = errors.New("missing code or doc")
	ErrInvalidCode      = errors.New("invalid access code")
	ErrUnknownDocument  = errors.New("unknown document")
	ErrDocumentNotFound = errors.New("document not found")
)

// Kind is a logical default-document identifier.
type Kind string

const (
	KindPOH   Kind = "poh"
	KindG3000 Kind = "g3000"
)

// Config carries the gate's server-side settings.
type Config struct {
	// AccessCodeSecret names the secret holding the shared access code.
	AccessCodeSecret string

	// Objects maps each document kind to its bucket object name. Every kind
	// must resolve to a non-empty object name.
	Objects map[Kind]string

	// URLTTL is the signed-URL validity window measured from issuance.
	URLTTL time.Duration
}

// Gate issues signed download URLs for the default documents. It is
// stateless: the access code is re-fetched from the secret store on every
// request.
type Gate struct {
	secrets secrets.Provider
	store   storage.ObjectStore
	cfg     Config
}

// NewGate wires the gate to its secret provider and object store.
func NewGate(provider secrets.Provider, store storage.ObjectStore, cfg Config) *Gate {
	return &Gate{
		secrets: provider,
		store:   store,
		cfg:     cfg,
	}
}

// SignedDownloadURL validates the access code and document kind and returns
// a fresh signed URL for the resolved bucket object.
//
// The checks run in a fixed order: missing input, access code, kind
// resolution, object existence. A wrong code therefore fails before the kind
// is even looked at, and an unknown kind fails even with a correct code.
func (g *Gate) SignedDownloadURL(ctx context.Context, code, doc string) (string, error) {
	code = strings.TrimSpace(code)
	doc = strings.ToLower(strings.TrimSpace(doc))

	if code == "" || doc == "" {
		return "", ErrMissingInput
	}

	if g.cfg.AccessCodeSecret == "" {
		return "", fmt.Errorf("document gate is not configured: access code secret name is empty")
	}

	expected, err := secrets.AccessString(ctx, g.secrets, g.cfg.AccessCodeSecret)
	if err != nil {
		return "", fmt.Errorf("failed to fetch access code: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(code), []byte(expected)) != 1 {
		return "", ErrInvalidCode
	}

	object, ok := g.cfg.Objects[Kind(doc)]
	if !ok || object == "" {
		return "", ErrUnknownDocument
	}

	exists, err := g.store.Exists(ctx, object)
	if err != nil {
		return "", fmt.Errorf("failed to check object %s: %w", object, err)
	}
	if !exists {
		return "", ErrDocumentNotFound
	}

	url, err := g.store.SignedURL(object, time.Now().Add(g.cfg.URLTTL))
	if err != nil {
		return "", fmt.Errorf("failed to sign URL for object %s: %w", object, err)
	}
	return url, nil
}
