// Package secrets provides access to named secrets (certificates, keys,
// passphrases, access codes) held in Google Secret Manager.
//
// There is deliberately no caching: every Access call is an independent,
// independently-authorized round trip to the secret store. This trades
// latency for zero staleness and no credential exposure window beyond a
// single request, which is appropriate for the service's low-QPS signing
// traffic. Fetch failures are never retried here - the caller surfaces them
// as a server error and the client retries the whole request.
package secrets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
)

// ErrSecretUnavailable indicates the store has no such secret or the current
// principal lacks access to it.
var ErrSecretUnavailable = errors.New("secret unavailable")

// Provider fetches a named secret's current payload.
type Provider interface {
	Access(ctx context.Context, name string) ([]byte, error)
}

// SecretManagerProvider resolves logical secret names against the latest
// version of the corresponding Secret Manager secret.
type SecretManagerProvider struct {
	client  *secretmanager.Client
	project string
}

// NewSecretManagerProvider wraps a Secret Manager client for the given
// project. The client is owned by the caller.
func NewSecretManagerProvider(client *secretmanager.Client, project string) *SecretManagerProvider {
	return &SecretManagerProvider{
		client:  client,
		project: project,
	}
}

// Access fetches the latest version of the named secret.
func (p *SecretManagerProvider) Access(ctx context.Context, name string) ([]byte, error) {
	resp, err := p.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: fmt.Sprintf("projects/%s/secrets/%s/versions/latest", p.project, name),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSecretUnavailable, name, err)
	}
	return resp.GetPayload().GetData(), nil
}

// AccessString is a UTF-8 decoded, whitespace-trimmed convenience over
// Provider.Access.
func AccessString(ctx context.Context, p Provider, name string) (string, error) {
	data, err := p.Access(ctx, name)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
