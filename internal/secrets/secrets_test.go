package secrets

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

// fakeProvider returns canned payloads by name.
type fakeProvider struct {
	values map[string][]byte
}

func (f *fakeProvider) Access(_ context.Context, name string) ([]byte, error) {
	data, ok := f.values[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSecretUnavailable, name)
	}
	return data, nil
}

func TestAccessString(t *testing.T) {
	provider := &fakeProvider{values: map[string][]byte{
		"access-code": []byte("  PIPER-600 \n"),
		"empty":       []byte("   \n\t"),
	}}

	tests := []struct {
		name    string
		secret  string
		want    string
		wantErr bool
	}{
		{"trims surrounding whitespace", "access-code", "PIPER-600", false},
		{"whitespace-only payload becomes empty", "empty", "", false},
		{"missing secret propagates error", "no-such-secret", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AccessString(context.Background(), provider, tt.secret)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !errors.Is(err, ErrSecretUnavailable) {
					t.Errorf("error = %v, want ErrSecretUnavailable", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("AccessString() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("AccessString() = %q, want %q", got, tt.want)
			}
		})
	}
}
