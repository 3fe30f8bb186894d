package wallet

// template.go exposes the static pass-template assets (icons, logo) that go
// into every bundle alongside the generated pass.json. The assets are
// embedded in the binary so the service makes no filesystem-path assumptions
// at runtime.

import (
	"embed"
	"fmt"
)

//go:embed template
var templateFS embed.FS

// templateAssets returns the embedded template files keyed by their name
// inside the bundle.
func templateAssets() (map[string][]byte, error) {
	entries, err := templateFS.ReadDir("template")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded template: %w", err)
	}

	assets := make(map[string][]byte, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		data, err := templateFS.ReadFile("template/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read template asset %s: %w", entry.Name(), err)
		}
		assets[entry.Name()] = data
	}
	return assets, nil
}
