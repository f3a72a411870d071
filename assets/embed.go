// Package assets embeds the built-in board generator scripts, so named
// layouts work without shipping script files next to the binary.
package assets

import (
	"embed"
	"fmt"
	"sort"
	"strings"
)

//go:embed generators/*.tengo
var assetsFS embed.FS

// GeneratorScript returns the source of a built-in generator script by
// name, with or without the .tengo extension.
func GeneratorScript(name string) ([]byte, error) {
	clean := strings.TrimSuffix(strings.TrimSpace(name), ".tengo")
	b, err := assetsFS.ReadFile("generators/" + clean + ".tengo")
	if err != nil {
		return nil, fmt.Errorf("assets: no built-in generator %q (have %s)", name, strings.Join(GeneratorNames(), ", "))
	}
	return b, nil
}

// GeneratorNames lists the built-in generator scripts.
func GeneratorNames() []string {
	entries, err := assetsFS.ReadDir("generators")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".tengo"))
	}
	sort.Strings(names)
	return names
}
