package packages

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Installed is a package found in a project's Packages folder.
type Installed struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Version     string `json:"version"`
}

// Title is the display name, or the package name when none is set.
func (p Installed) Title() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return p.Name
}

// List reads package.json from each folder under projectDir/Packages. A
// project without a Packages folder has no packages.
func List(projectDir string) ([]Installed, error) {
	root := filepath.Join(projectDir, "Packages")
	entries, err := os.ReadDir(root)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read packages: %w", err)
	}

	var out []Installed
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(root, e.Name(), "package.json"))
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", e.Name(), err)
		}
		var p Installed
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("parse %s/package.json: %w", e.Name(), err)
		}
		if p.Name == "" {
			p.Name = e.Name()
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
