package crate

import (
	"path/filepath"

	toml "github.com/pelletier/go-toml"
)

// ManifestFilename is the build manifest marking a crate root.
const ManifestFilename = "Cargo.toml"

// Manifest carries the crate identity read from Cargo.toml.
type Manifest struct {
	Name    string
	Version string
}

// ReadManifest loads the Cargo.toml under projectPath. When the manifest is
// missing or malformed the crate is still checkable, so the directory name
// stands in for the package name and ok reports false.
func ReadManifest(projectPath string) (Manifest, bool) {
	fallback := Manifest{Name: filepath.Base(projectPath)}

	tree, err := toml.LoadFile(filepath.Join(projectPath, ManifestFilename))
	if err != nil {
		return fallback, false
	}

	name, _ := tree.GetDefault("package.name", "").(string)
	version, _ := tree.GetDefault("package.version", "").(string)
	m := Manifest{Name: name, Version: version}
	if m.Name == "" {
		m.Name = fallback.Name
	}
	return m, true
}
