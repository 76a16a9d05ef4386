// Package templates embeds the default files rimeup ships.
package templates

import "embed"

// ConfigName is the embedded default configuration file.
const ConfigName = "rimeup.toml"

//go:embed rimeup.toml
var files embed.FS

// Read returns the named embedded file.
func Read(name string) ([]byte, error) {
	return files.ReadFile(name)
}
