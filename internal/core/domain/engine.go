package domain

import "regexp"

// EngineDescriptor describes a registered LESS engine.
type EngineDescriptor struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	VendorURL string `json:"vendor_url"`
	// Executable is the external tool the engine drives, empty for engines
	// implemented in-process.
	Executable Executable `json:"executable,omitempty"`
}

// BuiltinVersion is reported for engines without an external tool.
const BuiltinVersion = "builtin"

var versionPattern = regexp.MustCompile(`[0-9.]+`)

// ParseVersion returns the first version-like token of a tool's --version
// output, so "autoprefixer 9.8.6" yields "9.8.6".
func ParseVersion(out string) (string, bool) {
	version := versionPattern.FindString(out)
	return version, version != ""
}
