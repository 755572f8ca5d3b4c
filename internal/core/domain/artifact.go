// Package domain contains the core types of the LESS compile pipeline.
package domain

import (
	"slices"
	"time"
)

// CompiledArtifact is the result of a successful compile.
type CompiledArtifact struct {
	// CSS is the compiled stylesheet. The autoprefixer stage replaces it.
	CSS string `json:"css"`
	// Dependencies lists the main input file followed by every file it
	// imports transitively, each exactly once.
	Dependencies []string `json:"dependencies"`
	// CompiledAt is the time the compile started.
	CompiledAt time.Time `json:"compiled_at"`
	// InputFile is the absolute path of the main LESS file.
	InputFile string `json:"input_file"`
	// Engine is the ID of the engine that produced the artifact.
	Engine string `json:"engine"`
}

// NewDependencySet returns the ordered, de-duplicated dependency list for
// main and the given imports. The main file is always first.
func NewDependencySet(main string, imports ...string) []string {
	deps := make([]string, 0, len(imports)+1)
	deps = append(deps, main)
	for _, imp := range imports {
		if imp == "" || slices.Contains(deps, imp) {
			continue
		}
		deps = append(deps, imp)
	}
	return deps
}

// CacheEntry is the watch record written by the render step. It remembers
// which input produced which output for a requested URL path.
type CacheEntry struct {
	InputFile  string `json:"input_file"`
	OutputFile string `json:"output_file"`
	Theme      string `json:"theme"`
}

// RenderFile maps a requested stylesheet to its input and output files.
// OutputFile may be empty on input, in which case the renderer picks a
// fingerprinted name.
type RenderFile struct {
	URLPath    string `json:"url_path"`
	InputFile  string `json:"input_file"`
	OutputFile string `json:"output_file"`
}

// Change reports that the compiled stylesheet behind OldFile was replaced by NewFile.
type Change struct {
	OldFile string `json:"old_file"`
	NewFile string `json:"new_file"`
}
