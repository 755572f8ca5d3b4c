package ports

import "context"

// Autoprefixer adds vendor prefixes to compiled CSS.
//
//go:generate mockgen -source=autoprefixer.go -destination=mocks/mock_autoprefixer.go -package=mocks
type Autoprefixer interface {
	// Version returns the installed tool version. The boolean is false when
	// the tool is missing or did not report a version.
	Version(ctx context.Context) (string, bool)

	// Compile prefixes the CSS file at inputFile and returns the result.
	Compile(ctx context.Context, inputFile string, sourceMaps bool) (string, error)
}
