package domain

// Executable names an external tool the pipeline may start. Only the
// constants below exist; executable names never come from user input.
type Executable string

const (
	// ExecAutoprefixer is the autoprefixer command line tool.
	ExecAutoprefixer Executable = "autoprefixer"
	// ExecLessc is the less.js command line compiler.
	ExecLessc Executable = "lessc"
)

// String returns the executable name.
func (e Executable) String() string {
	return string(e)
}
