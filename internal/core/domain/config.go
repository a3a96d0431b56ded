package domain

// Config is a named bundle of compiler settings attached to targets. The
// checker only cares about the include directories a config contributes;
// flags and defines are opaque to it.
type Config struct {
	Name        string
	IncludeDirs []SourceDir
}
