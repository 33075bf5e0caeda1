package chunk

// DefaultMaxFileSizeBytes caps how large a source file may be before
// extraction skips it.
const DefaultMaxFileSizeBytes = 1024 * 1024

// ExtractionOptions configures repository scanning and chunk extraction.
type ExtractionOptions struct {
	excludeDirs      map[string]struct{}
	languages        []string
	maxFileSizeBytes int64
	workerCount      int
}

// DefaultExtractionOptions returns options with the standard exclusion set
// for build output, dependency trees and generated code.
func DefaultExtractionOptions() ExtractionOptions {
	dirs := []string{
		// Build output
		"build", "dist", "target", "bin", "obj", "out",
		// Dependencies
		"node_modules", "vendor", "Pods", "Carthage",
		// Python
		"__pycache__", "venv", ".venv", "env",
		// Frameworks and tooling
		".next", ".nuxt", "coverage", ".nyc_output",
		".gradle", "gradle", "buildSrc", ".m2", ".ivy2",
		".bundle", "bundle", ".build", "DerivedData",
		"CMakeFiles", ".vs", ".dart_tool", ".stack-work", "dist-newstyle",
		// Generated code
		"generated", ".generated", "gen", "codegen",
		// System and temporary
		".git", "tmp", "temp", "cache", ".cache", "logs",
	}

	set := make(map[string]struct{}, len(dirs))
	for _, d := range dirs {
		set[d] = struct{}{}
	}

	return ExtractionOptions{
		excludeDirs:      set,
		maxFileSizeBytes: DefaultMaxFileSizeBytes,
	}
}

// WithLanguages restricts extraction to the named languages.
func (o ExtractionOptions) WithLanguages(languages []string) ExtractionOptions {
	filtered := make([]string, len(languages))
	copy(filtered, languages)
	o.languages = filtered
	return o
}

// WithMaxFileSize overrides the per-file size limit.
func (o ExtractionOptions) WithMaxFileSize(bytes int64) ExtractionOptions {
	o.maxFileSizeBytes = bytes
	return o
}

// WithWorkerCount overrides the extraction parallelism. Zero or negative
// means one worker per CPU.
func (o ExtractionOptions) WithWorkerCount(n int) ExtractionOptions {
	o.workerCount = n
	return o
}

// WorkerCount returns the configured extraction parallelism; 0 means one
// worker per CPU.
func (o ExtractionOptions) WorkerCount() int { return o.workerCount }

// Languages returns the language filter; empty means all registered languages.
func (o ExtractionOptions) Languages() []string {
	languages := make([]string, len(o.languages))
	copy(languages, o.languages)
	return languages
}

// MaxFileSizeBytes returns the per-file size limit.
func (o ExtractionOptions) MaxFileSizeBytes() int64 { return o.maxFileSizeBytes }

// AllowsLanguage reports whether the language passes the filter. An empty
// filter allows every language.
func (o ExtractionOptions) AllowsLanguage(name string) bool {
	if len(o.languages) == 0 {
		return true
	}
	for _, l := range o.languages {
		if l == name {
			return true
		}
	}
	return false
}

// ExcludesDir reports whether a directory name is excluded from scanning.
func (o ExtractionOptions) ExcludesDir(name string) bool {
	_, ok := o.excludeDirs[name]
	return ok
}
