// Package fetch downloads templates from remote sources: the npm registry,
// GitHub release assets of the official templates repository, and arbitrary
// GitHub repository archives. Every fetcher materializes the template into a
// fresh temporary directory and applies the shared retry policy.
package fetch

// Result is the outcome of a successful fetch.
type Result struct {
	// TempDir is the directory the template was extracted into. The caller
	// owns it and is responsible for removing it.
	TempDir string
	// Version is the resolved version (npm dist-tag resolution, release tag,
	// or the requested git ref).
	Version string
	// Metadata is source-specific metadata, when the source provides any.
	Metadata map[string]interface{}
}

// Options are shared fetch options.
type Options struct {
	// OnProgress receives user-facing progress messages. Optional; nil
	// suppresses reporting, never the operation itself.
	OnProgress func(message string)
}

func (o Options) progress(message string) {
	if o.OnProgress != nil {
		o.OnProgress(message)
	}
}
