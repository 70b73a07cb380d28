package preflight

import (
	"path/filepath"

	"globalsort/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name     string
	Passed   bool
	Optional bool
	Detail   string
}

// RunAll executes every check for cfg.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result
	results = append(results, CheckDirectoryAccess("State directory", cfg.Paths.StateDir))
	results = append(results, CheckDirectoryAccess("Extensions directory", filepath.Dir(cfg.Paths.ExtensionsFile)))
	if dir := filepath.Dir(cfg.Paths.FoldersFile); dir != filepath.Dir(cfg.Paths.ExtensionsFile) {
		results = append(results, CheckDirectoryAccess("Folders directory", dir))
	}
	for _, dir := range cfg.Sort.LibraryDirs {
		result := CheckDirectoryAccess("Library "+filepath.Base(dir), dir)
		result.Optional = true
		results = append(results, result)
	}
	return results
}

// Failed returns the required checks that did not pass.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if !r.Passed && !r.Optional {
			out = append(out, r)
		}
	}
	return out
}
