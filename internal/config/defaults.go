package config

const (
	defaultConfigPath       = "~/.config/globalsort/config.toml"
	defaultStateDir         = "~/.local/share/globalsort"
	defaultExtensionsFile   = "~/.config/globalsort/extensions.toml"
	defaultFoldersFile      = "~/.config/globalsort/folders.toml"
	defaultFallbackCategory = "Uncategorized"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
)

func defaultLibraryDirs() []string {
	return []string{"~/Music", "~/Videos", "~/Pictures", "~/Documents", "~/Downloads"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir:       defaultStateDir,
			ExtensionsFile: defaultExtensionsFile,
			FoldersFile:    defaultFoldersFile,
		},
		Sort: Sort{
			FallbackCategory: defaultFallbackCategory,
			LibraryDirs:      defaultLibraryDirs(),
		},
		Undo: Undo{
			Persist: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
