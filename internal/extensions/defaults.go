package extensions

var defaultTables = map[string][]string{
	"Music":     {".mp3", ".wav", ".flac", ".aac", ".ogg", ".m4a", ".wma", ".aiff", ".opus", ".mid"},
	"Videos":    {".mp4", ".mkv", ".avi", ".mov", ".wmv", ".flv", ".webm", ".m4v", ".mpeg", ".mpg"},
	"Images":    {".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tiff", ".svg", ".webp", ".heic", ".ico"},
	"Documents": {".pdf", ".doc", ".docx", ".txt", ".odt", ".rtf", ".xls", ".xlsx", ".ppt", ".pptx", ".csv", ".md", ".epub"},
	"Archives":  {".zip", ".rar", ".7z", ".tar", ".gz", ".bz2", ".xz"},
	"Programs":  {".exe", ".msi", ".dmg", ".deb", ".rpm", ".apk", ".appimage"},
}

// Defaults returns the table written on first run.
func Defaults() map[string]string {
	out := make(map[string]string, 64)
	for category, exts := range defaultTables {
		for _, ext := range exts {
			out[ext] = category
		}
	}
	return out
}
