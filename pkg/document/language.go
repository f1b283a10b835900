package document

import (
	"path"
	"strings"
)

// languageByExtension maps file extensions to fence language tags.
var languageByExtension = map[string]string{
	".py":    "python",
	".go":    "go",
	".js":    "javascript",
	".ts":    "typescript",
	".jsx":   "jsx",
	".tsx":   "tsx",
	".java":  "java",
	".rb":    "ruby",
	".rs":    "rust",
	".c":     "c",
	".h":     "c",
	".cpp":   "cpp",
	".php":   "php",
	".sql":   "sql",
	".yml":   "yaml",
	".yaml":  "yaml",
	".json":  "json",
	".toml":  "toml",
	".xml":   "xml",
	".html":  "html",
	".css":   "css",
	".sh":    "bash",
	".bash":  "bash",
	".md":    "markdown",
	".txt":   "text",
	".env":   "bash",
	".proto": "protobuf",
}

// languageByBasename covers well-known extensionless files.
var languageByBasename = map[string]string{
	"dockerfile": "dockerfile",
	"makefile":   "makefile",
}

// LanguageFor infers the fence language tag for a file, defaulting to plain
// text.
func LanguageFor(relPath string) string {
	base := strings.ToLower(path.Base(relPath))
	if lang, ok := languageByBasename[base]; ok {
		return lang
	}
	if lang, ok := languageByExtension[strings.ToLower(path.Ext(relPath))]; ok {
		return lang
	}
	return "text"
}
