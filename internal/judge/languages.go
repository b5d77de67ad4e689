// Package judge implements the code-execution pipeline on top of the Judge0
// API: submission client, verdict mapping, output normalization, a bounded
// test-case runner, and an async submission store with worker pool.
package judge

import (
	"fmt"
	"sort"
	"strings"

	"friede/internal/errors"
)

// Language maps a platform language name to its Judge0 language ID
type Language struct {
	ID   int    `json:"id"`
	Name string `json:"name"` // canonical platform name
}

// languageCatalog holds the supported Judge0 CE language IDs
var languageCatalog = map[string]Language{
	"c":          {ID: 50, Name: "c"},
	"cpp":        {ID: 54, Name: "cpp"},
	"csharp":     {ID: 51, Name: "csharp"},
	"go":         {ID: 60, Name: "go"},
	"java":       {ID: 62, Name: "java"},
	"javascript": {ID: 63, Name: "javascript"},
	"kotlin":     {ID: 78, Name: "kotlin"},
	"php":        {ID: 68, Name: "php"},
	"python":     {ID: 71, Name: "python"},
	"ruby":       {ID: 72, Name: "ruby"},
	"rust":       {ID: 73, Name: "rust"},
	"swift":      {ID: 83, Name: "swift"},
	"typescript": {ID: 74, Name: "typescript"},
}

// languageAliases maps common alternate spellings onto catalog names
var languageAliases = map[string]string{
	"c++":     "cpp",
	"c#":      "csharp",
	"cs":      "csharp",
	"golang":  "go",
	"js":      "javascript",
	"node":    "javascript",
	"nodejs":  "javascript",
	"py":      "python",
	"python3": "python",
	"rb":      "ruby",
	"ts":      "typescript",
}

// ResolveLanguage maps a user-supplied language name to its catalog entry.
// Unknown languages fail validation before any network call is made.
func ResolveLanguage(name string) (Language, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := languageAliases[normalized]; ok {
		normalized = alias
	}
	lang, ok := languageCatalog[normalized]
	if !ok {
		return Language{}, errors.NewValidationError(errors.ErrCodeUnknownLanguage,
			fmt.Sprintf("Unsupported language '%s'. Supported languages: %s", name, strings.Join(SupportedLanguages(), ", ")), nil)
	}
	return lang, nil
}

// SupportedLanguages lists the canonical language names, sorted
func SupportedLanguages() []string {
	names := make([]string, 0, len(languageCatalog))
	for name := range languageCatalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
