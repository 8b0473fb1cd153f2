package assembler

import (
	_ "embed"
	"fmt"
	"os"
)

//go:embed templates/notes.tex
var defaultTemplate string

// DefaultTemplate returns the built-in article template.
func DefaultTemplate() string {
	return defaultTemplate
}

// LoadTemplate reads the template at path, or returns the built-in one when path is empty.
func LoadTemplate(path string) (string, error) {
	if path == "" {
		return defaultTemplate, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read template: %w", err)
	}
	return string(data), nil
}
