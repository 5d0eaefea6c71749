// Package lang maps file paths to display languages for the status bar.
// Detection is by extension (plus a few well-known filenames), with
// optional user overrides loaded from a YAML file.
package lang

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Language is the display label shown in the status bar.
type Language string

// Built-in languages.
const (
	PlainText  Language = "Plain Text"
	C          Language = "C"
	Cpp        Language = "C++"
	Python     Language = "Python"
	Rust       Language = "Rust"
	JavaScript Language = "JavaScript"
	TypeScript Language = "TypeScript"
	HTML       Language = "HTML"
	XML        Language = "XML"
	CSS        Language = "CSS"
	JSON       Language = "JSON"
	SQL        Language = "SQL"
	TOML       Language = "TOML"
	INI        Language = "INI"
	Batch      Language = "Batch"
	Makefile   Language = "Makefile"
	Diff       Language = "Diff"
	Shell      Language = "Shell"
	Markdown   Language = "Markdown"
	YAML       Language = "YAML"
	PowerShell Language = "PowerShell"
	GoLang     Language = "Go"
)

// builtinByExt maps lowercase extensions (without the dot) to languages.
var builtinByExt = map[string]Language{
	"c":        C,
	"h":        C,
	"cc":       Cpp,
	"cpp":      Cpp,
	"cxx":      Cpp,
	"hpp":      Cpp,
	"py":       Python,
	"pyw":      Python,
	"rs":       Rust,
	"js":       JavaScript,
	"mjs":      JavaScript,
	"jsx":      JavaScript,
	"ts":       TypeScript,
	"tsx":      TypeScript,
	"html":     HTML,
	"htm":      HTML,
	"xml":      XML,
	"css":      CSS,
	"json":     JSON,
	"sql":      SQL,
	"toml":     TOML,
	"ini":      INI,
	"cfg":      INI,
	"bat":      Batch,
	"cmd":      Batch,
	"mk":       Makefile,
	"diff":     Diff,
	"patch":    Diff,
	"sh":       Shell,
	"bash":     Shell,
	"zsh":      Shell,
	"md":       Markdown,
	"markdown": Markdown,
	"yml":      YAML,
	"yaml":     YAML,
	"ps1":      PowerShell,
	"psm1":     PowerShell,
	"go":       GoLang,
	"txt":      PlainText,
	"log":      PlainText,
}

// builtinByName maps exact (lowercase) filenames to languages.
var builtinByName = map[string]Language{
	"makefile":    Makefile,
	"gnumakefile": Makefile,
	"dockerfile":  Shell,
}

// Registry resolves paths to languages. The zero value is not usable;
// construct with NewRegistry.
type Registry struct {
	byExt  map[string]Language
	byName map[string]Language
}

// NewRegistry returns a registry with the built-in tables.
func NewRegistry() *Registry {
	r := &Registry{
		byExt:  make(map[string]Language, len(builtinByExt)),
		byName: make(map[string]Language, len(builtinByName)),
	}
	for ext, l := range builtinByExt {
		r.byExt[ext] = l
	}
	for name, l := range builtinByName {
		r.byName[name] = l
	}
	return r
}

// LoadOverrides merges user extension mappings from a YAML file of the
// form "ext: Language Name". A missing file is not an error.
func (r *Registry) LoadOverrides(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading language overrides %s: %w", path, err)
	}

	var overrides map[string]string
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return fmt.Errorf("parsing language overrides %s: %w", path, err)
	}

	for ext, name := range overrides {
		ext = strings.ToLower(strings.TrimPrefix(ext, "."))
		if ext == "" || name == "" {
			continue
		}
		r.byExt[ext] = Language(name)
	}
	return nil
}

// Detect returns the language for a file path. Untitled documents
// (empty path) and unknown extensions are Plain Text.
func (r *Registry) Detect(path string) Language {
	if path == "" {
		return PlainText
	}
	base := strings.ToLower(filepath.Base(path))
	if l, ok := r.byName[base]; ok {
		return l
	}
	ext := strings.TrimPrefix(filepath.Ext(base), ".")
	if l, ok := r.byExt[ext]; ok {
		return l
	}
	return PlainText
}
