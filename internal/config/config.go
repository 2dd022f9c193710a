// Package config holds the client-provided project configuration and the
// path classification derived from it.
package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"hxlsp/internal/lang"
)

// Config describes an htmx project: the backend language, the template file
// extension and the directories to walk for tags. It arrives as the LSP
// initializationOptions object.
type Config struct {
	// Backend language, one of "python", "rust", "go".
	Lang string `json:"lang"`
	// Template file extension without the dot, e.g. "html" or "jinja".
	TemplateExt string `json:"template_ext"`
	// Directories to walk for template files.
	Templates []string `json:"templates"`
	// Directories to walk for JavaScript/TypeScript tag declarations.
	JSTags []string `json:"js_tags"`
	// Directories to walk for backend tag declarations.
	BackendTags []string `json:"backend_tags"`
}

// Load decodes initializationOptions into a Config. Fields absent from the
// source are left at their zero value; Validate decides whether the result is
// usable.
func Load(v any) (Config, error) {
	var cfg Config

	data, err := json.Marshal(v)
	if err != nil {
		return Config{}, fmt.Errorf("failed to marshal initialization options: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal into Config: %w", err)
	}

	return cfg, nil
}

// Validate checks the fields the core depends on. A failing config leaves
// the server in degraded mode: position resolution keeps working, the tag
// registry stays empty.
func (c *Config) Validate() error {
	if c.TemplateExt == "" || strings.Contains(c.TemplateExt, " ") {
		return fmt.Errorf("template extension not found")
	}
	if !lang.SupportedBackend(c.Lang) {
		return fmt.Errorf("language %q is not supported", c.Lang)
	}
	return nil
}

// Classify maps a file path to its language classifications, or nil when the
// file is of no interest. A path whose extension equals both the backend and
// the template extension is claimed by both classifications.
func (c *Config) Classify(path string) []lang.Type {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return nil
	}
	switch ext {
	case "js", "ts":
		return []lang.Type{lang.JavaScript}
	}
	if ext == lang.BackendExtension(c.Lang) {
		if ext == c.TemplateExt {
			return []lang.Type{lang.Backend, lang.Template}
		}
		return []lang.Type{lang.Backend}
	}
	if ext == c.TemplateExt {
		return []lang.Type{lang.Template}
	}
	return nil
}
