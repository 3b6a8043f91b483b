// Package prompts provides a loader for externalized LLM prompt templates.
// Templates are stored as text files and embedded at compile time.
package prompts

import (
	"embed"
	"fmt"
	"strings"
	"sync"
)

//go:embed templates/*.txt
var promptFiles embed.FS

// Template names understood by Get.
const (
	TransformSkill  = "transform_skill"
	GenerateRoles   = "generate_roles"
	RecommendSkills = "recommend_skills"
)

// cache stores loaded templates to avoid repeated embedded-FS reads
var (
	cache   = make(map[string]string)
	cacheMu sync.RWMutex
)

// Get retrieves a prompt template by name (without path or extension).
func Get(name string) (string, error) {
	cacheMu.RLock()
	if prompt, exists := cache[name]; exists {
		cacheMu.RUnlock()
		return prompt, nil
	}
	cacheMu.RUnlock()

	data, err := promptFiles.ReadFile("templates/" + name + ".txt")
	if err != nil {
		return "", fmt.Errorf("failed to read prompt template %s: %w", name, err)
	}
	prompt := string(data)

	cacheMu.Lock()
	cache[name] = prompt
	cacheMu.Unlock()

	return prompt, nil
}

// MustGet retrieves a prompt template by name, panicking if not found.
// Use this for templates that are required at initialization time.
func MustGet(name string) string {
	prompt, err := Get(name)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return prompt
}

// Format replaces template placeholders in the form {{.Key}} with values
// from data. This is a simple substitution system for prompt customization.
func Format(template string, data map[string]string) string {
	result := template
	for key, value := range data {
		placeholder := fmt.Sprintf("{{.%s}}", key)
		result = strings.ReplaceAll(result, placeholder, value)
	}
	return result
}

// ClearCache clears the template cache. Useful for testing.
func ClearCache() {
	cacheMu.Lock()
	cache = make(map[string]string)
	cacheMu.Unlock()
}
