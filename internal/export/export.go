// Package export builds and validates the People Protocol export document,
// the sole persisted artifact of a session.
package export

import (
	"encoding/json"
	"fmt"
	"os"

	_ "embed"

	"github.com/xeipuuv/gojsonschema"

	"github.com/peopleprotocol/skill-builder/internal/types"
)

// DefaultFilename is where the CLI writes the export document.
const DefaultFilename = "people_protocol_skills.json"

//go:embed schema.json
var schemaJSON []byte

// ValidationError reports schema violations in the export document with
// field paths.
type ValidationError struct {
	Errors []FieldError
}

// FieldError is a single violation at a specific field.
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	msg := "export document failed schema validation:"
	for i, err := range ve.Errors {
		msg += fmt.Sprintf("\n  %d. %s: %s", i+1, err.Field, err.Message)
	}
	return msg
}

// Build wraps the transformed skills in the export envelope and validates it
// against the embedded JSON Schema. An empty skills list is a valid export.
func Build(skills []types.TransformedSkill) (*types.ExportDocument, error) {
	doc := types.NewExportDocument(skills)
	if err := Validate(doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate checks an export document against the embedded schema.
func Validate(doc types.ExportDocument) error {
	docJSON, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal export document: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaJSON),
		gojsonschema.NewBytesLoader(docJSON),
	)
	if err != nil {
		return fmt.Errorf("schema validation failed to run: %w", err)
	}

	if !result.Valid() {
		ve := &ValidationError{}
		for _, desc := range result.Errors() {
			ve.Errors = append(ve.Errors, FieldError{
				Field:   desc.Field(),
				Message: desc.Description(),
			})
		}
		return ve
	}
	return nil
}

// WriteFile builds the export document and writes it as indented JSON.
func WriteFile(path string, skills []types.TransformedSkill) error {
	doc, err := Build(skills)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal export document: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write export file %s: %w", path, err)
	}
	return nil
}
