//nolint:revive // types is a standard Go package name pattern
package types

// Export envelope constants. These identify the framework revision the
// document conforms to, not the software version.
const (
	ExportFramework = "People Protocol"
	ExportVersion   = "1.0"
)

// ExportDocument is the sole persisted artifact: the envelope wrapping all
// transformed skills for download.
type ExportDocument struct {
	Framework string             `json:"framework"`
	Version   string             `json:"version"`
	Skills    []TransformedSkill `json:"skills"`
}

// NewExportDocument wraps skills in a well-formed envelope. A nil slice is
// normalized to an empty array so the exported JSON never contains null.
func NewExportDocument(skills []TransformedSkill) ExportDocument {
	if skills == nil {
		skills = []TransformedSkill{}
	}
	return ExportDocument{
		Framework: ExportFramework,
		Version:   ExportVersion,
		Skills:    skills,
	}
}
