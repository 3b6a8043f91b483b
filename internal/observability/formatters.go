// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/peopleprotocol/skill-builder/internal/types"
)

const (
	// descriptionWidth truncates long skill descriptions in list output
	descriptionWidth = 60
	// ruleWidth is the width of section separators
	ruleWidth = 60
)

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// PrintSkillList outputs a numbered list of taxonomy skills with their type
// and a truncated description.
func (p *Printer) PrintSkillList(skills []types.SkillRecord) {
	rule := strings.Repeat("=", ruleWidth)
	fmt.Fprintln(p.out, rule)
	for i, skill := range skills {
		typeName := "Unknown"
		if skill.Type != nil {
			typeName = skill.Type.Name
		}
		desc := skill.Description
		if desc == "" {
			desc = "No description"
		}
		if len(desc) > descriptionWidth {
			desc = desc[:descriptionWidth-3] + "..."
		}
		fmt.Fprintf(p.out, "%3d. %s\n", i+1, skill.Name)
		fmt.Fprintf(p.out, "     Type: %s\n", typeName)
		fmt.Fprintf(p.out, "     %s\n\n", desc)
	}
	fmt.Fprintln(p.out, rule)
}

// PrintTypeList outputs the taxonomy's skill-type categories.
func (p *Printer) PrintTypeList(typeList []types.SkillType) {
	for _, t := range typeList {
		fmt.Fprintf(p.out, "  %s: %s\n", t.ID, t.Name)
	}
}

// PrintRubric outputs a transformed skill with all five levels.
func (p *Printer) PrintRubric(skill *types.TransformedSkill) {
	if skill == nil {
		return
	}
	fmt.Fprintf(p.out, "%s\n", skill.Name)
	fmt.Fprintf(p.out, "%s\n", skill.Description)
	for _, level := range types.LevelNames {
		fmt.Fprintf(p.out, "  [%s]\n", level)
		for _, statement := range skill.Levels.Get(level) {
			fmt.Fprintf(p.out, "    - %s\n", statement)
		}
	}
}

// PrintBatchProgress outputs one line per transformed skill as the batch runs.
func (p *Printer) PrintBatchProgress(index, total int, name string, err string) {
	if err != "" {
		fmt.Fprintf(p.out, "[%d/%d] %s... failed (%s)\n", index+1, total, name, err)
		return
	}
	fmt.Fprintf(p.out, "[%d/%d] %s... ok\n", index+1, total, name)
}
