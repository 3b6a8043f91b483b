package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/peopleprotocol/skill-builder/internal/export"
	"github.com/peopleprotocol/skill-builder/internal/observability"
	"github.com/peopleprotocol/skill-builder/internal/transform"
	"github.com/peopleprotocol/skill-builder/internal/types"
)

var (
	transformLimit   int
	transformSkillID string
	transformIn      string
	transformOut     string
	transformShow    bool
)

var transformCmd = &cobra.Command{
	Use:   "transform [query]",
	Short: "Transform taxonomy skills into People Protocol rubrics",
	Long: `Run skills through the completion model to produce five-level rubrics and
write the validated export document.

Skills come from a free-text taxonomy search (query argument), one taxonomy
ID (--id), or a saved selection file (--in).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTransform,
}

func init() {
	transformCmd.Flags().IntVarP(&transformLimit, "limit", "l", 5, "Maximum number of skills to transform")
	transformCmd.Flags().StringVar(&transformSkillID, "id", "", "Transform a single skill by taxonomy ID")
	transformCmd.Flags().StringVarP(&transformIn, "in", "i", "", "JSON file with previously selected skills")
	transformCmd.Flags().StringVarP(&transformOut, "out", "o", export.DefaultFilename, "Output file for the export document")
	transformCmd.Flags().BoolVar(&transformShow, "show", false, "Print each rubric as it is produced")
	rootCmd.AddCommand(transformCmd)
}

func runTransform(_ *cobra.Command, args []string) error {
	query := ""
	if len(args) > 0 {
		query = args[0]
	}
	if query == "" && transformSkillID == "" && transformIn == "" {
		return fmt.Errorf("a query argument, --id, or --in is required")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()
	completion, err := newCompletion(ctx, cfg)
	if err != nil {
		return err
	}
	defer completion.Close() //nolint:errcheck

	var skills []types.SkillRecord
	switch {
	case transformIn != "":
		skills, err = readSelection(transformIn)
		if err != nil {
			return err
		}
	case transformSkillID != "":
		taxonomy, err := newTaxonomy(cfg)
		if err != nil {
			return err
		}
		skill, err := taxonomy.GetByID(ctx, transformSkillID)
		if err != nil {
			return err
		}
		skills = []types.SkillRecord{*skill}
	default:
		taxonomy, err := newTaxonomy(cfg)
		if err != nil {
			return err
		}
		skills, err = taxonomy.Search(ctx, query, transformLimit)
		if err != nil {
			return err
		}
	}
	if len(skills) == 0 {
		return fmt.Errorf("no skills matched")
	}

	printer := observability.NewPrinter(os.Stdout)
	fmt.Printf("Transforming %d skills with %s:\n", len(skills), completion.Model())

	transformer := transform.New(completion, cfg.EnforceLevelMinimums)
	result := transformer.Batch(ctx, skills, func(index, total int, item transform.ItemResult) {
		printer.PrintBatchProgress(index, total, item.SkillName, item.Error)
		if transformShow && item.Rubric != nil {
			printer.PrintRubric(item.Rubric)
		}
	})

	fmt.Printf("Done: %d succeeded, %d failed.\n", result.Succeeded, result.Failed)
	if result.Succeeded == 0 {
		return fmt.Errorf("no skills could be transformed")
	}

	if err := export.WriteFile(transformOut, result.Rubrics()); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", transformOut)
	return nil
}

// readSelection loads skills saved from a previous search. Accepts either a
// bare array of skills or a {"skills": [...]} wrapper.
func readSelection(path string) ([]types.SkillRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read selection file: %w", err)
	}

	var skills []types.SkillRecord
	if err := json.Unmarshal(data, &skills); err == nil {
		return skills, nil
	}

	var wrapper struct {
		Skills []types.SkillRecord `json:"skills"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("selection file %s is not a skill list: %w", path, err)
	}
	return wrapper.Skills, nil
}
