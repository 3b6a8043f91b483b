package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/peopleprotocol/skill-builder/internal/observability"
)

var (
	searchLimit  int
	searchTypeID string
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the Lightcast skills taxonomy",
	Long:  `Search the taxonomy by free text, or browse one category with --type.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "l", 20, "Maximum number of results")
	searchCmd.Flags().StringVarP(&searchTypeID, "type", "t", "", "Filter by skill type ID instead of free text")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(_ *cobra.Command, args []string) error {
	query := ""
	if len(args) > 0 {
		query = args[0]
	}
	if query == "" && searchTypeID == "" {
		return fmt.Errorf("a query argument or --type is required")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	taxonomy, err := newTaxonomy(cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()
	printer := observability.NewPrinter(os.Stdout)

	if searchTypeID != "" {
		records, err := taxonomy.ListByType(ctx, searchTypeID, searchLimit)
		if err != nil {
			return err
		}
		fmt.Printf("Found %d skills in type %s:\n", len(records), searchTypeID)
		printer.PrintSkillList(records)
		return nil
	}

	records, err := taxonomy.Search(ctx, query, searchLimit)
	if err != nil {
		return err
	}
	fmt.Printf("Found %d skills matching %q:\n", len(records), query)
	printer.PrintSkillList(records)
	return nil
}
