package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/peopleprotocol/skill-builder/internal/roles"
)

var rolesCmd = &cobra.Command{
	Use:   "roles <company-size>",
	Short: "Generate typical roles for a company of a given size",
	Long:  `Ask the completion model which roles a company of the given size (e.g. "20-50") typically employs, with headcounts.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runRoles,
}

func init() {
	rootCmd.AddCommand(rolesCmd)
}

func runRoles(_ *cobra.Command, args []string) error {
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

	specs, err := roles.New(completion).Generate(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Typical roles for a company of %s people:\n", args[0])
	for _, spec := range specs {
		fmt.Printf("  %dx %s", spec.Count, spec.Title)
		if spec.Description != "" {
			fmt.Printf(" - %s", spec.Description)
		}
		fmt.Println()
	}
	return nil
}
