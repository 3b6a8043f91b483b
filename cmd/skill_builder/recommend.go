package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/peopleprotocol/skill-builder/internal/observability"
	"github.com/peopleprotocol/skill-builder/internal/recommend"
	"github.com/peopleprotocol/skill-builder/internal/types"
)

// maxRecommendTurns caps the interactive clarification loop.
const maxRecommendTurns = 5

var recommendCmd = &cobra.Command{
	Use:   "recommend <role-title>",
	Short: "Recommend taxonomy skills for a role",
	Long: `Run the interactive recommendation loop: the model may ask clarifying
questions before proposing six distinct taxonomy skills for the role.`,
	Args: cobra.ExactArgs(1),
	RunE: runRecommend,
}

func init() {
	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(_ *cobra.Command, args []string) error {
	roleTitle := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	taxonomy, err := newTaxonomy(cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()
	completion, err := newCompletion(ctx, cfg)
	if err != nil {
		return err
	}
	defer completion.Close() //nolint:errcheck

	orchestrator := recommend.New(completion, taxonomy)
	printer := observability.NewPrinter(os.Stdout)
	reader := bufio.NewReader(os.Stdin)

	var conversation []types.ConversationTurn
	for turn := 0; turn < maxRecommendTurns; turn++ {
		result, err := orchestrator.Recommend(ctx, roleTitle, conversation)
		if err != nil {
			return err
		}

		if result.Type == types.RecommendationSkills {
			if result.Reasoning != "" {
				fmt.Printf("\n%s\n", result.Reasoning)
			}
			fmt.Printf("\nRecommended skills for %q:\n", roleTitle)
			printer.PrintSkillList(result.Skills)
			return nil
		}

		fmt.Printf("\n%s\n> ", result.Question)
		answer, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read answer: %w", err)
		}
		conversation = append(conversation,
			types.ConversationTurn{Role: "assistant", Content: result.Question},
			types.ConversationTurn{Role: "user", Content: strings.TrimSpace(answer)},
		)
	}

	return fmt.Errorf("no skill recommendation after %d clarification rounds", maxRecommendTurns)
}
