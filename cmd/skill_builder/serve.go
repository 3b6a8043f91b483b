package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/peopleprotocol/skill-builder/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for taxonomy search, rubric transformation, role generation and skill recommendation.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}

	taxonomy, err := newTaxonomy(cfg)
	if err != nil {
		return err
	}

	completion, err := newCompletion(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer completion.Close() //nolint:errcheck

	srv := server.New(server.Config{
		Port:                 cfg.Port,
		Taxonomy:             taxonomy,
		Completion:           completion,
		EnforceLevelMinimums: cfg.EnforceLevelMinimums,
	})

	fmt.Printf("Skill builder API listening on :%d (model: %s)\n", cfg.Port, completion.Model())
	return srv.Start()
}
