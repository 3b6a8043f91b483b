// Package main provides the entry point for the People Protocol skill builder.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "skill_builder",
	Short: "People Protocol Skill Builder",
	Long:  "Skill Builder searches the Lightcast skills taxonomy and turns selected skills into five-level People Protocol rubrics via an LLM, as a CLI or REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	configureLogging()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func configureLogging() {
	if level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		logrus.SetLevel(level)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}
