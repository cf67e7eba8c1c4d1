package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/learningjournal/core/cmd/api/commands"
)

// @title Learning Journal API
// @version 1.0
// @description Reflections and portfolio projects stored as JSON documents

// @license.name MIT

// @BasePath /api

func main() {
	rootCmd := &cobra.Command{
		Use:   "journal",
		Short: "Learning Journal API Server",
		Long:  `Learning Journal serves weekly reflections and portfolio projects over a REST API, backed by JSON documents on local disk, along with the client application.`,
	}

	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewSeedCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
