// Package main provides the entry point for the rfp_agent CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rfp_agent",
	Short: "RFP analysis and technical proposal drafting",
	Long: "rfp_agent extracts weighted evaluation criteria from Arabic/English RFPs, builds company " +
		"profiles from websites or PDF brochures, scores coverage gaps, and drafts technical proposals.",
	SilenceUsage: true,
}

var (
	configPath string
	verbose    bool
	apiKey     string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a config file (yaml, json or toml); values can be overridden by other flags")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed debug information")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "Gemini API key (optional, defaults to GEMINI_API_KEY env var)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
