// Package main is the entry point for the skill tree gRPC server and its
// client commands
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/skilltree-api/cmd/server/client"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "skilltree",
	Short: "Skill tree character builder",
	Long:  `Skill tree derives characters from skill node investments and traits and serves them over gRPC.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default .skilltree.yaml)")

	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
