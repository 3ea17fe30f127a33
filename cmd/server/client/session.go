package client

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/skilltree-api/internal/handlers/skilltree/v1alpha1"
)

var rawOutput bool

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Reset the session to a new character",
	RunE: func(_ *cobra.Command, _ []string) error {
		resp, err := call(v1alpha1.MethodNewSession, map[string]any{"session_id": sessionID})
		if err != nil {
			return err
		}
		fmt.Printf("Session: %s\n\n", resp.GetFields()["session_id"].GetStringValue())
		printCharacter(resp)
		return nil
	},
}

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the session character",
	RunE: func(_ *cobra.Command, _ []string) error {
		resp, err := call(v1alpha1.MethodGetCharacter, map[string]any{"session_id": sessionID})
		if err != nil {
			return err
		}
		if rawOutput {
			return printJSON(resp)
		}
		printCharacter(resp)
		return nil
	},
}

func init() {
	getCmd.Flags().BoolVar(&rawOutput, "json", false, "Print the full response as JSON")
}
