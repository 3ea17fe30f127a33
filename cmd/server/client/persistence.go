package client

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/skilltree-api/internal/handlers/skilltree/v1alpha1"
	"github.com/KirkDiggler/skilltree-api/internal/snapshot"
)

var (
	slotName string
	format   string
	filePath string
)

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save the session character to a slot",
	RunE: func(_ *cobra.Command, _ []string) error {
		resp, err := call(v1alpha1.MethodSave, map[string]any{"session_id": sessionID, "slot": slotName})
		if err != nil {
			return err
		}
		fields := resp.GetFields()
		fmt.Printf("Saved to %s at %s\n", fields["slot"].GetStringValue(), fields["saved_at"].GetStringValue())
		return nil
	},
}

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Replace the session character with a saved slot",
	RunE: func(_ *cobra.Command, _ []string) error {
		resp, err := call(v1alpha1.MethodLoad, map[string]any{"session_id": sessionID, "slot": slotName})
		if err != nil {
			return err
		}
		fields := resp.GetFields()
		if !fields["found"].GetBoolValue() {
			fmt.Printf("Nothing saved in %s; session unchanged\n", fields["slot"].GetStringValue())
			return nil
		}
		printDropped(fields["dropped"].GetListValue().AsSlice())
		printCharacter(resp)
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the session character as JSON or TOML",
	RunE: func(_ *cobra.Command, _ []string) error {
		f := format
		if f == "" && filePath != "" {
			f = string(snapshot.FormatFromPath(filePath))
		}

		resp, err := call(v1alpha1.MethodExport, map[string]any{"session_id": sessionID, "format": f})
		if err != nil {
			return err
		}

		data := resp.GetFields()["data"].GetStringValue()
		if filePath == "" {
			fmt.Print(data)
			return nil
		}
		if err := os.WriteFile(filePath, []byte(data), 0o600); err != nil {
			return fmt.Errorf("failed to write %s: %w", filePath, err)
		}
		fmt.Printf("Exported to %s\n", filePath)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Replace the session character from a JSON or TOML file",
	RunE: func(_ *cobra.Command, _ []string) error {
		data, err := os.ReadFile(filePath) // #nosec G304 // user supplied path
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", filePath, err)
		}

		f := format
		if f == "" {
			f = string(snapshot.FormatFromPath(filePath))
		}

		resp, err := call(v1alpha1.MethodImport, map[string]any{
			"session_id": sessionID,
			"data":       string(data),
			"format":     f,
		})
		if err != nil {
			return err
		}
		printDropped(resp.GetFields()["dropped"].GetListValue().AsSlice())
		printCharacter(resp)
		return nil
	},
}

var slotsCmd = &cobra.Command{
	Use:   "slots",
	Short: "List saved slots",
	RunE: func(_ *cobra.Command, _ []string) error {
		resp, err := call(v1alpha1.MethodListSlots, nil)
		if err != nil {
			return err
		}
		for _, name := range resp.GetFields()["slots"].GetListValue().AsSlice() {
			fmt.Println(name)
		}
		return nil
	},
}

var deleteSlotCmd = &cobra.Command{
	Use:   "delete-slot",
	Short: "Delete a saved slot",
	RunE: func(_ *cobra.Command, _ []string) error {
		resp, err := call(v1alpha1.MethodDeleteSlot, map[string]any{"slot": slotName})
		if err != nil {
			return err
		}
		if resp.GetFields()["deleted"].GetBoolValue() {
			fmt.Println("Deleted")
		} else {
			fmt.Println("Nothing to delete")
		}
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{saveCmd, loadCmd, deleteSlotCmd} {
		cmd.Flags().StringVar(&slotName, "slot", "", "Slot name (server default when empty)")
	}

	exportCmd.Flags().StringVar(&format, "format", "", "json or toml (from the file extension when empty)")
	exportCmd.Flags().StringVar(&filePath, "out", "", "Output file (stdout when empty)")

	importCmd.Flags().StringVar(&format, "format", "", "json or toml (from the file extension when empty)")
	importCmd.Flags().StringVar(&filePath, "file", "", "Snapshot file (required)")
	_ = importCmd.MarkFlagRequired("file") // nolint:errcheck // safe to ignore in init
}

func printDropped(dropped []any) {
	if len(dropped) == 0 {
		return
	}
	fmt.Println("Dropped while loading:")
	for _, d := range dropped {
		fmt.Printf("  - %v\n", d)
	}
	fmt.Println()
}
