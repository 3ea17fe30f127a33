package client

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/skilltree-api/internal/engine"
	"github.com/KirkDiggler/skilltree-api/internal/handlers/skilltree/v1alpha1"
)

var (
	nodeID      string
	ability     string
	value       int
	traitID     string
	text        string
	itemID      string
	itemName    string
	quantity    int
	unit        string
	weight      float64
	description string
)

var execCmd = &cobra.Command{
	Use:   "exec <command>",
	Short: "Apply one command to the session character",
	Long: `Apply one command to the session character. Commands: ` + commandList() + `.

Examples:
  skilltree client exec invest --node adrenaline-1
  skilltree client exec set_level --value 3
  skilltree client exec add_item --name Rope --quantity 1 --weight 5`,
	Args: cobra.ExactArgs(1),
	RunE: runExec,
}

func init() {
	execCmd.Flags().StringVar(&nodeID, "node", "", "Node ID")
	execCmd.Flags().StringVar(&ability, "ability", "", "Ability key (str, dex, con, int, wis, cha)")
	execCmd.Flags().IntVar(&value, "value", 0, "Value for set_level, set_armor and set_hp")
	execCmd.Flags().StringVar(&traitID, "trait", "", "Trait ID; empty clears race or birthsign")
	execCmd.Flags().StringVar(&text, "text", "", "Text for set_name, set_notes and set_node_choice")
	execCmd.Flags().StringVar(&itemID, "item-id", "", "Inventory item ID")
	execCmd.Flags().StringVar(&itemName, "name", "", "Inventory item name")
	execCmd.Flags().IntVar(&quantity, "quantity", 1, "Inventory item quantity")
	execCmd.Flags().StringVar(&unit, "unit", "", "Inventory item unit")
	execCmd.Flags().Float64Var(&weight, "weight", 0, "Inventory item weight per unit")
	execCmd.Flags().StringVar(&description, "description", "", "Inventory item description")
}

func commandList() string {
	names := make([]string, 0, len(engine.CommandTypes))
	for _, t := range engine.CommandTypes {
		names = append(names, string(t))
	}
	return strings.Join(names, ", ")
}

func runExec(cmd *cobra.Command, args []string) error {
	command := map[string]any{
		"type":     args[0],
		"node_id":  nodeID,
		"ability":  ability,
		"value":    value,
		"trait_id": traitID,
		"text":     text,
	}

	switch engine.CommandType(args[0]) {
	case engine.CommandAddItem, engine.CommandUpdateItem, engine.CommandRemoveItem:
		command["item"] = map[string]any{
			"id":              itemID,
			"name":            itemName,
			"quantity":        quantity,
			"unit":            unit,
			"weight_per_unit": weight,
			"description":     description,
		}
	}

	resp, err := call(v1alpha1.MethodExecute, map[string]any{
		"session_id": sessionID,
		"command":    command,
	})
	if err != nil {
		return err
	}

	fields := resp.GetFields()
	if !fields["accepted"].GetBoolValue() {
		fmt.Printf("Rejected (%s): %s\n",
			fields["reason"].GetStringValue(),
			fields["message"].GetStringValue())
		return nil
	}

	fmt.Printf("Applied %s\n\n", args[0])
	printCharacter(resp)
	return nil
}
