package client

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/skilltree-api/internal/handlers/skilltree/v1alpha1"
)

var (
	color string
	kind  string
)

var nodesCmd = &cobra.Command{
	Use:   "nodes",
	Short: "List skill nodes with their unlock state",
	RunE: func(_ *cobra.Command, _ []string) error {
		resp, err := call(v1alpha1.MethodListNodes, map[string]any{"session_id": sessionID, "color": color})
		if err != nil {
			return err
		}

		fields := resp.GetFields()
		fmt.Printf("Available points: %v\n\n", fields["available_points"].GetNumberValue())
		for _, v := range fields["nodes"].GetListValue().GetValues() {
			node := v.GetStructValue().AsMap()
			state := "locked"
			if unlocked, _ := node["unlocked"].(bool); unlocked {
				state = "open"
			}
			fmt.Printf("  %-20s %-6v tier %v cost %v  %-6s points %v\n",
				node["id"], node["color"], node["tier"], node["cost"], state, node["points"])
		}
		return nil
	},
}

var traitsCmd = &cobra.Command{
	Use:   "traits",
	Short: "List races, birthsigns and feats",
	RunE: func(_ *cobra.Command, _ []string) error {
		resp, err := call(v1alpha1.MethodListTraits, map[string]any{"kind": kind})
		if err != nil {
			return err
		}

		for _, v := range resp.GetFields()["traits"].GetListValue().GetValues() {
			t := v.GetStructValue().AsMap()
			fmt.Printf("  %-10v %-20v %v\n", t["kind"], t["id"], t["name"])
		}
		return nil
	},
}

func init() {
	nodesCmd.Flags().StringVar(&color, "color", "", "Filter by color (red, green, blue)")
	traitsCmd.Flags().StringVar(&kind, "kind", "", "Filter by kind (race, birthsign, feat)")
}
