// Package client provides commands that call a running skill tree server
package client

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/skilltree-api/internal/handlers/skilltree/v1alpha1"
)

var (
	// Connection flags
	serverAddr string
	timeout    time.Duration
	sessionID  string
)

// ClientCmd is the root command for all client commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Client commands for the skill tree server",
	Long:  `Client commands edit and inspect a character session on a running server.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC server address")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")
	ClientCmd.PersistentFlags().StringVar(&sessionID, "session", "default", "Session ID")

	// Session commands
	ClientCmd.AddCommand(newCmd)
	ClientCmd.AddCommand(getCmd)
	ClientCmd.AddCommand(execCmd)

	// Persistence commands
	ClientCmd.AddCommand(saveCmd)
	ClientCmd.AddCommand(loadCmd)
	ClientCmd.AddCommand(exportCmd)
	ClientCmd.AddCommand(importCmd)
	ClientCmd.AddCommand(slotsCmd)
	ClientCmd.AddCommand(deleteSlotCmd)

	// Catalog commands
	ClientCmd.AddCommand(nodesCmd)
	ClientCmd.AddCommand(traitsCmd)
}

// call connects, invokes method and closes the connection
func call(method string, fields map[string]any) (*structpb.Struct, error) {
	conn, err := grpc.NewClient(serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to server: %w", err)
	}
	defer func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := v1alpha1.NewClient(conn).Call(ctx, method, fields)
	if err != nil {
		return nil, fmt.Errorf("%s failed: %w", method, err)
	}
	return resp, nil
}

func printJSON(v *structpb.Struct) error {
	data, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to format response: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// printCharacter writes a short sheet for the character in resp
func printCharacter(resp *structpb.Struct) {
	character := resp.GetFields()["character"].GetStructValue().AsMap()
	if character == nil {
		return
	}

	name, _ := character["name"].(string)
	if name == "" {
		name = "(unnamed)"
	}
	fmt.Printf("Character: %s\n", name)
	fmt.Printf("Level: %v  HP: %v/%v  Armor: %v\n",
		character["level"], character["hp"], character["max_hp"], character["armor"])

	if derived, ok := character["derived"].(map[string]any); ok {
		fmt.Printf("AC: %v  Speed: %v  Available points: %v\n",
			derived["armor_class"], derived["speed"], derived["available_skill_points"])
	}

	if points, ok := character["node_points"].(map[string]any); ok && len(points) > 0 {
		fmt.Println("\nNodes:")
		for id, p := range points {
			fmt.Printf("  - %s: %v\n", id, p)
		}
	}
}
