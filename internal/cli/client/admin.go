package client

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// SeedCmd creates the seed command, calling the admin endpoint over HTTP.
func SeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the demo menu via the running server",
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")

			api, err := NewAPIClientWithCmd(cmd)
			if err != nil {
				return err
			}

			resp, err := api.Post("/admin/seed", nil)
			if err != nil {
				return fmt.Errorf("seed failed: %w", err)
			}

			var result struct {
				Message string `json:"message"`
			}
			if err := json.Unmarshal(resp.Data, &result); err != nil {
				return fmt.Errorf("failed to parse seed response: %w", err)
			}

			if outputJSON {
				output, _ := json.MarshalIndent(result, "", "  ")
				fmt.Println(string(output))
			} else {
				fmt.Println(result.Message)
			}
			return nil
		},
	}
}

// IndexCmd creates the index command, calling the admin endpoint over HTTP.
func IndexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "index",
		Short: "Embed pending chunks via the running server",
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")

			api, err := NewAPIClientWithCmd(cmd)
			if err != nil {
				return err
			}

			resp, err := api.Post("/admin/index", nil)
			if err != nil {
				return fmt.Errorf("index failed: %w", err)
			}

			var result struct {
				Indexed int `json:"indexed"`
			}
			if err := json.Unmarshal(resp.Data, &result); err != nil {
				return fmt.Errorf("failed to parse index response: %w", err)
			}

			if outputJSON {
				output, _ := json.MarshalIndent(result, "", "  ")
				fmt.Println(string(output))
			} else {
				fmt.Printf("Indexed %d chunks\n", result.Indexed)
			}
			return nil
		},
	}
}
