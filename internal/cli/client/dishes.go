package client

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// DishItem represents one dish in API responses.
type DishItem struct {
	ID         int64    `json:"id"`
	Name       string   `json:"name"`
	Category   string   `json:"category"`
	PriceCents int64    `json:"price_cents"`
	Tags       []string `json:"tags"`
	IsActive   bool     `json:"is_active"`
	CreatedAt  string   `json:"created_at"`
}

// DishListResponse represents the dish listing API response.
type DishListResponse struct {
	Items   []DishItem `json:"items"`
	Cursor  string     `json:"cursor,omitempty"`
	HasMore bool       `json:"has_more"`
}

// DishesCmd creates the dishes command.
func DishesCmd() *cobra.Command {
	var (
		limit  int
		cursor string
	)

	cmd := &cobra.Command{
		Use:   "dishes [id]",
		Short: "List active dishes or show one dish",
		Long:  "Lists the active menu, or shows a single dish when an ID is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			if len(args) == 1 {
				return runDishGet(cmd, args[0], outputJSON)
			}
			return runDishList(cmd, limit, cursor, outputJSON)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of results")
	cmd.Flags().StringVar(&cursor, "cursor", "", "Pagination cursor from previous response")

	return cmd
}

func runDishGet(cmd *cobra.Command, id string, outputJSON bool) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	resp, err := api.Get("/dishes/" + id)
	if err != nil {
		return fmt.Errorf("failed to get dish: %w", err)
	}

	var dish DishItem
	if err := json.Unmarshal(resp.Data, &dish); err != nil {
		return fmt.Errorf("failed to parse dish: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(dish, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	printDish(dish)
	return nil
}

func runDishList(cmd *cobra.Command, limit int, cursor string, outputJSON bool) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	path := fmt.Sprintf("/dishes?limit=%d", limit)
	if cursor != "" {
		path += "&cursor=" + cursor
	}

	resp, err := api.Get(path)
	if err != nil {
		return fmt.Errorf("failed to list dishes: %w", err)
	}

	var listResp DishListResponse
	if err := json.Unmarshal(resp.Data, &listResp); err != nil {
		return fmt.Errorf("failed to parse dish list: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(listResp, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if len(listResp.Items) == 0 {
		fmt.Println("No dishes found")
		return nil
	}

	for _, dish := range listResp.Items {
		printDish(dish)
	}

	if listResp.HasMore && listResp.Cursor != "" {
		fmt.Printf("\nMore results available. Use --cursor %s\n", listResp.Cursor)
	}

	return nil
}

func printDish(d DishItem) {
	price := fmt.Sprintf("$%d.%02d", d.PriceCents/100, d.PriceCents%100)
	line := fmt.Sprintf("  %d: %s (%s) %s", d.ID, d.Name, d.Category, price)
	if len(d.Tags) > 0 {
		line += " [" + strings.Join(d.Tags, ", ") + "]"
	}
	fmt.Println(line)
}
