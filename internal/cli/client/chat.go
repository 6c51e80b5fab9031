package client

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// ChatRequest represents the chat API request.
type ChatRequest struct {
	Question string `json:"question"`
	DishID   *int64 `json:"dish_id,omitempty"`
	TopK     int    `json:"top_k,omitempty"`
}

// ChatSource represents one evidence chunk behind an answer.
type ChatSource struct {
	ChunkID int64   `json:"chunk_id"`
	Score   float64 `json:"score"`
	Preview string  `json:"preview"`
}

// ChatResponse represents the chat API response.
type ChatResponse struct {
	Answer     string       `json:"answer"`
	Decision   string       `json:"decision"`
	Confidence float64      `json:"confidence"`
	Sources    []ChatSource `json:"sources"`
	TraceID    int64        `json:"trace_id"`
}

// ChatCmd creates the chat command.
func ChatCmd() *cobra.Command {
	var (
		dishID  int64
		topK    int
		sources bool
	)

	cmd := &cobra.Command{
		Use:   "chat <question>",
		Short: "Ask a question about the menu",
		Long:  "Sends a question to the service and prints the grounded answer.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runChat(cmd, args[0], dishID, topK, sources, outputJSON)
		},
	}

	cmd.Flags().Int64VarP(&dishID, "dish", "d", 0, "Restrict retrieval to one dish ID")
	cmd.Flags().IntVarP(&topK, "top-k", "k", 0, "Number of chunks to retrieve (server default if 0)")
	cmd.Flags().BoolVarP(&sources, "sources", "s", false, "Show evidence sources")

	return cmd
}

func runChat(cmd *cobra.Command, question string, dishID int64, topK int, sources, outputJSON bool) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	req := ChatRequest{
		Question: question,
		TopK:     topK,
	}
	if dishID > 0 {
		req.DishID = &dishID
	}

	resp, err := api.Post("/chat", req)
	if err != nil {
		return fmt.Errorf("chat failed: %w", err)
	}

	var chatResp ChatResponse
	if err := json.Unmarshal(resp.Data, &chatResp); err != nil {
		return fmt.Errorf("failed to parse chat response: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(chatResp, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	fmt.Println(chatResp.Answer)
	fmt.Printf("\n[%s, confianza %.2f]\n", chatResp.Decision, chatResp.Confidence)

	if sources && len(chatResp.Sources) > 0 {
		fmt.Println("\nFuentes:")
		for _, src := range chatResp.Sources {
			preview := strings.ReplaceAll(src.Preview, "\n", " ")
			fmt.Printf("  [chunk:%d] %.2f  %s\n", src.ChunkID, src.Score, preview)
		}
	}

	return nil
}
