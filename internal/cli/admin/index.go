package admin

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mesaviva/menurag/internal/ollama"
	"github.com/mesaviva/menurag/internal/repository"
	"github.com/mesaviva/menurag/internal/service"
	"github.com/spf13/cobra"
)

// IndexCmd returns the index command
func IndexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Embed chunks that are missing embeddings",
		Long:  "Run one indexing pass: embed every chunk without a stored vector and persist the results",
		RunE:  runIndex,
	}

	cmd.Flags().StringP("output", "o", "text", "Output format (text or json)")

	return cmd
}

func runIndex(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	outputFormat, _ := cmd.Flags().GetString("output")

	cfg, pool, err := getDBPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	chunkRepo := repository.NewChunkRepository(pool)
	embeddingRepo := repository.NewEmbeddingRepository(pool)
	provider := ollama.NewClient(ollama.Config{
		BaseURL:         cfg.OllamaURL,
		EmbedModel:      cfg.EmbedModel,
		ChatModel:       cfg.ChatModel,
		EmbedTimeout:    cfg.EmbedTimeout,
		ChatTimeout:     cfg.ChatTimeout,
		HealthTimeout:   cfg.HealthTimeout,
		EmbedDimensions: cfg.EmbedDimensions,
	})
	indexSvc := service.NewIndexService(chunkRepo, embeddingRepo, provider)

	created, err := indexSvc.IndexPending(ctx)
	if err != nil {
		return fmt.Errorf("indexing failed after %d embeddings: %w", created, err)
	}

	if outputFormat == "json" {
		jsonBytes, _ := json.MarshalIndent(map[string]int{"indexed": created}, "", "  ")
		fmt.Println(string(jsonBytes))
	} else {
		fmt.Printf("Indexed %d chunks\n", created)
	}

	return nil
}
