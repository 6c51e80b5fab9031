package admin

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mesaviva/menurag/internal/config"
	"github.com/mesaviva/menurag/internal/database"
	"github.com/mesaviva/menurag/internal/repository"
	"github.com/mesaviva/menurag/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

// SeedCmd returns the seed command
func SeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the demo menu into the database",
		Long:  "Load the demo dishes and their knowledge chunks. Running against a populated database is a no-op.",
		RunE:  runSeed,
	}

	cmd.Flags().StringP("output", "o", "text", "Output format (text or json)")

	return cmd
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	outputFormat, _ := cmd.Flags().GetString("output")

	cfg, pool, err := getDBPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	dishRepo := repository.NewDishRepository(pool)
	chunkRepo := repository.NewChunkRepository(pool)
	textSvc := service.NewTextService(service.ChunkConfig{
		ChunkSize:    cfg.ChunkSize,
		Overlap:      cfg.ChunkOverlap,
		PreviewChars: cfg.PreviewChars,
	})
	seedSvc := service.NewSeedService(dishRepo, chunkRepo, textSvc)

	message, err := seedSvc.SeedDishes(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed menu: %w", err)
	}

	if outputFormat == "json" {
		jsonBytes, _ := json.MarshalIndent(map[string]string{"message": message}, "", "  ")
		fmt.Println(string(jsonBytes))
	} else {
		fmt.Println(message)
	}

	return nil
}

func getDBPool(ctx context.Context) (*config.Config, *pgxpool.Pool, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	pool, err := database.NewPool(ctx, database.Config{URL: cfg.DatabaseURL})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return cfg, pool, nil
}
