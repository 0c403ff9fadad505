package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	redisclient "github.com/vietddude/appstore/internal/infra/redis"
)

var cachedCmd = &cobra.Command{
	Use:   "cached",
	Short: "Show the category snapshot mirrored to Redis",
	Run:   runCached,
}

func init() {
	rootCmd.AddCommand(cachedCmd)
}

func runCached(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	if !cfg.Redis.Enabled() {
		slog.Error("Redis is not configured")
		os.Exit(1)
	}

	client, err := redisclient.NewClient(cfg.Redis)
	if err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	defer func() {
		_ = client.Close()
	}()

	snap, err := client.LoadCategories(context.Background())
	if errors.Is(err, redisclient.ErrNoSnapshot) {
		fmt.Println("No snapshot stored yet")
		return
	}
	if err != nil {
		slog.Error("Failed to load snapshot", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Saved at %s\n", snap.SavedAt.Format(time.RFC3339))
	printCategories(os.Stdout, snap.Categories, snap.Fallback)
}
