package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Rich-108/Academic-Engine/internal/diagram"
	"github.com/Rich-108/Academic-Engine/internal/repository"
	"github.com/spf13/cobra"
)

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Self-check: verify database, model API and diagram service",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadCLIConfig()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			fmt.Println("=== Database ===")
			pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
			if err != nil {
				fmt.Printf("  Status: FAILED (%v)\n", err)
			} else {
				defer pool.Close()
				fmt.Println("  Status: OK")
				store := repository.NewStore(pool)
				n, err := store.CleanupStaleRequests(ctx, 3*time.Minute)
				if err != nil {
					fmt.Printf("  Stale request cleanup: FAILED (%v)\n", err)
				} else {
					fmt.Printf("  Stale request cleanup: OK (%d removed)\n", n)
				}
			}

			fmt.Println("\n=== Model API ===")
			if cfg.GeminiAPIKey == "" {
				fmt.Println("  Status: SKIPPED (no api key)")
			} else {
				checkHTTP(ctx, cfg.GeminiBaseURL+"/v1beta/models")
			}

			fmt.Println("\n=== Diagram service ===")
			r := diagram.NewRenderer(cfg.KrokiURL, diagram.DefaultTheme)
			res := r.Render(ctx, "graph TD\nA[doctor] --> B[ok]")
			if res.Failed {
				fmt.Println("  Status: FAILED (placeholder returned)")
			} else {
				fmt.Printf("  Status: OK (%d png bytes)\n", len(res.Image))
			}

			return nil
		},
	}
}

func checkHTTP(ctx context.Context, url string) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		fmt.Printf("  Status: FAILED (%v)\n", err)
		return
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Printf("  Status: UNREACHABLE (%v)\n", err)
		return
	}
	resp.Body.Close()
	fmt.Printf("  Status: reachable (HTTP %d)\n", resp.StatusCode)
}
