package main

import (
	"fmt"
	"strconv"

	"github.com/Rich-108/Academic-Engine/internal/repository"
	"github.com/spf13/cobra"
)

func glossaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "glossary <telegram-id>",
		Short: "List a user's saved glossary terms",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			telegramID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid telegram id %q", args[0])
			}

			cfg, err := loadCLIConfig()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			ctx := cmd.Context()

			pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("connect: %w", err)
			}
			defer pool.Close()
			store := repository.NewStore(pool)

			user, err := store.GetUserByTelegramID(ctx, telegramID)
			if err != nil {
				return fmt.Errorf("lookup user: %w", err)
			}
			entries, err := store.ListGlossary(ctx, user.ID)
			if err != nil {
				return fmt.Errorf("glossary: %w", err)
			}

			if len(entries) == 0 {
				fmt.Println("no entries")
				return nil
			}
			for _, e := range entries {
				fmt.Printf("%-30s %s\n", e.Term, e.Definition)
			}
			return nil
		},
	}
}
