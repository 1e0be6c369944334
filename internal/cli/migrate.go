package cli

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/KonchadaBhuvan/my-pro/internal/config"
	"github.com/KonchadaBhuvan/my-pro/internal/database"
)

// NewMigrateCmd applies database migrations and exits.
func NewMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()

			db, err := database.Connect(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := database.Migrate(db); err != nil {
				return err
			}
			log.Println("migrations applied")
			return nil
		},
	}
}
