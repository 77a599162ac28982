package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vinyl-library/vinyl-library-api/cmd"
	"github.com/vinyl-library/vinyl-library-api/internal/config"
	"github.com/vinyl-library/vinyl-library-api/internal/database"
)

// InitDBCmd represents the 'init-db' command
// It creates the tables and the image directory so a fresh install can start serving
var InitDBCmd = &cobra.Command{
	Use:   "init-db",
	Short: "Creates the database tables and the image directory.",
	Long: `This command connects to the configured database (sqlite, mysql or postgres),
creates the 'artists' and 'vinyls' tables from the Go models and makes sure
the cover image directory exists.`,
	Args: cobra.NoArgs,
	RunE: func(c *cobra.Command, args []string) error {
		return initDB(cmd.Cfg, c.OutOrStdout())
	},
}

func init() {
	cmd.RootCmd.AddCommand(InitDBCmd)
}

func initDB(cfg *config.Config, out io.Writer) error {
	// Connect runs the automatic migration of the models
	db, err := database.Connect(cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := os.MkdirAll(cfg.Images.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create image directory %s: %w", cfg.Images.Dir, err)
	}

	fmt.Fprintf(out, "Database ready (%s).\n", cfg.Database.Driver)
	fmt.Fprintf(out, "Image directory ready: %s\n", cfg.Images.Dir)
	return nil
}
