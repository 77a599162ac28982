package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vinyl-library/vinyl-library-api/cmd"
	"github.com/vinyl-library/vinyl-library-api/internal/config"
	"github.com/vinyl-library/vinyl-library-api/internal/database"
	"github.com/vinyl-library/vinyl-library-api/internal/images"
	"github.com/vinyl-library/vinyl-library-api/internal/monitor"
	"github.com/vinyl-library/vinyl-library-api/internal/repository"
	"github.com/vinyl-library/vinyl-library-api/internal/services"
)

// StatsCmd représente la commande 'stats'
var StatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Affiche les statistiques du catalogue",
	Long:  `Affiche le nombre d'artistes, de vinyles et d'images, ainsi que les vinyles dont la pochette est absente.`,
	Args:  cobra.NoArgs,
	RunE: func(c *cobra.Command, args []string) error {
		return printStats(c.Context(), cmd.Cfg, cmd.Log, c.OutOrStdout())
	},
}

func init() {
	cmd.RootCmd.AddCommand(StatsCmd)
}

// printStats écrit les compteurs du catalogue puis la liste des pochettes manquantes.
func printStats(ctx context.Context, cfg *config.Config, log *zap.Logger, out io.Writer) error {
	db, err := database.Connect(cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)

	artistRepo := repository.NewArtistRepository(db)
	vinylRepo := repository.NewVinylRepository(db)
	store := images.NewStore(cfg.Images.Dir, cfg.Images.MaxUploadBytes, log)

	stats, err := services.NewVinylService(vinylRepo, artistRepo).Stats(ctx)
	if err != nil {
		return fmt.Errorf("failed to read catalog stats: %w", err)
	}
	missing := monitor.NewCoverMonitor(vinylRepo, store, 0, log).CheckCovers(ctx)

	fmt.Fprintf(out, "Artists: %d\n", stats.Artists)
	fmt.Fprintf(out, "Vinyls: %d\n", stats.Vinyls)
	fmt.Fprintf(out, "Images: %d\n", len(store.List(ctx)))
	fmt.Fprintf(out, "Missing covers: %d\n", len(missing))
	for _, v := range missing {
		fmt.Fprintf(out, "  - %s (id %d): %s\n", v.Name, v.ID, v.CoverFileName)
	}
	return nil
}
