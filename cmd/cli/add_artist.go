package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vinyl-library/vinyl-library-api/cmd"
	"github.com/vinyl-library/vinyl-library-api/internal/config"
	"github.com/vinyl-library/vinyl-library-api/internal/database"
	"github.com/vinyl-library/vinyl-library-api/internal/repository"
	"github.com/vinyl-library/vinyl-library-api/internal/services"
)

var artistNameFlag string

// AddArtistCmd représente la commande 'add-artist'
var AddArtistCmd = &cobra.Command{
	Use:   "add-artist",
	Short: "Ajoute un artiste au catalogue.",
	Long: `Cette commande ajoute un artiste et affiche son identifiant.
Si un artiste du même nom existe déjà, son identifiant est affiché sans rien créer.

Exemple:
  vinyl-library add-artist --name="The Beatles"`,
	RunE: func(c *cobra.Command, args []string) error {
		return addArtist(c.Context(), cmd.Cfg, artistNameFlag, c.OutOrStdout())
	},
}

func init() {
	AddArtistCmd.Flags().StringVar(&artistNameFlag, "name", "", "Name of the artist")
	_ = AddArtistCmd.MarkFlagRequired("name")

	cmd.RootCmd.AddCommand(AddArtistCmd)
}

func addArtist(ctx context.Context, cfg *config.Config, name string, out io.Writer) error {
	db, err := database.Connect(cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)

	artistService := services.NewArtistService(repository.NewArtistRepository(db), repository.NewVinylRepository(db))

	artist, created, err := artistService.CreateArtist(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to add artist: %w", err)
	}

	if created {
		fmt.Fprintf(out, "Artist created: %s (id %d)\n", artist.Name, artist.ID)
	} else {
		fmt.Fprintf(out, "Artist already exists: %s (id %d)\n", artist.Name, artist.ID)
	}
	return nil
}
