package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kmoretti/marquee/internal/errfmt"
)

var taxonomyCmd = &cobra.Command{
	Use:     "taxonomy",
	Aliases: []string{"filters"},
	Short:   "List the genres, formats, and languages the catalog knows",
	Run: func(cmd *cobra.Command, args []string) {
		run(func(ctx context.Context) int { return runTaxonomy(ctx, os.Stdout) })
	},
}

var ratingsCmd = &cobra.Command{
	Use:   "ratings <movie-id>",
	Short: "Show the rating count for a movie",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		run(func(ctx context.Context) int { return runRatings(ctx, args[0], os.Stdout) })
	},
}

func init() {
	rootCmd.AddCommand(taxonomyCmd, ratingsCmd)
}

func runTaxonomy(ctx context.Context, w io.Writer) int {
	env, err := bootstrap()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	genres, err := env.Client.FetchGenres(ctx)
	if err != nil {
		fmt.Fprintln(w, errfmt.Movie(err, "Failed to fetch filters"))
		return 1
	}
	formats, err := env.Client.FetchFormats(ctx)
	if err != nil {
		fmt.Fprintln(w, errfmt.Movie(err, "Failed to fetch filters"))
		return 1
	}
	languages, err := env.Client.FetchLanguages(ctx)
	if err != nil {
		fmt.Fprintln(w, errfmt.Movie(err, "Failed to fetch filters"))
		return 1
	}

	if jsonOutput {
		data, _ := json.MarshalIndent(map[string][]string{
			"genres":    genres,
			"formats":   formats,
			"languages": languages,
		}, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintln(w, formatNameList("Genres", genres))
	fmt.Fprintln(w, formatNameList("Formats", formats))
	fmt.Fprintln(w, formatNameList("Languages", languages))
	return 0
}

func runRatings(ctx context.Context, rawID string, w io.Writer) int {
	id, err := parseMovieID(rawID)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	env, err := bootstrap()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	count, err := env.Client.FetchRatingCount(ctx, id)
	if err != nil {
		fmt.Fprintln(w, errfmt.Movie(err, "Failed to fetch ratings count"))
		return 1
	}

	if jsonOutput {
		data, _ := json.MarshalIndent(map[string]any{"movieId": id, "ratingCount": count}, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}
	fmt.Fprintf(w, "%d\n", count)
	return 0
}

func formatNameList(label string, names []string) string {
	if len(names) == 0 {
		return fmt.Sprintf("%-10s (none)", label+":")
	}
	return fmt.Sprintf("%-10s %s", label+":", strings.Join(names, ", "))
}
