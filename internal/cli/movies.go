package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kmoretti/marquee/internal/errfmt"
	"github.com/kmoretti/marquee/internal/habitat"
)

var (
	filterGenre    string
	filterFormat   string
	filterLanguage string

	movieTitle       string
	movieDescription string
	movieDuration    int
	movieCertificate string
	movieRelease     string
	moviePoster      string
	movieGenres      []string
	movieFormats     []string
	movieLanguages   []string
)

var moviesCmd = &cobra.Command{
	Use:   "movies",
	Short: "Browse and manage the movie catalog",
}

var moviesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List movies, optionally filtered by genre, format, or language",
	Run: func(cmd *cobra.Command, args []string) {
		run(func(ctx context.Context) int { return runMoviesList(ctx, os.Stdout) })
	},
}

var moviesGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one movie with its rating count",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		run(func(ctx context.Context) int { return runMoviesGet(ctx, args[0], os.Stdout) })
	},
}

var moviesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a movie (requires a signed-in account)",
	Run: func(cmd *cobra.Command, args []string) {
		run(func(ctx context.Context) int { return runMoviesMutate(ctx, 0, os.Stdout) })
	},
}

var moviesUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a movie (requires a signed-in account)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		run(func(ctx context.Context) int {
			id, err := parseMovieID(args[0])
			if err != nil {
				fmt.Fprintf(os.Stdout, "Error: %v\n", err)
				return 2
			}
			return runMoviesMutate(ctx, id, os.Stdout)
		})
	},
}

var moviesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a movie (requires a signed-in account)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		run(func(ctx context.Context) int { return runMoviesDelete(ctx, args[0], os.Stdout) })
	},
}

func init() {
	moviesListCmd.Flags().StringVar(&filterGenre, "genre", "", "only movies in this genre")
	moviesListCmd.Flags().StringVar(&filterFormat, "format", "", "only movies in this format")
	moviesListCmd.Flags().StringVar(&filterLanguage, "language", "", "only movies in this language")

	for _, c := range []*cobra.Command{moviesAddCmd, moviesUpdateCmd} {
		c.Flags().StringVar(&movieTitle, "title", "", "movie title")
		c.Flags().StringVar(&movieDescription, "description", "", "movie description")
		c.Flags().IntVar(&movieDuration, "duration", 0, "duration in minutes")
		c.Flags().StringVar(&movieCertificate, "certificate", "", "certificate, e.g. PG-13")
		c.Flags().StringVar(&movieRelease, "release-date", "", "release date, YYYY-MM-DD")
		c.Flags().StringVar(&moviePoster, "poster", "", "poster URL or path")
		c.Flags().StringSliceVar(&movieGenres, "genres", nil, "genre names")
		c.Flags().StringSliceVar(&movieFormats, "formats", nil, "format names")
		c.Flags().StringSliceVar(&movieLanguages, "languages", nil, "language names")
	}

	moviesCmd.AddCommand(moviesListCmd, moviesGetCmd, moviesAddCmd, moviesUpdateCmd, moviesDeleteCmd)
	rootCmd.AddCommand(moviesCmd)
}

func runMoviesList(ctx context.Context, w io.Writer) int {
	env, err := bootstrap()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	var movies []habitat.Movie
	switch {
	case filterGenre != "":
		movies, err = env.Client.FetchMoviesByGenre(ctx, filterGenre)
	case filterFormat != "":
		movies, err = env.Client.FetchMoviesByFormat(ctx, filterFormat)
	case filterLanguage != "":
		movies, err = env.Client.FetchMoviesByLanguage(ctx, filterLanguage)
	default:
		movies, err = env.Client.FetchAllMovies(ctx)
	}
	if err != nil {
		fmt.Fprintln(w, errfmt.Movie(err, "Failed to fetch movies"))
		return 1
	}

	if jsonOutput {
		data, _ := json.MarshalIndent(movies, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	if len(movies) == 0 {
		fmt.Fprintln(w, "No movies found.")
		return 0
	}
	for _, m := range movies {
		fmt.Fprintln(w, formatMovieLine(m))
	}
	return 0
}

func runMoviesGet(ctx context.Context, rawID string, w io.Writer) int {
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

	movie, err := env.Client.FetchMovieByID(ctx, id)
	if err != nil {
		fmt.Fprintln(w, errfmt.Movie(err, "Failed to fetch movie"))
		return 1
	}

	// Rating count failures do not fail the whole command.
	count, countErr := env.Client.FetchRatingCount(ctx, id)

	if jsonOutput {
		out := map[string]any{"movie": movie}
		if countErr == nil {
			out["ratingCount"] = count
		}
		data, _ := json.MarshalIndent(out, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintln(w, formatMovieDetail(*movie))
	if countErr == nil {
		fmt.Fprintf(w, "Ratings:      %d\n", count)
	}
	return 0
}

// runMoviesMutate handles both add (id zero) and update.
func runMoviesMutate(ctx context.Context, id int64, w io.Writer) int {
	env, err := bootstrap()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	movie := movieFromFlags(id)
	var result *habitat.Movie
	if id == 0 {
		result, err = env.Client.AddMovie(ctx, movie)
	} else {
		result, err = env.Client.UpdateMovie(ctx, movie)
	}
	if err != nil {
		fmt.Fprintln(w, errfmt.Movie(err, "Failed to save movie"))
		return 1
	}

	if jsonOutput {
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}
	if result != nil {
		fmt.Fprintf(w, "Saved %s (id %d)\n", result.Title(), result.ID())
	} else {
		fmt.Fprintln(w, "Saved.")
	}
	return 0
}

func runMoviesDelete(ctx context.Context, rawID string, w io.Writer) int {
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

	if err := env.Client.DeleteMovie(ctx, id); err != nil {
		fmt.Fprintln(w, errfmt.Movie(err, "Failed to delete movie"))
		return 1
	}
	fmt.Fprintf(w, "Deleted movie %d\n", id)
	return 0
}

func parseMovieID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid movie id %q", raw)
	}
	return id, nil
}

// movieFromFlags builds the outgoing payload from whichever flags were set.
func movieFromFlags(id int64) habitat.Movie {
	fields := map[string]any{}
	if id > 0 {
		fields["movieId"] = id
	}
	if movieTitle != "" {
		fields["movieName"] = movieTitle
	}
	if movieDescription != "" {
		fields["movieDescription"] = movieDescription
	}
	if movieDuration > 0 {
		fields["durationMinutes"] = movieDuration
	}
	if movieCertificate != "" {
		fields["certificate"] = movieCertificate
	}
	if movieRelease != "" {
		fields["releaseDate"] = movieRelease
	}
	if moviePoster != "" {
		fields["moviePoster"] = moviePoster
	}
	if len(movieGenres) > 0 {
		fields["genres"] = namedEntries(movieGenres)
	}
	if len(movieFormats) > 0 {
		fields["formats"] = namedEntries(movieFormats)
	}
	if len(movieLanguages) > 0 {
		fields["languages"] = namedEntries(movieLanguages)
	}
	return habitat.NewMovie(fields)
}

// namedEntries wraps bare names in the {name: ...} objects the API stores.
func namedEntries(names []string) []map[string]any {
	entries := make([]map[string]any, 0, len(names))
	for _, n := range names {
		entries = append(entries, map[string]any{"name": n})
	}
	return entries
}

func formatMovieLine(m habitat.Movie) string {
	parts := []string{fmt.Sprintf("%-5d %s", m.ID(), m.Title())}
	if cert := m.Certificate(); cert != "" {
		parts = append(parts, cert)
	}
	if rating, ok := m.AvgRating(); ok && rating > 0 {
		parts = append(parts, fmt.Sprintf("%.1f", rating))
	}
	return strings.Join(parts, "  ")
}

func formatMovieDetail(m habitat.Movie) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (id %d)\n", m.Title(), m.ID())
	if desc := m.Description(); desc != "" {
		fmt.Fprintf(&b, "\n%s\n\n", desc)
	}
	if cert := m.Certificate(); cert != "" {
		fmt.Fprintf(&b, "Certificate:  %s\n", cert)
	}
	if d, ok := m.DurationMinutes(); ok && d > 0 {
		fmt.Fprintf(&b, "Duration:     %dm\n", d)
	}
	if rel := m.ReleaseDate(); rel != "" {
		fmt.Fprintf(&b, "Released:     %s\n", rel)
	}
	if rating, ok := m.AvgRating(); ok && rating > 0 {
		fmt.Fprintf(&b, "Rating:       %.1f\n", rating)
	}
	if genres := m.Genres(); len(genres) > 0 {
		fmt.Fprintf(&b, "Genres:       %s\n", strings.Join(genres, ", "))
	}
	if formats := m.Formats(); len(formats) > 0 {
		fmt.Fprintf(&b, "Formats:      %s\n", strings.Join(formats, ", "))
	}
	if langs := m.Languages(); len(langs) > 0 {
		fmt.Fprintf(&b, "Languages:    %s\n", strings.Join(langs, ", "))
	}
	if poster := m.PosterRef(); poster != "" {
		fmt.Fprintf(&b, "Poster:       %s\n", poster)
	}
	return strings.TrimRight(b.String(), "\n")
}
