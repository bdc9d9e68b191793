package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"niamverse/internal/bootstrap"
	catalogdto "niamverse/internal/modules/catalog/dto"
	"niamverse/internal/platform/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type globalFlags struct {
	dataDir string
	catalog string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "niamverse",
		Short:         "Browse, favorite and rate games from a catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.dataDir, "data", ".", "data directory (state, logs, default catalog)")
	root.PersistentFlags().StringVar(&flags.catalog, "catalog", "", "catalog file path or http(s) URL (default <data>/games.json)")

	root.AddCommand(newTUICmd(flags))
	root.AddCommand(newGamesCmd(flags))
	root.AddCommand(newCatalogCmd(flags))
	root.AddCommand(newFavCmd(flags))
	root.AddCommand(newRecentCmd(flags))
	root.AddCommand(newPlayCmd(flags))
	root.AddCommand(newRateCmd(flags))
	root.AddCommand(newThemeCmd(flags))
	root.AddCommand(newCloakCmd(flags))
	root.AddCommand(newEmbedCmd(flags))
	return root
}

func loadApp(flags *globalFlags) (*bootstrap.App, error) {
	cfg, err := config.New(flags.dataDir, flags.catalog)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg)
}

// withApp runs fn against a freshly wired app and releases it afterwards.
func withApp(flags *globalFlags, fn func(app *bootstrap.App) error) error {
	app, err := loadApp(flags)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()
	return fn(app)
}

func newTUICmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the terminal UI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				return bootstrap.RunTUI(cmd.Context(), app)
			})
		},
	}
}

func newGamesCmd(flags *globalFlags) *cobra.Command {
	games := &cobra.Command{Use: "games", Short: "Catalog queries"}

	var section, category, search string
	list := &cobra.Command{
		Use:   "list",
		Short: "List games in a section, optionally filtered",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				out, err := app.CatalogCLI.Browse(cmd.Context(), section, category, search)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(w, "%s (favorites: %d)\n", out.Title, out.FavoriteCount)
				if out.Empty {
					_, _ = fmt.Fprintln(w, "No games found. Try adjusting your filters or search terms.")
					return nil
				}
				for _, g := range out.Games {
					printGameLine(w, g)
				}
				return nil
			})
		},
	}
	list.Flags().StringVar(&section, "section", "home", "section: home|new|trending|favorites|recent")
	list.Flags().StringVar(&category, "category", "all", "category filter (all for none)")
	list.Flags().StringVar(&search, "search", "", "case-insensitive match on name or genre")

	var gameID int
	show := &cobra.Command{
		Use:   "show --id <id>",
		Short: "Show game details",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("id") {
				return fmt.Errorf("--id is required")
			}
			return withApp(flags, func(app *bootstrap.App) error {
				g, err := app.CatalogCLI.GetGame(cmd.Context(), gameID)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(w, "id: %d\nname: %s\ncategory: %s\ngenre: %s\nfeatured: %t\nfavorite: %t\n", g.ID, g.Name, g.Category, g.Genre, g.Featured, g.Favorite)
				for _, row := range [][2]string{
					{"link", g.Link}, {"popularity", g.Popularity}, {"released", g.ReleaseDate},
					{"build", g.Build}, {"developer", g.Developer}, {"controls", g.Controls},
				} {
					if row[1] != "" {
						_, _ = fmt.Fprintf(w, "%s: %s\n", row[0], row[1])
					}
				}
				if g.About != "" {
					_, _ = fmt.Fprintf(w, "\n%s\n", g.About)
				}
				return nil
			})
		},
	}
	show.Flags().IntVar(&gameID, "id", 0, "game id")

	categories := &cobra.Command{
		Use:   "categories",
		Short: "List categories in catalog order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				cats, err := app.CatalogCLI.Categories(cmd.Context())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "all")
				for _, c := range cats {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), c)
				}
				return nil
			})
		},
	}

	games.AddCommand(list, show, categories)
	return games
}

func newCatalogCmd(flags *globalFlags) *cobra.Command {
	catalog := &cobra.Command{Use: "catalog", Short: "Catalog source operations"}
	catalog.AddCommand(&cobra.Command{
		Use:   "reload",
		Short: "Fetch and validate the catalog source",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				out, err := app.CatalogCLI.Load(cmd.Context())
				if err != nil {
					return err
				}
				printLoad(cmd.OutOrStdout(), out)
				return nil
			})
		},
	})
	return catalog
}

func newFavCmd(flags *globalFlags) *cobra.Command {
	fav := &cobra.Command{Use: "fav", Short: "Favorites"}

	var gameID int
	toggle := &cobra.Command{
		Use:   "toggle --id <id>",
		Short: "Add or remove a favorite",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("id") {
				return fmt.Errorf("--id is required")
			}
			return withApp(flags, func(app *bootstrap.App) error {
				if _, err := app.CatalogCLI.GetGame(cmd.Context(), gameID); err != nil {
					return err
				}
				out, err := app.StateCLI.ToggleFavorite(cmd.Context(), gameID)
				if err != nil {
					return err
				}
				verb := "removed from"
				if out.Favorite {
					verb = "added to"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "#%d %s favorites (%d total)\n", out.GameID, verb, out.FavoriteCount)
				return nil
			})
		},
	}
	toggle.Flags().IntVar(&gameID, "id", 0, "game id")

	list := &cobra.Command{
		Use:   "list",
		Short: "List favorite games",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return listSection(cmd, flags, "favorites", "no favorites")
		},
	}

	fav.AddCommand(toggle, list)
	return fav
}

func newRecentCmd(flags *globalFlags) *cobra.Command {
	recent := &cobra.Command{Use: "recent", Short: "Recently played games"}
	recent.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List recently opened games (catalog order)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return listSection(cmd, flags, "recent", "no recent games")
		},
	})
	return recent
}

func newPlayCmd(flags *globalFlags) *cobra.Command {
	var gameID int
	var launch bool
	play := &cobra.Command{
		Use:   "play --id <id>",
		Short: "Open a game, recording it as recently played",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("id") {
				return fmt.Errorf("--id is required")
			}
			return withApp(flags, func(app *bootstrap.App) error {
				out, err := app.SessionCLI.Play(cmd.Context(), gameID, launch)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(w, "playing %s (#%d)\n", out.Entry.Name, out.Entry.GameID)
				if out.Entry.Link != "" {
					_, _ = fmt.Fprintf(w, "link=%s launched=%t\n", out.Entry.Link, out.Launched)
				}
				return nil
			})
		},
	}
	play.Flags().IntVar(&gameID, "id", 0, "game id")
	play.Flags().BoolVar(&launch, "launch", false, "open the game link with the system opener")
	return play
}

func newRateCmd(flags *globalFlags) *cobra.Command {
	var gameID, stars int
	var notes string
	var share bool
	rate := &cobra.Command{
		Use:   "rate --id <id> --stars <1-5>",
		Short: "Rate a game",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("id") {
				return fmt.Errorf("--id is required")
			}
			return withApp(flags, func(app *bootstrap.App) error {
				out, err := app.SessionCLI.Rate(cmd.Context(), gameID, stars, notes)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.Message)
				if share {
					s, err := app.SessionCLI.Share(cmd.Context(), gameID)
					if err != nil {
						return err
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", s.Text, s.Link)
				}
				return nil
			})
		},
	}
	rate.Flags().IntVar(&gameID, "id", 0, "game id")
	rate.Flags().IntVar(&stars, "stars", 0, "rating 1-5")
	rate.Flags().StringVar(&notes, "notes", "", "optional notes")
	rate.Flags().BoolVar(&share, "share", false, "print share text afterwards")
	return rate
}

func newThemeCmd(flags *globalFlags) *cobra.Command {
	theme := &cobra.Command{Use: "theme", Short: "Color theme"}

	theme.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the active theme",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				state, err := app.StateCLI.Snapshot(cmd.Context())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), state.Theme)
				return nil
			})
		},
	})

	theme.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List themes, marking the active one",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				options, err := app.StateCLI.Themes(cmd.Context())
				if err != nil {
					return err
				}
				for _, o := range options {
					marker := " "
					if o.Active {
						marker = "*"
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, o.Name)
				}
				return nil
			})
		},
	})

	theme.AddCommand(&cobra.Command{
		Use:   "set <name>",
		Short: "Switch and persist the theme",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				if _, err := app.StateCLI.SetTheme(cmd.Context(), strings.TrimSpace(args[0])); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "theme set: %s\n", args[0])
				return nil
			})
		},
	})
	return theme
}

func newCloakCmd(flags *globalFlags) *cobra.Command {
	var title, icon string
	cloak := &cobra.Command{
		Use:   "cloak",
		Short: "Set the terminal title to a decoy",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				out, err := app.SessionCLI.Cloak(cmd.Context(), title, icon)
				if err != nil {
					return err
				}
				// OSC 0 sets the window title in xterm-compatible terminals.
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\x1b]0;%s\x07", out.Title)
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s title=%q icon=%q\n", out.Message, out.Title, out.Icon)
				return nil
			})
		},
	}
	cloak.Flags().StringVar(&title, "title", "", "decoy title (default NiamVerse)")
	cloak.Flags().StringVar(&icon, "icon", "", "decoy icon (default logo.png)")
	return cloak
}

func newEmbedCmd(flags *globalFlags) *cobra.Command {
	var url string
	embed := &cobra.Command{
		Use:   "embed --url <url>",
		Short: "Open an arbitrary http(s) URL",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				out, err := app.SessionCLI.Embed(cmd.Context(), url)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "embedded %s launched=%t\n", out.URL, out.Launched)
				return nil
			})
		},
	}
	embed.Flags().StringVar(&url, "url", "", "absolute http(s) URL")
	return embed
}

func listSection(cmd *cobra.Command, flags *globalFlags, section, empty string) error {
	return withApp(flags, func(app *bootstrap.App) error {
		out, err := app.CatalogCLI.Browse(cmd.Context(), section, "", "")
		if err != nil {
			return err
		}
		if out.Empty {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), empty)
			return nil
		}
		for _, g := range out.Games {
			printGameLine(cmd.OutOrStdout(), g)
		}
		return nil
	})
}

func printGameLine(w io.Writer, g catalogdto.GameOutput) {
	fav := " "
	if g.Favorite {
		fav = "♥"
	}
	_, _ = fmt.Fprintf(w, "%s %d\t%s\t%s\t%s\n", fav, g.ID, g.Name, g.Category, g.Genre)
}

func printLoad(w io.Writer, out catalogdto.LoadOutput) {
	if out.Fallback {
		_, _ = fmt.Fprintf(w, "catalog unavailable (%s): %s; using empty catalog\n", out.Location, out.Reason)
		return
	}
	_, _ = fmt.Fprintf(w, "loaded %d games from %s\n", out.Games, out.Location)
	if len(out.Dropped) > 0 {
		_, _ = fmt.Fprintf(w, "dropped duplicate ids: %v\n", out.Dropped)
	}
}
