package main

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cocteler/cocteler/internal/app"
	"github.com/cocteler/cocteler/internal/catalog"
	"github.com/cocteler/cocteler/internal/community"
	"github.com/cocteler/cocteler/internal/onboarding"
	"github.com/cocteler/cocteler/internal/prefs"
	"github.com/cocteler/cocteler/internal/state"
	"github.com/cocteler/cocteler/internal/ui"
)

var errUnknownCocktail = errors.New("unknown cocktail")

func cocktailRows(items []catalog.Cocktail) [][]string {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			item.ID,
			item.Name,
			item.Category,
			strconv.FormatFloat(item.Rating, 'f', 1, 64),
		})
	}
	return rows
}

var cocktailHeaders = []string{"ID", "NAME", "CATEGORY", "RATING"}

func (c *cli) printCocktails(cmd *cobra.Command, items []catalog.Cocktail, empty string) {
	if len(items) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), empty)
		return
	}
	printTable(cmd.OutOrStdout(), cocktailHeaders, cocktailRows(items))
}

func requireCocktail(env *app.Env, id string) (catalog.Cocktail, error) {
	item, ok := env.Catalog(catalog.English).Find(id)
	if !ok {
		return catalog.Cocktail{}, fmt.Errorf("%w: %q", errUnknownCocktail, id)
	}
	return item, nil
}

// --- favorites ---

func (c *cli) favoritesCmd() *cobra.Command {
	list := c.withEnv(func(cmd *cobra.Command, _ []string, env *app.Env) error {
		items := env.Catalog(c.language(env)).Resolve(env.Store.Favorites())
		c.printCocktails(cmd, items, "No favorites yet.")
		return nil
	})

	cmd := &cobra.Command{
		Use:   "favorites",
		Short: "List favorite cocktails",
		Args:  cobra.NoArgs,
		RunE:  list,
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List favorite cocktails",
			Args:  cobra.NoArgs,
			RunE:  list,
		},
		&cobra.Command{
			Use:   "toggle [cocktail-id]",
			Short: "Add or remove a favorite",
			Args:  cobra.ExactArgs(1),
			RunE: c.withEnv(func(cmd *cobra.Command, args []string, env *app.Env) error {
				item, err := requireCocktail(env, args[0])
				if err != nil {
					return err
				}
				if env.Store.ToggleFavorite(item.ID) {
					fmt.Fprintf(cmd.OutOrStdout(), "Added %s to favorites\n", item.Name)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from favorites\n", item.Name)
				}
				return nil
			}),
		},
	)
	return cmd
}

// --- collections ---

func (c *cli) collectionsCmd() *cobra.Command {
	list := c.withEnv(func(cmd *cobra.Command, _ []string, env *app.Env) error {
		var rows [][]string
		for _, col := range env.Store.Collections() {
			rows = append(rows, []string{col.ID, col.Name, col.Icon, strconv.Itoa(len(col.Items))})
		}
		printTable(cmd.OutOrStdout(), []string{"ID", "NAME", "ICON", "ITEMS"}, rows)
		return nil
	})

	cmd := &cobra.Command{
		Use:   "collections",
		Short: "Manage cocktail collections",
		Args:  cobra.NoArgs,
		RunE:  list,
	}

	var description, color, icon string
	create := &cobra.Command{
		Use:   "create [name]",
		Short: "Create an empty collection",
		Args:  cobra.ExactArgs(1),
		RunE: c.withEnv(func(cmd *cobra.Command, args []string, env *app.Env) error {
			id, err := env.Store.CreateCollection(state.CollectionInput{
				Name:        args[0],
				Description: description,
				Color:       color,
				Icon:        icon,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created collection %s\n", id)
			return nil
		}),
	}
	create.Flags().StringVar(&description, "description", "", "collection description")
	create.Flags().StringVar(&color, "color", "", "hex color such as #4ECDC4")
	create.Flags().StringVar(&icon, "icon", "", "icon name")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List collections",
			Args:  cobra.NoArgs,
			RunE:  list,
		},
		create,
		&cobra.Command{
			Use:   "show [collection-id]",
			Short: "List the cocktails in a collection",
			Args:  cobra.ExactArgs(1),
			RunE: c.withEnv(func(cmd *cobra.Command, args []string, env *app.Env) error {
				col, ok := env.Store.Collection(args[0])
				if !ok {
					return fmt.Errorf("collection %q not found", args[0])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", col.Name)
				items := env.Catalog(c.language(env)).Resolve(col.Items)
				c.printCocktails(cmd, items, "This collection is empty.")
				return nil
			}),
		},
		&cobra.Command{
			Use:   "rename [collection-id] [name]",
			Short: "Rename a collection",
			Args:  cobra.ExactArgs(2),
			RunE: c.withEnv(func(cmd *cobra.Command, args []string, env *app.Env) error {
				name := args[1]
				found, err := env.Store.UpdateCollection(args[0], state.CollectionPatch{Name: &name})
				if err != nil {
					return err
				}
				if !found {
					return fmt.Errorf("collection %q not found", args[0])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Renamed collection %s\n", args[0])
				return nil
			}),
		},
		&cobra.Command{
			Use:   "delete [collection-id]",
			Short: "Delete a collection",
			Args:  cobra.ExactArgs(1),
			RunE: c.withEnv(func(cmd *cobra.Command, args []string, env *app.Env) error {
				if !env.Store.DeleteCollection(args[0]) {
					return fmt.Errorf("collection %q not found", args[0])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted collection %s\n", args[0])
				return nil
			}),
		},
		&cobra.Command{
			Use:   "add [collection-id] [cocktail-id]",
			Short: "Add a cocktail to a collection",
			Args:  cobra.ExactArgs(2),
			RunE: c.withEnv(func(cmd *cobra.Command, args []string, env *app.Env) error {
				item, err := requireCocktail(env, args[1])
				if err != nil {
					return err
				}
				if _, ok := env.Store.Collection(args[0]); !ok {
					return fmt.Errorf("collection %q not found", args[0])
				}
				if env.Store.AddToCollection(args[0], item.ID) {
					fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", item.Name)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "%s is already in the collection\n", item.Name)
				}
				return nil
			}),
		},
		&cobra.Command{
			Use:   "remove [collection-id] [cocktail-id]",
			Short: "Remove a cocktail from a collection",
			Args:  cobra.ExactArgs(2),
			RunE: c.withEnv(func(cmd *cobra.Command, args []string, env *app.Env) error {
				if _, ok := env.Store.Collection(args[0]); !ok {
					return fmt.Errorf("collection %q not found", args[0])
				}
				if !env.Store.IsInCollection(args[0], args[1]) {
					return fmt.Errorf("%s is not in collection %q", args[1], args[0])
				}
				env.Store.RemoveFromCollection(args[0], args[1])
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[1])
				return nil
			}),
		},
	)
	return cmd
}

// --- discovery ---

func (c *cli) searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search [text]",
		Short: "Search by name, category or ingredient",
		Args:  cobra.MinimumNArgs(1),
		RunE: c.withEnv(func(cmd *cobra.Command, args []string, env *app.Env) error {
			items := env.Catalog(c.language(env)).Search(strings.Join(args, " "))
			c.printCocktails(cmd, items, "No cocktails found.")
			return nil
		}),
	}
}

func (c *cli) mixCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mix [ingredient]...",
		Short: "Find cocktails containing every listed ingredient",
		Args:  cobra.MinimumNArgs(1),
		RunE: c.withEnv(func(cmd *cobra.Command, args []string, env *app.Env) error {
			items := env.Catalog(c.language(env)).MatchIngredients(args)
			c.printCocktails(cmd, items, "Nothing uses all of those. Try fewer ingredients.")
			return nil
		}),
	}
}

func (c *cli) shelvesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shelves",
		Short: "List themed shelves",
		Args:  cobra.NoArgs,
		RunE: c.withEnv(func(cmd *cobra.Command, _ []string, env *app.Env) error {
			var rows [][]string
			for _, shelf := range env.Catalog(c.language(env)).Shelves() {
				names := make([]string, 0, len(shelf.Items))
				for _, item := range shelf.Items {
					names = append(names, item.Name)
				}
				rows = append(rows, []string{shelf.Title, strconv.Itoa(len(shelf.Items)), strings.Join(names, ", ")})
			}
			printTable(cmd.OutOrStdout(), []string{"SHELF", "COUNT", "COCKTAILS"}, rows)
			return nil
		}),
	}
}

func (c *cli) recommendCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Suggest cocktails from your taste preferences",
		Args:  cobra.NoArgs,
		RunE: c.withEnv(func(cmd *cobra.Command, _ []string, env *app.Env) error {
			if !env.Onboarding.Completed() {
				fmt.Fprintln(cmd.ErrOrStderr(), "No preferences yet; run `cocteler onboard` for personal picks.")
			}
			ranked := env.Catalog(c.language(env)).Recommend(env.Onboarding.Preferences().Profile(), limit)
			rows := make([][]string, 0, len(ranked))
			for _, r := range ranked {
				rows = append(rows, []string{r.ID, r.Name, strconv.Itoa(r.Score), strconv.FormatFloat(r.Rating, 'f', 1, 64)})
			}
			printTable(cmd.OutOrStdout(), []string{"ID", "NAME", "SCORE", "RATING"}, rows)
			return nil
		}),
	}
	cmd.Flags().IntVar(&limit, "limit", 5, "number of suggestions (0 for all)")
	return cmd
}

// --- onboarding ---

func (c *cli) onboardCmd() *cobra.Command {
	var (
		name      string
		base      string
		occasions []string
		reset     bool
		taste     onboarding.TastePreferences
	)
	cmd := &cobra.Command{
		Use:   "onboard",
		Short: "Record your name and taste preferences",
		Args:  cobra.NoArgs,
		RunE: c.withEnv(func(cmd *cobra.Command, _ []string, env *app.Env) error {
			ctx := cmd.Context()
			if reset {
				if err := env.Onboarding.Reset(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Onboarding reset")
				return nil
			}

			flags := cmd.Flags()
			var patch onboarding.Patch
			if flags.Changed("name") {
				patch.Name = &name
			}
			if flags.Changed("base") {
				patch.FavoriteBase = &base
			}
			if flags.Changed("occasion") {
				patch.Occasions = occasions
			}
			if slices.ContainsFunc([]string{"sweet", "sour", "bitter", "spicy"}, flags.Changed) {
				merged := env.Onboarding.Preferences().TastePreferences
				if flags.Changed("sweet") {
					merged.Sweet = taste.Sweet
				}
				if flags.Changed("sour") {
					merged.Sour = taste.Sour
				}
				if flags.Changed("bitter") {
					merged.Bitter = taste.Bitter
				}
				if flags.Changed("spicy") {
					merged.Spicy = taste.Spicy
				}
				patch.Taste = &merged
			}

			if err := env.Onboarding.Complete(ctx, patch); err != nil {
				return err
			}
			p := env.Onboarding.Preferences()
			fmt.Fprintf(cmd.OutOrStdout(), "Saved preferences for %s (sweet %d, sour %d, bitter %d, spicy %d, base %s)\n",
				displayName(p.Name), p.TastePreferences.Sweet, p.TastePreferences.Sour,
				p.TastePreferences.Bitter, p.TastePreferences.Spicy, displayBase(p.FavoriteBase))
			return nil
		}),
	}
	f := cmd.Flags()
	f.StringVar(&name, "name", "", "your name")
	f.IntVar(&taste.Sweet, "sweet", 0, "sweetness preference 0-5")
	f.IntVar(&taste.Sour, "sour", 0, "sourness preference 0-5")
	f.IntVar(&taste.Bitter, "bitter", 0, "bitterness preference 0-5")
	f.IntVar(&taste.Spicy, "spicy", 0, "spiciness preference 0-5")
	f.StringVar(&base, "base", "", "favorite base spirit ("+strings.Join(onboarding.Bases, ", ")+")")
	f.StringSliceVar(&occasions, "occasion", nil, "occasions you drink for (repeatable)")
	f.BoolVar(&reset, "reset", false, "forget stored preferences")
	return cmd
}

func displayName(name string) string {
	if name == "" {
		return "you"
	}
	return name
}

func displayBase(base string) string {
	if base == "" {
		return "any"
	}
	return base
}

// --- community ---

func (c *cli) communityCmd() *cobra.Command {
	var filter string
	list := c.withEnv(func(cmd *cobra.Command, _ []string, env *app.Env) error {
		f, err := community.ParseFilter(filter)
		if err != nil {
			return err
		}
		lang := c.language(env)
		var rows [][]string
		for _, r := range env.Community.List(f) {
			r = r.Localized(lang)
			rows = append(rows, []string{r.ID, r.Name, r.Author, strconv.Itoa(r.Likes)})
		}
		if len(rows) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No recipes to show.")
			return nil
		}
		printTable(cmd.OutOrStdout(), []string{"ID", "NAME", "AUTHOR", "LIKES"}, rows)
		return nil
	})

	cmd := &cobra.Command{
		Use:   "community",
		Short: "Browse and share community recipes",
		Args:  cobra.NoArgs,
		RunE:  list,
	}
	cmd.PersistentFlags().StringVar(&filter, "filter", string(community.FilterAll), "all, mine or popular")

	var (
		author string
		draft  community.Draft
	)
	publish := &cobra.Command{
		Use:   "publish",
		Short: "Share a recipe",
		Args:  cobra.NoArgs,
		RunE: c.withEnv(func(cmd *cobra.Command, _ []string, env *app.Env) error {
			if author == "" {
				author = env.Onboarding.Preferences().Name
			}
			r, err := env.Community.Publish(draft, author)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Published %s as %s\n", r.Name, r.ID)
			return nil
		}),
	}
	pf := publish.Flags()
	pf.StringVar(&draft.Name, "name", "", "recipe name")
	pf.StringVar(&draft.Description, "description", "", "short description")
	pf.StringArrayVar(&draft.Ingredients, "ingredient", nil, "ingredient line (repeatable)")
	pf.StringArrayVar(&draft.Steps, "step", nil, "preparation step (repeatable)")
	pf.StringVar(&author, "author", "", "author name (default: your onboarding name)")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List community recipes",
			Args:  cobra.NoArgs,
			RunE:  list,
		},
		publish,
		&cobra.Command{
			Use:   "like [recipe-id]",
			Short: "Like a recipe",
			Args:  cobra.ExactArgs(1),
			RunE: c.withEnv(func(cmd *cobra.Command, args []string, env *app.Env) error {
				likes, err := env.Community.Like(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s now has %d likes\n", args[0], likes)
				return nil
			}),
		},
	)
	return cmd
}

// --- display preferences ---

func (c *cli) prefsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change language and theme",
		Args:  cobra.NoArgs,
		RunE: c.withEnv(func(cmd *cobra.Command, _ []string, env *app.Env) error {
			fmt.Fprintf(cmd.OutOrStdout(), "language: %s\ntheme: %s\n", env.Prefs.Language, env.Prefs.Theme)
			return nil
		}),
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:       "language [en|es]",
			Short:     "Set the catalog language",
			Args:      cobra.ExactArgs(1),
			ValidArgs: catalog.Languages(),
			RunE: c.withEnv(func(cmd *cobra.Command, args []string, env *app.Env) error {
				lang := prefs.SaveLanguage(env.Writer, args[0])
				fmt.Fprintf(cmd.OutOrStdout(), "Language set to %s\n", lang)
				return nil
			}),
		},
		&cobra.Command{
			Use:       "theme [name]",
			Short:     "Set the TUI theme",
			Args:      cobra.ExactArgs(1),
			ValidArgs: ui.ThemeNames(),
			RunE: c.withEnv(func(cmd *cobra.Command, args []string, env *app.Env) error {
				idx := slices.IndexFunc(ui.ThemeNames(), func(n string) bool {
					return strings.EqualFold(n, args[0])
				})
				if idx < 0 {
					return fmt.Errorf("unknown theme %q (choose from %s)", args[0], strings.Join(ui.ThemeNames(), ", "))
				}
				theme := ui.ThemeNames()[idx]
				prefs.SaveTheme(env.Writer, theme)
				fmt.Fprintf(cmd.OutOrStdout(), "Theme set to %s\n", theme)
				return nil
			}),
		},
	)
	return cmd
}
