package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/erazemk/omara/internal/model"
	"github.com/erazemk/omara/internal/outfit"
	"github.com/erazemk/omara/internal/store"
)

func newOutfitCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "outfit",
		Short: "Suggest and manage outfits",
	}
	cmd.AddCommand(
		newOutfitSuggestCmd(a),
		newOutfitListCmd(a),
		newOutfitRmCmd(a),
	)
	return cmd
}

func newOutfitSuggestCmd(a *app) *cobra.Command {
	var (
		count  int
		seed   uint64
		season string
		save   bool
	)

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Suggest outfits for the current season",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gen := &outfit.Generator{}
			if cmd.Flags().Changed("seed") {
				gen = outfit.NewSeeded(seed)
			}

			if season != "" {
				s := model.Season(strings.ToLower(season))
				if !s.Valid() {
					return fmt.Errorf("unknown season %q", season)
				}
				gen.Season = s
			}
			if !cmd.Flags().Changed("count") {
				count = a.cfg.Outfits.Count
			}

			s, closeStore, err := a.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			items, err := store.GetAll(cmd.Context(), s, store.Wardrobe)
			if err != nil {
				return err
			}

			outfits := gen.Generate(items, count)
			if len(outfits) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Not enough clothes in season for an outfit.")
				return nil
			}

			for _, o := range outfits {
				if save {
					if _, err := store.Add(cmd.Context(), s, store.SavedOutfits, o); err != nil {
						return fmt.Errorf("saving outfit: %w", err)
					}
				}
			}
			printOutfits(cmd.OutOrStdout(), outfits)
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVarP(&count, "count", "n", outfit.DefaultCount, "number of outfits")
	f.Uint64Var(&seed, "seed", 0, "random seed for reproducible suggestions")
	f.StringVar(&season, "season", "", "suggest for this season instead of the current one")
	f.BoolVar(&save, "save", false, "save the suggestions")
	return cmd
}

func newOutfitListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved outfits",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, closeStore, err := a.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			outfits, err := store.GetAll(cmd.Context(), s, store.SavedOutfits)
			if err != nil {
				return err
			}
			printOutfits(cmd.OutOrStdout(), outfits)
			return nil
		},
	}
}

func newOutfitRmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>...",
		Short: "Remove saved outfits",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, closeStore, err := a.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			for _, id := range args {
				if err := store.Remove(cmd.Context(), s, store.SavedOutfits, id); err != nil {
					return fmt.Errorf("removing %s: %w", id, err)
				}
			}
			return nil
		},
	}
}

func printOutfits(w io.Writer, outfits []model.Outfit) {
	for _, o := range outfits {
		fmt.Fprintf(w, "%s  %s\n", o.ID, o.Name)
		for _, item := range o.Items {
			fmt.Fprintf(w, "    %-12s %s\n", item.Category, item.Name)
		}
	}
}
