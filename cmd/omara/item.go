package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/erazemk/omara/internal/model"
	"github.com/erazemk/omara/internal/store"
)

func newItemCmd(a *app) *cobra.Command {
	var wishlist bool

	cmd := &cobra.Command{
		Use:   "item",
		Short: "Manage wardrobe and wishlist items",
	}
	cmd.PersistentFlags().BoolVarP(&wishlist, "wishlist", "w", false, "operate on the wishlist instead of the wardrobe")

	collection := func() store.Collection[model.ClothingItem] {
		if wishlist {
			return store.Wishlist
		}
		return store.Wardrobe
	}

	cmd.AddCommand(
		newItemAddCmd(a, collection),
		newItemListCmd(a, collection),
		newItemRmCmd(a, collection),
		newItemAcquireCmd(a),
	)
	return cmd
}

func newItemAddCmd(a *app, collection func() store.Collection[model.ClothingItem]) *cobra.Command {
	var (
		item    model.ClothingItem
		seasons string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item.Name = args[0]

			ss, err := model.ParseSeasons(seasons)
			if err != nil {
				return err
			}
			item.Seasons = ss
			if err := model.Validate(item); err != nil {
				return err
			}

			s, closeStore, err := a.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			c := collection()
			added, err := store.Add(cmd.Context(), s, c, item)
			if err != nil {
				return fmt.Errorf("adding to %s: %w", c.Name, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s to %s\n", added.ID, c.Name)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar((*string)(&item.Category), "category", "", "tops, bottoms, dresses, outerwear, shoes or accessories")
	f.StringVar(&item.Color, "color", "", "color")
	f.StringVar(&seasons, "season", "", "comma separated seasons, or \"all\"")
	f.StringVar(&item.Brand, "brand", "", "brand")
	f.StringVar(&item.Occasion, "occasion", "", "occasion")
	f.StringVar(&item.Pattern, "pattern", "", "pattern")
	f.StringVar(&item.Material, "material", "", "material")
	f.StringVar(&item.ImageURL, "image-url", "", "product image URL")
	cmd.MarkFlagRequired("category")
	return cmd
}

func newItemListCmd(a *app, collection func() store.Collection[model.ClothingItem]) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List items",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, closeStore, err := a.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			items, err := store.GetAll(cmd.Context(), s, collection())
			if err != nil {
				return err
			}
			printItems(cmd.OutOrStdout(), items)
			return nil
		},
	}
}

func newItemRmCmd(a *app, collection func() store.Collection[model.ClothingItem]) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>...",
		Short: "Remove items",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, closeStore, err := a.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			c := collection()
			for _, id := range args {
				if err := store.Remove(cmd.Context(), s, c, id); err != nil {
					return fmt.Errorf("removing %s: %w", id, err)
				}
			}
			return nil
		},
	}
}

func newItemAcquireCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "acquire <id>",
		Short: "Move a wishlist item into the wardrobe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, closeStore, err := a.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			item, err := store.Move(cmd.Context(), s, store.Wishlist, store.Wardrobe, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved %q to wardrobe\n", item.Name)
			return nil
		},
	}
}

func printItems(w io.Writer, items []model.ClothingItem) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tCOLOR\tSEASONS")
	for _, item := range items {
		seasons := "all"
		if len(item.Seasons) > 0 {
			names := make([]string, len(item.Seasons))
			for i, s := range item.Seasons {
				names[i] = string(s)
			}
			seasons = strings.Join(names, ",")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", item.ID, item.Name, item.Category, item.Color, seasons)
	}
	tw.Flush()
}
