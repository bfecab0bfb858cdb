package cmd

import (
	"fmt"
	"strings"

	"github.com/TwiN/go-color"
	"github.com/joshnies/pocket/lib/console"
	"github.com/joshnies/pocket/lib/shop"
	"github.com/joshnies/pocket/lib/util"
	"github.com/joshnies/pocket/models"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"
)

// List items, optionally filtered by name.
func ListItems(c *cli.Context) error {
	s, err := newSession(c)
	if err != nil {
		return err
	}

	items, source, err := shop.NewService(s.client, s.store).Items(c.Context, c.Bool("refresh"))
	if err != nil {
		return fail(err, "Failed to load items.")
	}
	console.Verbose("Loaded %d items from %s", len(items), source)

	items = shop.Filter(items, strings.Join(c.Args().Slice(), " "))
	if len(items) == 0 {
		console.Info("No items found.")
		return nil
	}

	printItems(items)
	return nil
}

// List the user's favourites.
func ListFavourites(c *cli.Context) error {
	s, err := newSession(c)
	if err != nil {
		return err
	}

	favs, err := shop.NewService(s.client, s.store).Favourites(c.Context)
	if err != nil {
		return fail(err, "Failed to fetch favorites. Please try again.")
	}

	if len(favs) == 0 {
		console.Info("No favorites found.")
		return nil
	}

	printItems(favs)
	return nil
}

func printItems(items []models.Item) {
	width := lo.Reduce(items, func(w int, item models.Item, _ int) int {
		if len(item.Name) > w {
			return len(item.Name)
		}
		return w
	}, 0)

	for _, item := range items {
		line := fmt.Sprintf("%-*s  %s", width, item.Name, color.Ize(color.Green, util.FormatAmount(item.Price)))
		if item.Category != "" {
			line += color.Ize(color.Gray, "  ["+item.Category+"]")
		}
		fmt.Fprintln(console.Out, line)

		if item.Description != "" {
			fmt.Fprintln(console.Out, color.Ize(color.Gray, "  "+item.Description))
		}
	}
}
