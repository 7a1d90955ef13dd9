package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v3"

	"github.com/GooseZen/spring-6-resttemplate/beer"
	"github.com/GooseZen/spring-6-resttemplate/beerclient"
	"github.com/GooseZen/spring-6-resttemplate/paging"
)

var errMissingID = errors.New("a beer id argument is required")

func listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List one page of beers",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Usage: "filter by beer name"},
			&cli.StringFlag{Name: "style", Usage: "filter by beer style"},
			&cli.BoolFlag{Name: "show-inventory", Usage: "include quantity on hand"},
			&cli.IntFlag{Name: "page", Usage: "0-based page number"},
			&cli.IntFlag{Name: "size", Usage: "page size"},
		},
		Action: listAction,
	}
}

func getCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Show a single beer",
		ArgsUsage: "<id>",
		Action:    getAction,
	}
}

func createCommand() *cli.Command {
	return &cli.Command{
		Name:   "create",
		Usage:  "Create a beer",
		Flags:  beerFlags(true),
		Action: createAction,
	}
}

func updateCommand() *cli.Command {
	return &cli.Command{
		Name:      "update",
		Usage:     "Change fields of an existing beer",
		ArgsUsage: "<id>",
		Flags:     beerFlags(false),
		Action:    updateAction,
	}
}

func deleteCommand() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Delete a beer",
		ArgsUsage: "<id>",
		Action:    deleteAction,
	}
}

func beerFlags(required bool) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "name", Usage: "beer name", Required: required},
		&cli.StringFlag{Name: "style", Usage: "beer style", Required: required},
		&cli.StringFlag{Name: "price", Usage: "price, e.g. 10.99", Required: required},
		&cli.IntFlag{Name: "quantity", Usage: "quantity on hand"},
		&cli.StringFlag{Name: "upc", Usage: "universal product code", Required: required},
	}
}

func listAction(ctx context.Context, cmd *cli.Command) error {
	filter, err := listFilterFromFlags(cmd)
	if err != nil {
		return err
	}

	client, err := newClient(ctx, cmd)
	if err != nil {
		return err
	}

	page, err := client.List(ctx, filter)
	if err != nil {
		return err
	}

	data, err := paging.Encode(page)
	if err != nil {
		return fmt.Errorf("failed to encode page: %w", err)
	}
	return writeRawJSON(cmd, data)
}

func getAction(ctx context.Context, cmd *cli.Command) error {
	id, err := idArg(cmd)
	if err != nil {
		return err
	}

	client, err := newClient(ctx, cmd)
	if err != nil {
		return err
	}

	b, err := client.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return writeJSON(cmd, b)
}

func createAction(ctx context.Context, cmd *cli.Command) error {
	var b beer.Beer
	if err := applyBeerFlags(cmd, &b); err != nil {
		return err
	}

	client, err := newClient(ctx, cmd)
	if err != nil {
		return err
	}

	created, err := client.Create(ctx, b)
	if err != nil {
		return err
	}
	return writeJSON(cmd, created)
}

func updateAction(ctx context.Context, cmd *cli.Command) error {
	id, err := idArg(cmd)
	if err != nil {
		return err
	}

	client, err := newClient(ctx, cmd)
	if err != nil {
		return err
	}

	// PUT replaces the whole beer, so start from the stored one.
	b, err := client.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := applyBeerFlags(cmd, &b); err != nil {
		return err
	}

	updated, err := client.Update(ctx, b)
	if err != nil {
		return err
	}
	return writeJSON(cmd, updated)
}

func deleteAction(ctx context.Context, cmd *cli.Command) error {
	id, err := idArg(cmd)
	if err != nil {
		return err
	}

	client, err := newClient(ctx, cmd)
	if err != nil {
		return err
	}

	if err := client.Delete(ctx, id); err != nil {
		return err
	}
	return writeJSON(cmd, map[string]string{"deleted": id.String()})
}

func idArg(cmd *cli.Command) (uuid.UUID, error) {
	if cmd.Args().Len() != 1 {
		return uuid.Nil, errMissingID
	}
	id, err := uuid.Parse(cmd.Args().First())
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid beer id %q: %w", cmd.Args().First(), err)
	}
	return id, nil
}

func listFilterFromFlags(cmd *cli.Command) (*beerclient.ListFilter, error) {
	filter := &beerclient.ListFilter{}

	if cmd.IsSet("name") {
		filter.Name = beerclient.Ptr(cmd.String("name"))
	}
	if cmd.IsSet("style") {
		style, err := beer.ParseStyle(cmd.String("style"))
		if err != nil {
			return nil, err
		}
		filter.Style = &style
	}
	if cmd.IsSet("show-inventory") {
		filter.ShowInventory = beerclient.Ptr(cmd.Bool("show-inventory"))
	}
	if cmd.IsSet("page") {
		filter.PageNumber = beerclient.Ptr(int(cmd.Int("page")))
	}
	if cmd.IsSet("size") {
		filter.PageSize = beerclient.Ptr(int(cmd.Int("size")))
	}

	return filter, nil
}

// applyBeerFlags overwrites the fields of b whose flags were given.
func applyBeerFlags(cmd *cli.Command, b *beer.Beer) error {
	if cmd.IsSet("name") {
		b.Name = cmd.String("name")
	}
	if cmd.IsSet("style") {
		style, err := beer.ParseStyle(cmd.String("style"))
		if err != nil {
			return err
		}
		b.Style = style
	}
	if cmd.IsSet("price") {
		price, err := decimal.NewFromString(cmd.String("price"))
		if err != nil {
			return fmt.Errorf("invalid price %q: %w", cmd.String("price"), err)
		}
		b.Price = price
	}
	if cmd.IsSet("quantity") {
		b.QuantityOnHand = beerclient.Ptr(int(cmd.Int("quantity")))
	}
	if cmd.IsSet("upc") {
		b.UPC = cmd.String("upc")
	}
	return nil
}
