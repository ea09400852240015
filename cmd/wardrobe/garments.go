package main

import (
	"fmt"

	"github.com/fwojciec/wardrobe"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := wardrobe.GarmentFilter{Limit: c.Limit}
	if c.Variant != "" {
		v := wardrobe.Variant(c.Variant)
		if err := v.Validate(); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", wardrobe.ErrorMessage(err))
			return err
		}
		filter.Variant = &v
	}
	if c.Clothing {
		yes := true
		filter.IsClothing = &yes
	}

	garments, err := deps.Garments.FindGarments(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wardrobe.ErrorMessage(err))
		return err
	}

	if len(garments) == 0 {
		fmt.Fprintln(deps.Stdout, "No garments found. Use 'wardrobe ingest' or --save to add some.")
		return nil
	}

	for _, g := range garments {
		name := "-"
		if g.Record.Name != nil {
			name = *g.Record.Name
		}
		kind := "clothing"
		if !g.Record.IsClothing {
			kind = "other"
		}
		fmt.Fprintf(deps.Stdout, "%s  %-5s  %-8s  %s  %s  %s\n", g.ID, g.Variant, kind, name, formatPrice(g.Record.Price), g.Source)
	}

	return nil
}

// formatPrice renders a price with two decimals, or "-" when it is missing
// or not a number.
func formatPrice(p *wardrobe.Price) string {
	if p == nil {
		return "-"
	}
	f, err := p.Float64()
	if err != nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", f)
}

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	g, err := deps.Garments.FindGarmentByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wardrobe.ErrorMessage(err))
		return err
	}
	return writeJSON(deps.Stdout, g)
}

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if err := deps.Garments.DeleteGarment(deps.Ctx, c.ID); err != nil {
		if wardrobe.ErrorCode(err) == wardrobe.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: garment %q not found. Use 'wardrobe list' to see saved garments.\n", c.ID)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", wardrobe.ErrorMessage(err))
		}
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted garment %s\n", c.ID)
	return nil
}
