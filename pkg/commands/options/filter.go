package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/comicview/pkg/comic"
)

// FilterOptions captures the category toggles. A nil field was not given.
type FilterOptions struct {
	Storyline *bool
	Extras    *bool

	storyline bool
	extras    bool
}

// AddFilterArgs wires --storyline and --extras on cmd.
func AddFilterArgs(cmd *cobra.Command, o *FilterOptions) {
	cmd.Flags().BoolVar(&o.storyline, "storyline", true,
		"Show storyline comics.")
	cmd.Flags().BoolVar(&o.extras, "extras", true,
		"Show extra comics.")
}

// Resolve records which toggles were set on the command line.
func (o *FilterOptions) Resolve(cmd *cobra.Command) {
	if cmd.Flags().Changed("storyline") {
		o.Storyline = &o.storyline
	}
	if cmd.Flags().Changed("extras") {
		o.Extras = &o.extras
	}
}

// ListOptions narrows listings.
type ListOptions struct {
	Allowed  bool
	Category string
}

// AddListArgs wires --allowed and, when withCategory, --category.
func AddListArgs(cmd *cobra.Command, o *ListOptions, withCategory bool) {
	cmd.Flags().BoolVarP(&o.Allowed, "allowed", "a", false,
		"Only comics the current filter shows.")
	if withCategory {
		cmd.Flags().StringVarP(&o.Category, "category", "c", "",
			"Only comics of this category (storyline or extra).")
	}
}

// ParsedCategory returns the --category value, empty when unset.
func (o *ListOptions) ParsedCategory() (comic.Category, error) {
	if o.Category == "" {
		return "", nil
	}
	return comic.ParseCategory(o.Category)
}
