package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Alturino/storefront/product/pkg/response"
	productService "github.com/Alturino/storefront/product/service"
)

func newProductsCommand() *cobra.Command {
	var category string
	var sort string
	var pages int

	command := &cobra.Command{
		Use:   "products",
		Short: "List catalog products page by page",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cmd.Context()
			app, err := newApp(c)
			if err != nil {
				return err
			}
			defer app.close(c)

			engine := productService.NewListingEngine(
				app.api,
				app.notifier,
				app.cfg.Listing.PageSize,
			)
			if err := engine.SetFilter(c, category, sort); err != nil {
				return err
			}
			for page := 1; page < pages && engine.HasMore(); page++ {
				if err := engine.LoadNextPage(c); err != nil {
					return err
				}
			}

			printProducts(cmd, engine.Products())
			if !engine.HasMore() {
				fmt.Fprintln(cmd.OutOrStdout(), "no more products")
			}
			return nil
		},
	}
	command.Flags().StringVar(&category, "category", "", "filter by category")
	command.Flags().StringVar(&sort, "sort", "", "sort order passed to the catalog (asc|desc)")
	command.Flags().IntVar(&pages, "pages", 1, "number of pages to load")
	return command
}

func newCategoriesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List catalog categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cmd.Context()
			app, err := newApp(c)
			if err != nil {
				return err
			}
			defer app.close(c)

			categories, err := app.api.Categories(c)
			if err != nil {
				return err
			}
			for _, category := range categories {
				fmt.Fprintln(cmd.OutOrStdout(), category)
			}
			return nil
		},
	}
}

func newSearchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search <text>",
		Short: "Search products by title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cmd.Context()
			app, err := newApp(c)
			if err != nil {
				return err
			}
			defer app.close(c)

			searcher := productService.NewSearcher(app.api, app.cfg.SearchDebounce())
			searcher.SetText(c, args[0])
			searcher.Flush(c)

			results := searcher.Results()
			if len(results) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Product Not Found")
				return nil
			}
			printProducts(cmd, results)
			return nil
		},
	}
}

func printProducts(cmd *cobra.Command, products []response.Product) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tPRICE\tCATEGORY\tRATING")
	for _, product := range products {
		fmt.Fprintf(w, "%s\t%s\t$%s\t%s\t%.1f (%d)\n",
			product.Id,
			product.Title,
			product.Price.StringFixed(2),
			product.Category,
			product.Rating.Rate,
			product.Rating.Count,
		)
	}
	_ = w.Flush()
}
