package cmd

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	inErrors "github.com/Alturino/storefront/internal/errors"
)

func newCartCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "cart",
		Short: "Manage the shopping cart",
	}
	command.AddCommand(
		newCartAddCommand(),
		newCartUpdateCommand(),
		newCartRemoveCommand(),
		newCartClearCommand(),
		newCartShowCommand(),
	)
	return command
}

func newCartAddCommand() *cobra.Command {
	var quantity int

	command := &cobra.Command{
		Use:   "add <productId>",
		Short: "Add a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cmd.Context()
			app, err := newApp(c)
			if err != nil {
				return err
			}
			defer app.close(c)

			product, err := app.api.Product(c, args[0])
			if err != nil {
				return err
			}
			if err := app.cart.AddToCart(c, product, quantity); err != nil {
				if errors.Is(err, inErrors.ErrAuthRequired) {
					fmt.Fprintln(cmd.OutOrStdout(), "Please login to add the product to cart")
					return nil
				}
				return err
			}
			return nil
		},
	}
	command.Flags().IntVar(&quantity, "quantity", 1, "quantity to add")
	return command
}

func newCartUpdateCommand() *cobra.Command {
	var quantity int

	command := &cobra.Command{
		Use:   "update <productId>",
		Short: "Set the quantity of a cart entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cmd.Context()
			app, err := newApp(c)
			if err != nil {
				return err
			}
			defer app.close(c)

			product, err := app.api.Product(c, args[0])
			if err != nil {
				return err
			}
			if err := app.cart.UpdateCart(c, product, quantity); err != nil {
				if errors.Is(err, inErrors.ErrQuantityTooLow) {
					fmt.Fprintln(cmd.OutOrStdout(), "quantity must be at least 1, use remove instead")
					return nil
				}
				return err
			}
			return nil
		},
	}
	command.Flags().IntVar(&quantity, "quantity", 1, "absolute quantity to set")
	return command
}

func newCartRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <productId>",
		Short: "Remove a product from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cmd.Context()
			app, err := newApp(c)
			if err != nil {
				return err
			}
			defer app.close(c)

			return app.cart.RemoveFromCart(c, args[0])
		},
	}
}

func newCartClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cmd.Context()
			app, err := newApp(c)
			if err != nil {
				return err
			}
			defer app.close(c)

			return app.cart.ClearCart(c)
		},
	}
}

func newCartShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the cart contents and total",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cmd.Context()
			app, err := newApp(c)
			if err != nil {
				return err
			}
			defer app.close(c)

			items := app.cart.ProductsInCart()
			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "cart is empty")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tQTY\tPRICE\tSUBTOTAL")
			total := decimal.Zero
			for _, item := range items {
				subtotal := item.Subtotal()
				total = total.Add(subtotal)
				fmt.Fprintf(w, "%s\t%s\t%d\t$%s\t$%s\n",
					item.Id,
					item.Title,
					item.Quantity,
					item.Price.StringFixed(2),
					subtotal.StringFixed(2),
				)
			}
			fmt.Fprintf(w, "\t\t\tTOTAL\t$%s\n", total.StringFixed(2))
			return w.Flush()
		},
	}
}
