package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/kaffecito/kaffecito/internal/catalog"
	"github.com/kaffecito/kaffecito/internal/orders"
	"github.com/kaffecito/kaffecito/pkg/enums"
	pkgerrors "github.com/kaffecito/kaffecito/pkg/errors"
)

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	cedula := fs.String("cedula", "", "cédula registered with the café")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ident, err := a.auth.Login(ctx, *cedula, *password)
	if err != nil {
		return err
	}
	if ident.Name != "" {
		fmt.Printf("signed in as %s\n", ident.Name)
	} else {
		fmt.Printf("signed in (user %d)\n", ident.UserID)
	}
	return nil
}

func (a *app) cmdLogout(ctx context.Context) error {
	if err := a.auth.Logout(); err != nil {
		return err
	}
	fmt.Println("session discarded")
	return nil
}

func (a *app) cmdCategories(ctx context.Context) error {
	categories, err := a.catalog.Categories(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tDESCRIPTION")
	for _, c := range categories {
		fmt.Fprintf(w, "%d\t%s\t%s\n", c.ID, c.Name, c.Description)
	}
	return w.Flush()
}

func (a *app) cmdMenu(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("menu", flag.ContinueOnError)
	category := fs.Int("category", 0, "restrict to one category id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		products []catalog.Product
		err      error
	)
	if *category > 0 {
		products, err = a.catalog.ProductsByCategory(ctx, *category)
	} else {
		products, err = a.catalog.Products(ctx)
	}
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tAVAILABILITY")
	for _, p := range products {
		availability := fmt.Sprintf("%d in stock", p.Stock)
		if !p.Orderable() {
			availability = "unavailable"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", p.ID, p.Name, p.Price, availability)
	}
	return w.Flush()
}

func (a *app) cmdCart(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.showCart()
	}

	switch args[0] {
	case "add":
		return a.cmdCartAdd(ctx, args[1:])
	case "rm":
		return a.cmdCartRemove(ctx, args[1:])
	case "qty":
		return a.cmdCartQuantity(ctx, args[1:])
	case "show":
		return a.showCart()
	case "clear":
		a.cartStore.Clear()
		if err := a.cartRepo.Save(ctx, a.cartStore); err != nil {
			return err
		}
		fmt.Println("cart cleared")
		return nil
	case "table":
		return a.cmdCartTable(ctx, args[1:])
	default:
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown cart command %q", args[0]))
	}
}

func (a *app) cmdCartAdd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("cart add", flag.ContinueOnError)
	productID := fs.Int("product", 0, "product id from the menu")
	qty := fs.Int("qty", 1, "quantity to add")
	notes := fs.String("notes", "", "preparation notes for the line")
	if err := fs.Parse(args); err != nil {
		return err
	}

	product, err := a.catalog.ProductByID(ctx, *productID)
	if err != nil {
		return err
	}
	if err := a.cartStore.Add(*product, *qty, *notes); err != nil {
		return err
	}
	if err := a.cartRepo.Save(ctx, a.cartStore); err != nil {
		return err
	}
	return a.showCart()
}

func (a *app) cmdCartRemove(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("cart rm", flag.ContinueOnError)
	line := fs.Int("line", 0, "cart line number to remove")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.cartStore.Remove(*line - 1); err != nil {
		return err
	}
	if err := a.cartRepo.Save(ctx, a.cartStore); err != nil {
		return err
	}
	return a.showCart()
}

func (a *app) cmdCartQuantity(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("cart qty", flag.ContinueOnError)
	line := fs.Int("line", 0, "cart line number to adjust")
	delta := fs.Int("delta", 0, "quantity change, e.g. 1 or -1")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.cartStore.AdjustQuantity(*line-1, *delta); err != nil {
		return err
	}
	if err := a.cartRepo.Save(ctx, a.cartStore); err != nil {
		return err
	}
	return a.showCart()
}

func (a *app) cmdCartTable(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("cart table", flag.ContinueOnError)
	table := fs.Int("n", 0, "table number for the order")
	if err := fs.Parse(args); err != nil {
		return err
	}

	a.cartStore.SetTable(*table)
	if err := a.cartRepo.Save(ctx, a.cartStore); err != nil {
		return err
	}
	fmt.Printf("table set to %d\n", *table)
	return nil
}

func (a *app) showCart() error {
	items := a.cartStore.Items()
	if len(items) == 0 {
		fmt.Println("cart is empty")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "LINE\tPRODUCT\tQTY\tUNIT\tSUBTOTAL\tNOTES")
	for i, line := range items {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\t%s\n",
			i+1, line.Product.Name, line.Quantity, line.Product.Price, line.Subtotal(), line.Notes)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("total: %s", a.cartStore.Total())
	if table := a.cartStore.Table(); table > 0 {
		fmt.Printf("  (table %d)", table)
	}
	fmt.Println()
	return nil
}

func (a *app) cmdSubmit(ctx context.Context) error {
	if a.cartStore.Table() == 0 && a.cfg.App.Table > 0 {
		a.cartStore.SetTable(a.cfg.App.Table)
	}

	created, err := a.checkout.Submit(ctx)
	if err != nil {
		return err
	}
	if err := a.cartRepo.Save(ctx, a.cartStore); err != nil {
		return err
	}
	fmt.Printf("order #%d submitted (%s)\n", created.ID, created.Status)
	return nil
}

func (a *app) cmdAddToTable(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add-to-table", flag.ContinueOnError)
	productID := fs.Int("product", 0, "product id from the menu")
	qty := fs.Int("qty", 1, "quantity to add")
	notes := fs.String("notes", "", "preparation notes for the line")
	table := fs.Int("table", a.cfg.App.Table, "table number")
	if err := fs.Parse(args); err != nil {
		return err
	}

	product, err := a.catalog.ProductByID(ctx, *productID)
	if err != nil {
		return err
	}
	order, err := a.checkout.AddToTable(ctx, *product, *qty, *notes, *table)
	if err != nil {
		return err
	}
	fmt.Printf("order #%d updated for table %d (total %s)\n", order.ID, order.Table.Int(), order.Total)
	return nil
}

func (a *app) cmdOrders(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("orders", flag.ContinueOnError)
	status := fs.String("status", "", "filter by status (pendiente, en_proceso, completado, cancelado)")
	table := fs.Int("table", 0, "filter by table number")
	mine := fs.Bool("mine", false, "only the signed-in user's orders")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		list []orders.Order
		err  error
	)
	switch {
	case *mine:
		list, err = a.orders.Mine(ctx)
	case *status != "":
		parsed, perr := enums.ParseOrderStatus(*status)
		if perr != nil {
			return pkgerrors.Wrap(pkgerrors.CodeValidation, perr, "invalid status filter")
		}
		list, err = a.orders.ByStatus(ctx, parsed)
	case *table > 0:
		list, err = a.orders.ByTable(ctx, *table)
	default:
		list, err = a.orders.List(ctx)
	}
	if err != nil {
		return err
	}

	orders.SortForDisplay(list)
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tTABLE\tTOTAL\tCREATED")
	for _, o := range list {
		created := ""
		if !o.CreatedAt.IsZero() {
			created = o.CreatedAt.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\n", o.ID, o.Status, o.Table.Int(), o.Total, created)
	}
	return w.Flush()
}

func (a *app) cmdStatus(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return pkgerrors.New(pkgerrors.CodeValidation, "usage: kaffecito status <order-id> <estado>")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid order id %q", args[0]))
	}
	next, err := enums.ParseOrderStatus(args[1])
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid target status")
	}

	order, err := a.orders.Get(ctx, id)
	if err != nil {
		return err
	}
	updated, err := a.orders.UpdateStatus(ctx, id, order.Status, next)
	if err != nil {
		return err
	}
	fmt.Printf("order #%d is now %s\n", updated.ID, updated.Status)
	return nil
}
