package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kaffecito/kaffecito/internal/api"
	"github.com/kaffecito/kaffecito/internal/auth"
	"github.com/kaffecito/kaffecito/internal/cart"
	"github.com/kaffecito/kaffecito/internal/catalog"
	"github.com/kaffecito/kaffecito/internal/checkout"
	"github.com/kaffecito/kaffecito/internal/orders"
	"github.com/kaffecito/kaffecito/internal/session"
	"github.com/kaffecito/kaffecito/pkg/config"
	"github.com/kaffecito/kaffecito/pkg/db"
	pkgerrors "github.com/kaffecito/kaffecito/pkg/errors"
	"github.com/kaffecito/kaffecito/pkg/logger"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "kaffecito"})
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		logg.Debug(ctx, ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "kaffecito",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})

	a, err := bootstrap(ctx, cfg, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap", err)
		os.Exit(1)
	}
	defer func() {
		if err := a.client.Close(); err != nil {
			logg.Error(ctx, "error closing state database", err)
		}
	}()

	if err := a.run(ctx, os.Args[1:]); err != nil {
		printError(err)
		os.Exit(1)
	}
}

// app holds the wired services for one CLI invocation.
type app struct {
	cfg    *config.Config
	logg   *logger.Logger
	client *db.Client
	sess   *session.DurableStore

	cartRepo  *cart.Repository
	cartStore *cart.Store

	catalog  *catalog.Service
	orders   *orders.Service
	auth     *auth.Service
	checkout *checkout.Service
}

func bootstrap(ctx context.Context, cfg *config.Config, logg *logger.Logger) (*app, error) {
	client, err := db.Open(ctx, cfg.Session.StatePath, logg)
	if err != nil {
		return nil, err
	}

	sess, err := session.NewDurableStore(client)
	if err != nil {
		return nil, err
	}

	cartRepo, err := cart.NewRepository(client)
	if err != nil {
		return nil, err
	}
	cartStore, err := cartRepo.Load(ctx)
	if err != nil {
		return nil, err
	}

	apiClient, err := api.New(cfg.API, sess, logg)
	if err != nil {
		return nil, err
	}
	apiClient.OnUnauthorized(func() {
		fmt.Fprintln(os.Stderr, "session expired, run `kaffecito login`")
	})

	catalogSvc, err := catalog.NewService(apiClient)
	if err != nil {
		return nil, err
	}
	orderSvc, err := orders.NewService(apiClient)
	if err != nil {
		return nil, err
	}
	authSvc, err := auth.NewService(apiClient, sess)
	if err != nil {
		return nil, err
	}
	checkoutSvc, err := checkout.NewService(orderSvc, cartStore, sess, logg)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:       cfg,
		logg:      logg,
		client:    client,
		sess:      sess,
		cartRepo:  cartRepo,
		cartStore: cartStore,
		catalog:   catalogSvc,
		orders:    orderSvc,
		auth:      authSvc,
		checkout:  checkoutSvc,
	}, nil
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		usage()
		return nil
	}

	switch args[0] {
	case "login":
		return a.cmdLogin(ctx, args[1:])
	case "logout":
		return a.cmdLogout(ctx)
	case "categories":
		return a.cmdCategories(ctx)
	case "menu":
		return a.cmdMenu(ctx, args[1:])
	case "cart":
		return a.cmdCart(ctx, args[1:])
	case "submit":
		return a.cmdSubmit(ctx)
	case "add-to-table":
		return a.cmdAddToTable(ctx, args[1:])
	case "orders":
		return a.cmdOrders(ctx, args[1:])
	case "status":
		return a.cmdStatus(ctx, args[1:])
	case "help", "-h", "--help":
		usage()
		return nil
	default:
		usage()
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown command %q", args[0]))
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `usage: kaffecito <command> [flags]

commands:
  login          sign in with cédula and password
  logout         discard the saved session
  categories     list menu categories
  menu           list products, optionally by category
  cart           manage the local cart (add, rm, qty, show, clear, table)
  submit         submit the cart as a new order
  add-to-table   add one product to the table's pending order
  orders         list orders, optionally by status or table
  status         move an order to a new status
`)
}

func printError(err error) {
	typed := pkgerrors.As(err)
	if typed == nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return
	}
	fmt.Fprintln(os.Stderr, "error:", typed.Message())
	for _, reason := range typed.Reasons() {
		fmt.Fprintln(os.Stderr, "  -", reason)
	}
}
