// shopctl is a terminal storefront: it drives the client package against a
// running shop server the same way the browser UI does.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"tcm-webshop/client"
	"tcm-webshop/models"
	"tcm-webshop/utils"
)

func main() {
	_ = godotenv.Load()

	base := flag.String("base", envOr("SHOP_BASE_URL", "http://localhost:8000"), "shop server base URL")
	email := flag.String("email", "", "account email (for login)")
	password := flag.String("password", "", "account password (for login)")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Parse()

	logger := zap.NewNop()
	if *verbose {
		var err error
		if logger, err = zap.NewDevelopment(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	ctx := context.Background()
	api := client.NewAPI(*base, logger)
	gate := client.NewSessionGate(api, logger)
	catalog := client.NewCatalogClient(api)

	var err error
	switch args[0] {
	case "products":
		err = listProducts(ctx, catalog)
	case "buy":
		err = buy(ctx, api, gate, catalog, logger, *email, *password, args[1:])
	case "register":
		err = register(ctx, api, logger, args[1:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Fehler:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: shopctl [flags] <command>

commands:
  products                          list the catalog
  buy <product-id>=<qty> ...        log in, fill the cart and place an order
  register <email> <password> <fullname> <street> <city> <postalcode>`)
	flag.PrintDefaults()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func listProducts(ctx context.Context, catalog *client.CatalogClient) error {
	cat, err := catalog.Fetch(ctx)
	if err != nil {
		return err
	}
	for _, p := range cat.Products() {
		fmt.Printf("%s  %s  Preis: %s  Lager: %d\n", p.ID, p.Name, utils.FormatPrice(p.PriceCents), p.Stock)
	}
	return nil
}

func buy(ctx context.Context, api *client.API, gate *client.SessionGate, catalog *client.CatalogClient, logger *zap.Logger, email, password string, args []string) error {
	if email == "" || password == "" {
		return errors.New("-email und -password benötigt")
	}
	if len(args) == 0 {
		return errors.New("keine Artikel angegeben")
	}

	if err := gate.Login(ctx, email, password); err != nil {
		return err
	}
	if _, err := gate.Enter(ctx); err != nil {
		return err
	}

	cat, err := catalog.Fetch(ctx)
	if err != nil {
		return err
	}

	cart := client.NewCartStore(logger)
	for _, arg := range args {
		id, qtyStr, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("ungültiger Artikel %q, erwartet <product-id>=<qty>", arg)
		}
		qty, err := strconv.Atoi(qtyStr)
		if err != nil {
			return fmt.Errorf("ungültige Menge in %q", arg)
		}
		cart.Add(cat, id, qty)
	}

	lines, total := cart.Snapshot(cat)
	for _, line := range lines {
		fmt.Printf("%s x %d = %s\n", line.Product.Name, line.Qty, utils.FormatPrice(line.TotalCents))
	}
	fmt.Printf("Total: %s\n", utils.FormatPrice(total))

	submitter := client.NewOrderSubmitter(api, catalog, logger)
	result, err := submitter.Submit(ctx, cart)
	if err != nil {
		return err
	}
	fmt.Printf("Bestellung aufgenommen. ID: %s\n", result.OrderID)
	return nil
}

func register(ctx context.Context, api *client.API, logger *zap.Logger, args []string) error {
	if len(args) != 6 {
		return errors.New("erwartet: register <email> <password> <fullname> <street> <city> <postalcode>")
	}
	draft := models.RegistrationDraft{
		Email:      args[0],
		Password:   args[1],
		FullName:   args[2],
		Address:    args[3],
		City:       args[4],
		PostalCode: args[5],
	}

	registrar := client.NewRegistrar(api, client.NewGeocoder("", logger), logger)
	registrar.OnStatus = func(_ client.RegState, message string) {
		fmt.Println(message)
	}
	return registrar.Register(ctx, draft)
}
