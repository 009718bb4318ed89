// Command storefront is a small CLI walkthrough of the shop: it signs in (or
// registers), browses the catalog, fills a cart, and checks out.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/pustakaid/bookstore-backend/pkg/client"
	pkgerrors "github.com/pustakaid/bookstore-backend/pkg/errors"
)

func main() {
	var (
		baseURL  = flag.String("base", "http://localhost:8080", "API base URL")
		name     = flag.String("name", "Storefront Demo", "account name used when registering")
		email    = flag.String("email", "demo@example.com", "account email")
		password = flag.String("password", "demo-password", "account password")
		search   = flag.String("search", "", "optional catalog search term")
		quantity = flag.Int("quantity", 1, "copies of the first matching book to buy")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := run(ctx, *baseURL, *name, *email, *password, *search, *quantity); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, baseURL, name, email, password, search string, quantity int) error {
	c := client.New(baseURL)

	session, err := c.Login(ctx, email, password)
	if err != nil {
		// First run on a fresh store: the account does not exist yet.
		if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
			return err
		}
		session, err = c.Register(ctx, name, email, password)
		if err != nil {
			return err
		}
		fmt.Printf("registered %s\n", session.User.Email)
	} else {
		fmt.Printf("logged in as %s\n", session.User.Email)
	}

	listing, err := c.ListBooks(ctx, client.BookListQuery{Search: search, Sort: "price:asc", Limit: 5})
	if err != nil {
		return err
	}
	if len(listing.Data) == 0 {
		return fmt.Errorf("no books match %q", search)
	}
	fmt.Printf("catalog has %d matching books, cheapest first:\n", listing.Meta.Total)
	for _, book := range listing.Data {
		fmt.Printf("  %-40s Rp%-10d stock %d\n", book.Title, book.Price, book.Stock)
	}

	checkout := client.NewCheckoutSession(c)
	pick := listing.Data[0]
	if err := checkout.AddBook(ctx, pick.ID, quantity); err != nil {
		return err
	}
	fmt.Printf("cart: %d item(s), total Rp%d\n", checkout.TotalItems(), checkout.TotalPrice())

	txn, err := checkout.Checkout(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("transaction %s completed: %d item(s), Rp%d\n", txn.ID, txn.TotalItems, txn.TotalPrice)
	return nil
}
