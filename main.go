package main

import (
	"fmt"
	"os"

	"github.com/openshelf/biblio/lending"
	"github.com/openshelf/biblio/payment"
	"github.com/openshelf/biblio/sqlitestore"
	"github.com/openshelf/biblio/web"
)

func main() {
	dbPath := envOr("BIBLIO_DB", "biblio.db")
	addr := envOr("BIBLIO_ADDR", ":8080")

	store, err := sqlitestore.NewStore(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	gateway := payment.NewGateway(os.Getenv("BIBLIO_PAYMENT_API_KEY"), nil)
	handlers := web.NewHandlers(lending.NewService(store), gateway)

	routes := web.SetupRoutes(handlers)
	if err := routes.Run(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error running server: %v\n", err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
