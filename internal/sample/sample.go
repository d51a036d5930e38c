// Package sample builds the canonical test database: a Hyper file with a
// SampleDB schema holding Customers (5 rows) and Orders (8 rows), plus
// optional synthetic extras.
package sample

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/nicolelily/hyper-files-inspector/internal/catalog"
)

// SchemaName is the schema the sample tables live in.
const SchemaName = "SampleDB"

// Customer is one row of SampleDB.Customers.
type Customer struct {
	ID         int64
	Name       string
	Email      string
	Tier       string
	SignupDate time.Time
}

// Order is one row of SampleDB.Orders.
type Order struct {
	ID          int64
	CustomerID  int64
	ProductName string
	Quantity    int64
	UnitPrice   float64
	OrderDate   time.Time
}

// Options controls the generated dataset. Zero extras yield exactly the
// canonical 5 customers and 8 orders.
type Options struct {
	ExtraCustomers int
	ExtraOrders    int
	Seed           int64
}

// Result is the sample command payload.
type Result struct {
	Success   bool   `json:"success"`
	FilePath  string `json:"file_path"`
	Schema    string `json:"schema"`
	Customers int    `json:"customers"`
	Orders    int    `json:"orders"`
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Customers returns the canonical customer rows plus opts.ExtraCustomers
// synthetic ones. Synthetic rows are deterministic for a given seed.
func Customers(opts Options) []Customer {
	customers := []Customer{
		{1, "Alice Johnson", "alice@email.com", "Premium", date(2023, 1, 15)},
		{2, "Bob Smith", "bob@email.com", "Standard", date(2023, 2, 20)},
		{3, "Carol Davis", "carol@email.com", "Premium", date(2023, 1, 10)},
		{4, "David Wilson", "david@email.com", "Basic", date(2023, 3, 5)},
		{5, "Eva Brown", "eva@email.com", "Standard", date(2023, 2, 28)},
	}
	if opts.ExtraCustomers <= 0 {
		return customers
	}

	faker := gofakeit.New(opts.Seed)
	tiers := []string{"Basic", "Standard", "Premium"}
	for i := 0; i < opts.ExtraCustomers; i++ {
		customers = append(customers, Customer{
			ID:         int64(len(customers) + 1),
			Name:       faker.Name(),
			Email:      faker.Email(),
			Tier:       tiers[faker.IntRange(0, len(tiers)-1)],
			SignupDate: date(2023, time.Month(faker.IntRange(1, 12)), faker.IntRange(1, 28)),
		})
	}
	return customers
}

// Orders returns the canonical order rows plus opts.ExtraOrders synthetic
// ones referencing the given customers.
func Orders(opts Options, customers []Customer) []Order {
	orders := []Order{
		{101, 1, "Widget A", 2, 25.99, date(2023, 3, 1)},
		{102, 1, "Widget B", 1, 45.50, date(2023, 3, 2)},
		{103, 2, "Widget A", 3, 25.99, date(2023, 3, 3)},
		{104, 3, "Widget C", 1, 120.00, date(2023, 3, 4)},
		{105, 2, "Widget B", 2, 45.50, date(2023, 3, 5)},
		{106, 4, "Widget A", 1, 25.99, date(2023, 3, 6)},
		{107, 5, "Widget C", 1, 120.00, date(2023, 3, 7)},
		{108, 3, "Widget B", 3, 45.50, date(2023, 3, 8)},
	}
	if opts.ExtraOrders <= 0 || len(customers) == 0 {
		return orders
	}

	faker := gofakeit.New(opts.Seed + 1)
	products := []string{"Widget A", "Widget B", "Widget C", "Widget D"}
	prices := map[string]float64{
		"Widget A": 25.99,
		"Widget B": 45.50,
		"Widget C": 120.00,
		"Widget D": 9.95,
	}
	for i := 0; i < opts.ExtraOrders; i++ {
		product := products[faker.IntRange(0, len(products)-1)]
		orders = append(orders, Order{
			ID:          int64(101 + len(orders)),
			CustomerID:  customers[faker.IntRange(0, len(customers)-1)].ID,
			ProductName: product,
			Quantity:    int64(faker.IntRange(1, 5)),
			UnitPrice:   prices[product],
			OrderDate:   date(2023, time.Month(faker.IntRange(3, 6)), faker.IntRange(1, 28)),
		})
	}
	return orders
}

// DDL returns the statements that create the sample schema and tables, in
// execution order.
func DDL() []string {
	return []string{
		fmt.Sprintf(`CREATE SCHEMA %s`, catalog.QuoteIdent(SchemaName)),
		fmt.Sprintf(`CREATE TABLE %s ("customer_id" BIGINT NOT NULL, "name" TEXT NOT NULL, "email" TEXT, "tier" TEXT, "signup_date" DATE)`,
			catalog.QualifiedName(SchemaName, "Customers")),
		fmt.Sprintf(`CREATE TABLE %s ("order_id" BIGINT NOT NULL, "customer_id" BIGINT NOT NULL, "product_name" TEXT NOT NULL, "quantity" INTEGER NOT NULL, "unit_price" DOUBLE PRECISION NOT NULL, "order_date" DATE)`,
			catalog.QualifiedName(SchemaName, "Orders")),
	}
}

// Create writes the sample dataset into the connected (freshly created)
// database file.
func Create(ctx context.Context, db *sql.DB, path string, opts Options) (*Result, error) {
	for _, stmt := range DDL() {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return nil, fmt.Errorf("failed to run %q: %w", stmt, err)
		}
	}

	customers := Customers(opts)
	insertCustomer := fmt.Sprintf(`INSERT INTO %s VALUES ($1, $2, $3, $4, $5)`,
		catalog.QualifiedName(SchemaName, "Customers"))
	for _, c := range customers {
		if _, err := db.ExecContext(ctx, insertCustomer, c.ID, c.Name, c.Email, c.Tier, c.SignupDate); err != nil {
			return nil, fmt.Errorf("failed to insert customer %d: %w", c.ID, err)
		}
	}

	orders := Orders(opts, customers)
	insertOrder := fmt.Sprintf(`INSERT INTO %s VALUES ($1, $2, $3, $4, $5, $6)`,
		catalog.QualifiedName(SchemaName, "Orders"))
	for _, o := range orders {
		if _, err := db.ExecContext(ctx, insertOrder, o.ID, o.CustomerID, o.ProductName, o.Quantity, o.UnitPrice, o.OrderDate); err != nil {
			return nil, fmt.Errorf("failed to insert order %d: %w", o.ID, err)
		}
	}

	return &Result{
		Success:   true,
		FilePath:  path,
		Schema:    SchemaName,
		Customers: len(customers),
		Orders:    len(orders),
	}, nil
}
