package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"cafe-backend/internal/database"
	"cafe-backend/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container and connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	// Create PostgreSQL container
	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	// Get connection string
	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	// Apply the application schema
	if err := database.Migrate(ctx, pool); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// SeedCatalog inserts a category with one food item and a dining table, and
// returns them for use in test scenarios.
func SeedCatalog(t *testing.T, pool *pgxpool.Pool) (model.FoodItem, model.DiningTable) {
	t.Helper()

	ctx := context.Background()
	now := time.Now().UTC()

	categoryID := uuid.New()
	_, err := pool.Exec(ctx,
		"INSERT INTO categories (id, name, description, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)",
		categoryID, fmt.Sprintf("Category %s", categoryID), "test category", now, now,
	)
	if err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}

	item := model.FoodItem{
		ID:          uuid.New(),
		CategoryID:  categoryID,
		Name:        fmt.Sprintf("Item %s", uuid.New()),
		Description: "test item",
		Price:       decimal.NewFromInt(150),
		IsAvailable: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	_, err = pool.Exec(ctx,
		"INSERT INTO food_items (id, category_id, name, description, price, is_available, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)",
		item.ID, item.CategoryID, item.Name, item.Description, item.Price, item.IsAvailable, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to seed food item: %v", err)
	}

	table := model.DiningTable{
		ID:          uuid.New(),
		TableNumber: int(time.Now().UnixNano() % 1_000_000),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	_, err = pool.Exec(ctx,
		"INSERT INTO dining_tables (id, table_number, is_occupied, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)",
		table.ID, table.TableNumber, false, table.CreatedAt, table.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to seed dining table: %v", err)
	}

	return item, table
}

// SeedOffer inserts an active special offer on the given food item.
func SeedOffer(t *testing.T, pool *pgxpool.Pool, foodItemID uuid.UUID, discount int64) model.SpecialOffer {
	t.Helper()

	ctx := context.Background()
	now := time.Now().UTC()

	offer := model.SpecialOffer{
		ID:                 uuid.New(),
		Name:               "Test Offer",
		FoodItemID:         foodItemID,
		DiscountPercentage: decimal.NewFromInt(discount),
		StartDate:          now.Add(-time.Hour),
		EndDate:            now.Add(time.Hour),
	}
	_, err := pool.Exec(ctx,
		"INSERT INTO special_offers (id, name, food_item_id, discount_percentage, start_date, end_date, description) VALUES ($1, $2, $3, $4, $5, $6, $7)",
		offer.ID, offer.Name, offer.FoodItemID, offer.DiscountPercentage, offer.StartDate, offer.EndDate, offer.Description,
	)
	if err != nil {
		t.Fatalf("failed to seed offer: %v", err)
	}

	return offer
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{
		"notifications",
		"redemption_transactions",
		"redemption_options",
		"point_transactions",
		"customer_points",
		"reviews",
		"orders",
		"cart_items",
		"carts",
		"special_offers",
		"food_items",
		"dining_tables",
		"categories",
	}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
