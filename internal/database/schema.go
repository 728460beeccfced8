package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema is the full database schema. The uniqueness constraints here are
// load-bearing: (cart_id, food_item_id) rejects duplicate cart lines under
// concurrency, point_transactions.order_id makes loyalty credits idempotent
// per order, and the CHECK on customer_points.points keeps balances
// non-negative.
const Schema = `
CREATE TABLE IF NOT EXISTS categories (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL UNIQUE,
	description TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS food_items (
	id UUID PRIMARY KEY,
	category_id UUID NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
	name TEXT NOT NULL UNIQUE,
	description TEXT NOT NULL DEFAULT '',
	price NUMERIC(8,2) NOT NULL CHECK (price >= 0),
	is_available BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS dining_tables (
	id UUID PRIMARY KEY,
	table_number INT NOT NULL UNIQUE,
	is_occupied BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS special_offers (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	food_item_id UUID NOT NULL REFERENCES food_items(id) ON DELETE CASCADE,
	discount_percentage NUMERIC(5,2) NOT NULL CHECK (discount_percentage >= 0 AND discount_percentage <= 100),
	start_date TIMESTAMPTZ NOT NULL,
	end_date TIMESTAMPTZ NOT NULL,
	description TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_special_offers_food_item ON special_offers (food_item_id);

CREATE TABLE IF NOT EXISTS carts (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS cart_items (
	id UUID PRIMARY KEY,
	cart_id UUID NOT NULL REFERENCES carts(id) ON DELETE CASCADE,
	food_item_id UUID NOT NULL REFERENCES food_items(id) ON DELETE CASCADE,
	quantity INT NOT NULL CHECK (quantity >= 1),
	created_at TIMESTAMPTZ NOT NULL,
	UNIQUE (cart_id, food_item_id)
);

CREATE TABLE IF NOT EXISTS orders (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL,
	total_price NUMERIC(10,2) NOT NULL CHECK (total_price >= 0),
	is_paid BOOLEAN NOT NULL DEFAULT FALSE,
	status TEXT NOT NULL DEFAULT 'PENDING',
	estimated_time INT NOT NULL DEFAULT 5,
	dining_table_id UUID REFERENCES dining_tables(id),
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_orders_user_updated ON orders (user_id, updated_at DESC);

CREATE TABLE IF NOT EXISTS reviews (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL,
	order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
	rating INT NOT NULL CHECK (rating BETWEEN 1 AND 5),
	comment TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS customer_points (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL UNIQUE,
	points INT NOT NULL DEFAULT 0 CHECK (points >= 0)
);

CREATE TABLE IF NOT EXISTS point_transactions (
	id UUID PRIMARY KEY,
	customer_point_id UUID NOT NULL REFERENCES customer_points(id) ON DELETE CASCADE,
	order_id UUID NOT NULL UNIQUE REFERENCES orders(id) ON DELETE CASCADE,
	amount NUMERIC(10,2) NOT NULL,
	points_earned INT NOT NULL CHECK (points_earned >= 0),
	created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS redemption_options (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	points_required INT NOT NULL CHECK (points_required >= 0),
	description TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS redemption_transactions (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL,
	redemption_option_id UUID NOT NULL REFERENCES redemption_options(id),
	points_spent INT NOT NULL CHECK (points_spent >= 0),
	created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS notifications (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL,
	message TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_notifications_user ON notifications (user_id, created_at DESC);
`

// Migrate applies the schema. All statements are idempotent, so it is safe
// to run on every startup.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
