package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"

	"github.com/krishnendude2005/vibe-cart-demo/internal/domain"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

type Credentials struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(cred *Credentials) (*PostgresStore, error) {
	psqlconn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cred.Host,
		cred.Port,
		cred.User,
		cred.Password,
		cred.DBName)

	db, err := sql.Open("postgres", psqlconn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if e2 := db.Ping(); e2 != nil {
		return nil, fmt.Errorf("failed to ping database: %w", e2)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	return &PostgresStore{db: db}, nil
}

// NewPostgresStoreWithDB wraps an existing connection, used by tests.
func NewPostgresStoreWithDB(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) RunMigrations() error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("could not create migration source: %w", err)
	}

	driver, err := postgres.WithInstance(s.db, &postgres.Config{
		MigrationsTable: "storefront_schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if e2 := m.Up(); e2 != nil && !errors.Is(e2, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", e2)
	}

	return nil
}

func (s *PostgresStore) List(ctx context.Context) ([]*domain.Product, error) {
	query := `
		SELECT id, name, COALESCE(description, ''), price, COALESCE(image_url, ''), stock, created_at
		FROM products
		ORDER BY name ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		p := &domain.Product{}
		err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Description,
			&p.Price,
			&p.ImageURL,
			&p.Stock,
			&p.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return products, nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (*domain.Product, error) {
	query := `
		SELECT id, name, COALESCE(description, ''), price, COALESCE(image_url, ''), stock, created_at
		FROM products
		WHERE id = $1
	`

	p := &domain.Product{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.ImageURL,
		&p.Stock,
		&p.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return p, nil
}

func (s *PostgresStore) ItemsBySession(ctx context.Context, sessionID string) ([]*domain.CartItem, error) {
	query := `
		SELECT ci.id, ci.session_id, ci.product_id, ci.quantity, ci.created_at, ci.updated_at,
		       p.id, p.name, COALESCE(p.description, ''), p.price, COALESCE(p.image_url, ''), p.stock, p.created_at
		FROM cart_items ci
		LEFT JOIN products p ON p.id = ci.product_id
		WHERE ci.session_id = $1
		ORDER BY ci.created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cart items: %w", err)
	}
	defer rows.Close()

	var items []*domain.CartItem
	for rows.Next() {
		item := &domain.CartItem{}
		var (
			pID          sql.NullString
			pName        sql.NullString
			pDescription sql.NullString
			pPrice       sql.NullFloat64
			pImageURL    sql.NullString
			pStock       sql.NullInt64
			pCreatedAt   sql.NullTime
		)
		err := rows.Scan(
			&item.ID,
			&item.SessionID,
			&item.ProductID,
			&item.Quantity,
			&item.CreatedAt,
			&item.UpdatedAt,
			&pID,
			&pName,
			&pDescription,
			&pPrice,
			&pImageURL,
			&pStock,
			&pCreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}

		if pID.Valid {
			item.Product = &domain.Product{
				ID:          pID.String,
				Name:        pName.String,
				Description: pDescription.String,
				Price:       pPrice.Float64,
				ImageURL:    pImageURL.String,
				Stock:       int(pStock.Int64),
				CreatedAt:   pCreatedAt.Time,
			}
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return items, nil
}

// AddItem relies on the unique (session_id, product_id) index so that a
// repeat add increments quantity in one statement instead of a
// read-then-write pair. Two concurrent adds for the same session therefore
// both land.
func (s *PostgresStore) AddItem(ctx context.Context, sessionID, productID string, qty int) error {
	if qty < 1 {
		return fmt.Errorf("quantity must be >= 1, got %d", qty)
	}

	query := `
		INSERT INTO cart_items (session_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (session_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = NOW()
	`

	if _, err := s.db.ExecContext(ctx, query, sessionID, productID, qty); err != nil {
		return fmt.Errorf("failed to add cart item: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpdateQuantity(ctx context.Context, itemID string, qty int) error {
	query := `UPDATE cart_items SET quantity = $1, updated_at = NOW() WHERE id = $2`

	result, err := s.db.ExecContext(ctx, query, qty, itemID)
	if err != nil {
		return fmt.Errorf("failed to update cart item quantity: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (s *PostgresStore) RemoveItem(ctx context.Context, itemID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM cart_items WHERE id = $1`, itemID)
	if err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (s *PostgresStore) ClearSession(ctx context.Context, sessionID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM cart_items WHERE session_id = $1`, sessionID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

func (s *PostgresStore) Create(ctx context.Context, order *domain.Order) error {
	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal order items: %w", err)
	}

	query := `INSERT INTO orders (name, email, total, items)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id, created_at`

	insertErr := s.db.QueryRowContext(ctx, query,
		order.Name,
		order.Email,
		order.Total,
		itemsJSON,
	).Scan(&order.ID, &order.CreatedAt)

	if insertErr != nil {
		return fmt.Errorf("insert order: %w", insertErr)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
