package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/polkiloo/marketplace/internal/domain/errors"
	"github.com/polkiloo/marketplace/internal/domain/model"
	"github.com/polkiloo/marketplace/internal/domain/repository"
)

// pgxPool is the subset of pgxpool.Pool used by the storage; tests substitute
// a pgxmock pool through newPgxPool.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type userRepository struct {
	storage *Storage
}

type productRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type notificationRepository struct {
	storage *Storage
}

type wishlistRepository struct {
	storage *Storage
}

type commissionRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

var _ repository.Factory = (*Storage)(nil)

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Products() repository.ProductRepository {
	return &productRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Notifications() repository.NotificationRepository {
	return &notificationRepository{storage: s}
}

func (s *Storage) Wishlist() repository.WishlistRepository {
	return &wishlistRepository{storage: s}
}

func (s *Storage) Commissions() repository.CommissionRepository {
	return &commissionRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            first_name TEXT NOT NULL,
            last_name TEXT NOT NULL,
            email TEXT UNIQUE NOT NULL,
            phone TEXT NOT NULL,
            gender TEXT NOT NULL,
            address TEXT NOT NULL,
            password_hash TEXT NOT NULL,
            role TEXT NOT NULL DEFAULT 'user',
            last_login_at TIMESTAMPTZ,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS products (
            id SERIAL PRIMARY KEY,
            seller_id BIGINT NOT NULL REFERENCES users(id),
            title TEXT NOT NULL,
            category TEXT NOT NULL,
            condition TEXT NOT NULL,
            price DOUBLE PRECISION NOT NULL CHECK (price >= 0),
            negotiable BOOLEAN NOT NULL DEFAULT FALSE,
            quantity INTEGER NOT NULL CHECK (quantity >= 0),
            location TEXT NOT NULL,
            description TEXT NOT NULL,
            tags TEXT[] NOT NULL DEFAULT '{}',
            status TEXT NOT NULL DEFAULT 'draft',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id SERIAL PRIMARY KEY,
            product_id BIGINT NOT NULL REFERENCES products(id),
            buyer_id BIGINT NOT NULL REFERENCES users(id),
            seller_id BIGINT NOT NULL REFERENCES users(id),
            quantity INTEGER NOT NULL CHECK (quantity >= 1),
            price DOUBLE PRECISION NOT NULL,
            commission_rate DOUBLE PRECISION NOT NULL,
            commission_amount DOUBLE PRECISION NOT NULL,
            total_amount DOUBLE PRECISION NOT NULL,
            delivery_name TEXT NOT NULL,
            delivery_email TEXT NOT NULL,
            delivery_phone TEXT NOT NULL,
            delivery_address TEXT NOT NULL,
            delivery_city TEXT NOT NULL,
            delivery_postal_code TEXT NOT NULL,
            delivery_website TEXT NOT NULL DEFAULT '',
            delivery_details TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS notifications (
            id SERIAL PRIMARY KEY,
            type TEXT NOT NULL,
            message TEXT NOT NULL,
            product_id BIGINT REFERENCES products(id),
            seller_id BIGINT NOT NULL REFERENCES users(id),
            is_read BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS wishlist_items (
            id SERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id),
            product_id BIGINT NOT NULL REFERENCES products(id),
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            UNIQUE (user_id, product_id)
        )`,
		`CREATE TABLE IF NOT EXISTS commission_changes (
            id SERIAL PRIMARY KEY,
            rate DOUBLE PRECISION NOT NULL CHECK (rate >= 0),
            changed_by BIGINT NOT NULL REFERENCES users(id),
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_products_seller ON products(seller_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_products_status ON products(status, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_buyer ON orders(buyer_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_seller ON orders(seller_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_notifications_seller ON notifications(seller_id, created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- UserRepository implementation ---

const userColumns = `id, first_name, last_name, email, phone, gender, address, password_hash, role, last_login_at, created_at, updated_at`

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Phone, &u.Gender,
		&u.Address, &u.PasswordHash, &u.Role, &u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) Create(ctx context.Context, user model.User) (*model.User, error) {
	const query = `INSERT INTO users (first_name, last_name, email, phone, gender, address, password_hash, role)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
                   RETURNING ` + userColumns
	created, err := scanUser(r.storage.pool.QueryRow(ctx, query,
		user.FirstName, user.LastName, user.Email, user.Phone, user.Gender,
		user.Address, user.PasswordHash, user.Role))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return created, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email=$1`
	return scanUser(r.storage.pool.QueryRow(ctx, query, email))
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	return scanUser(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) UpdateProfile(ctx context.Context, id int64, update model.ProfileUpdate) (*model.User, error) {
	const query = `UPDATE users SET
                       first_name = COALESCE($2, first_name),
                       last_name = COALESCE($3, last_name),
                       gender = COALESCE($4, gender),
                       address = COALESCE($5, address),
                       updated_at = NOW()
                   WHERE id=$1
                   RETURNING ` + userColumns
	return scanUser(r.storage.pool.QueryRow(ctx, query, id,
		update.FirstName, update.LastName, update.Gender, update.Address))
}

func (r *userRepository) TouchLastLogin(ctx context.Context, id int64) error {
	const query = `UPDATE users SET last_login_at=NOW() WHERE id=$1`
	_, err := r.storage.pool.Exec(ctx, query, id)
	return err
}

// --- ProductRepository implementation ---

const productColumns = `id, seller_id, title, category, condition, price, negotiable, quantity, location, description, tags, status, created_at, updated_at`

func scanProduct(row pgx.Row) (*model.Product, error) {
	var p model.Product
	err := row.Scan(&p.ID, &p.SellerID, &p.Title, &p.Category, &p.Condition, &p.Price,
		&p.Negotiable, &p.Quantity, &p.Location, &p.Description, &p.Tags, &p.Status,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func scanProducts(rows pgx.Rows) ([]model.Product, error) {
	defer rows.Close()

	var result []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.SellerID, &p.Title, &p.Category, &p.Condition, &p.Price,
			&p.Negotiable, &p.Quantity, &p.Location, &p.Description, &p.Tags, &p.Status,
			&p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *productRepository) Create(ctx context.Context, product model.Product) (*model.Product, error) {
	const query = `INSERT INTO products (seller_id, title, category, condition, price, negotiable, quantity, location, description, tags, status)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
                   RETURNING ` + productColumns
	return scanProduct(r.storage.pool.QueryRow(ctx, query,
		product.SellerID, product.Title, product.Category, product.Condition, product.Price,
		product.Negotiable, product.Quantity, product.Location, product.Description,
		product.Tags, product.Status))
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products WHERE id=$1`
	return scanProduct(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *productRepository) ListBySeller(ctx context.Context, sellerID int64) ([]model.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products WHERE seller_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, sellerID)
	if err != nil {
		return nil, err
	}
	return scanProducts(rows)
}

func (r *productRepository) ListByStatus(ctx context.Context, status *model.ProductStatus) ([]model.Product, error) {
	if status == nil {
		const query = `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`
		rows, err := r.storage.pool.Query(ctx, query)
		if err != nil {
			return nil, err
		}
		return scanProducts(rows)
	}

	const query = `SELECT ` + productColumns + ` FROM products WHERE status=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, *status)
	if err != nil {
		return nil, err
	}
	return scanProducts(rows)
}

// Reserve decrements available quantity with a single conditional write.
// The WHERE clause re-checks status and availability at write time, so two
// concurrent buyers can never drive quantity below zero; the loser of the
// race sees no row and gets ErrReservationLost.
func (r *productRepository) Reserve(ctx context.Context, productID int64, quantity int) (*model.Product, error) {
	const query = `UPDATE products
                   SET quantity = quantity - $2, updated_at = NOW()
                   WHERE id=$1 AND status='approved' AND quantity >= $2
                   RETURNING ` + productColumns
	product, err := scanProduct(r.storage.pool.QueryRow(ctx, query, productID, quantity))
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrReservationLost
		}
		return nil, err
	}
	return product, nil
}

// MarkSold flips a depleted listing to sold. The quantity=0 condition keeps
// the flip from clobbering a listing that was compensated back to approved
// in the meantime.
func (r *productRepository) MarkSold(ctx context.Context, productID int64) (*model.Product, error) {
	const query = `UPDATE products
                   SET status='sold', updated_at = NOW()
                   WHERE id=$1 AND status='approved' AND quantity = 0
                   RETURNING ` + productColumns
	return scanProduct(r.storage.pool.QueryRow(ctx, query, productID))
}

// Release is the compensating update undoing a reservation: units come back
// and the listing returns to approved.
func (r *productRepository) Release(ctx context.Context, productID int64, quantity int) error {
	const query = `UPDATE products
                   SET quantity = quantity + $2, status='approved', updated_at = NOW()
                   WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, productID, quantity)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *productRepository) SetStatus(ctx context.Context, productID int64, status model.ProductStatus) (*model.Product, error) {
	const query = `UPDATE products SET status=$2, updated_at = NOW() WHERE id=$1 RETURNING ` + productColumns
	return scanProduct(r.storage.pool.QueryRow(ctx, query, productID, status))
}

// --- OrderRepository implementation ---

const orderColumns = `id, product_id, buyer_id, seller_id, quantity, price, commission_rate, commission_amount, total_amount,
                      delivery_name, delivery_email, delivery_phone, delivery_address, delivery_city, delivery_postal_code,
                      delivery_website, delivery_details, created_at`

func scanOrders(rows pgx.Rows) ([]model.Order, error) {
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.ProductID, &o.BuyerID, &o.SellerID, &o.Quantity, &o.Price,
			&o.CommissionRate, &o.CommissionAmount, &o.TotalAmount,
			&o.Delivery.Name, &o.Delivery.Email, &o.Delivery.Phone, &o.Delivery.Address,
			&o.Delivery.City, &o.Delivery.PostalCode, &o.Delivery.ProfessionalWebsite,
			&o.Delivery.AdditionalDetails, &o.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) Create(ctx context.Context, order model.Order) (*model.Order, error) {
	const query = `INSERT INTO orders (product_id, buyer_id, seller_id, quantity, price, commission_rate, commission_amount, total_amount,
                                       delivery_name, delivery_email, delivery_phone, delivery_address, delivery_city, delivery_postal_code,
                                       delivery_website, delivery_details)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
                   RETURNING id, created_at`
	err := r.storage.pool.QueryRow(ctx, query,
		order.ProductID, order.BuyerID, order.SellerID, order.Quantity, order.Price,
		order.CommissionRate, order.CommissionAmount, order.TotalAmount,
		order.Delivery.Name, order.Delivery.Email, order.Delivery.Phone, order.Delivery.Address,
		order.Delivery.City, order.Delivery.PostalCode, order.Delivery.ProfessionalWebsite,
		order.Delivery.AdditionalDetails,
	).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) ListByBuyer(ctx context.Context, buyerID int64) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE buyer_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, buyerID)
	if err != nil {
		return nil, err
	}
	return scanOrders(rows)
}

func (r *orderRepository) ListBySeller(ctx context.Context, sellerID int64) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE seller_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, sellerID)
	if err != nil {
		return nil, err
	}
	return scanOrders(rows)
}

// --- NotificationRepository implementation ---

func (r *notificationRepository) Create(ctx context.Context, notification model.Notification) (*model.Notification, error) {
	const query = `INSERT INTO notifications (type, message, product_id, seller_id)
                   VALUES ($1, $2, $3, $4)
                   RETURNING id, is_read, created_at`
	err := r.storage.pool.QueryRow(ctx, query,
		notification.Type, notification.Message, notification.ProductID, notification.SellerID,
	).Scan(&notification.ID, &notification.IsRead, &notification.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &notification, nil
}

func (r *notificationRepository) ListRecent(ctx context.Context, sellerID *int64, limit int) ([]model.Notification, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if sellerID != nil {
		const query = `SELECT id, type, message, product_id, seller_id, is_read, created_at
                       FROM notifications WHERE seller_id=$1 ORDER BY created_at DESC LIMIT $2`
		rows, err = r.storage.pool.Query(ctx, query, *sellerID, limit)
	} else {
		const query = `SELECT id, type, message, product_id, seller_id, is_read, created_at
                       FROM notifications ORDER BY created_at DESC LIMIT $1`
		rows, err = r.storage.pool.Query(ctx, query, limit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Notification
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.Type, &n.Message, &n.ProductID, &n.SellerID, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, sellerID *int64) (int, error) {
	var count int
	if sellerID != nil {
		const query = `SELECT COUNT(*) FROM notifications WHERE seller_id=$1 AND is_read=FALSE`
		if err := r.storage.pool.QueryRow(ctx, query, *sellerID).Scan(&count); err != nil {
			return 0, err
		}
		return count, nil
	}
	const query = `SELECT COUNT(*) FROM notifications WHERE is_read=FALSE`
	if err := r.storage.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// --- WishlistRepository implementation ---

func (r *wishlistRepository) Add(ctx context.Context, userID, productID int64) (*model.WishlistItem, bool, error) {
	var (
		item    model.WishlistItem
		created bool
	)
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var status model.ProductStatus
		err := tx.QueryRow(ctx, `SELECT status FROM products WHERE id=$1`, productID).Scan(&status)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}
		if status != model.ProductStatusApproved {
			return domainErrors.ErrNotFound
		}

		const insert = `INSERT INTO wishlist_items (user_id, product_id) VALUES ($1, $2)
                        ON CONFLICT (user_id, product_id) DO NOTHING
                        RETURNING id, created_at`
		err = tx.QueryRow(ctx, insert, userID, productID).Scan(&item.ID, &item.CreatedAt)
		if err != nil {
			if !errors.Is(err, pgx.ErrNoRows) {
				return err
			}
			const existing = `SELECT id, created_at FROM wishlist_items WHERE user_id=$1 AND product_id=$2`
			if err := tx.QueryRow(ctx, existing, userID, productID).Scan(&item.ID, &item.CreatedAt); err != nil {
				return err
			}
			created = false
		} else {
			created = true
		}

		item.UserID = userID
		item.ProductID = productID
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return &item, created, nil
}

func (r *wishlistRepository) Remove(ctx context.Context, userID, productID int64) error {
	const query = `DELETE FROM wishlist_items WHERE user_id=$1 AND product_id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, userID, productID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *wishlistRepository) ListByUser(ctx context.Context, userID int64) ([]model.WishlistItem, error) {
	const query = `SELECT w.id, w.user_id, w.product_id, w.created_at, ` +
		`p.id, p.seller_id, p.title, p.category, p.condition, p.price, p.negotiable, p.quantity, p.location, p.description, p.tags, p.status, p.created_at, p.updated_at
         FROM wishlist_items w
         JOIN products p ON p.id = w.product_id AND p.status = 'approved'
         WHERE w.user_id=$1
         ORDER BY w.created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.WishlistItem
	for rows.Next() {
		var (
			item model.WishlistItem
			p    model.Product
		)
		if err := rows.Scan(&item.ID, &item.UserID, &item.ProductID, &item.CreatedAt,
			&p.ID, &p.SellerID, &p.Title, &p.Category, &p.Condition, &p.Price, &p.Negotiable,
			&p.Quantity, &p.Location, &p.Description, &p.Tags, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		item.Product = &p
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- CommissionRepository implementation ---

func (r *commissionRepository) RecordChange(ctx context.Context, rate float64, changedBy int64) (*model.CommissionChange, error) {
	const query = `INSERT INTO commission_changes (rate, changed_by) VALUES ($1, $2) RETURNING id, created_at`
	change := model.CommissionChange{Rate: rate, ChangedBy: changedBy}
	if err := r.storage.pool.QueryRow(ctx, query, rate, changedBy).Scan(&change.ID, &change.CreatedAt); err != nil {
		return nil, err
	}
	return &change, nil
}

func (r *commissionRepository) Latest(ctx context.Context) (*model.CommissionChange, error) {
	const query = `SELECT id, rate, changed_by, created_at FROM commission_changes ORDER BY created_at DESC LIMIT 1`
	var change model.CommissionChange
	err := r.storage.pool.QueryRow(ctx, query).Scan(&change.ID, &change.Rate, &change.ChangedBy, &change.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &change, nil
}

func (r *commissionRepository) History(ctx context.Context, limit int) ([]model.CommissionChange, error) {
	const query = `SELECT id, rate, changed_by, created_at FROM commission_changes ORDER BY created_at DESC LIMIT $1`
	rows, err := r.storage.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.CommissionChange
	for rows.Next() {
		var change model.CommissionChange
		if err := rows.Scan(&change.ID, &change.Rate, &change.ChangedBy, &change.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, change)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
