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

	domainErrors "github.com/civiseek/civiseek/internal/domain/errors"
	"github.com/civiseek/civiseek/internal/domain/model"
	"github.com/civiseek/civiseek/internal/domain/repository"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// pgxPool is the subset of pgxpool.Pool the storage relies on, extracted
// so tests can substitute a mock pool.
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

type orderRepository struct {
	storage *Storage
}

type jobRepository struct {
	storage *Storage
}

type favoriteRepository struct {
	storage *Storage
}

type profileRepository struct {
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

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Jobs() repository.JobRepository {
	return &jobRepository{storage: s}
}

func (s *Storage) Favorites() repository.FavoriteRepository {
	return &favoriteRepository{storage: s}
}

func (s *Storage) Profiles() repository.ProfileRepository {
	return &profileRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id BIGSERIAL PRIMARY KEY,
            login TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            open_id TEXT NOT NULL,
            membership_level INT NOT NULL DEFAULT 0,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS jobs (
            id BIGSERIAL PRIMARY KEY,
            title TEXT NOT NULL,
            department TEXT NOT NULL,
            region TEXT NOT NULL,
            category TEXT NOT NULL,
            education TEXT NOT NULL,
            vacancies INT NOT NULL DEFAULT 1,
            deadline TIMESTAMPTZ NOT NULL,
            published_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS favorites (
            user_id BIGINT NOT NULL REFERENCES users(id),
            job_id BIGINT NOT NULL REFERENCES jobs(id),
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            PRIMARY KEY (user_id, job_id)
        )`,
		`CREATE TABLE IF NOT EXISTS profiles (
            user_id BIGINT PRIMARY KEY REFERENCES users(id),
            real_name TEXT NOT NULL,
            education TEXT NOT NULL DEFAULT '',
            graduation_year INT NOT NULL DEFAULT 0,
            target_region TEXT NOT NULL DEFAULT '',
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id BIGSERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id),
            number TEXT UNIQUE NOT NULL,
            goods_id BIGINT NOT NULL,
            amount DOUBLE PRECISION NOT NULL,
            subject TEXT NOT NULL,
            status TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_jobs_listing ON jobs(published_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_pending ON orders(status, created_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, login, passwordHash, openID string) (*model.User, error) {
	const query = `INSERT INTO users (login, password_hash, open_id) VALUES ($1, $2, $3) RETURNING id, created_at`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, login, passwordHash, openID).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	u.Login = login
	u.PasswordHash = passwordHash
	u.OpenID = openID
	return &u, nil
}

func (r *userRepository) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	const query = `SELECT id, login, password_hash, open_id, membership_level, created_at FROM users WHERE login=$1`
	return r.scanUser(r.storage.pool.QueryRow(ctx, query, login))
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT id, login, password_hash, open_id, membership_level, created_at FROM users WHERE id=$1`
	return r.scanUser(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Login, &u.PasswordHash, &u.OpenID, &u.MembershipLevel, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// --- OrderRepository implementation ---

func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	const query = `INSERT INTO orders (user_id, number, goods_id, amount, subject, status)
                   VALUES ($1, $2, $3, $4, $5, $6)
                   RETURNING id, created_at, updated_at`
	err := r.storage.pool.QueryRow(ctx, query,
		order.UserID, order.Number, order.GoodsID, order.Amount, order.Subject, order.Status,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) GetByNumber(ctx context.Context, number string) (*model.Order, error) {
	const query = `SELECT id, user_id, number, goods_id, amount, subject, status, created_at, updated_at
                   FROM orders WHERE number=$1`
	var o model.Order
	err := r.storage.pool.QueryRow(ctx, query, number).Scan(
		&o.ID, &o.UserID, &o.Number, &o.GoodsID, &o.Amount, &o.Subject, &o.Status, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	const query = `SELECT id, user_id, number, goods_id, amount, subject, status, created_at, updated_at
                   FROM orders WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrders(rows)
}

// MarkPaid settles the order and raises the owner's membership level in
// one transaction. Settling an already resolved order is a no-op, which
// keeps the polling flow and the reconciler idempotent against each other.
func (r *orderRepository) MarkPaid(ctx context.Context, number string, level int) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const settleQuery = `UPDATE orders SET status=$1, updated_at=NOW()
                             WHERE number=$2 AND status=$3
                             RETURNING user_id`
		var userID int64
		err := tx.QueryRow(ctx, settleQuery, model.OrderStatusPaid, number, model.OrderStatusPending).Scan(&userID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil
			}
			return err
		}

		const upgradeQuery = `UPDATE users SET membership_level=GREATEST(membership_level, $1) WHERE id=$2`
		if _, err := tx.Exec(ctx, upgradeQuery, level, userID); err != nil {
			return err
		}
		return nil
	})
}

func (r *orderRepository) MarkClosed(ctx context.Context, number string) error {
	const query = `UPDATE orders SET status=$1, updated_at=NOW() WHERE number=$2 AND status=$3`
	_, err := r.storage.pool.Exec(ctx, query, model.OrderStatusClosed, number, model.OrderStatusPending)
	return err
}

func (r *orderRepository) SelectStalePending(ctx context.Context, olderThan time.Duration, limit int) ([]model.Order, error) {
	const query = `SELECT id, user_id, number, goods_id, amount, subject, status, created_at, updated_at
                   FROM orders
                   WHERE status=$1 AND created_at < $2
                   ORDER BY created_at
                   LIMIT $3`
	cutoff := time.Now().Add(-olderThan)
	rows, err := r.storage.pool.Query(ctx, query, model.OrderStatusPending, cutoff, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrders(rows)
}

func scanOrders(rows pgx.Rows) ([]model.Order, error) {
	var result []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Number, &o.GoodsID, &o.Amount, &o.Subject, &o.Status, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- JobRepository implementation ---

func (r *jobRepository) List(ctx context.Context, filter model.JobFilter) ([]model.Job, error) {
	query := `SELECT id, title, department, region, category, education, vacancies, deadline, published_at
              FROM jobs WHERE 1=1`
	args := make([]any, 0, 6)

	if filter.Region != "" {
		args = append(args, filter.Region)
		query += fmt.Sprintf(" AND region=$%d", len(args))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		query += fmt.Sprintf(" AND category=$%d", len(args))
	}
	if filter.Education != "" {
		args = append(args, filter.Education)
		query += fmt.Sprintf(" AND education=$%d", len(args))
	}
	if filter.Keyword != "" {
		args = append(args, "%"+filter.Keyword+"%")
		query += fmt.Sprintf(" AND (title ILIKE $%d OR department ILIKE $%d)", len(args), len(args))
	}

	args = append(args, filter.Limit)
	query += fmt.Sprintf(" ORDER BY published_at DESC LIMIT $%d", len(args))
	args = append(args, filter.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanJobs(rows)
}

func (r *jobRepository) GetByID(ctx context.Context, id int64) (*model.Job, error) {
	const query = `SELECT id, title, department, region, category, education, vacancies, deadline, published_at
                   FROM jobs WHERE id=$1`
	var j model.Job
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(
		&j.ID, &j.Title, &j.Department, &j.Region, &j.Category, &j.Education, &j.Vacancies, &j.Deadline, &j.PublishedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &j, nil
}

func (r *jobRepository) GetByIDs(ctx context.Context, ids []int64) ([]model.Job, error) {
	const query = `SELECT id, title, department, region, category, education, vacancies, deadline, published_at
                   FROM jobs WHERE id = ANY($1)`
	rows, err := r.storage.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanJobs(rows)
}

func scanJobs(rows pgx.Rows) ([]model.Job, error) {
	var result []model.Job
	for rows.Next() {
		var j model.Job
		if err := rows.Scan(&j.ID, &j.Title, &j.Department, &j.Region, &j.Category, &j.Education, &j.Vacancies, &j.Deadline, &j.PublishedAt); err != nil {
			return nil, err
		}
		result = append(result, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- FavoriteRepository implementation ---

func (r *favoriteRepository) Add(ctx context.Context, userID, jobID int64) error {
	const query = `INSERT INTO favorites (user_id, job_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	tag, err := r.storage.pool.Exec(ctx, query, userID, jobID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return domainErrors.ErrNotFound
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrAlreadyExists
	}
	return nil
}

func (r *favoriteRepository) Remove(ctx context.Context, userID, jobID int64) error {
	const query = `DELETE FROM favorites WHERE user_id=$1 AND job_id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, userID, jobID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *favoriteRepository) ListByUser(ctx context.Context, userID int64) ([]model.Job, error) {
	const query = `SELECT j.id, j.title, j.department, j.region, j.category, j.education, j.vacancies, j.deadline, j.published_at
                   FROM favorites f
                   JOIN jobs j ON j.id = f.job_id
                   WHERE f.user_id=$1
                   ORDER BY f.created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanJobs(rows)
}

// --- ProfileRepository implementation ---

func (r *profileRepository) Get(ctx context.Context, userID int64) (*model.Profile, error) {
	const query = `SELECT user_id, real_name, education, graduation_year, target_region, updated_at
                   FROM profiles WHERE user_id=$1`
	var p model.Profile
	err := r.storage.pool.QueryRow(ctx, query, userID).Scan(
		&p.UserID, &p.RealName, &p.Education, &p.GraduationYear, &p.TargetRegion, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) Upsert(ctx context.Context, profile *model.Profile) error {
	const query = `INSERT INTO profiles (user_id, real_name, education, graduation_year, target_region, updated_at)
                   VALUES ($1, $2, $3, $4, $5, NOW())
                   ON CONFLICT (user_id) DO UPDATE
                   SET real_name=EXCLUDED.real_name,
                       education=EXCLUDED.education,
                       graduation_year=EXCLUDED.graduation_year,
                       target_region=EXCLUDED.target_region,
                       updated_at=NOW()`
	_, err := r.storage.pool.Exec(ctx, query,
		profile.UserID, profile.RealName, profile.Education, profile.GraduationYear, profile.TargetRegion,
	)
	return err
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
