package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	_ "github.com/tursodatabase/libsql-client-go/libsql" // Turso driver
	"github.com/wadjakorntonsri/minilink/pkg/core/domain"
	"github.com/wadjakorntonsri/minilink/pkg/ports"
	_ "modernc.org/sqlite" // Local SQLite driver
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbURL string) (*SQLiteRepository, error) {
	driverName := "sqlite"
	if strings.Contains(dbURL, "libsql://") || strings.Contains(dbURL, "wss://") {
		driverName = "libsql"
	}

	db, err := sql.Open(driverName, dbURL)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	if err := migrate(db); err != nil {
		return nil, err
	}

	return &SQLiteRepository{db: db}, nil
}

func migrate(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		mobile TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		session_epoch INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);

	CREATE TABLE IF NOT EXISTS links (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		destination_url TEXT NOT NULL,
		short_code TEXT NOT NULL UNIQUE,
		short_url TEXT NOT NULL,
		comments TEXT,
		link_expiration INTEGER NOT NULL DEFAULT 0,
		expiration_date DATETIME,
		click_count INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY(user_id) REFERENCES users(id)
	);
	CREATE INDEX IF NOT EXISTS idx_links_short_code ON links(short_code);
	CREATE INDEX IF NOT EXISTS idx_links_user_id ON links(user_id);

	CREATE TABLE IF NOT EXISTS clicks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		link_id INTEGER NOT NULL,
		user_id INTEGER NOT NULL,
		device_type TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY(link_id) REFERENCES links(id)
	);
	CREATE INDEX IF NOT EXISTS idx_clicks_link_id ON clicks(link_id);
	CREATE INDEX IF NOT EXISTS idx_clicks_user_id ON clicks(user_id);
	`
	_, err := db.Exec(query)
	return err
}

func (r *SQLiteRepository) CreateUser(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (name, email, mobile, password_hash, session_epoch, created_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	res, err := r.db.ExecContext(ctx, query, user.Name, user.Email, user.Mobile,
		user.PasswordHash, user.SessionEpoch, user.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return domain.ErrDuplicateEmail
		}
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	user.ID = id
	return nil
}

func (r *SQLiteRepository) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT id, name, email, mobile, password_hash, session_epoch, created_at
			  FROM users WHERE id = ?`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT id, name, email, mobile, password_hash, session_epoch, created_at
			  FROM users WHERE email = ?`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *SQLiteRepository) scanUser(row *sql.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.Mobile,
		&user.PasswordHash, &user.SessionEpoch, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *SQLiteRepository) UpdateUser(ctx context.Context, user *domain.User) error {
	query := `UPDATE users SET name = ?, email = ?, mobile = ?, session_epoch = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, user.Name, user.Email, user.Mobile,
		user.SessionEpoch, user.ID)
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return domain.ErrDuplicateEmail
	}
	return err
}

// DeleteUserCascade removes the user's clicks, links and account in one
// transaction so a partial failure cannot orphan dependents.
func (r *SQLiteRepository) DeleteUserCascade(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM clicks WHERE user_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM links WHERE user_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *SQLiteRepository) CreateLink(ctx context.Context, link *domain.Link) error {
	query := `INSERT INTO links (user_id, destination_url, short_code, short_url, comments,
			  link_expiration, expiration_date, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	res, err := r.db.ExecContext(ctx, query, link.UserID, link.DestinationURL, link.ShortCode,
		link.ShortURL, link.Comments, link.LinkExpiration, nullableTime(link.ExpirationDate),
		link.CreatedAt, link.UpdatedAt)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	link.ID = id
	return nil
}

const linkColumns = `id, user_id, destination_url, short_code, short_url, comments,
			  link_expiration, expiration_date, click_count, created_at, updated_at`

func (r *SQLiteRepository) GetLinkByCode(ctx context.Context, code string) (*domain.Link, error) {
	query := `SELECT ` + linkColumns + ` FROM links WHERE short_code = ?`
	return r.scanLink(r.db.QueryRowContext(ctx, query, code))
}

func (r *SQLiteRepository) GetUserLink(ctx context.Context, userID, id int64) (*domain.Link, error) {
	query := `SELECT ` + linkColumns + ` FROM links WHERE id = ? AND user_id = ?`
	return r.scanLink(r.db.QueryRowContext(ctx, query, id, userID))
}

func (r *SQLiteRepository) scanLink(row *sql.Row) (*domain.Link, error) {
	var link domain.Link
	var comments sql.NullString
	var expirationDate sql.NullTime

	err := row.Scan(&link.ID, &link.UserID, &link.DestinationURL, &link.ShortCode,
		&link.ShortURL, &comments, &link.LinkExpiration, &expirationDate,
		&link.ClickCount, &link.CreatedAt, &link.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	link.Comments = comments.String
	if expirationDate.Valid {
		link.ExpirationDate = &expirationDate.Time
	}
	return &link, nil
}

func (r *SQLiteRepository) UpdateLink(ctx context.Context, link *domain.Link) error {
	query := `UPDATE links SET destination_url = ?, short_code = ?, short_url = ?, comments = ?,
			  link_expiration = ?, expiration_date = ?, updated_at = ? WHERE id = ?`

	_, err := r.db.ExecContext(ctx, query, link.DestinationURL, link.ShortCode, link.ShortURL,
		link.Comments, link.LinkExpiration, nullableTime(link.ExpirationDate), link.UpdatedAt, link.ID)
	return err
}

func (r *SQLiteRepository) DeleteUserLink(ctx context.Context, userID, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM links WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *SQLiteRepository) ListUserLinks(ctx context.Context, userID int64, limit, offset int) ([]domain.Link, error) {
	query := `SELECT ` + linkColumns + ` FROM links WHERE user_id = ?
			  ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`

	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []domain.Link
	for rows.Next() {
		var l domain.Link
		var comments sql.NullString
		var expirationDate sql.NullTime
		if err := rows.Scan(&l.ID, &l.UserID, &l.DestinationURL, &l.ShortCode, &l.ShortURL,
			&comments, &l.LinkExpiration, &expirationDate, &l.ClickCount,
			&l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		l.Comments = comments.String
		if expirationDate.Valid {
			l.ExpirationDate = &expirationDate.Time
		}
		links = append(links, l)
	}

	return links, rows.Err()
}

func (r *SQLiteRepository) CountUserLinks(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM links WHERE user_id = ?`, userID).Scan(&count)
	return count, err
}

func (r *SQLiteRepository) IncrementClickCount(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE links SET click_count = click_count + 1 WHERE id = ?`, id)
	return err
}

func (r *SQLiteRepository) SumUserClickCounts(ctx context.Context, userID int64) (int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(click_count), 0) FROM links WHERE user_id = ?`, userID).Scan(&total)
	return total, err
}

func (r *SQLiteRepository) Dump(ctx context.Context) ([]domain.Link, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+linkColumns+` FROM links`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []domain.Link
	for rows.Next() {
		var l domain.Link
		var comments sql.NullString
		var expirationDate sql.NullTime
		if err := rows.Scan(&l.ID, &l.UserID, &l.DestinationURL, &l.ShortCode, &l.ShortURL,
			&comments, &l.LinkExpiration, &expirationDate, &l.ClickCount,
			&l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		l.Comments = comments.String
		if expirationDate.Valid {
			l.ExpirationDate = &expirationDate.Time
		}
		links = append(links, l)
	}
	return links, rows.Err()
}

func (r *SQLiteRepository) RecordClick(ctx context.Context, click *domain.Click) error {
	query := `INSERT INTO clicks (link_id, user_id, device_type, created_at) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, click.LinkID, click.UserID, click.DeviceType,
		click.CreatedAt.Format("2006-01-02 15:04:05"))
	return err
}

func (r *SQLiteRepository) CountUserClicks(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM clicks WHERE user_id = ?`, userID).Scan(&count)
	return count, err
}

func (r *SQLiteRepository) ClicksByDevice(ctx context.Context) ([]domain.DeviceClicks, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT device_type, COUNT(*) AS c
		FROM clicks
		GROUP BY device_type
		ORDER BY c DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.DeviceClicks
	for rows.Next() {
		var dc domain.DeviceClicks
		if err := rows.Scan(&dc.DeviceType, &dc.TotalClicks); err != nil {
			return nil, err
		}
		out = append(out, dc)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) ClicksByDate(ctx context.Context) ([]domain.DateClicks, error) {
	// SQLite date formatting: strftime('%Y-%m-%d', created_at)
	rows, err := r.db.QueryContext(ctx, `
		SELECT strftime('%Y-%m-%d', created_at) AS date, COUNT(*)
		FROM clicks
		GROUP BY date
		ORDER BY date ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.DateClicks
	for rows.Next() {
		var dc domain.DateClicks
		if err := rows.Scan(&dc.Date, &dc.TotalClicks); err != nil {
			return nil, err
		}
		out = append(out, dc)
	}
	return out, rows.Err()
}

func nullableTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return *t
}

// Ensure interface compliance
var _ ports.Repository = (*SQLiteRepository)(nil)
