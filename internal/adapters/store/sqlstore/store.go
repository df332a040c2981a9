// Package sqlstore implements ports.ContentStore on database/sql, with
// SQLite (modernc.org/sqlite, pure Go) as the embedded default and MySQL
// for shared deployments.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql" // registers "mysql"
	"github.com/google/uuid"
	_ "modernc.org/sqlite" // registers "sqlite"

	"github.com/jsamuelsen/quoteboard/internal/domain"
)

// Dialect selects the SQL driver and schema.
type Dialect string

// Supported dialects.
const (
	DialectSQLite Dialect = "sqlite"
	DialectMySQL  Dialect = "mysql"
)

// sqlitePragmas are applied to every pooled connection through the DSN.
var sqlitePragmas = []string{
	"foreign_keys(1)",
	"busy_timeout(5000)",
}

// Store is a SQL-backed content store.
type Store struct {
	db      *sql.DB
	dialect Dialect
	now     func() time.Time
	newID   func() string
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides id generation.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// Open connects to the database and verifies the connection.
func Open(ctx context.Context, dialect Dialect, dsn string, opts ...Option) (*Store, error) {
	var (
		db  *sql.DB
		err error
	)

	switch dialect {
	case DialectSQLite:
		db, err = sql.Open("sqlite", sqliteDSN(dsn))
		if err == nil && isMemoryDSN(dsn) {
			// Every connection to :memory: is a separate database.
			db.SetMaxOpenConns(1)
		}
	case DialectMySQL:
		db, err = sql.Open("mysql", dsn)
	default:
		return nil, fmt.Errorf("unsupported sql dialect %q", dialect)
	}

	if err != nil {
		return nil, fmt.Errorf("open %s db: %w", dialect, err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("ping %s db: %w", dialect, err)
	}

	return New(db, dialect, opts...), nil
}

// New wraps an open database handle.
func New(db *sql.DB, dialect Dialect, opts ...Option) *Store {
	s := &Store{
		db:      db,
		dialect: dialect,
		now:     time.Now,
		newID:   uuid.NewString,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func sqliteDSN(dsn string) string {
	params := make([]string, 0, len(sqlitePragmas)+1)
	for _, p := range sqlitePragmas {
		params = append(params, "_pragma="+p)
	}

	if !isMemoryDSN(dsn) {
		params = append(params, "_pragma=journal_mode(WAL)")
	}

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}

	return dsn + sep + strings.Join(params, "&")
}

func isMemoryDSN(dsn string) bool {
	return strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}

// Migrate creates tables and indexes if they do not exist.
func (s *Store) Migrate(ctx context.Context) error {
	schema := sqliteSchema
	if s.dialect == DialectMySQL {
		schema = mysqlSchema
	}

	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}

	return nil
}

// SaveQuote inserts a quote with a zero comment count.
func (s *Store) SaveQuote(ctx context.Context, q domain.NewQuote) (string, error) {
	id := s.newID()

	_, err := s.db.ExecContext(ctx, insertQuoteSQL,
		id, q.Text, q.Rating, q.Published, s.now().UnixNano())
	if err != nil {
		return "", fmt.Errorf("insert quote: %w", err)
	}

	return id, nil
}

// PublishedQuotes returns published quotes, newest first.
func (s *Store) PublishedQuotes(ctx context.Context) ([]domain.Quote, error) {
	rows, err := s.db.QueryContext(ctx, publishedQuotesSQL, true)
	if err != nil {
		return nil, fmt.Errorf("query quotes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	quotes := make([]domain.Quote, 0)

	for rows.Next() {
		var (
			q       domain.Quote
			created int64
		)

		if err := rows.Scan(&q.ID, &q.Text, &q.Rating, &q.Published, &created, &q.CommentCount); err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}

		q.CreatedAt = fromUnixNano(created)
		quotes = append(quotes, q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quotes: %w", err)
	}

	return quotes, nil
}

// SaveComment inserts a comment. The parent's counter is not touched.
func (s *Store) SaveComment(ctx context.Context, c domain.NewComment) (string, error) {
	id := s.newID()

	_, err := s.db.ExecContext(ctx, insertCommentSQL,
		id, c.QuoteID, c.Text, c.Rating, c.Published, s.now().UnixNano())
	if err != nil {
		return "", fmt.Errorf("insert comment: %w", err)
	}

	return id, nil
}

// IncrementCommentCount adds one to the quote's counter in a single
// statement, so concurrent increments never lose updates.
func (s *Store) IncrementCommentCount(ctx context.Context, quoteID string) error {
	res, err := s.db.ExecContext(ctx, incrementCommentCountSQL, quoteID)
	if err != nil {
		return fmt.Errorf("increment comment count: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("increment comment count: %w", err)
	}

	if n == 0 {
		return domain.NewNotFoundError("quote", quoteID)
	}

	return nil
}

// CommentsForQuote returns the published comments on a quote, newest first.
func (s *Store) CommentsForQuote(ctx context.Context, quoteID string) ([]domain.Comment, error) {
	rows, err := s.db.QueryContext(ctx, commentsForQuoteSQL, quoteID, true)
	if err != nil {
		return nil, fmt.Errorf("query comments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	comments := make([]domain.Comment, 0)

	for rows.Next() {
		var (
			c       domain.Comment
			created int64
		)

		if err := rows.Scan(&c.ID, &c.QuoteID, &c.Text, &c.Rating, &c.Published, &created); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}

		c.CreatedAt = fromUnixNano(created)
		comments = append(comments, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comments: %w", err)
	}

	return comments, nil
}

// CountPublishedComments counts published comments on a quote.
func (s *Store) CountPublishedComments(ctx context.Context, quoteID string) (int, error) {
	var n int

	err := s.db.QueryRowContext(ctx, countPublishedCommentsSQL, quoteID, true).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count comments: %w", err)
	}

	return n, nil
}

// Name returns the health check name.
func (s *Store) Name() string {
	return string(s.dialect)
}

// Check pings the database.
func (s *Store) Check(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the connection pool.
func (s *Store) Close(_ context.Context) error {
	if s == nil || s.db == nil {
		return nil
	}

	if err := s.db.Close(); err != nil && !errors.Is(err, sql.ErrConnDone) {
		return fmt.Errorf("close %s db: %w", s.dialect, err)
	}

	return nil
}

func fromUnixNano(n int64) time.Time {
	return time.Unix(0, n).UTC()
}
