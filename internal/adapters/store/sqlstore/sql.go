package sqlstore

// Both drivers accept "?" placeholders, so only the DDL differs by dialect.
// Quote id columns hold up to domain.MaxQuoteIDLength characters because a
// comment may reference a quote id that was never issued here.

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS quotes (
		id            TEXT PRIMARY KEY,
		text          TEXT NOT NULL,
		rating        INTEGER NOT NULL,
		published     INTEGER NOT NULL,
		created_at    INTEGER NOT NULL,
		comment_count INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_quotes_published_created
		ON quotes (published, created_at DESC, id DESC)`,
	`CREATE TABLE IF NOT EXISTS comments (
		id         TEXT PRIMARY KEY,
		quote_id   TEXT NOT NULL,
		text       TEXT NOT NULL,
		rating     INTEGER NOT NULL,
		published  INTEGER NOT NULL,
		created_at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_comments_quote_published_created
		ON comments (quote_id, published, created_at DESC, id DESC)`,
}

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS quotes (
		id            VARCHAR(128) NOT NULL PRIMARY KEY,
		text          TEXT NOT NULL,
		rating        TINYINT NOT NULL,
		published     BOOLEAN NOT NULL,
		created_at    BIGINT NOT NULL,
		comment_count INT NOT NULL DEFAULT 0,
		INDEX idx_quotes_published_created (published, created_at, id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS comments (
		id         CHAR(36) NOT NULL PRIMARY KEY,
		quote_id   VARCHAR(128) NOT NULL,
		text       TEXT NOT NULL,
		rating     TINYINT NOT NULL,
		published  BOOLEAN NOT NULL,
		created_at BIGINT NOT NULL,
		INDEX idx_comments_quote_published_created (quote_id, published, created_at, id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	// Tables created before the columns were widened.
	`ALTER TABLE quotes MODIFY id VARCHAR(128) NOT NULL`,
	`ALTER TABLE comments MODIFY quote_id VARCHAR(128) NOT NULL`,
}

const (
	insertQuoteSQL = `INSERT INTO quotes (id, text, rating, published, created_at, comment_count)
		VALUES (?, ?, ?, ?, ?, 0)`

	publishedQuotesSQL = `SELECT id, text, rating, published, created_at, comment_count
		FROM quotes
		WHERE published = ?
		ORDER BY created_at DESC, id DESC`

	insertCommentSQL = `INSERT INTO comments (id, quote_id, text, rating, published, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	incrementCommentCountSQL = `UPDATE quotes SET comment_count = comment_count + 1 WHERE id = ?`

	commentsForQuoteSQL = `SELECT id, quote_id, text, rating, published, created_at
		FROM comments
		WHERE quote_id = ? AND published = ?
		ORDER BY created_at DESC, id DESC`

	countPublishedCommentsSQL = `SELECT COUNT(*) FROM comments WHERE quote_id = ? AND published = ?`
)
