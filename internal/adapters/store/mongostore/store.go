// Package mongostore implements ports.ContentStore on MongoDB. It is the
// document-database deployment option; quotes and comments live in two
// collections of the database named by store.project.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/jsamuelsen/quoteboard/internal/domain"
)

const (
	quotesCollection   = "quotes"
	commentsCollection = "comments"
)

type quoteDoc struct {
	ID           string    `bson:"_id"`
	Text         string    `bson:"text"`
	Rating       int       `bson:"rating"`
	Published    bool      `bson:"published"`
	Timestamp    time.Time `bson:"timestamp"`
	CommentCount int       `bson:"comment_count"`
}

type commentDoc struct {
	ID        string    `bson:"_id"`
	QuoteID   string    `bson:"quote_id"`
	Text      string    `bson:"text"`
	Rating    int       `bson:"rating"`
	Published bool      `bson:"published"`
	Timestamp time.Time `bson:"timestamp"`
}

// Store is a MongoDB-backed content store.
type Store struct {
	client   *mongo.Client
	quotes   *mongo.Collection
	comments *mongo.Collection
	now      func() time.Time
}

// Open connects to uri, pings the primary and uses the named database.
func Open(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)

		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	db := client.Database(database)

	return &Store{
		client:   client,
		quotes:   db.Collection(quotesCollection),
		comments: db.Collection(commentsCollection),
		now:      time.Now,
	}, nil
}

// Migrate creates the indexes behind the listing queries.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.quotes.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "published", Value: 1}, {Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("create quotes index: %w", err)
	}

	_, err = s.comments.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "quote_id", Value: 1},
			{Key: "published", Value: 1},
			{Key: "timestamp", Value: -1},
			{Key: "_id", Value: -1},
		},
	})
	if err != nil {
		return fmt.Errorf("create comments index: %w", err)
	}

	return nil
}

// SaveQuote inserts a quote with a zero comment count.
func (s *Store) SaveQuote(ctx context.Context, q domain.NewQuote) (string, error) {
	doc := quoteDoc{
		ID:        uuid.NewString(),
		Text:      q.Text,
		Rating:    q.Rating,
		Published: q.Published,
		Timestamp: s.now().UTC(),
	}

	if _, err := s.quotes.InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("insert quote: %w", err)
	}

	return doc.ID, nil
}

// PublishedQuotes returns published quotes, newest first.
func (s *Store) PublishedQuotes(ctx context.Context) ([]domain.Quote, error) {
	cur, err := s.quotes.Find(ctx,
		bson.D{{Key: "published", Value: true}},
		options.Find().SetSort(newestFirst()),
	)
	if err != nil {
		return nil, fmt.Errorf("find quotes: %w", err)
	}
	defer func() { _ = cur.Close(ctx) }()

	docs := []quoteDoc{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode quotes: %w", err)
	}

	quotes := make([]domain.Quote, 0, len(docs))
	for _, d := range docs {
		quotes = append(quotes, domain.Quote{
			ID:           d.ID,
			Text:         d.Text,
			Rating:       d.Rating,
			Published:    d.Published,
			CreatedAt:    d.Timestamp.UTC(),
			CommentCount: d.CommentCount,
		})
	}

	return quotes, nil
}

// SaveComment inserts a comment. The parent's counter is not touched.
func (s *Store) SaveComment(ctx context.Context, c domain.NewComment) (string, error) {
	doc := commentDoc{
		ID:        uuid.NewString(),
		QuoteID:   c.QuoteID,
		Text:      c.Text,
		Rating:    c.Rating,
		Published: c.Published,
		Timestamp: s.now().UTC(),
	}

	if _, err := s.comments.InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("insert comment: %w", err)
	}

	return doc.ID, nil
}

// IncrementCommentCount applies $inc on the quote document.
func (s *Store) IncrementCommentCount(ctx context.Context, quoteID string) error {
	res, err := s.quotes.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: quoteID}},
		bson.D{{Key: "$inc", Value: bson.D{{Key: "comment_count", Value: 1}}}},
	)
	if err != nil {
		return fmt.Errorf("increment comment count: %w", err)
	}

	if res.MatchedCount == 0 {
		return domain.NewNotFoundError("quote", quoteID)
	}

	return nil
}

// CommentsForQuote returns the published comments on a quote, newest first.
func (s *Store) CommentsForQuote(ctx context.Context, quoteID string) ([]domain.Comment, error) {
	cur, err := s.comments.Find(ctx,
		bson.D{{Key: "quote_id", Value: quoteID}, {Key: "published", Value: true}},
		options.Find().SetSort(newestFirst()),
	)
	if err != nil {
		return nil, fmt.Errorf("find comments: %w", err)
	}
	defer func() { _ = cur.Close(ctx) }()

	docs := []commentDoc{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode comments: %w", err)
	}

	comments := make([]domain.Comment, 0, len(docs))
	for _, d := range docs {
		comments = append(comments, domain.Comment{
			ID:        d.ID,
			QuoteID:   d.QuoteID,
			Text:      d.Text,
			Rating:    d.Rating,
			Published: d.Published,
			CreatedAt: d.Timestamp.UTC(),
		})
	}

	return comments, nil
}

// CountPublishedComments counts published comments on a quote.
func (s *Store) CountPublishedComments(ctx context.Context, quoteID string) (int, error) {
	n, err := s.comments.CountDocuments(ctx,
		bson.D{{Key: "quote_id", Value: quoteID}, {Key: "published", Value: true}},
	)
	if err != nil {
		return 0, fmt.Errorf("count comments: %w", err)
	}

	return int(n), nil
}

// Name returns the health check name.
func (s *Store) Name() string {
	return "mongo"
}

// Check pings the primary.
func (s *Store) Check(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil && !errors.Is(err, mongo.ErrClientDisconnected) {
		return fmt.Errorf("disconnect mongo: %w", err)
	}

	return nil
}

func newestFirst() bson.D {
	return bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}}
}
