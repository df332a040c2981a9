package app

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quoteboard/internal/domain"
	"github.com/jsamuelsen/quoteboard/internal/mocks"
)

func strPtr(s string) *string { return &s }

func newModerationService(t *testing.T, store *mocks.MockContentStore, rater Rater) *ModerationService {
	t.Helper()

	return NewModerationService(ModerationServiceConfig{
		Store: store,
		Executor: NewExecutor(ExecutorConfig{
			Rater:     rater,
			Threshold: domain.DefaultThreshold,
			Logger:    discardLogger(),
		}),
		Counters: NewCounterUpdater(CounterUpdaterConfig{Store: store, Logger: discardLogger()}),
	})
}

func TestNewModerationService_PanicsWithoutDependencies(t *testing.T) {
	assert.Panics(t, func() { NewModerationService(ModerationServiceConfig{}) })
}

func TestModerationService_SubmitQuote(t *testing.T) {
	tests := []struct {
		name       string
		text       *string
		rating     int
		setupMock  func(*mocks.MockContentStore)
		wantResult SubmissionResult
		wantReason domain.ValidationReason
		wantErr    bool
	}{
		{
			name:   "published",
			text:   strPtr("  Be here now.  "),
			rating: 4,
			setupMock: func(m *mocks.MockContentStore) {
				m.EXPECT().SaveQuote(mock.Anything, domain.NewQuote{
					Text: "Be here now.", Rating: 4, Published: true,
				}).Return("q-1", nil)
			},
			wantResult: SubmissionResult{
				ID: "q-1", Rating: 4, Feedback: "fb", Published: true,
				Message: "Quote published successfully",
			},
		},
		{
			name:   "rejected but still stored",
			text:   strPtr("lol"),
			rating: 1,
			setupMock: func(m *mocks.MockContentStore) {
				m.EXPECT().SaveQuote(mock.Anything, domain.NewQuote{
					Text: "lol", Rating: 1, Published: false,
				}).Return("q-2", nil)
			},
			wantResult: SubmissionResult{
				ID: "q-2", Rating: 1, Feedback: "fb", Published: false,
				Message: "Quote rejected - quality threshold not met",
			},
		},
		{
			name:       "too long",
			text:       strPtr(strings.Repeat("a", 501)),
			setupMock:  func(*mocks.MockContentStore) {},
			wantReason: domain.ReasonTooLong,
			wantErr:    true,
		},
		{
			name:       "whitespace only",
			text:       strPtr("  "),
			setupMock:  func(*mocks.MockContentStore) {},
			wantReason: domain.ReasonEmptyContent,
			wantErr:    true,
		},
		{
			name:       "missing text",
			text:       nil,
			setupMock:  func(*mocks.MockContentStore) {},
			wantReason: domain.ReasonMissingField,
			wantErr:    true,
		},
		{
			name:   "store failure",
			text:   strPtr("fine text"),
			rating: 3,
			setupMock: func(m *mocks.MockContentStore) {
				m.EXPECT().SaveQuote(mock.Anything, mock.Anything).Return("", errors.New("connection reset"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := mocks.NewMockContentStore(t)
			tt.setupMock(store)

			svc := newModerationService(t, store, &fixedRater{assessment: domain.Assessment{Rating: tt.rating, Feedback: "fb"}})

			result, err := svc.SubmitQuote(context.Background(), QuoteSubmission{Text: tt.text})

			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, tt.wantResult, result)

				return
			}

			require.Error(t, err)
			assert.Empty(t, result.ID)

			if tt.wantReason != "" {
				var verr *domain.ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, tt.wantReason, verr.Reason)
			}
		})
	}
}

func TestModerationService_OracleDownStillSubmits(t *testing.T) {
	store := mocks.NewMockContentStore(t)
	oracle := mocks.NewMockRatingOracle(t)

	oracle.EXPECT().Score(mock.Anything, mock.Anything).Return("", errors.New("dial tcp: refused"))
	store.EXPECT().SaveQuote(mock.Anything, domain.NewQuote{Text: "text", Rating: 3, Published: true}).Return("q-9", nil)

	rater := NewQualityRater(QualityRaterConfig{Oracle: oracle, Logger: discardLogger()})
	svc := newModerationService(t, store, rater)

	result, err := svc.SubmitQuote(context.Background(), QuoteSubmission{Text: strPtr("text")})

	require.NoError(t, err)
	assert.Equal(t, 3, result.Rating)
	assert.Equal(t, "Rating service temporarily unavailable", result.Feedback)
	assert.True(t, result.Published)
}

func TestModerationService_SubmitComment(t *testing.T) {
	t.Run("published comment bumps counter", func(t *testing.T) {
		store := mocks.NewMockContentStore(t)
		store.EXPECT().SaveComment(mock.Anything, domain.NewComment{
			QuoteID: "q-1", Text: "agreed", Rating: 5, Published: true,
		}).Return("c-1", nil)
		store.EXPECT().IncrementCommentCount(mock.Anything, "q-1").Return(nil).Once()

		svc := newModerationService(t, store, &fixedRater{assessment: domain.Assessment{Rating: 5, Feedback: "fb"}})

		result, err := svc.SubmitComment(context.Background(), CommentSubmission{
			QuoteID: strPtr("q-1"), Text: strPtr(" agreed "),
		})

		require.NoError(t, err)
		assert.Equal(t, "c-1", result.ID)
		assert.Equal(t, "Comment published successfully", result.Message)
	})

	t.Run("rejected comment leaves counter alone", func(t *testing.T) {
		store := mocks.NewMockContentStore(t)
		store.EXPECT().SaveComment(mock.Anything, mock.Anything).Return("c-2", nil)

		svc := newModerationService(t, store, &fixedRater{assessment: domain.Assessment{Rating: 2, Feedback: "fb"}})

		result, err := svc.SubmitComment(context.Background(), CommentSubmission{
			QuoteID: strPtr("q-1"), Text: strPtr("meh"),
		})

		require.NoError(t, err)
		assert.False(t, result.Published)
		store.AssertNotCalled(t, "IncrementCommentCount", mock.Anything, mock.Anything)
	})

	t.Run("counter failure does not fail the comment", func(t *testing.T) {
		store := mocks.NewMockContentStore(t)
		store.EXPECT().SaveComment(mock.Anything, mock.Anything).Return("c-3", nil)
		store.EXPECT().IncrementCommentCount(mock.Anything, "gone").
			Return(domain.NewNotFoundError("quote", "gone"))

		svc := newModerationService(t, store, &fixedRater{assessment: domain.Assessment{Rating: 4, Feedback: "fb"}})

		result, err := svc.SubmitComment(context.Background(), CommentSubmission{
			QuoteID: strPtr("gone"), Text: strPtr("still here"),
		})

		require.NoError(t, err)
		assert.Equal(t, "c-3", result.ID)
	})

	t.Run("missing quote id rejected before text", func(t *testing.T) {
		store := mocks.NewMockContentStore(t)
		rater := &fixedRater{}
		svc := newModerationService(t, store, rater)

		for _, text := range []*string{nil, strPtr(""), strPtr("valid text")} {
			_, err := svc.SubmitComment(context.Background(), CommentSubmission{Text: text})

			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, domain.FieldQuoteID, verr.Field)
			assert.Equal(t, "Quote ID is required", verr.Message)
		}

		assert.Zero(t, rater.calls)
	})

	t.Run("comment too long", func(t *testing.T) {
		store := mocks.NewMockContentStore(t)
		svc := newModerationService(t, store, &fixedRater{})

		_, err := svc.SubmitComment(context.Background(), CommentSubmission{
			QuoteID: strPtr("q-1"), Text: strPtr(strings.Repeat("x", 301)),
		})

		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "Comment text cannot exceed 300 characters", verr.Message)
	})
}
