package core

import (
	"errors"
	"testing"
	"time"
)

func TestValidateArticle(t *testing.T) {
	validTime := time.Now().Add(-1 * time.Hour)
	futureTime := time.Now().Add(1 * time.Hour)

	tests := []struct {
		name    string
		article *Article
		wantErr error
	}{
		{
			name: "valid article",
			article: &Article{
				Id:          1,
				Title:       "Storm hits coast",
				Body:        "Waves battered the seafront overnight.",
				Link:        "https://example.com/storm",
				CollectedAt: validTime,
			},
			wantErr: nil,
		},
		{
			name: "valid article with empty body",
			article: &Article{
				Id:          1,
				Title:       "Headline only",
				Link:        "https://example.com/headline",
				CollectedAt: validTime,
			},
			wantErr: nil,
		},
		{
			name: "valid article with ID 0",
			article: &Article{
				Title: "Uninserted",
				Link:  "https://example.com/uninserted",
			},
			wantErr: nil,
		},
		{
			name: "valid duplicate with canonical reference",
			article: &Article{
				Id:          2,
				Title:       "Storm hits coast",
				Link:        "https://mirror.example.com/storm",
				CollectedAt: validTime,
				IsDuplicate: true,
				DuplicateOf: 1,
			},
			wantErr: nil,
		},
		{
			name:    "nil article",
			article: nil,
			wantErr: ErrInvalidArticle,
		},
		{
			name: "empty title",
			article: &Article{
				Link:        "https://example.com/untitled",
				CollectedAt: validTime,
			},
			wantErr: ErrEmptyTitle,
		},
		{
			name: "empty link",
			article: &Article{
				Title:       "No link",
				CollectedAt: validTime,
			},
			wantErr: ErrEmptyLink,
		},
		{
			name: "future collection time",
			article: &Article{
				Title:       "From the future",
				Link:        "https://example.com/future",
				CollectedAt: futureTime,
			},
			wantErr: ErrInvalidTimestamp,
		},
		{
			name: "duplicate flag without canonical reference",
			article: &Article{
				Title:       "Dangling",
				Link:        "https://example.com/dangling",
				CollectedAt: validTime,
				IsDuplicate: true,
			},
			wantErr: ErrDanglingDuplicate,
		},
		{
			name: "canonical reference without duplicate flag",
			article: &Article{
				Title:       "Dangling reverse",
				Link:        "https://example.com/dangling2",
				CollectedAt: validTime,
				DuplicateOf: 1,
			},
			wantErr: ErrDanglingDuplicate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateArticle(tt.article)

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateArticle() unexpected error: %v", err)
				}
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateArticle() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateBatch(t *testing.T) {
	tests := []struct {
		name    string
		batch   *Batch
		wantErr error
	}{
		{
			name: "valid batch",
			batch: &Batch{
				FeedURLs:            []string{"https://example.com/rss"},
				Criteria:            "central bank policy",
				SimilarityThreshold: 0.85,
				RelevanceThreshold:  0.6,
			},
			wantErr: nil,
		},
		{
			name: "valid batch without criteria",
			batch: &Batch{
				FeedURLs:            []string{"https://example.com/rss"},
				SimilarityThreshold: 0.85,
			},
			wantErr: nil,
		},
		{
			name:    "nil batch",
			batch:   nil,
			wantErr: ErrInvalidBatch,
		},
		{
			name: "no feeds",
			batch: &Batch{
				SimilarityThreshold: 0.85,
			},
			wantErr: ErrNoFeeds,
		},
		{
			name: "similarity threshold above range",
			batch: &Batch{
				FeedURLs:            []string{"https://example.com/rss"},
				SimilarityThreshold: 1.5,
			},
			wantErr: ErrThresholdRange,
		},
		{
			name: "relevance threshold below range",
			batch: &Batch{
				FeedURLs:           []string{"https://example.com/rss"},
				RelevanceThreshold: -0.1,
			},
			wantErr: ErrThresholdRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBatch(tt.batch)

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateBatch() unexpected error: %v", err)
				}
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateBatch() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestIsValidTimestamp(t *testing.T) {
	if !IsValidTimestamp(time.Now().Add(-time.Minute)) {
		t.Error("IsValidTimestamp() rejected a past timestamp")
	}
	if IsValidTimestamp(time.Now().Add(time.Hour)) {
		t.Error("IsValidTimestamp() accepted a future timestamp")
	}
}
