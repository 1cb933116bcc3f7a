package retrieval_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"versefinder/internal/retrieval"
	"versefinder/internal/retrieval/mocks"
)

const sayingsFixture = "110. On humility, the elder said that the monk who knows his own weakness stands higher than the one who sees angels.\n\n111. Another saying of the same elder, on the keeping of silence in the cell at all times and in all things."

func TestAggregator_Collect(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	search := mocks.NewMockSearchService(ctrl)
	search.EXPECT().
		Search(gomock.Any(), "idx-1", "about humility", 8).
		Return([]retrieval.SearchHit{{Text: sayingsFixture, Score: f32(0.82)}}, nil)

	agg := retrieval.NewAggregator(search, 8, time.Second)
	books := []retrieval.Book{{ID: "b1", Title: "The Sayings", IndexHandle: "idx-1"}}

	got := agg.Collect(context.Background(), "about humility", books)

	if len(got) != 1 {
		t.Fatalf("Collect() returned %d candidates, want 1", len(got))
	}
	c := got[0]
	if c.BookID != "b1" || c.BookTitle != "The Sayings" {
		t.Errorf("candidate book metadata wrong: %+v", c)
	}
	if !strings.HasPrefix(c.FullText, "110. On humility") {
		t.Errorf("FullText = %q, want the 110 saying", c.FullText)
	}
	if strings.Contains(c.FullText, "111.") {
		t.Error("unit must not include the next saying")
	}
	if c.Score == nil || *c.Score != 0.82 {
		t.Error("index score must be carried through")
	}
}

func TestAggregator_FailedBookDegradesToZeroCandidates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	search := mocks.NewMockSearchService(ctrl)
	search.EXPECT().
		Search(gomock.Any(), "idx-bad", gomock.Any(), gomock.Any()).
		Return(nil, errors.New("index unavailable"))
	search.EXPECT().
		Search(gomock.Any(), "idx-good", gomock.Any(), gomock.Any()).
		Return([]retrieval.SearchHit{{Text: sayingsFixture, Score: f32(0.5)}}, nil)

	agg := retrieval.NewAggregator(search, 8, time.Second)
	books := []retrieval.Book{
		{ID: "bad", Title: "Broken", IndexHandle: "idx-bad"},
		{ID: "good", Title: "Working", IndexHandle: "idx-good"},
	}

	got := agg.Collect(context.Background(), "humility", books)

	if len(got) != 1 || got[0].BookID != "good" {
		t.Fatalf("Collect() = %+v, want one candidate from the working book", got)
	}
}

func TestAggregator_SkipsBooksWithoutIndex(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	search := mocks.NewMockSearchService(ctrl)
	// No Search calls expected.

	agg := retrieval.NewAggregator(search, 8, time.Second)
	books := []retrieval.Book{{ID: "b1", Title: "Unindexed"}}

	if got := agg.Collect(context.Background(), "humility", books); len(got) != 0 {
		t.Errorf("Collect() = %+v, want empty", got)
	}
}

func TestAggregator_DiscardsNoiseAndShortHits(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tocText := "Contents\nOn humility .......... 12\nOn obedience .......... 19\nOn silence .......... 33"

	search := mocks.NewMockSearchService(ctrl)
	search.EXPECT().
		Search(gomock.Any(), "idx-1", gomock.Any(), gomock.Any()).
		Return([]retrieval.SearchHit{
			{Text: tocText, Score: f32(0.9)},
			{Text: "too short", Score: f32(0.8)},
			{Text: "", Score: f32(0.7)},
		}, nil)

	agg := retrieval.NewAggregator(search, 8, time.Second)
	books := []retrieval.Book{{ID: "b1", Title: "The Sayings", IndexHandle: "idx-1"}}

	if got := agg.Collect(context.Background(), "humility", books); len(got) != 0 {
		t.Errorf("Collect() = %+v, want all hits discarded", got)
	}
}

func TestAggregator_CleansWrappedText(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	wrapped := "ON HUMILITY\nThe elder said that the monk\nwho knows his own weakness\nstands higher than the one\nwho sees angels in glory."

	search := mocks.NewMockSearchService(ctrl)
	search.EXPECT().
		Search(gomock.Any(), "idx-1", gomock.Any(), gomock.Any()).
		Return([]retrieval.SearchHit{{Text: wrapped, Score: f32(0.6)}}, nil)

	agg := retrieval.NewAggregator(search, 8, time.Second)
	books := []retrieval.Book{{ID: "b1", Title: "The Sayings", IndexHandle: "idx-1"}}

	got := agg.Collect(context.Background(), "weakness", books)

	if len(got) != 1 {
		t.Fatalf("Collect() returned %d candidates, want 1", len(got))
	}
	want := "The elder said that the monk who knows his own weakness stands higher than the one who sees angels in glory."
	if got[0].FullText != want {
		t.Errorf("FullText = %q, want %q", got[0].FullText, want)
	}
	if got[0].Preview != want {
		t.Errorf("Preview = %q, want %q (short text, no truncation)", got[0].Preview, want)
	}
}
