package retrieval_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"versefinder/internal/retrieval"
	"versefinder/internal/retrieval/mocks"
)

func f32(v float32) *float32 { return &v }

func candidateFixture(ids ...string) []retrieval.Candidate {
	out := make([]retrieval.Candidate, len(ids))
	for i, id := range ids {
		out[i] = retrieval.Candidate{
			BookID:    "book-1",
			BookTitle: "The Sayings",
			Preview:   "preview " + id,
			FullText:  "full " + id,
		}
	}
	return out
}

func previews(cands []retrieval.Candidate) []string {
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.Preview
	}
	return out
}

func TestRanker_ScoreSortFallback(t *testing.T) {
	ranker := retrieval.NewRanker(nil, 18, time.Second)

	candidates := candidateFixture("a", "b", "c")
	candidates[0].Score = f32(0.9)
	candidates[1].Score = nil
	candidates[2].Score = f32(0.4)

	got := ranker.Rank(context.Background(), "q", candidates)

	want := []string{"preview a", "preview c", "preview b"}
	for i, p := range previews(got) {
		if p != want[i] {
			t.Fatalf("Rank() order = %v, want %v", previews(got), want)
		}
	}
}

func TestRanker_ScoreSortTiesKeepInputOrder(t *testing.T) {
	ranker := retrieval.NewRanker(nil, 18, time.Second)

	candidates := candidateFixture("a", "b", "c")
	candidates[0].Score = f32(0.5)
	candidates[1].Score = f32(0.5)
	candidates[2].Score = f32(0.5)

	got := previews(ranker.Rank(context.Background(), "q", candidates))
	want := []string{"preview a", "preview b", "preview c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("tied scores reordered: %v", got)
		}
	}
}

func TestRanker_ExternalRanking(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reranker := mocks.NewMockReranker(ctrl)
	reranker.EXPECT().
		RankIndices(gomock.Any(), "q", gomock.Len(3)).
		Return([]int{2, 0, 1}, nil)

	ranker := retrieval.NewRanker(reranker, 18, time.Second)
	candidates := candidateFixture("a", "b", "c")

	got := previews(ranker.Rank(context.Background(), "q", candidates))
	want := []string{"preview c", "preview a", "preview b"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Rank() order = %v, want %v", got, want)
		}
	}
}

func TestRanker_MalformedRankingStillTotalOrdering(t *testing.T) {
	tests := []struct {
		name    string
		indices []int
		want    []string
	}{
		{
			name:    "out of range ignored, missing appended",
			indices: []int{7, 1, -3},
			want:    []string{"preview b", "preview a", "preview c"},
		},
		{
			name:    "duplicates ignored",
			indices: []int{2, 2, 2, 0},
			want:    []string{"preview c", "preview a", "preview b"},
		},
		{
			name:    "partial ranking appends remainder in input order",
			indices: []int{1},
			want:    []string{"preview b", "preview a", "preview c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			reranker := mocks.NewMockReranker(ctrl)
			reranker.EXPECT().
				RankIndices(gomock.Any(), gomock.Any(), gomock.Any()).
				Return(tt.indices, nil)

			ranker := retrieval.NewRanker(reranker, 18, time.Second)
			candidates := candidateFixture("a", "b", "c")

			got := previews(ranker.Rank(context.Background(), "q", candidates))
			if len(got) != len(candidates) {
				t.Fatalf("ranking dropped candidates: %v", got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("Rank() order = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestRanker_RerankFailureFallsBackToScoreSort(t *testing.T) {
	for _, ret := range []struct {
		name    string
		indices []int
		err     error
	}{
		{name: "error", indices: nil, err: errors.New("model unavailable")},
		{name: "empty ranking", indices: []int{}, err: nil},
		{name: "all indices invalid", indices: []int{99, -1}, err: nil},
	} {
		t.Run(ret.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			reranker := mocks.NewMockReranker(ctrl)
			reranker.EXPECT().
				RankIndices(gomock.Any(), gomock.Any(), gomock.Any()).
				Return(ret.indices, ret.err)

			ranker := retrieval.NewRanker(reranker, 18, time.Second)
			candidates := candidateFixture("a", "b")
			candidates[0].Score = f32(0.1)
			candidates[1].Score = f32(0.8)

			got := previews(ranker.Rank(context.Background(), "q", candidates))
			want := []string{"preview b", "preview a"}
			for i := range want {
				if got[i] != want[i] {
					t.Fatalf("fallback order = %v, want %v", got, want)
				}
			}
		})
	}
}

func TestRanker_CapsCandidatesShownToReranker(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reranker := mocks.NewMockReranker(ctrl)
	reranker.EXPECT().
		RankIndices(gomock.Any(), gomock.Any(), gomock.Len(2)).
		Return([]int{1, 0}, nil)

	ranker := retrieval.NewRanker(reranker, 2, time.Second)
	candidates := candidateFixture("a", "b", "c", "d")

	got := previews(ranker.Rank(context.Background(), "q", candidates))
	// Ranked pool first, unranked tail appended in input order.
	want := []string{"preview b", "preview a", "preview c", "preview d"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Rank() order = %v, want %v", got, want)
		}
	}
}

func TestRanker_SingleCandidatePassesThrough(t *testing.T) {
	ranker := retrieval.NewRanker(nil, 18, time.Second)
	candidates := candidateFixture("only")

	got := ranker.Rank(context.Background(), "q", candidates)
	if len(got) != 1 || got[0].Preview != "preview only" {
		t.Fatalf("Rank() = %v", got)
	}
}
