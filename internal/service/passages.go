package service

import (
	"encoding/json"

	"github.com/google/uuid"

	"versefinder/internal/retrieval"
)

// StoredPassage is the server-side record of a retrieved passage. It
// keeps the full text so that later lookups need no index round trip.
// The ID is minted when the passage is ranked and is the handle for
// full-text lookup.
type StoredPassage struct {
	ID        string   `json:"id"`
	BookID    string   `json:"bookId"`
	BookTitle string   `json:"bookTitle"`
	Score     *float32 `json:"score"`
	Preview   string   `json:"preview"`
	FullText  string   `json:"fullText"`
}

// ClientPassage is the projection of a stored passage that leaves the
// server. The full text is deliberately absent; clients fetch it on
// demand through the full-passage lookup.
type ClientPassage struct {
	ID        string   `json:"id"`
	BookID    string   `json:"bookId"`
	BookTitle string   `json:"bookTitle"`
	Score     *float32 `json:"score"`
	Preview   string   `json:"preview"`
	Truncated bool     `json:"truncated"`
}

// ToClient converts a stored passage to its client projection.
func (p StoredPassage) ToClient() ClientPassage {
	return ClientPassage{
		ID:        p.ID,
		BookID:    p.BookID,
		BookTitle: p.BookTitle,
		Score:     p.Score,
		Preview:   p.Preview,
		Truncated: p.FullText != p.Preview,
	}
}

func storedFromCandidate(c retrieval.Candidate) StoredPassage {
	return StoredPassage{
		ID:        uuid.NewString(),
		BookID:    c.BookID,
		BookTitle: c.BookTitle,
		Score:     c.Score,
		Preview:   c.Preview,
		FullText:  c.FullText,
	}
}

func marshalPassages(passages []StoredPassage) (string, error) {
	raw, err := json.Marshal(passages)
	if err != nil {
		return "", WrapError(err, "failed to marshal passages")
	}
	return string(raw), nil
}

func unmarshalPassages(raw string) ([]StoredPassage, error) {
	if raw == "" {
		return nil, nil
	}
	var passages []StoredPassage
	if err := json.Unmarshal([]byte(raw), &passages); err != nil {
		return nil, WrapError(err, "failed to unmarshal passages")
	}
	return passages, nil
}
