package service

import (
	"context"

	"versefinder/internal/contextutil"
)

// FullPassage returns a passage previously returned in an answer. The
// lookup scans recent answers rather than trusting a client-supplied
// reference. A passage found in another user's conversation yields
// ErrForbidden.
func (s *askService) FullPassage(ctx context.Context, req FullPassageRequest) (*StoredPassage, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if req.PassageID == "" {
		return nil, &ValidationError{Field: "passageId", Message: "cannot be empty"}
	}

	turns, err := s.convs.RecentAssistantTurns(ctx, s.cfg.LedgerScanDepth)
	if err != nil {
		return nil, WrapError(err, "failed to load recent answers")
	}

	for _, turn := range turns {
		passages, err := unmarshalPassages(turn.Passages)
		if err != nil {
			logger.WarnContext(ctx, "skipping malformed stored passages", "turn_id", turn.ID, "error", err)
			continue
		}
		for _, p := range passages {
			if p.ID != req.PassageID {
				continue
			}
			if turn.OwnerID != req.UserID {
				logger.WarnContext(ctx, "passage belongs to another user", "passage_id", req.PassageID)
				return nil, ErrForbidden
			}
			return &p, nil
		}
	}

	return nil, ErrNotFound
}
