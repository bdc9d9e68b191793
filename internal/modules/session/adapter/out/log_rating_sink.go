package out

import (
	"context"

	"go.uber.org/zap"

	"niamverse/internal/modules/session/domain"
	sessionout "niamverse/internal/modules/session/port/out"
)

// LogRatingSink announces ratings on the application log.
type LogRatingSink struct {
	logger *zap.Logger
}

func NewLogRatingSink(logger *zap.Logger) sessionout.RatingSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogRatingSink{logger: logger.Named("ratings")}
}

func (s *LogRatingSink) Emit(_ context.Context, r domain.Rating) error {
	s.logger.Info("rating submitted",
		zap.String("rating_id", r.ID),
		zap.Int("game_id", r.GameID),
		zap.String("game", r.GameName),
		zap.Int("stars", r.Stars),
		zap.String("notes", r.Notes),
		zap.Time("submitted_at", r.SubmittedAt),
	)
	return nil
}
