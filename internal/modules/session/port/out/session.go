package out

import (
	"context"

	"niamverse/internal/modules/session/domain"
	userstatedto "niamverse/internal/modules/userstate/dto"
)

// RatingSink receives submitted ratings. Nothing reads them back.
type RatingSink interface {
	Emit(ctx context.Context, rating domain.Rating) error
}

// Launcher shows an external resource (a game link or an embedded URL).
type Launcher interface {
	Open(ctx context.Context, target string) error
	Stop(ctx context.Context) error
}

type RecentRecorder interface {
	RecordRecent(ctx context.Context, gameID int) (userstatedto.RecordRecentOutput, error)
}
