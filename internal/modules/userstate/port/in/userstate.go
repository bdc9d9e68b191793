package in

import (
	"context"

	"niamverse/internal/modules/userstate/dto"
)

type Usecase interface {
	Snapshot(ctx context.Context) (dto.StateOutput, error)
	ToggleFavorite(ctx context.Context, gameID int) (dto.ToggleFavoriteOutput, error)
	RecordRecent(ctx context.Context, gameID int) (dto.RecordRecentOutput, error)
	SetTheme(ctx context.Context, name string) ([]dto.ThemeOutput, error)
	Themes(ctx context.Context) ([]dto.ThemeOutput, error)
}
