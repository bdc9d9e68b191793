package in

import (
	"context"

	"niamverse/internal/modules/userstate/dto"
	userstatein "niamverse/internal/modules/userstate/port/in"
)

type CLIHandler struct {
	usecase userstatein.Usecase
}

func NewCLIHandler(usecase userstatein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Snapshot(ctx context.Context) (dto.StateOutput, error) {
	return h.usecase.Snapshot(ctx)
}

func (h CLIHandler) ToggleFavorite(ctx context.Context, gameID int) (dto.ToggleFavoriteOutput, error) {
	return h.usecase.ToggleFavorite(ctx, gameID)
}

func (h CLIHandler) RecordRecent(ctx context.Context, gameID int) (dto.RecordRecentOutput, error) {
	return h.usecase.RecordRecent(ctx, gameID)
}

func (h CLIHandler) SetTheme(ctx context.Context, name string) ([]dto.ThemeOutput, error) {
	return h.usecase.SetTheme(ctx, name)
}

func (h CLIHandler) Themes(ctx context.Context) ([]dto.ThemeOutput, error) {
	return h.usecase.Themes(ctx)
}
