package usecase

import (
	"context"

	"niamverse/internal/modules/userstate/domain"
	"niamverse/internal/modules/userstate/dto"
	userstatein "niamverse/internal/modules/userstate/port/in"
	"niamverse/internal/modules/userstate/service"
)

type Interactor struct {
	svc *service.StateService
}

func NewInteractor(svc *service.StateService) userstatein.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Snapshot(ctx context.Context) (dto.StateOutput, error) {
	return toOutput(i.svc.Snapshot(ctx)), nil
}

func (i *Interactor) ToggleFavorite(ctx context.Context, gameID int) (dto.ToggleFavoriteOutput, error) {
	favorite, state := i.svc.ToggleFavorite(ctx, gameID)
	return dto.ToggleFavoriteOutput{GameID: gameID, Favorite: favorite, FavoriteCount: len(state.Favorites)}, nil
}

func (i *Interactor) RecordRecent(ctx context.Context, gameID int) (dto.RecordRecentOutput, error) {
	added, state := i.svc.RecordRecent(ctx, gameID)
	return dto.RecordRecentOutput{GameID: gameID, Added: added, Recents: state.Recents}, nil
}

func (i *Interactor) SetTheme(ctx context.Context, name string) ([]dto.ThemeOutput, error) {
	state, err := i.svc.SetTheme(ctx, name)
	if err != nil {
		return nil, err
	}
	return themeOptions(state.Theme), nil
}

func (i *Interactor) Themes(ctx context.Context) ([]dto.ThemeOutput, error) {
	return themeOptions(i.svc.Snapshot(ctx).Theme), nil
}

// themeOptions marks exactly the active theme, mirroring the settings panel.
func themeOptions(active string) []dto.ThemeOutput {
	out := make([]dto.ThemeOutput, 0, len(domain.Themes))
	for _, name := range domain.Themes {
		out = append(out, dto.ThemeOutput{Name: name, Active: name == active})
	}
	return out
}

func toOutput(state domain.State) dto.StateOutput {
	return dto.StateOutput{Favorites: state.Favorites, Recents: state.Recents, Theme: state.Theme}
}
