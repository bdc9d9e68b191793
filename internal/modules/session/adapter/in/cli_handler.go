package in

import (
	"context"
	"fmt"

	"niamverse/internal/modules/session/domain"
	"niamverse/internal/modules/session/dto"
	sessionin "niamverse/internal/modules/session/port/in"
	apperrors "niamverse/internal/platform/errors"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Play(ctx context.Context, gameID int, launch bool) (dto.OpenOutput, error) {
	return h.usecase.OpenEntry(ctx, dto.OpenInput{GameID: gameID, Launch: launch})
}

// Rate opens the game, sets the stars and submits in one go, since a CLI
// invocation has no session to carry a draft between commands. Stars are
// checked before the game is opened so a rejected rating leaves recents alone.
func (h CLIHandler) Rate(ctx context.Context, gameID, stars int, notes string) (dto.SubmitOutput, error) {
	switch {
	case stars == 0:
		return dto.SubmitOutput{}, apperrors.ErrRatingRequired
	case stars < domain.MinStars || stars > domain.MaxStars:
		return dto.SubmitOutput{}, fmt.Errorf("%w: rating must be between %d and %d", apperrors.ErrInvalidInput, domain.MinStars, domain.MaxStars)
	}
	if _, err := h.usecase.OpenEntry(ctx, dto.OpenInput{GameID: gameID}); err != nil {
		return dto.SubmitOutput{}, err
	}
	if _, err := h.usecase.SetRating(ctx, stars); err != nil {
		return dto.SubmitOutput{}, err
	}
	return h.usecase.SubmitRating(ctx, notes)
}

func (h CLIHandler) Share(ctx context.Context, gameID int) (dto.ShareOutput, error) {
	if _, err := h.usecase.OpenEntry(ctx, dto.OpenInput{GameID: gameID}); err != nil {
		return dto.ShareOutput{}, err
	}
	return h.usecase.Share(ctx)
}

func (h CLIHandler) Cloak(ctx context.Context, title, icon string) (dto.CloakOutput, error) {
	return h.usecase.ApplyCloak(ctx, title, icon)
}

func (h CLIHandler) Embed(ctx context.Context, url string) (dto.EmbedOutput, error) {
	return h.usecase.Embed(ctx, url)
}
