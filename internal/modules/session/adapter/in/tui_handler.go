package in

import (
	"context"

	"niamverse/internal/modules/session/dto"
	sessionin "niamverse/internal/modules/session/port/in"
)

type TUIHandler struct {
	usecase sessionin.Usecase
}

func NewTUIHandler(usecase sessionin.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) Open(ctx context.Context, gameID int, launch bool) (dto.OpenOutput, error) {
	return h.usecase.OpenEntry(ctx, dto.OpenInput{GameID: gameID, Launch: launch})
}

func (h TUIHandler) Close(ctx context.Context) (dto.CloseOutput, error) {
	return h.usecase.CloseEntry(ctx)
}

func (h TUIHandler) Current(ctx context.Context) (dto.EntryOutput, error) {
	return h.usecase.Current(ctx)
}

func (h TUIHandler) SetRating(ctx context.Context, stars int) (dto.EntryOutput, error) {
	return h.usecase.SetRating(ctx, stars)
}

func (h TUIHandler) SetNotes(ctx context.Context, notes string) (dto.EntryOutput, error) {
	return h.usecase.SetNotes(ctx, notes)
}

func (h TUIHandler) Submit(ctx context.Context, notes string) (dto.SubmitOutput, error) {
	return h.usecase.SubmitRating(ctx, notes)
}

func (h TUIHandler) Share(ctx context.Context) (dto.ShareOutput, error) {
	return h.usecase.Share(ctx)
}

func (h TUIHandler) Cloak(ctx context.Context) (dto.CloakOutput, error) {
	return h.usecase.Cloak(ctx)
}

func (h TUIHandler) ApplyCloak(ctx context.Context, title, icon string) (dto.CloakOutput, error) {
	return h.usecase.ApplyCloak(ctx, title, icon)
}

func (h TUIHandler) Embed(ctx context.Context, url string) (dto.EmbedOutput, error) {
	return h.usecase.Embed(ctx, url)
}
