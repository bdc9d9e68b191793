package in

import (
	"context"

	"niamverse/internal/modules/session/dto"
)

type Usecase interface {
	OpenEntry(ctx context.Context, input dto.OpenInput) (dto.OpenOutput, error)
	CloseEntry(ctx context.Context) (dto.CloseOutput, error)
	Current(ctx context.Context) (dto.EntryOutput, error)
	SetRating(ctx context.Context, stars int) (dto.EntryOutput, error)
	SetNotes(ctx context.Context, notes string) (dto.EntryOutput, error)
	SubmitRating(ctx context.Context, notes string) (dto.SubmitOutput, error)
	Share(ctx context.Context) (dto.ShareOutput, error)
	Cloak(ctx context.Context) (dto.CloakOutput, error)
	ApplyCloak(ctx context.Context, title, icon string) (dto.CloakOutput, error)
	Embed(ctx context.Context, url string) (dto.EmbedOutput, error)
}
