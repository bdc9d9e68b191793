package in

import (
	"context"

	"niamverse/internal/modules/catalog/dto"
)

type Usecase interface {
	Load(ctx context.Context) (dto.LoadOutput, error)
	Browse(ctx context.Context, input dto.BrowseInput) (dto.BrowseOutput, error)
	GetGame(ctx context.Context, id int) (dto.GameOutput, error)
	Categories(ctx context.Context) ([]string, error)
	Watch(ctx context.Context, onReload func(dto.LoadOutput)) (stop func(), err error)
}
