package out

import (
	"context"

	"niamverse/internal/modules/catalog/domain"
)

type Source interface {
	Location() string
	Fetch(ctx context.Context) (domain.RawDocument, error)
}

type DocumentDecoder interface {
	Decode(raw domain.RawDocument) (domain.Document, error)
}

// Watcher calls onChange whenever the underlying catalog may have changed.
// The returned stop function blocks until the watch goroutine has exited.
type Watcher interface {
	Watch(ctx context.Context, onChange func()) (stop func(), err error)
}
