package mock

import (
	"context"

	"github.com/vsalmi/tapio"
)

var _ tapio.Asker = (*Asker)(nil)

// Asker is a mock implementation of tapio.Asker.
type Asker struct {
	AskFn func(ctx context.Context, siteKey, question string) (string, error)
}

func (a *Asker) Ask(ctx context.Context, siteKey, question string) (string, error) {
	return a.AskFn(ctx, siteKey, question)
}
