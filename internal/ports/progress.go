package ports

import "context"

type Progress interface {
	Run(ctx context.Context, label string, fn func(context.Context) error) error
}

type NoProgress struct{}

func (NoProgress) Run(ctx context.Context, _ string, fn func(context.Context) error) error {
	return fn(ctx)
}
