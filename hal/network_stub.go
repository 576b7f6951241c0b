package hal

import "context"

type nullNetwork struct{}

func (nullNetwork) Connect(ctx context.Context, creds Credentials) error {
	_ = ctx
	_ = creds
	return ErrNotImplemented
}

func (nullNetwork) SyncClock(ctx context.Context) error {
	_ = ctx
	return ErrNotImplemented
}
