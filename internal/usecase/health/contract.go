package health

import "context"

// StoragePinger checks upload store availability.
type StoragePinger interface {
	Ping(ctx context.Context) error
}
