package clients

import "context"

// Store provides the full client list. Implementations are read-per-request;
// nothing in the send pipeline caches the list.
type Store interface {
	Load(ctx context.Context) ([]Client, error)
}
