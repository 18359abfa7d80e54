package health

import "context"

// SourcePinger checks listing source availability.
type SourcePinger interface {
	Ping(ctx context.Context) error
}

// CachePinger checks result cache availability.
type CachePinger interface {
	Ping(ctx context.Context) error
}
