package publishers

import "context"

// Publisher delivers article events to one sink. A Fanout runs sinks side by
// side, so Publish must not touch state shared with other sinks.
type Publisher interface {
	// ID is the entry id from the publishers file.
	ID() string
	// Type is one of the Type* constants.
	Type() string
	Publish(ctx context.Context, evt Event) error
	Close() error
}
