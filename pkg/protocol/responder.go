package protocol

import "context"

// Responder produces a free-text assistant reply for a user message. The
// reply is fed back through the command grammar, so implementations should
// steer the model toward phrasing the grammar recognizes.
type Responder interface {
	Respond(ctx context.Context, message string) (string, error)
}
