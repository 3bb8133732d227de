package intelligence

import "context"

// ReplySource produces the counterpart side of a chat exchange. The default
// implementation draws from a fixed pool; the Gemini-backed one generates a
// contextual answer. Both are interchangeable from the session's point of
// view.
type ReplySource interface {
	Reply(ctx context.Context, entityID, prompt string) (string, error)
}
