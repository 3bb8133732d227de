package intelligence

import (
	"context"
	"math/rand"
	"sync"
)

// defaultReplyPool holds the canned counterpart replies used while no real
// backend is wired in.
var defaultReplyPool = []string{
	"Thank you for your message. Could you share a few more details about your matter?",
	"I understand. Let me review this and suggest the next steps.",
	"That falls within my practice area. When would you be available for a consultation?",
	"I would recommend gathering any documents related to this before we proceed.",
	"Noted. I will need to check the relevant provisions and get back to you.",
	"This is a fairly common situation; there are a couple of options we can explore.",
}

// FixedPoolReplySource picks replies deterministically-at-random from a
// fixed pool. The same seed yields the same reply sequence, which keeps the
// simulation reproducible.
type FixedPoolReplySource struct {
	mu   sync.Mutex
	pool []string
	rng  *rand.Rand
}

var _ ReplySource = (*FixedPoolReplySource)(nil)

// NewFixedPoolReplySource builds a source over the default pool.
func NewFixedPoolReplySource(seed int64) *FixedPoolReplySource {
	return &FixedPoolReplySource{
		pool: defaultReplyPool,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// NewFixedPoolReplySourceWithPool builds a source over a custom pool.
func NewFixedPoolReplySourceWithPool(seed int64, pool []string) *FixedPoolReplySource {
	return &FixedPoolReplySource{
		pool: pool,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// Pool returns the reply pool backing this source.
func (s *FixedPoolReplySource) Pool() []string {
	out := make([]string, len(s.pool))
	copy(out, s.pool)
	return out
}

func (s *FixedPoolReplySource) Reply(ctx context.Context, entityID, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.pool) == 0 {
		return "", nil
	}
	return s.pool[s.rng.Intn(len(s.pool))], nil
}
