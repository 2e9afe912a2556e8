package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/capitolstream/rollcall/resolver"
	"github.com/nats-io/nats.go"
)

// DefaultSubjectPrefix is the subject prefix resolution results are
// published under. Resolved results go to <prefix>.result, unresolved
// votes to <prefix>.unresolved.
const DefaultSubjectPrefix = "rollcall.resolution"

// Publisher announces resolution results on NATS subjects.
type Publisher struct {
	nc     *nats.Conn
	prefix string
	logger *slog.Logger
}

// NewPublisher creates a publisher under the given subject prefix. An
// empty prefix uses DefaultSubjectPrefix.
func NewPublisher(nc *nats.Conn, prefix string, logger *slog.Logger) *Publisher {
	if prefix == "" {
		prefix = DefaultSubjectPrefix
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{
		nc:     nc,
		prefix: prefix,
		logger: logger.With("component", "publisher"),
	}
}

// subjectFor picks the subject based on whether the vote resolved.
func (p *Publisher) subjectFor(res *resolver.Result) string {
	if res.Resolved() {
		return p.prefix + ".result"
	}
	return p.prefix + ".unresolved"
}

// Publish sends a single resolution result.
// NATS publish is synchronous and doesn't support context cancellation
// directly, so the context is checked before publishing.
func (p *Publisher) Publish(ctx context.Context, res *resolver.Result) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context cancelled before publish: %w", err)
	}

	data, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	subject := p.subjectFor(res)
	if err := p.nc.Publish(subject, data); err != nil {
		return fmt.Errorf("publish result %s: %w", res.VoteKey, err)
	}

	p.logger.Debug("Published resolution result",
		"vote_key", res.VoteKey,
		"subject", subject)
	return nil
}
