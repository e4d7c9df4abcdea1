package redis

import (
	"context"
	"fmt"

	"github.com/upstash/redis-go/internal/format"
	"github.com/upstash/redis-go/internal/protocol"
)

// Pipeline queues commands and sends them in a single request. A plain
// pipeline batches for round-trip savings without atomicity; a transaction
// pipeline (TxPipeline) runs the batch atomically on the server.
//
// A Pipeline is not safe for concurrent use. Queue from one goroutine,
// then Exec.
type Pipeline struct {
	client        *Client
	transactional bool
	cmds          []protocol.Command
}

// Pipeline returns an empty command batch.
func (c *Client) Pipeline() *Pipeline {
	return &Pipeline{client: c}
}

// TxPipeline returns an empty atomic command batch.
func (c *Client) TxPipeline() *Pipeline {
	return &Pipeline{client: c, transactional: true}
}

// Do queues one command. The reply is reshaped on Exec exactly as the
// single-command form would reshape it.
func (p *Pipeline) Do(args ...any) *Pipeline {
	p.cmds = append(p.cmds, protocol.Command(args))
	return p
}

// Len reports the number of queued commands.
func (p *Pipeline) Len() int {
	return len(p.cmds)
}

// Discard drops all queued commands.
func (p *Pipeline) Discard() {
	p.cmds = nil
}

// Exec sends the queued commands and returns one reshaped result per
// command, in queue order. The queue is reset whether or not Exec
// succeeds. The first command the server rejects fails the whole call with
// an error naming that command's index.
func (p *Pipeline) Exec(ctx context.Context) ([]any, error) {
	cmds := p.cmds
	p.cmds = nil
	if len(cmds) == 0 {
		return nil, nil
	}

	raw, err := p.client.exec.ExecutePipeline(ctx, cmds, p.transactional)
	if err != nil {
		return nil, err
	}

	out := make([]any, len(raw))
	for i, res := range raw {
		shaped, err := format.Apply(cmds[i], res)
		if err != nil {
			return nil, fmt.Errorf("pipeline command %d: %w", i, err)
		}
		out[i] = shaped
	}
	return out, nil
}
