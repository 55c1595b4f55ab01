package tracking

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	chunkKeyPrefix = "chunk:"
	chunkLedgerTTL = 7 * 24 * time.Hour
)

// ChunkLedger remembers chunk ids that were already absorbed so a retried
// upload is acknowledged instead of double-counted. Entries expire after a
// week, which is far beyond any client retry horizon.
type ChunkLedger struct {
	client *redis.Client
}

func NewChunkLedger(client *redis.Client) *ChunkLedger {
	return &ChunkLedger{client: client}
}

// Acquire marks chunkId as absorbed. It returns false when the chunk was seen
// before.
func (l *ChunkLedger) Acquire(ctx context.Context, chunkId string) (bool, error) {
	return l.client.SetNX(ctx, chunkKeyPrefix+chunkId, 1, chunkLedgerTTL).Result()
}

// Release forgets chunkId so a retry after a failed transaction is absorbed.
func (l *ChunkLedger) Release(ctx context.Context, chunkId string) error {
	return l.client.Del(ctx, chunkKeyPrefix+chunkId).Err()
}
