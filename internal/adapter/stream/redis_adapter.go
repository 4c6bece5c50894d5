package stream

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rl1809/musicstore/internal/core/domain"
)

const (
	publishedKeyPrefix = "feed:tx:"
	publishedKeyTTL    = 24 * time.Hour
)

// Claims the transaction key and appends to the stream in one step, so a
// replayed event never lands twice.
var publishScript = redis.NewScript(`
local claimed = redis.call('SET', KEYS[1], 1, 'NX', 'EX', ARGV[1])
if not claimed then
	return 0
end

redis.call('XADD', KEYS[2], 'MAXLEN', '~', ARGV[2], '*',
	'tx_id', ARGV[3],
	'sid', ARGV[4],
	'kind', ARGV[5],
	'copies', ARGV[6],
	'created_at', ARGV[7])
return 1
`)

type RedisAdapter struct {
	client *redis.Client
	stream string
	maxLen int64
}

func NewRedisAdapter(client *redis.Client, stream string, maxLen int64) *RedisAdapter {
	return &RedisAdapter{client: client, stream: stream, maxLen: maxLen}
}

func (r *RedisAdapter) Publish(ctx context.Context, event domain.TransactionEvent) (bool, error) {
	tx := event.Transaction
	keys := []string{publishedKeyPrefix + tx.ID, r.stream}

	result, err := publishScript.Run(ctx, r.client, keys,
		int(publishedKeyTTL.Seconds()),
		r.maxLen,
		tx.ID,
		event.SID,
		string(tx.Kind),
		strconv.Itoa(tx.Copies),
		tx.CreatedAt.UTC().Format(time.RFC3339Nano),
	).Int()
	if err != nil {
		return false, fmt.Errorf("publish transaction %s: %w", tx.ID, err)
	}

	return result == 1, nil
}

func (r *RedisAdapter) StreamLength(ctx context.Context) (int64, error) {
	return r.client.XLen(ctx, r.stream).Result()
}
