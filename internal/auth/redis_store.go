package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	sessionKeyPrefix = "alcuin-admin-session||"
	tokensSetKey     = "alcuin-admin-sessions"
)

// RedisStore keeps sessions in redis, so that a future multi instance
// deployment can share them. The session secret namespaces the keys:
// rotating the secret (or booting with a generated one) orphans all
// previously issued sessions, same as a MemoryStore restart would.
type RedisStore struct {
	redisClient *redis.Client
	keyPrefix   string
	setKey      string
}

func NewRedisStore(redisClient *redis.Client, sessionSecret string) *RedisStore {
	namespace := sha256.Sum256([]byte(sessionSecret))
	ns := hex.EncodeToString(namespace[:8])
	return &RedisStore{
		redisClient: redisClient,
		keyPrefix:   sessionKeyPrefix + ns + "||",
		setKey:      tokensSetKey + "||" + ns,
	}
}

func (rs *RedisStore) Get(ctx context.Context, token string) (SessionRecord, bool, error) {
	cmd := rs.redisClient.Get(ctx, rs.keyPrefix+token)
	if err := cmd.Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return SessionRecord{}, false, nil
		}
		return SessionRecord{}, false, err
	}

	issuedUnixNano, err := strconv.ParseInt(cmd.Val(), 10, 64)
	if err != nil {
		return SessionRecord{}, false, err
	}

	return SessionRecord{
		IssuedOrRefreshedAt: time.Unix(0, issuedUnixNano),
	}, true, nil
}

func (rs *RedisStore) Set(ctx context.Context, token string, record SessionRecord) error {
	issuedUnixNano := record.IssuedOrRefreshedAt.UnixNano()
	if err := rs.redisClient.Set(ctx, rs.keyPrefix+token, issuedUnixNano, 0).Err(); err != nil {
		return err
	}
	// keep a set of all tokens, for the sweep
	return rs.redisClient.SAdd(ctx, rs.setKey, token).Err()
}

func (rs *RedisStore) Delete(ctx context.Context, token string) error {
	if err := rs.redisClient.Del(ctx, rs.keyPrefix+token).Err(); err != nil {
		return err
	}
	return rs.redisClient.SRem(ctx, rs.setKey, token).Err()
}

func (rs *RedisStore) Tokens(ctx context.Context) ([]string, error) {
	cmd := rs.redisClient.SMembers(ctx, rs.setKey)
	if err := cmd.Err(); err != nil {
		return nil, err
	}
	return cmd.Val(), nil
}
