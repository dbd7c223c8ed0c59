package memory

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/eleven-am/aeye/internal/shared"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultSessionTTL = 24 * time.Hour
	usageTTL          = 30 * 24 * time.Hour
)

// SessionStore tracks in-flight recording sessions and per-day usage
// counters in redis.
type SessionStore struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewSessionStore(redisClient *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionStore{
		redis: redisClient,
		ttl:   ttl,
	}
}

func (s *SessionStore) Create(ctx context.Context) (*ActiveSession, error) {
	sess := &ActiveSession{
		ID:        uuid.NewString(),
		StartedAt: time.Now().UTC(),
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return nil, err
	}

	if err := s.redis.Set(ctx, sess.RedisKey(), data, s.ttl).Err(); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *SessionStore) Get(ctx context.Context, id string) (*ActiveSession, error) {
	data, err := s.redis.Get(ctx, "interaction:session:"+id).Bytes()
	if err == redis.Nil {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var sess ActiveSession
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// Pop claims a session for finalization. A second stop on the same ID
// fails with not-found.
func (s *SessionStore) Pop(ctx context.Context, id string) (*ActiveSession, error) {
	sess, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.redis.Del(ctx, sess.RedisKey()).Err(); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *SessionStore) ActiveCount(ctx context.Context) (int, error) {
	keys, err := s.redis.Keys(ctx, "interaction:session:*").Result()
	if err != nil {
		return 0, err
	}
	return len(keys), nil
}

func (s *SessionStore) IncrementUsage(ctx context.Context, field string, value int64) error {
	key := UsageRedisKey(time.Now().UTC().Format("2006-01-02"))

	pipe := s.redis.Pipeline()
	pipe.HIncrBy(ctx, key, field, value)
	pipe.Expire(ctx, key, usageTTL)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *SessionStore) IncrementSessions(ctx context.Context) error {
	return s.IncrementUsage(ctx, "sessions", 1)
}

func (s *SessionStore) IncrementInteractions(ctx context.Context) error {
	return s.IncrementUsage(ctx, "interactions", 1)
}

func (s *SessionStore) IncrementAudioSaved(ctx context.Context) error {
	return s.IncrementUsage(ctx, "audio_saved", 1)
}

func (s *SessionStore) GetUsage(ctx context.Context, days int) ([]*UsageStats, error) {
	now := time.Now().UTC()
	var stats []*UsageStats

	for i := 0; i < days; i++ {
		t := now.AddDate(0, 0, -i)
		date := t.Format("2006-01-02")

		data, err := s.redis.HGetAll(ctx, UsageRedisKey(date)).Result()
		if err != nil || len(data) == 0 {
			continue
		}

		u := &UsageStats{Date: date}
		if v, ok := data["sessions"]; ok {
			u.Sessions, _ = strconv.ParseInt(v, 10, 64)
		}
		if v, ok := data["interactions"]; ok {
			u.Interactions, _ = strconv.ParseInt(v, 10, 64)
		}
		if v, ok := data["audio_saved"]; ok {
			u.AudioSaved, _ = strconv.ParseInt(v, 10, 64)
		}

		stats = append(stats, u)
	}

	return stats, nil
}

func (s *SessionStore) TodayUsage(ctx context.Context) (*UsageStats, error) {
	stats, err := s.GetUsage(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(stats) == 0 {
		return &UsageStats{Date: time.Now().UTC().Format("2006-01-02")}, nil
	}
	return stats[0], nil
}
