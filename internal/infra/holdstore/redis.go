package holdstore

import (
	"context"
	"encoding/json"
	"time"

	"barberslot/internal/domain/hold"
	"barberslot/internal/domain/schedule"
	"barberslot/internal/infra"
	"barberslot/internal/pkg/clock"
	"barberslot/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps holds in a per-barber hash so the check-and-create
// runs as one Lua script server-side, which keeps Create atomic across
// application instances. An index key per hold answers Release without
// knowing the barber.
type RedisStore struct {
	client *redis.Client
	clock  clock.Clock
}

func NewRedisStore(client *redis.Client, clk clock.Clock) shared.HoldStore {
	return &RedisStore{client: client, clock: clk}
}

type redisHold struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	ServiceID string `json:"service_id"`
	Start     int64  `json:"start"`
	End       int64  `json:"end"`
	ExpiresAt int64  `json:"expires_at"`
}

func barberKey(barberID uuid.UUID) string { return "holds:" + barberID.String() }
func indexKey(holdID uuid.UUID) string    { return "holdidx:" + holdID.String() }

// createScript walks the barber's holds, drops expired entries, rejects
// the new hold when its buffered window collides with a live one, and
// otherwise stores it, all in one atomic evaluation.
var createScript = redis.NewScript(`
local key = KEYS[1]
local id = ARGV[1]
local payload = ARGV[2]
local now = tonumber(ARGV[3])
local start = tonumber(ARGV[4])
local finish = tonumber(ARGV[5])
local buffer = tonumber(ARGV[6])

local all = redis.call('HGETALL', key)
for i = 1, #all, 2 do
	local h = cjson.decode(all[i + 1])
	if h.expires_at <= now then
		redis.call('HDEL', key, all[i])
	elseif (start - buffer) < (h['end'] + buffer) and (h.start - buffer) < (finish + buffer) then
		return 0
	end
end

redis.call('HSET', key, id, payload)
return 1
`)

func (s *RedisStore) Create(ctx context.Context, h hold.Hold) error {
	payload, err := json.Marshal(redisHold{
		ID:        h.ID.String(),
		UserID:    h.UserID.String(),
		ServiceID: h.ServiceID.String(),
		Start:     h.Start.Unix(),
		End:       h.End.Unix(),
		ExpiresAt: h.ExpiresAt.Unix(),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to marshal hold", err)
	}

	ok, err := createScript.Run(ctx, s.client,
		[]string{barberKey(h.BarberID)},
		h.ID.String(), payload,
		s.clock.Now().Unix(), h.Start.Unix(), h.End.Unix(),
		int64(schedule.BookingBuffer.Seconds()),
	).Int()
	if err != nil {
		return infra.WrapRepoErr("failed to create hold", err)
	}
	if ok == 0 {
		return infra.NewRepoErr("window already held", infra.KindConflict)
	}

	// The index only needs to outlive the hold itself.
	ttl := h.ExpiresAt.Sub(s.clock.Now()) + time.Minute
	if err := s.client.Set(ctx, indexKey(h.ID), h.BarberID.String(), ttl).Err(); err != nil {
		return infra.WrapRepoErr("failed to index hold", err)
	}
	return nil
}

func (s *RedisStore) Release(ctx context.Context, holdID, userID uuid.UUID) error {
	barberRaw, err := s.client.Get(ctx, indexKey(holdID)).Result()
	if err != nil {
		if err == redis.Nil {
			return infra.NewRepoErr("hold not found", infra.KindNotFound)
		}
		return infra.WrapRepoErr("failed to look up hold", err)
	}
	barberID, err := uuid.Parse(barberRaw)
	if err != nil {
		return infra.WrapRepoErr("corrupt hold index", err)
	}

	raw, err := s.client.HGet(ctx, barberKey(barberID), holdID.String()).Result()
	if err != nil {
		if err == redis.Nil {
			return infra.NewRepoErr("hold not found", infra.KindNotFound)
		}
		return infra.WrapRepoErr("failed to load hold", err)
	}

	var rh redisHold
	if err := json.Unmarshal([]byte(raw), &rh); err != nil {
		return infra.WrapRepoErr("corrupt hold payload", err)
	}
	if rh.ExpiresAt <= s.clock.Now().Unix() {
		return infra.NewRepoErr("hold not found", infra.KindNotFound)
	}
	if rh.UserID != userID.String() {
		return infra.NewRepoErr("hold owned by another user", infra.KindForbidden)
	}

	pipe := s.client.TxPipeline()
	pipe.HDel(ctx, barberKey(barberID), holdID.String())
	pipe.Del(ctx, indexKey(holdID))
	if _, err := pipe.Exec(ctx); err != nil {
		return infra.WrapRepoErr("failed to release hold", err)
	}
	return nil
}

func (s *RedisStore) ListActive(ctx context.Context, barberID uuid.UUID, from, to time.Time) ([]hold.Hold, error) {
	all, err := s.client.HGetAll(ctx, barberKey(barberID)).Result()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list holds", err)
	}

	now := s.clock.Now().Unix()
	var out []hold.Hold
	for _, raw := range all {
		var rh redisHold
		if err := json.Unmarshal([]byte(raw), &rh); err != nil {
			continue
		}
		if rh.ExpiresAt <= now {
			continue
		}
		if rh.Start < to.Unix() && from.Unix() < rh.End {
			decoded, err := rh.toDomain(barberID)
			if err != nil {
				continue
			}
			out = append(out, decoded)
		}
	}
	return out, nil
}

func (s *RedisStore) Sweep(ctx context.Context) (int, error) {
	now := s.clock.Now().Unix()
	removed := 0

	iter := s.client.Scan(ctx, 0, "holds:*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		all, err := s.client.HGetAll(ctx, key).Result()
		if err != nil {
			return removed, infra.WrapRepoErr("failed to scan holds", err)
		}
		for field, raw := range all {
			var rh redisHold
			if err := json.Unmarshal([]byte(raw), &rh); err != nil || rh.ExpiresAt <= now {
				if err := s.client.HDel(ctx, key, field).Err(); err == nil {
					removed++
				}
			}
		}
	}
	if err := iter.Err(); err != nil {
		return removed, infra.WrapRepoErr("failed to iterate hold keys", err)
	}
	return removed, nil
}

func (rh redisHold) toDomain(barberID uuid.UUID) (hold.Hold, error) {
	id, err := uuid.Parse(rh.ID)
	if err != nil {
		return hold.Hold{}, err
	}
	userID, err := uuid.Parse(rh.UserID)
	if err != nil {
		return hold.Hold{}, err
	}
	serviceID, err := uuid.Parse(rh.ServiceID)
	if err != nil {
		return hold.Hold{}, err
	}
	return hold.Hold{
		ID:        id,
		UserID:    userID,
		BarberID:  barberID,
		ServiceID: serviceID,
		Start:     time.Unix(rh.Start, 0),
		End:       time.Unix(rh.End, 0),
		ExpiresAt: time.Unix(rh.ExpiresAt, 0),
	}, nil
}
