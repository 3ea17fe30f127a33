package slot

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/KirkDiggler/skilltree-api/internal/errors"
	"github.com/KirkDiggler/skilltree-api/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/skilltree-api/internal/redis"
)

const (
	// Key pattern: skilltree:slot:{name}
	slotKeyPrefix = "skilltree:slot:"
	// Set of every slot name
	slotIndexKey = "skilltree:slots"

	fieldPayload = "payload"
	fieldFormat  = "format"
	fieldSavedAt = "saved_at"
)

// RedisConfig holds the configuration for the Redis repository
type RedisConfig struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *RedisConfig) Validate() error {
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	if c.Clock == nil {
		return errors.InvalidArgument("clock is required")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// NewRedisRepository creates a slot repository backed by Redis hashes
func NewRedisRepository(cfg *RedisConfig) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
	}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if input.Name == "" {
		return nil, errors.InvalidArgument(errNameEmpty)
	}
	if len(input.Payload) == 0 {
		return nil, errors.InvalidArgument(errPayloadEmpty)
	}

	slot := &Slot{
		Name:    input.Name,
		Payload: append([]byte{}, input.Payload...),
		Format:  input.Format,
		SavedAt: r.clock.Now().UTC(),
	}

	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, r.buildKey(input.Name), map[string]any{
		fieldPayload: slot.Payload,
		fieldFormat:  slot.Format,
		fieldSavedAt: slot.SavedAt.Format(time.RFC3339Nano),
	})
	pipe.SAdd(ctx, slotIndexKey, input.Name)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to save slot %s", input.Name)
	}

	slog.DebugContext(ctx, "Slot saved", "slot", input.Name, "bytes", len(slot.Payload))
	return &SaveOutput{Slot: slot}, nil
}

func (r *redisRepository) Load(ctx context.Context, input LoadInput) (*LoadOutput, error) {
	if input.Name == "" {
		return nil, errors.InvalidArgument(errNameEmpty)
	}

	fields, err := r.client.HGetAll(ctx, r.buildKey(input.Name)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load slot %s", input.Name)
	}
	if len(fields) == 0 {
		return &LoadOutput{Found: false}, nil
	}

	slot := &Slot{
		Name:    input.Name,
		Payload: []byte(fields[fieldPayload]),
		Format:  fields[fieldFormat],
	}
	if raw := fields[fieldSavedAt]; raw != "" {
		savedAt, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeDataLoss, "slot has an invalid save time").
				WithMeta("slot", input.Name)
		}
		slot.SavedAt = savedAt
	}

	return &LoadOutput{Slot: slot, Found: true}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.Name == "" {
		return nil, errors.InvalidArgument(errNameEmpty)
	}

	pipe := r.client.TxPipeline()
	del := pipe.Del(ctx, r.buildKey(input.Name))
	pipe.SRem(ctx, slotIndexKey, input.Name)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete slot %s", input.Name)
	}

	return &DeleteOutput{Deleted: del.Val() > 0}, nil
}

func (r *redisRepository) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	names, err := r.client.SMembers(ctx, slotIndexKey).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list slots")
	}

	sort.Strings(names)
	return &ListOutput{Names: names}, nil
}

func (r *redisRepository) buildKey(name string) string {
	return slotKeyPrefix + name
}
