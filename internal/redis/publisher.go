package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/playmatatu/arena/internal/snapshot"
	"github.com/redis/go-redis/v9"
)

// SnapshotPublisher pushes msgpack-encoded snapshots to a pub/sub channel
// and keeps the newest one under "<channel>:latest" for late joiners.
type SnapshotPublisher struct {
	rdb     *redis.Client
	channel string
	ttl     time.Duration
}

func NewSnapshotPublisher(rdb *redis.Client, channel string) *SnapshotPublisher {
	return &SnapshotPublisher{rdb: rdb, channel: channel, ttl: time.Minute}
}

// LatestKey is where the newest snapshot is stored.
func (p *SnapshotPublisher) LatestKey() string {
	return p.channel + ":latest"
}

// Publish implements sim.Publisher.
func (p *SnapshotPublisher) Publish(ctx context.Context, s *snapshot.Snapshot) error {
	data, err := snapshot.Encode(s)
	if err != nil {
		return err
	}
	pipe := p.rdb.Pipeline()
	pipe.Set(ctx, p.LatestKey(), data, p.ttl)
	pipe.Publish(ctx, p.channel, data)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("publish snapshot tick %d: %w", s.Tick, err)
	}
	return nil
}

// Latest reads back the newest stored snapshot.
func (p *SnapshotPublisher) Latest(ctx context.Context) (*snapshot.Snapshot, error) {
	data, err := p.rdb.Get(ctx, p.LatestKey()).Bytes()
	if err != nil {
		return nil, err
	}
	return snapshot.Decode(data)
}
