package ws

import (
	"context"
	"log"

	"github.com/playmatatu/arena/internal/snapshot"
	"github.com/redis/go-redis/v9"
)

// StartSnapshotRelay forwards msgpack snapshots published on channel by a
// simulation process to this hub's renderers. It lets extra API replicas
// serve websockets without running a world of their own.
func StartSnapshotRelay(ctx context.Context, rdb *redis.Client, channel string, hub *Hub) {
	if rdb == nil {
		log.Println("[WS] Redis client not set; snapshot relay not started")
		return
	}

	pubsub := rdb.Subscribe(ctx, channel)
	ch := pubsub.Channel()
	go func() {
		defer pubsub.Close()
		log.Printf("[WS] relaying snapshots from %s", channel)
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				s, err := snapshot.Decode([]byte(msg.Payload))
				if err != nil {
					log.Printf("[WS] invalid snapshot payload: %v", err)
					continue
				}
				if err := hub.Publish(ctx, s); err != nil {
					log.Printf("[WS] relay tick %d: %v", s.Tick, err)
				}
			}
		}
	}()
}
