package detect

import (
	"context"
	"log"

	"github.com/playmatatu/arena/internal/frame"
	"github.com/redis/go-redis/v9"
)

// Subscribe listens on a Redis channel for detector payloads and writes
// each parsed frame into slot. It is the slot's only writer. The listener
// stops when ctx is cancelled.
func Subscribe(ctx context.Context, rdb *redis.Client, channel string, slot *frame.Slot[Detections]) {
	if rdb == nil {
		log.Println("[DETECT] Redis client not set; detection subscriber not started")
		return
	}

	pubsub := rdb.Subscribe(ctx, channel)
	ch := pubsub.Channel()
	go func() {
		defer pubsub.Close()
		log.Printf("[DETECT] subscribed to %s", channel)
		for {
			select {
			case <-ctx.Done():
				log.Println("[DETECT] subscriber stopping")
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				d, err := Parse([]byte(msg.Payload))
				if err != nil {
					log.Printf("[DETECT] invalid payload: %v", err)
					continue
				}
				slot.Put(d)
			}
		}
	}()
}
