package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
)

// StartChangeConsumer connects to RabbitMQ, declares the events.changed
// queue and consumes it.  Each notification triggers the same path a
// manual refresh would: the catalog response cache is flushed so the next
// read hits the store, and the change is appended to logs/changes.log.
// The function runs a reconnect loop with backoff and keeps the server
// operating through broker outages; rdb may be nil when redis is down.
func StartChangeConsumer(rdb *redis.Client, cachePrefix string) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(brokerURL())
		if err != nil {
			log.Printf("change-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		if err := consumeLoop(conn, rdb, cachePrefix); err != nil {
			log.Printf("change-consumer: consume loop ended: %v; reconnecting", err)
			time.Sleep(2 * time.Second)
		}
	}
}

func consumeLoop(conn *amqp.Connection, rdb *redis.Client, cachePrefix string) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Printf("change-consumer: set QoS failed: %v", err)
	}
	if _, err := ch.QueueDeclare(ChangedQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(ChangedQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := handleMessage(d.Body, rdb, cachePrefix); err != nil {
			log.Printf("change-consumer: handle message failed: %v", err)
			_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

func handleMessage(body []byte, rdb *redis.Client, cachePrefix string) error {
	var msg EventChangedMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}

	invalidateCache(rdb, cachePrefix)

	if err := os.MkdirAll("logs", 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	fpath := filepath.Join("logs", "changes.log")
	f, err := os.OpenFile(fpath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	line := fmt.Sprintf("[%s] %s %s | event_id=%d | actor_id=%d | msg=%s\n",
		msg.OccurredAt, msg.Entity, msg.Action, msg.EventID, msg.ActorID, msg.MessageID)
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

// invalidateCache drops every cached catalog response so consumers
// re-fetch.  Cache loss is harmless, so redis errors are only logged.
func invalidateCache(rdb *redis.Client, prefix string) {
	if rdb == nil || prefix == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	iter := rdb.Scan(ctx, 0, prefix+":*", 100).Iterator()
	for iter.Next(ctx) {
		if err := rdb.Del(ctx, iter.Val()).Err(); err != nil {
			log.Printf("change-consumer: cache del failed: %v", err)
			return
		}
	}
	if err := iter.Err(); err != nil {
		log.Printf("change-consumer: cache scan failed: %v", err)
	}
}
