package stream

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestHubBroadcast(t *testing.T) {
	hub := NewHub(nil)
	client := hub.Register(FeedTopic)
	defer hub.Unregister(client)

	payload := []byte("hello")
	hub.Broadcast(FeedTopic, payload)

	select {
	case msg := <-client.Send:
		if string(msg) != "hello" {
			t.Fatalf("unexpected message")
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatalf("timeout waiting for message")
	}
}

func TestHubHelpers(t *testing.T) {
	ch := redisChannel("abc")
	if ch != "waypoints:abc:events" {
		t.Fatalf("unexpected channel %q", ch)
	}
	if topicFromChannel(ch) != "abc" {
		t.Fatalf("unexpected topic")
	}
	if topicFromChannel("bad") != "" {
		t.Fatalf("expected empty topic")
	}
}

func TestUnregisterCloses(t *testing.T) {
	hub := NewHub(nil)
	client := hub.Register("other-topic")
	hub.Unregister(client)
	_, ok := <-client.Send
	if ok {
		t.Fatalf("expected channel closed")
	}
}

func TestHubRedisBroadcastAndSubscribe(t *testing.T) {
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer client.Close()

	hub := NewHub(client)
	ws := hub.Register(FeedTopic)
	defer hub.Unregister(ws)

	hub.Broadcast(FeedTopic, []byte("ping"))

	select {
	case msg := <-ws.Send:
		if string(msg) != "ping" {
			t.Fatalf("unexpected message")
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatalf("timeout waiting for broadcast")
	}

	// a publish from another process reaches local subscribers via redis
	time.Sleep(20 * time.Millisecond)
	if err := client.Publish(context.Background(), "waypoints:feed:events", "pong").Err(); err != nil {
		t.Fatalf("publish error: %v", err)
	}

	// the broadcast above also echoes back over redis, so drain until pong
	deadline := time.After(500 * time.Millisecond)
	for {
		select {
		case msg := <-ws.Send:
			if string(msg) == "pong" {
				return
			}
		case <-deadline:
			t.Fatalf("timeout waiting for redis message")
		}
	}
}

func TestHubRedisPublishError(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	server.Close()
	defer client.Close()

	hub := NewHub(client)
	clientNode := hub.Register("dead-topic")
	defer hub.Unregister(clientNode)

	hub.Broadcast("dead-topic", []byte("ping"))
}
