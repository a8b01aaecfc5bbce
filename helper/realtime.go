package helper

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"
)

const channelPrefix = "estate:"

// Subscriber is satisfied by *websocket.Conn.
type Subscriber interface {
	WriteMessage(messageType int, data []byte) error
}

type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

const textMessage = 1

// conn serialises writes to one subscriber across all its topics.
type conn struct {
	mu   sync.Mutex
	refs int
}

// Hub fans events out to websocket subscribers grouped by topic. With a
// Redis client, events travel through Redis so every instance sees them.
// mu only guards the maps; socket writes happen outside it.
type Hub struct {
	mu     sync.Mutex
	topics map[string]map[Subscriber]struct{}
	conns  map[Subscriber]*conn
	redis  *redis.Client
	cancel context.CancelFunc
}

func NewHub(client *redis.Client) *Hub {
	return &Hub{
		topics: make(map[string]map[Subscriber]struct{}),
		conns:  make(map[Subscriber]*conn),
		redis:  client,
	}
}

var Realtime = NewHub(nil)

func FloorPlanTopic(floorPlanId uint) string {
	return "floor-plan:" + strconv.FormatUint(uint64(floorPlanId), 10)
}

func ChatTopic(chatId string) string {
	return "chat:" + chatId
}

// Start relays Redis messages to local subscribers until Stop.
func (h *Hub) Start() {
	if h.redis == nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel
	pubsub := h.redis.PSubscribe(ctx, channelPrefix+"*")
	go func() {
		defer pubsub.Close()
		for msg := range pubsub.Channel() {
			h.deliver(strings.TrimPrefix(msg.Channel, channelPrefix), []byte(msg.Payload))
		}
	}()
	log.Println("Realtime hub relaying through Redis")
}

func (h *Hub) Stop() {
	if h.cancel != nil {
		h.cancel()
	}
}

func (h *Hub) Subscribe(topic string, s Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.topics[topic] == nil {
		h.topics[topic] = make(map[Subscriber]struct{})
	}
	if _, ok := h.topics[topic][s]; !ok {
		h.topics[topic][s] = struct{}{}
		if h.conns[s] == nil {
			h.conns[s] = &conn{}
		}
		h.conns[s].refs++
		RealtimeConnections.Inc()
	}
}

func (h *Hub) Unsubscribe(topic string, s Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.remove(topic, s)
}

func (h *Hub) remove(topic string, s Subscriber) {
	subs := h.topics[topic]
	if _, ok := subs[s]; !ok {
		return
	}
	delete(subs, s)
	RealtimeConnections.Dec()
	if len(subs) == 0 {
		delete(h.topics, topic)
	}
	if c := h.conns[s]; c != nil {
		if c.refs--; c.refs <= 0 {
			delete(h.conns, s)
		}
	}
}

// writer returns the write lock of s. A subscriber that is not registered
// gets a lock of its own.
func (h *Hub) writer(s Subscriber) *conn {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c := h.conns[s]; c != nil {
		return c
	}
	return &conn{}
}

func (c *conn) write(s Subscriber, payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return s.WriteMessage(textMessage, payload)
}

// Count returns the number of open subscriptions across all topics.
func (h *Hub) Count() int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	var n int64
	for _, subs := range h.topics {
		n += int64(len(subs))
	}
	return n
}

// Send writes one event to a single subscriber. A connection never sees two
// concurrent writers.
func (h *Hub) Send(s Subscriber, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return h.writer(s).write(s, payload)
}

func (h *Hub) Publish(ctx context.Context, topic string, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if h.redis != nil {
		return h.redis.Publish(ctx, channelPrefix+topic, payload).Err()
	}
	h.deliver(topic, payload)
	return nil
}

func (h *Hub) deliver(topic string, payload []byte) {
	type target struct {
		s Subscriber
		c *conn
	}
	h.mu.Lock()
	targets := make([]target, 0, len(h.topics[topic]))
	for s := range h.topics[topic] {
		targets = append(targets, target{s, h.conns[s]})
	}
	h.mu.Unlock()

	for _, t := range targets {
		if err := t.c.write(t.s, payload); err != nil {
			log.Printf("realtime: dropping subscriber on %s: %v", topic, err)
			h.Unsubscribe(topic, t.s)
		}
	}
}

// PublishFloorPlan sends the full apartment list of a floor plan to its
// viewers. Failures are logged; the write already succeeded.
func PublishFloorPlan(ctx context.Context, floorPlanId uint, data any) {
	if err := Realtime.Publish(ctx, FloorPlanTopic(floorPlanId), Event{Type: "floor-plan", Data: data}); err != nil {
		log.Printf("realtime: publish floor plan %d: %v", floorPlanId, err)
	}
}
