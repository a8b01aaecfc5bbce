package helper_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"estate_market/helper"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	mu     sync.Mutex
	frames [][]byte
	fail   bool
}

func (f *fakeConn) WriteMessage(_ int, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("broken pipe")
	}
	f.frames = append(f.frames, data)
	return nil
}

func (f *fakeConn) events(t *testing.T) []helper.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]helper.Event, 0, len(f.frames))
	for _, frame := range f.frames {
		var e helper.Event
		require.NoError(t, json.Unmarshal(frame, &e))
		out = append(out, e)
	}
	return out
}

func TestHub_PublishReachesTopicOnly(t *testing.T) {
	hub := helper.NewHub(nil)
	a, b := &fakeConn{}, &fakeConn{}
	hub.Subscribe(helper.FloorPlanTopic(1), a)
	hub.Subscribe(helper.FloorPlanTopic(2), b)
	assert.Equal(t, int64(2), hub.Count())

	require.NoError(t, hub.Publish(context.Background(), helper.FloorPlanTopic(1), helper.Event{Type: "floor-plan", Data: []string{"x"}}))

	got := a.events(t)
	require.Len(t, got, 1)
	assert.Equal(t, "floor-plan", got[0].Type)
	assert.Empty(t, b.events(t))
}

func TestHub_DropsBrokenSubscribers(t *testing.T) {
	hub := helper.NewHub(nil)
	ok, broken := &fakeConn{}, &fakeConn{fail: true}
	topic := helper.ChatTopic("community_1")
	hub.Subscribe(topic, ok)
	hub.Subscribe(topic, broken)

	require.NoError(t, hub.Publish(context.Background(), topic, helper.Event{Type: "message"}))
	assert.Equal(t, int64(1), hub.Count())
	assert.Len(t, ok.events(t), 1)

	hub.Unsubscribe(topic, ok)
	assert.Zero(t, hub.Count())
}

func TestHub_SendWritesOneSubscriber(t *testing.T) {
	hub := helper.NewHub(nil)
	conn := &fakeConn{}
	require.NoError(t, hub.Send(conn, helper.Event{Type: "history", Data: 3}))
	got := conn.events(t)
	require.Len(t, got, 1)
	assert.Equal(t, float64(3), got[0].Data)
}

type slowConn struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (s *slowConn) WriteMessage(int, []byte) error {
	s.once.Do(func() { close(s.started) })
	<-s.release
	return nil
}

func TestHub_SlowSubscriberDoesNotBlockHub(t *testing.T) {
	hub := helper.NewHub(nil)
	slow := &slowConn{started: make(chan struct{}), release: make(chan struct{})}
	defer close(slow.release)
	hub.Subscribe(helper.FloorPlanTopic(1), slow)

	go hub.Publish(context.Background(), helper.FloorPlanTopic(1), helper.Event{Type: "floor-plan"})
	<-slow.started

	done := make(chan int64)
	go func() {
		other := &fakeConn{}
		hub.Subscribe(helper.FloorPlanTopic(2), other)
		_ = hub.Publish(context.Background(), helper.FloorPlanTopic(2), helper.Event{Type: "floor-plan"})
		done <- hub.Count()
	}()

	select {
	case n := <-done:
		assert.Equal(t, int64(2), n)
	case <-time.After(2 * time.Second):
		t.Fatal("hub stalled behind a slow subscriber")
	}
}

type overlapConn struct {
	active  int32
	overlap int32
}

func (o *overlapConn) WriteMessage(int, []byte) error {
	if atomic.AddInt32(&o.active, 1) > 1 {
		atomic.StoreInt32(&o.overlap, 1)
	}
	time.Sleep(time.Millisecond)
	atomic.AddInt32(&o.active, -1)
	return nil
}

func TestHub_WritesToOneConnectionAreSerialised(t *testing.T) {
	hub := helper.NewHub(nil)
	c := &overlapConn{}
	hub.Subscribe(helper.ChatTopic("community_1"), c)
	hub.Subscribe(helper.FloorPlanTopic(1), c)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			_ = hub.Publish(context.Background(), helper.ChatTopic("community_1"), helper.Event{Type: "message"})
		}()
		go func() {
			defer wg.Done()
			_ = hub.Publish(context.Background(), helper.FloorPlanTopic(1), helper.Event{Type: "floor-plan"})
		}()
		go func() {
			defer wg.Done()
			_ = hub.Send(c, helper.Event{Type: "history"})
		}()
	}
	wg.Wait()
	assert.Zero(t, atomic.LoadInt32(&c.overlap))
}
