package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/tradingagent/api/internal/model"
)

type wsEvent struct {
	Type    string              `json:"type"`
	State   model.AnalysisState `json:"state"`
	Message string              `json:"message"`
	TS      string              `json:"ts"`
}

func newTestClient(buffer int) *Client {
	return &Client{Send: make(chan []byte, buffer)}
}

func recvEvent(t *testing.T, c *Client) wsEvent {
	t.Helper()
	select {
	case data, ok := <-c.Send:
		if !ok {
			t.Fatal("send channel closed")
		}
		var ev wsEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			t.Fatalf("failed to parse event: %v\npayload: %s", err, data)
		}
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
	return wsEvent{}
}

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub()
	go hub.Run()
	return hub
}

func waitForCount(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hub.ClientCount() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("client count never reached %d (got %d)", want, hub.ClientCount())
}

func TestRegisterSendsSnapshot(t *testing.T) {
	hub := startHub(t)

	client := newTestClient(16)
	hub.Register(client)

	status := recvEvent(t, client)
	if status.Type != model.WSMessageTypeStatus {
		t.Fatalf("expected status event first, got %q", status.Type)
	}
	if status.State != model.StateIdle {
		t.Errorf("expected idle snapshot with no job ever run, got %q", status.State)
	}

	welcome := recvEvent(t, client)
	if welcome.Type != model.WSMessageTypeLog {
		t.Fatalf("expected welcome log, got %q", welcome.Type)
	}
	if welcome.Message == "" || welcome.TS == "" {
		t.Errorf("welcome log missing message or timestamp: %+v", welcome)
	}
}

func TestSnapshotReflectsLastBroadcastState(t *testing.T) {
	hub := startHub(t)

	first := newTestClient(16)
	hub.Register(first)
	hub.BroadcastStatus(model.StateRunning)

	// Drain the first client so the hub has processed the broadcast
	recvEvent(t, first) // snapshot
	recvEvent(t, first) // welcome
	ev := recvEvent(t, first)
	if ev.State != model.StateRunning {
		t.Fatalf("expected running broadcast, got %q", ev.State)
	}

	late := newTestClient(16)
	hub.Register(late)

	snapshot := recvEvent(t, late)
	if snapshot.State != model.StateRunning {
		t.Errorf("late joiner should see current state running, got %q", snapshot.State)
	}
}

func TestBroadcastPreservesOrder(t *testing.T) {
	hub := startHub(t)

	client := newTestClient(64)
	hub.Register(client)
	recvEvent(t, client)
	recvEvent(t, client)

	hub.BroadcastStatus(model.StateRunning)
	hub.BroadcastLog("line 1")
	hub.BroadcastLog("line 2")
	hub.BroadcastLog("line 3")
	hub.BroadcastStatus(model.StateIdle)

	want := []string{"status", "log", "log", "log", "status"}
	var messages []string
	for range want {
		ev := recvEvent(t, client)
		messages = append(messages, ev.Type)
		if ev.Type == model.WSMessageTypeLog {
			if ev.TS == "" {
				t.Errorf("log event missing timestamp: %+v", ev)
			}
		}
	}
	for i, typ := range want {
		if messages[i] != typ {
			t.Fatalf("event %d: expected %q, got %v", i, typ, messages)
		}
	}
}

func TestBrokenObserverDoesNotDisturbOthers(t *testing.T) {
	hub := startHub(t)

	healthy1 := newTestClient(64)
	healthy2 := newTestClient(64)
	// Room for the snapshot pair only; the next delivery attempt fails
	broken := newTestClient(2)

	hub.Register(healthy1)
	hub.Register(healthy2)
	hub.Register(broken)
	waitForCount(t, hub, 3)

	// broken's buffer is already full, so this broadcast must drop it and
	// still reach the healthy clients
	hub.BroadcastLog("still here")
	waitForCount(t, hub, 2)

	for _, c := range []*Client{healthy1, healthy2} {
		recvEvent(t, c) // snapshot
		recvEvent(t, c) // welcome
		ev := recvEvent(t, c)
		if ev.Message != "still here" {
			t.Errorf("healthy client missed broadcast, got %+v", ev)
		}
	}
}

func TestPongReachesRegisteredClient(t *testing.T) {
	hub := startHub(t)

	client := newTestClient(16)
	hub.Register(client)
	recvEvent(t, client) // snapshot
	recvEvent(t, client) // welcome

	hub.trySend(client, []byte(model.WSPongToken))

	select {
	case data := <-client.Send:
		if string(data) != model.WSPongToken {
			t.Fatalf("expected pong token, got %q", data)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for pong")
	}
}

func TestPongAfterDropIsHarmless(t *testing.T) {
	hub := startHub(t)

	// Room for the snapshot pair only; the next delivery drops the client
	stalled := newTestClient(2)
	hub.Register(stalled)
	waitForCount(t, hub, 1)

	hub.BroadcastLog("overflow")
	waitForCount(t, hub, 0)

	// The connection's reader may still relay a liveness probe after the
	// hub has dropped and closed this client; it must be a no-op
	hub.trySend(stalled, []byte(model.WSPongToken))

	healthy := newTestClient(16)
	hub.Register(healthy)
	recvEvent(t, healthy)
	recvEvent(t, healthy)
	hub.BroadcastLog("after drop")
	if ev := recvEvent(t, healthy); ev.Message != "after drop" {
		t.Fatalf("hub stopped delivering after stale pong, got %+v", ev)
	}
}

func TestUnregisterIsIdempotent(t *testing.T) {
	hub := startHub(t)

	client := newTestClient(16)
	hub.Register(client)
	waitForCount(t, hub, 1)

	hub.Unregister(client)
	hub.Unregister(client)
	waitForCount(t, hub, 0)
}
