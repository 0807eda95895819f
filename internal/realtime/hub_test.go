package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aidiary/internal/db"
	"github.com/gorilla/websocket"
)

func newTestServer(t *testing.T, hub *Hub) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		table := r.URL.Query().Get("table")
		if !ValidTable(table) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if err := hub.Subscribe(w, r, table); err != nil {
			t.Errorf("subscribe failed: %v", err)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dialTable(t *testing.T, srv *httptest.Server, table string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?table=" + table
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForClients(t *testing.T, hub *Hub, table string, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hub.ClientCount(table) == want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("expected %d clients for %s, got %d", want, table, hub.ClientCount(table))
}

func TestHubNotifiesSubscribedTable(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	srv := newTestServer(t, hub)
	conn := dialTable(t, srv, db.TableDiaryEntries)
	waitForClients(t, hub, db.TableDiaryEntries, 1)

	hub.Notify(db.TableDiaryEntries)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("expected change event, got error: %v", err)
	}

	var event ChangeEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		t.Fatalf("failed to decode event: %v", err)
	}
	if event.Table != db.TableDiaryEntries {
		t.Fatalf("unexpected table in event: %s", event.Table)
	}
}

func TestHubDoesNotCrossNotifyTables(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	srv := newTestServer(t, hub)
	diaryConn := dialTable(t, srv, db.TableDiaryEntries)
	calendarConn := dialTable(t, srv, db.TableCalendarEvents)
	waitForClients(t, hub, db.TableDiaryEntries, 1)
	waitForClients(t, hub, db.TableCalendarEvents, 1)

	hub.Notify(db.TableCalendarEvents)

	calendarConn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := calendarConn.ReadMessage(); err != nil {
		t.Fatalf("calendar subscriber should receive the event: %v", err)
	}

	diaryConn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	if _, _, err := diaryConn.ReadMessage(); err == nil {
		t.Fatal("diary subscriber must not receive calendar events")
	}
}

func TestValidTable(t *testing.T) {
	t.Parallel()

	if !ValidTable(db.TableDiaryEntries) || !ValidTable(db.TableCalendarEvents) {
		t.Fatal("known tables should be valid")
	}
	if ValidTable("users") || ValidTable("") {
		t.Fatal("unknown tables must be rejected")
	}
}
