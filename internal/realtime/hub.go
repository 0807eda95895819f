package realtime

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/aidiary/internal/db"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	clientSendSize = 8
)

// ChangeEvent 是推给订阅端的整表变更通知。
// 不携带行级差异：订阅端收到后对整表重新拉取。
type ChangeEvent struct {
	Table string `json:"table"`
}

type client struct {
	id    string
	table string
	conn  *websocket.Conn
	send  chan []byte
}

// Hub 维护按表订阅的 websocket 客户端，并把表变更扇出给它们。
// register/unregister/broadcast 都走通道，由 Run 串行处理。
type Hub struct {
	mu      sync.Mutex
	clients map[string]*client

	register   chan *client
	unregister chan *client
	broadcast  chan string

	upgrader websocket.Upgrader
}

// NewHub 构造 Hub，需要调用方启动 Run 循环。
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*client),
		register:   make(chan *client, 16),
		unregister: make(chan *client, 16),
		broadcast:  make(chan string, 256),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Run 驱动注册/注销/广播循环，ctx 取消时关闭所有连接。
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case c := <-h.register:
			h.mu.Lock()
			h.clients[c.id] = c
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c.id]; ok {
				delete(h.clients, c.id)
				close(c.send)
			}
			h.mu.Unlock()

		case table := <-h.broadcast:
			h.deliver(table)
		}
	}
}

// Notify 宣告某张表发生了插入/更新/删除。非阻塞，广播队列满时丢弃。
func (h *Hub) Notify(table string) {
	select {
	case h.broadcast <- table:
	default:
	}
}

// ClientCount 返回订阅指定表的连接数，table 为空表示全部。
func (h *Hub) ClientCount(table string) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	if table == "" {
		return len(h.clients)
	}
	count := 0
	for _, c := range h.clients {
		if c.table == table {
			count++
		}
	}
	return count
}

// ValidTable 校验订阅目标是否为受支持的表。
func ValidTable(table string) bool {
	return table == db.TableDiaryEntries || table == db.TableCalendarEvents
}

// Subscribe 将 HTTP 请求升级为 websocket 并登记订阅。
// 调用方需先校验 table 合法性。
func (h *Hub) Subscribe(w http.ResponseWriter, r *http.Request, table string) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	c := &client{
		id:    uuid.NewString(),
		table: table,
		conn:  conn,
		send:  make(chan []byte, clientSendSize),
	}

	h.register <- c
	go c.writePump()
	go h.readPump(c)
	return nil
}

func (h *Hub) deliver(table string) {
	payload, err := json.Marshal(ChangeEvent{Table: table})
	if err != nil {
		return
	}

	h.mu.Lock()
	for _, c := range h.clients {
		if c.table != table {
			continue
		}
		select {
		case c.send <- payload:
		default:
			// 写入积压的慢连接直接跳过，下次变更仍会送达
		}
	}
	h.mu.Unlock()
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, c := range h.clients {
		delete(h.clients, id)
		close(c.send)
	}
}

// readPump 只负责消费控制帧并感知断开，订阅端不上行业务数据。
func (h *Hub) readPump(c *client) {
	defer func() {
		h.unregister <- c
		c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("realtime: read error: %v", err)
			}
			return
		}
	}
}

func (c *client) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}

	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
