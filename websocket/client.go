package websocket

import (
	"log"
	"net/http"
	"time"

	"KidScreen/models"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

const (
	// Время ожидания записи сообщения
	writeWait = 10 * time.Second

	// Время ожидания pong от клиента
	pongWait = 60 * time.Second

	// Период отправки пингов, должен быть меньше pongWait
	pingPeriod = (pongWait * 9) / 10

	// Максимальный размер входящего сообщения
	maxMessageSize = 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client - одно websocket-соединение члена семьи.
type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	UserID    string
	FamilyUID string
	UserType  string // guardian | child
	send      chan models.FamilyEvent
}

func NewClient(hub *Hub, conn *websocket.Conn, userID, familyUID, userType string) *Client {
	return &Client{
		hub:       hub,
		conn:      conn,
		UserID:    userID,
		FamilyUID: familyUID,
		UserType:  userType,
		send:      make(chan models.FamilyEvent, 64),
	}
}

// ReadPump вычитывает входящие фреймы. Клиенты ничего содержательного
// не шлют, но pump нужен для обработки pong и закрытия.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[WebSocket] read error for %s: %v", c.UserID, err)
			}
			return
		}
	}
}

// WritePump переливает события из канала клиента в соединение.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			payload, err := json.Marshal(event)
			if err != nil {
				log.Printf("[WebSocket] marshal error: %v", err)
				continue
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ServeWs апгрейдит HTTP-запрос и запускает pumps.
func ServeWs(hub *Hub, w http.ResponseWriter, r *http.Request, userID, familyUID, userType string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WebSocket] upgrade failed: %v", err)
		return
	}

	client := NewClient(hub, conn, userID, familyUID, userType)
	hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
