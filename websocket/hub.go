package websocket

import (
	"log"
	"sync"

	"KidScreen/models"
)

// Hub управляет всеми websocket-соединениями, сгруппированными по
// семье. Кроме живой рассылки держит ограниченную историю событий на
// семью и проигрывает ее каждому новому клиенту - подписчик, который
// был оффлайн, догоняет пропущенное при переподключении. Источником
// истины канал не является: полное состояние клиент перечитывает по
// HTTP.
type Hub struct {
	// Зарегистрированные клиенты по family UID
	clients map[string]map[*Client]bool

	broadcast  chan models.FamilyEvent
	register   chan *Client
	unregister chan *Client

	mu sync.Mutex

	// История событий по family UID, не больше historyMaxSize на семью
	history        map[string][]models.FamilyEvent
	historyMaxSize int
	historyMu      sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		clients:        make(map[string]map[*Client]bool),
		broadcast:      make(chan models.FamilyEvent),
		register:       make(chan *Client),
		unregister:     make(chan *Client),
		history:        make(map[string][]models.FamilyEvent),
		historyMaxSize: 100,
	}
}

// PublishEvent отправляет событие в канал семьи (fire-and-forget).
// Реализует services.EventPublisher.
func (h *Hub) PublishEvent(event models.FamilyEvent) {
	h.broadcast <- event
}

func (h *Hub) Register(client *Client)   { h.register <- client }
func (h *Hub) Unregister(client *Client) { h.unregister <- client }

// Run запускает цикл хаба.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			// Сначала пропущенные события, потом живой поток. Отправка
			// и закрытие send происходят только в этом цикле, поэтому
			// replay не может попасть в уже закрытый канал.
			h.replayHistory(client)

			h.mu.Lock()
			if _, ok := h.clients[client.FamilyUID]; !ok {
				h.clients[client.FamilyUID] = make(map[*Client]bool)
			}
			h.clients[client.FamilyUID][client] = true
			h.mu.Unlock()
			log.Printf("[WebSocket] client registered: %s (%s), family %s",
				client.UserID, client.UserType, client.FamilyUID)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.FamilyUID]; ok {
				if _, registered := h.clients[client.FamilyUID][client]; registered {
					delete(h.clients[client.FamilyUID], client)
					close(client.send)
					if len(h.clients[client.FamilyUID]) == 0 {
						delete(h.clients, client.FamilyUID)
					}
					log.Printf("[WebSocket] client unregistered: %s", client.UserID)
				}
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			h.mu.Lock()
			if clients, ok := h.clients[event.FamilyUID]; ok {
				for client := range clients {
					if !client.allowed(event) {
						continue
					}
					select {
					case client.send <- event:
					default:
						close(client.send)
						delete(clients, client)
						if len(clients) == 0 {
							delete(h.clients, event.FamilyUID)
						}
					}
				}
			}
			h.mu.Unlock()

			h.saveToHistory(event)
		}
	}
}

// allowed - фильтр аудитории: опекун видит все события семьи,
// ребенок - только свои и общесемейные изменения настроек.
func (c *Client) allowed(event models.FamilyEvent) bool {
	if c.UserType == models.UserTypeGuardian {
		return true
	}
	return event.ChildUID == "" || event.ChildUID == c.UserID
}

func (h *Hub) saveToHistory(event models.FamilyEvent) {
	h.historyMu.Lock()
	defer h.historyMu.Unlock()

	history := h.history[event.FamilyUID]
	if len(history) >= h.historyMaxSize {
		history = history[1:]
	}
	h.history[event.FamilyUID] = append(history, event)
}

// History возвращает копию истории семьи.
func (h *Hub) History(familyUID string) []models.FamilyEvent {
	h.historyMu.Lock()
	defer h.historyMu.Unlock()

	history, ok := h.history[familyUID]
	if !ok {
		return nil
	}
	result := make([]models.FamilyEvent, len(history))
	copy(result, history)
	return result
}

// replayHistory отправляет клиенту события, накопленные до его
// подключения, с учетом фильтра аудитории.
func (h *Hub) replayHistory(client *Client) {
	for _, event := range h.History(client.FamilyUID) {
		if !client.allowed(event) {
			continue
		}
		select {
		case client.send <- event:
		default:
			return // канал переполнен, клиент перечитает состояние сам
		}
	}
}
