package orderControllers

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/12Mina/Baba-Milk-Delivery/models"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

var (
	wsMu      sync.Mutex
	wsClients = make(map[*websocket.Conn]bool)
)

// GET /admin/orders/ws
// Pushes order lifecycle events (new orders, status changes) to connected
// admin dashboards.
func OrderWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	wsMu.Lock()
	wsClients[conn] = true
	wsMu.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			wsMu.Lock()
			delete(wsClients, conn)
			wsMu.Unlock()
			break
		}
	}
}

// Broadcast sends an order event to every connected admin client.
func Broadcast(event string, order models.Order) {
	payload := struct {
		Event string       `json:"event"`
		Order models.Order `json:"order"`
	}{Event: event, Order: order}

	data, err := json.Marshal(payload)
	if err != nil {
		return
	}

	wsMu.Lock()
	defer wsMu.Unlock()
	for client := range wsClients {
		if err := client.WriteMessage(websocket.TextMessage, data); err != nil {
			client.Close()
			delete(wsClients, client)
		}
	}
}
