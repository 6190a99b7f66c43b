package simulator

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/radieske/bet-settlement-engine/internal/settlement/model"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// GameUpdate é o payload enviado aos clientes do /ws a cada tick
type GameUpdate struct {
	Tick  int          `json:"tick"`
	Games []model.Game `json:"games"`
}

// Hub gerencia os clientes WebSocket e faz broadcast do placar
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*websocket.Conn
	seq     atomic.Int64
	log     *zap.Logger

	OnConnect func(delta int) // métricas (gauge)
	OnSent    func()          // métricas
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{clients: make(map[string]*websocket.Conn), log: log}
}

func (h *Hub) add(id string, c *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[id] = c
	if h.OnConnect != nil {
		h.OnConnect(1)
	}
	h.log.Info("ws client connected", zap.String("client_id", id))
}

func (h *Hub) remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[id]; ok {
		delete(h.clients, id)
		if h.OnConnect != nil {
			h.OnConnect(-1)
		}
		h.log.Info("ws client disconnected", zap.String("client_id", id))
	}
}

// Broadcast envia v para todos os clientes conectados
func (h *Hub) Broadcast(v any) {
	msg, err := json.Marshal(v)
	if err != nil {
		h.log.Warn("ws marshal failed", zap.Error(err))
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, c := range h.clients {
		_ = c.SetWriteDeadline(time.Now().Add(2 * time.Second))
		if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
			h.log.Warn("ws write failed", zap.String("client_id", id), zap.Error(err))
			_ = c.Close()
		} else if h.OnSent != nil {
			h.OnSent()
		}
	}
}

// ServeHTTP faz o upgrade e mantém a conexão até o cliente sair
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	id := strconv.FormatInt(h.seq.Add(1), 10)
	h.add(id, conn)

	go func() {
		defer func() {
			h.remove(id)
			_ = conn.Close()
		}()
		for {
			// Lê e descarta mensagens do cliente para manter o socket limpo
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
