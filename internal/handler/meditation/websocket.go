// Package meditation 提供实时冥想会话的 WebSocket 传输层。
package meditation

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/wanyue/mindgarden/backend/internal/model/message"
	"github.com/wanyue/mindgarden/backend/internal/model/persona"
	"github.com/wanyue/mindgarden/backend/internal/service/conversation"
	sessionservice "github.com/wanyue/mindgarden/backend/internal/service/session"
)

const readTimeout = 60 * time.Second

// Handler WebSocket冥想会话处理器
type Handler struct {
	registry *conversation.Registry
	sessions *sessionservice.Service
	personas persona.Store
	upgrader websocket.Upgrader
}

// New 创建WebSocket处理器；sessions 为 nil 时跳过记录校验与持久化。
func New(registry *conversation.Registry, sessions *sessionservice.Service, personas persona.Store) *Handler {
	return &Handler{
		registry: registry,
		sessions: sessions,
		personas: personas,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterWebSocketRoutes 注册WebSocket路由
func (h *Handler) RegisterWebSocketRoutes(r chi.Router) {
	r.Get("/meditation-session/{sessionID}", h.handleWebSocket)
}

// handleWebSocket 处理一条冥想会话连接的完整生命周期
func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		http.Error(w, "sessionID is required", http.StatusBadRequest)
		return
	}

	params := conversation.SessionParams{SessionType: "guided_breathing"}
	if h.sessions != nil {
		record, err := h.sessions.Get(r.Context(), sessionID)
		if err != nil {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		params.SessionType = record.SessionType
		params.AmbientCategory = record.AmbientCategory
		params.Persona = h.lookupPersona(record.VoicePersona)
	} else {
		params.Persona = h.lookupPersona(persona.DefaultID)
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[meditation] upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	log.Printf("[meditation] new connection for session: %s", sessionID)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	sink := newConnSink(conn)
	sess := h.registry.Create(sessionID, params, sink)
	defer h.teardown(sessionID, sess)

	conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(readTimeout))
		return nil
	})

	go h.pingLoop(ctx, sink)

	sess.Welcome()

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				log.Printf("[meditation] read error session=%s: %v", sessionID, err)
			}
			return
		}

		conn.SetReadDeadline(time.Now().Add(readTimeout))

		switch msgType {
		case websocket.BinaryMessage:
			sess.HandleAudio(data)
		case websocket.TextMessage:
			cmd, ok := message.ParseCommand(data)
			if !ok {
				// 协议错误只忽略，不影响会话状态。
				log.Printf("[meditation] ignoring malformed text frame session=%s", sessionID)
				continue
			}
			sess.HandleCommand(cmd)
		}

		if sess.Ended() {
			return
		}
	}
}

// lookupPersona 查找人设，缺省回退到默认声音。
func (h *Handler) lookupPersona(id string) persona.Persona {
	if p, ok := h.personas.FindByID(id); ok {
		return p
	}
	p, _ := h.personas.FindByID(persona.DefaultID)
	return p
}

// teardown removes the live session and persists its final stats.
func (h *Handler) teardown(sessionID string, sess *conversation.Session) {
	interactions, lastCheckIn := sess.Stats()
	h.registry.Destroy(sessionID)

	if h.sessions == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := h.sessions.Complete(ctx, sessionID, interactions, lastCheckIn); err != nil {
		log.Printf("[meditation] persist session stats failed session=%s: %v", sessionID, err)
	}
}

// pingLoop 定期发送ping消息
func (h *Handler) pingLoop(ctx context.Context, sink *connSink) {
	ticker := time.NewTicker(54 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := sink.Ping(); err != nil {
				return
			}
		}
	}
}

// connSink serializes outbound writes on one websocket connection. A write
// failure closes the connection so the read loop observes the disconnect and
// tears the session down.
type connSink struct {
	mu   sync.Mutex
	conn *websocket.Conn
	dead bool
}

func newConnSink(conn *websocket.Conn) *connSink {
	return &connSink{conn: conn}
}

// Send delivers one outbound message in order.
func (s *connSink) Send(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dead {
		return errors.New("connection closed")
	}
	if err := s.conn.WriteJSON(v); err != nil {
		s.dead = true
		s.conn.Close()
		return err
	}
	return nil
}

// Ping 发送心跳帧。
func (s *connSink) Ping() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dead {
		return errors.New("connection closed")
	}
	return s.conn.WriteMessage(websocket.PingMessage, nil)
}
