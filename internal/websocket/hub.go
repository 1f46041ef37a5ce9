package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/ikkim/hubline-admin/internal/app/model"
	"github.com/ikkim/hubline-admin/pkg/logger"
)

const (
	// Rate limiting: 최대 메시지 수 (1초당)
	maxMessagesPerSecond = 10

	// 클라이언트별 송신 버퍼 크기
	sendBufferSize = 64
)

// EventAudit 감사 로그 이벤트 타입
const EventAudit = "audit"

// ClientMessage 클라이언트로부터 받은 메시지
type ClientMessage struct {
	Type        string   `json:"type"`         // subscribe
	EntityTypes []string `json:"entity_types"` // 비어 있으면 전체 구독
}

// ActivityEvent 관리자 활동 피드 메시지
type ActivityEvent struct {
	Type string          `json:"type"`
	Data *model.AuditLog `json:"data,omitempty"`
}

// Client WebSocket 클라이언트 (관리자 세션 1개)
type Client struct {
	Hub           *ActivityHub
	Conn          *Conn
	UserID        string
	Send          chan []byte
	entityTypes   map[string]bool // 구독 중인 엔티티 타입, 비어 있으면 전체
	mu            sync.RWMutex
	MessageCount  int       // 최근 1초간 받은 메시지 수
	LastResetTime time.Time // 마지막 카운터 리셋 시간
	RateMu        sync.Mutex
}

// NewClient 클라이언트 생성
func NewClient(hub *ActivityHub, conn *Conn, userID string) *Client {
	return &Client{
		Hub:         hub,
		Conn:        conn,
		UserID:      userID,
		Send:        make(chan []byte, sendBufferSize),
		entityTypes: make(map[string]bool),
	}
}

// Wants 해당 엔티티 타입 이벤트를 받을지 여부
func (c *Client) Wants(entityType string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entityTypes) == 0 || c.entityTypes[entityType]
}

func (c *Client) subscribe(entityTypes []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entityTypes = make(map[string]bool, len(entityTypes))
	for _, t := range entityTypes {
		c.entityTypes[t] = true
	}
}

// ActivityHub 관리자 활동 피드 연결 관리자
type ActivityHub struct {
	// 등록된 클라이언트들 (UserID -> []*Client - 멀티 디바이스 지원)
	clients map[string][]*Client

	register   chan *Client
	unregister chan *Client
	broadcast  chan *broadcastMessage
	done       chan struct{}
	stopOnce   sync.Once

	mu sync.RWMutex
}

type broadcastMessage struct {
	EntityType string
	Message    []byte
}

// NewActivityHub Hub 생성
func NewActivityHub() *ActivityHub {
	return &ActivityHub{
		clients:    make(map[string][]*Client),
		register:   make(chan *Client, 256),
		unregister: make(chan *Client, 256),
		broadcast:  make(chan *broadcastMessage, 1024),
		done:       make(chan struct{}),
	}
}

// Run Hub 실행, Stop 호출 시 종료
func (h *ActivityHub) Run() {
	for {
		select {
		case <-h.done:
			h.closeAll()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			sessions := len(h.clients[client.UserID])
			h.mu.Unlock()
			logger.Info("WebSocket client registered", map[string]interface{}{
				"user_id":        client.UserID,
				"total_sessions": sessions,
			})

		case client := <-h.unregister:
			h.removeClient(client)

		case message := <-h.broadcast:
			h.deliver(message)
		}
	}
}

// Stop 모든 연결을 닫고 Run 루프 종료
func (h *ActivityHub) Stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

func (h *ActivityHub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clientList, ok := h.clients[client.UserID]
	if !ok {
		return
	}

	newList := make([]*Client, 0, len(clientList))
	found := false
	for _, c := range clientList {
		if c == client {
			found = true
			continue
		}
		newList = append(newList, c)
	}
	if !found {
		return
	}

	if len(newList) == 0 {
		delete(h.clients, client.UserID)
	} else {
		h.clients[client.UserID] = newList
	}
	close(client.Send)

	logger.Info("WebSocket client unregistered", map[string]interface{}{
		"user_id":            client.UserID,
		"remaining_sessions": len(newList),
	})
}

func (h *ActivityHub) deliver(message *broadcastMessage) {
	var stalled []*Client

	h.mu.RLock()
	for userID, clientList := range h.clients {
		for _, client := range clientList {
			if !client.Wants(message.EntityType) {
				continue
			}
			select {
			case client.Send <- message.Message:
			default:
				stalled = append(stalled, client)
				logger.Warn("Client send buffer full, disconnecting", map[string]interface{}{
					"user_id": userID,
				})
			}
		}
	}
	h.mu.RUnlock()

	for _, client := range stalled {
		h.removeClient(client)
	}
}

func (h *ActivityHub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for userID, clientList := range h.clients {
		for _, client := range clientList {
			close(client.Send)
		}
		delete(h.clients, userID)
	}
}

// PublishAudit 감사 로그를 구독 중인 모든 관리자에게 전송
func (h *ActivityHub) PublishAudit(entry *model.AuditLog) {
	if entry == nil {
		return
	}

	data, err := json.Marshal(ActivityEvent{Type: EventAudit, Data: entry})
	if err != nil {
		logger.Error("Failed to marshal activity event", err, map[string]interface{}{
			"audit_id": entry.ID,
		})
		return
	}

	select {
	case h.broadcast <- &broadcastMessage{EntityType: entry.EntityType, Message: data}:
	default:
		// 피드는 부가 기능이므로 메시지 손실 허용
		logger.Warn("Broadcast channel full, activity event dropped", map[string]interface{}{
			"audit_id": entry.ID,
		})
	}
}

// Register 클라이언트 등록
func (h *ActivityHub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
	}
}

// Unregister 클라이언트 등록 해제
func (h *ActivityHub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// IsUserOnline 관리자 접속 여부 확인
func (h *ActivityHub) IsUserOnline(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[userID]
	return ok
}

// SessionCount 전체 접속 세션 수
func (h *ActivityHub) SessionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, clientList := range h.clients {
		n += len(clientList)
	}
	return n
}

// HandleClientMessage 클라이언트 메시지 처리
func (h *ActivityHub) HandleClientMessage(client *Client, message []byte) {
	client.RateMu.Lock()
	now := time.Now()
	if now.Sub(client.LastResetTime) >= time.Second {
		client.MessageCount = 0
		client.LastResetTime = now
	}
	client.MessageCount++
	count := client.MessageCount
	client.RateMu.Unlock()

	if count > maxMessagesPerSecond {
		logger.Warn("Rate limit exceeded", map[string]interface{}{
			"user_id": client.UserID,
			"count":   count,
		})
		return
	}

	var msg ClientMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		logger.Warn("Failed to parse client message", map[string]interface{}{
			"user_id": client.UserID,
			"error":   err.Error(),
		})
		return
	}

	if msg.Type != "subscribe" {
		return
	}

	var accepted []string
	for _, t := range msg.EntityTypes {
		if kind, ok := model.ParseEntityKind(t); ok {
			accepted = append(accepted, string(kind))
		} else if t == "platform_settings" {
			accepted = append(accepted, t)
		}
	}
	client.subscribe(accepted)
	logger.Debug("Activity feed subscription updated", map[string]interface{}{
		"user_id":      client.UserID,
		"entity_types": accepted,
	})
}
