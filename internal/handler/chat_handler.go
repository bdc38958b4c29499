package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"health-dashboard-go/internal/model"
	"health-dashboard-go/internal/service"
	"health-dashboard-go/pkg/log"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var (
	upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true // 允许所有来源
		},
	}
)

// ChatHandler 负责处理与健康助手的对话，支持 REST 与 WebSocket。
type ChatHandler struct {
	chatService service.ChatService
	userService service.UserService
}

// NewChatHandler 创建一个新的 ChatHandler。
func NewChatHandler(chatService service.ChatService, userService service.UserService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		userService: userService,
	}
}

// SendMessageRequest 定义了发送聊天消息的请求体结构。
type SendMessageRequest struct {
	Text string `json:"text"`
}

// wsFrame 是服务端推送给 WebSocket 客户端的消息。
type wsFrame struct {
	Type    string             `json:"type"` // thinking | message | error
	Data    *model.ChatMessage `json:"data,omitempty"`
	Message string             `json:"message,omitempty"`
}

// Greeting 返回助手的开场白。
func (h *ChatHandler) Greeting(c *gin.Context) {
	respondOK(c, "success", h.chatService.Greeting())
}

// SendMessage 处理一轮 REST 对话。
func (h *ChatHandler) SendMessage(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "无效的请求负载")
		return
	}
	reply, err := h.chatService.Reply(c.Request.Context(), user, req.Text)
	if err != nil {
		respondError(c, "SendMessage", err)
		return
	}
	respondOK(c, "success", reply)
}

// Handle 处理一个传入的 WebSocket 连接。token 通过路径参数传入。
func (h *ChatHandler) Handle(c *gin.Context) {
	user, _, err := h.userService.Authenticate(c.Request.Context(), c.Param("token"))
	if err != nil {
		respondError(c, "ChatSocket", err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("WebSocket 升级失败", err)
		return
	}
	defer conn.Close()

	log.Infow("WebSocket 连接已建立", "userId", user.ID)

	greeting := h.chatService.Greeting()
	if err := conn.WriteJSON(wsFrame{Type: "message", Data: &greeting}); err != nil {
		log.Warnf("发送开场白失败: %v", err)
		return
	}

	// 读循环在连接断开时取消 ctx，正在进行的回复（包括思考延迟）随之中止
	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()
	incoming := make(chan string)
	go func() {
		defer close(incoming)
		defer cancel()
		for {
			msgType, payload, err := conn.ReadMessage()
			if err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					log.Warnf("从 WebSocket 读取消息失败: %v", err)
				}
				return
			}
			if msgType != websocket.TextMessage {
				continue
			}
			select {
			case incoming <- socketText(payload):
			case <-ctx.Done():
				return
			}
		}
	}()

	for text := range incoming {
		if err := conn.WriteJSON(wsFrame{Type: "thinking"}); err != nil {
			return
		}
		reply, err := h.chatService.Reply(ctx, user, text)
		if err != nil {
			if ctx.Err() != nil {
				log.Infow("WebSocket 连接已关闭，放弃回复", "userId", user.ID)
				return
			}
			if werr := conn.WriteJSON(wsFrame{Type: "error", Message: err.Error()}); werr != nil {
				return
			}
			continue
		}
		if err := conn.WriteJSON(wsFrame{Type: "message", Data: reply}); err != nil {
			return
		}
	}
}

// socketText 接受纯文本或 {"text": "..."} 两种格式。
func socketText(payload []byte) string {
	trimmed := strings.TrimSpace(string(payload))
	if strings.HasPrefix(trimmed, "{") {
		var req SendMessageRequest
		if err := json.Unmarshal(payload, &req); err == nil {
			return req.Text
		}
	}
	return string(payload)
}
