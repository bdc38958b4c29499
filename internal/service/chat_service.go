// Package service 包含了应用的业务逻辑层。
package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"health-dashboard-go/internal/model"
	"health-dashboard-go/pkg/log"
	"health-dashboard-go/pkg/tasks"
)

// ApologyMessage 是生成应答失败时返回给用户的文本。
const ApologyMessage = "I apologize, but I'm having trouble processing your request. Could you please rephrase your question?"

// Responder 根据用户输入生成助手应答。
type Responder interface {
	Classify(input string) string
	Greeting() string
}

// TurnPublisher 将对话轮次发布到归档管道。
type TurnPublisher interface {
	PublishTurn(ctx context.Context, task tasks.ChatTurnTask) error
}

// ChatService 定义了聊天操作的接口。
type ChatService interface {
	Greeting() model.ChatMessage
	Reply(ctx context.Context, user *model.User, text string) (*model.ChatMessage, error)
}

// ChatOptions 控制聊天服务的表现。
type ChatOptions struct {
	// ThinkingDelay 是回复前的停顿，0 表示不等待
	ThinkingDelay  time.Duration
	MaxInputLength int
}

type chatService struct {
	responder     Responder
	conversations ConversationService
	publisher     TurnPublisher
	opts          ChatOptions
	now           func() time.Time
}

// NewChatService 创建一个新的 ChatService 实例。publisher 为 nil 时不归档。
func NewChatService(responder Responder, conversations ConversationService, publisher TurnPublisher, opts ChatOptions) ChatService {
	return &chatService{
		responder:     responder,
		conversations: conversations,
		publisher:     publisher,
		opts:          opts,
		now:           time.Now,
	}
}

func (s *chatService) Greeting() model.ChatMessage {
	return model.ChatMessage{Text: s.responder.Greeting(), IsBot: true, Timestamp: s.now()}
}

// Reply 处理一轮对话：校验输入，等待思考延迟，生成应答，保存历史并发布归档事件。
func (s *chatService) Reply(ctx context.Context, user *model.User, text string) (*model.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}
	if s.opts.MaxInputLength > 0 && utf8.RuneCountInString(text) > s.opts.MaxInputLength {
		return nil, fmt.Errorf("%w: limit is %d characters", ErrMessageTooLong, s.opts.MaxInputLength)
	}

	userMsg := model.ChatMessage{Text: text, Timestamp: s.now()}

	if s.opts.ThinkingDelay > 0 {
		timer := time.NewTimer(s.opts.ThinkingDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	botMsg := s.respond(text)

	// 使用后台上下文，即使请求已结束也要保存已经生成的回复
	bg := context.Background()
	conversationID, err := s.conversations.AddMessagesToConversation(bg, user.ID, userMsg, botMsg)
	if err != nil {
		// 只记录错误，回复已经生成
		log.Errorf("Failed to save conversation history: %v", err)
	}
	if s.publisher != nil && conversationID != "" {
		for _, m := range []model.ChatMessage{userMsg, botMsg} {
			task := tasks.ChatTurnTask{
				UserID:         user.ID,
				ConversationID: conversationID,
				Message:        m.Text,
				IsBot:          m.IsBot,
				IsError:        m.Error,
				Timestamp:      m.Timestamp,
			}
			if err := s.publisher.PublishTurn(bg, task); err != nil {
				log.Errorw("Failed to publish chat turn", "userId", user.ID, "error", err)
			}
		}
	}

	return &botMsg, nil
}

// respond 调用分类器，panic 时返回道歉信息并带上错误标记。
func (s *chatService) respond(text string) (msg model.ChatMessage) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorw("Responder panicked", "panic", r)
			msg = model.ChatMessage{Text: ApologyMessage, IsBot: true, Timestamp: s.now(), Error: true}
		}
	}()
	return model.ChatMessage{Text: s.responder.Classify(text), IsBot: true, Timestamp: s.now()}
}
