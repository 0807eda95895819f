package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aidiary/internal/db"
)

var (
	// ErrReplyInputMissing 在内容或用户缺失时返回
	ErrReplyInputMissing = errors.New("content and user id are required")
	// ErrReplyEmpty 当模型没有产出任何内容时返回
	ErrReplyEmpty = errors.New("模型未能生成回复，请稍后再试")
	// ErrReplyStoreFailed 当回复生成成功但落库失败时返回
	ErrReplyStoreFailed = errors.New("保存日记时发生错误")
)

const (
	defaultReplySystemPrompt = "请针对用户的日记内容，用不超过 20 个字给出简短而积极的一句话回应。"
	defaultReplyMaxTokens    = 50
	defaultReplyTemperature  = 0.5
)

// ReplyInput 描述一次日记推理请求。
type ReplyInput struct {
	UserID  uint
	Content string
}

// ReplyResult 返回模型回复与落库后的日记记录。
type ReplyResult struct {
	Reply string
	Entry *db.DiaryEntry
}

// DiaryReplier 定义日记回复生成能力，便于在 handler 层注入假实现。
type DiaryReplier interface {
	ProcessEntry(ctx context.Context, input ReplyInput) (ReplyResult, error)
}

// AIReplyService 调用大模型为日记生成鼓励语，并连同日记一起持久化。
type AIReplyService struct {
	client *aiChatClient
	diary  *DiaryService
}

// NewAIReplyService 构造默认的 AIReplyService。
func NewAIReplyService(apiKey, baseURL, model string, diary *DiaryService) *AIReplyService {
	return &AIReplyService{
		client: newAIChatClient(apiKey, baseURL, model),
		diary:  diary,
	}
}

// SetHTTPClient 覆盖默认 HTTP 客户端，主要用于测试。
func (s *AIReplyService) SetHTTPClient(client httpDoer) {
	s.client.SetHTTPClient(client)
}

// ProcessEntry 生成回复并保存日记。
// 失败分类：入参缺失、上游接口错误、上游返回内容为空、落库失败，消息各异。
func (s *AIReplyService) ProcessEntry(ctx context.Context, input ReplyInput) (ReplyResult, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" || input.UserID == 0 {
		return ReplyResult{}, ErrReplyInputMissing
	}

	logReplyExchange("prompt", content)

	reply, err := s.client.call(ctx, aiChatRequest{
		SystemPrompt: defaultReplySystemPrompt,
		UserPrompt:   content,
		MaxTokens:    defaultReplyMaxTokens,
		Temperature:  defaultReplyTemperature,
	})
	if err != nil {
		return ReplyResult{}, err
	}
	if reply == "" {
		return ReplyResult{}, ErrReplyEmpty
	}

	logReplyExchange("response", reply)

	entry, err := s.diary.CreateWithReply(input.UserID, content, reply)
	if err != nil {
		return ReplyResult{}, fmt.Errorf("%w: %v", ErrReplyStoreFailed, err)
	}

	return ReplyResult{Reply: reply, Entry: entry}, nil
}
