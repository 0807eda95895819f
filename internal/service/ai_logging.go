package service

import (
	"log"
	"strings"
	"unicode/utf8"
)

// 日志中保留的模型输入/输出最大字符数
const maxReplyLogRunes = 1024

// logReplyExchange 记录生成鼓励语时的日记原文与模型回复，便于排查模型行为。
func logReplyExchange(phase, content string) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		log.Printf("[diary-reply] %s: <empty>", phase)
		return
	}

	snippet := trimmed
	if utf8.RuneCountInString(trimmed) > maxReplyLogRunes {
		snippet = string([]rune(trimmed)[:maxReplyLogRunes]) + "…(truncated)"
	}
	log.Printf("[diary-reply] %s: %s", phase, snippet)
}
