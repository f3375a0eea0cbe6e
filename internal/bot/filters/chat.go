// Package filters решает, отвечать ли боту на сообщение.
package filters

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"
)

// BanChecker — то, что фильтру нужно от реестра пользователей.
type BanChecker interface {
	IsBanned(ctx context.Context, userID int64) (bool, error)
}

// ChatFilter пропускает личные сообщения и групповые чаты из ALLOWED_CHAT_IDS.
// Забаненным пользователям бот не отвечает нигде.
type ChatFilter struct {
	allowedChats map[int64]struct{}
	members      BanChecker
}

func NewChatFilter(allowedChatIDs []int64, members BanChecker) *ChatFilter {
	allowed := make(map[int64]struct{}, len(allowedChatIDs))
	for _, id := range allowedChatIDs {
		allowed[id] = struct{}{}
	}
	return &ChatFilter{allowedChats: allowed, members: members}
}

// IsAllowedGroup — входит ли групповой чат в ALLOWED_CHAT_IDS.
func (f *ChatFilter) IsAllowedGroup(chatID int64) bool {
	_, ok := f.allowedChats[chatID]
	return ok
}

func (f *ChatFilter) CheckAccess(ctx context.Context, message *tgbotapi.Message) bool {
	if message == nil || message.Chat == nil {
		log.WithField("component", "ChatFilter").Warn("nil message/chat")
		return false
	}
	if message.From == nil {
		log.WithFields(log.Fields{
			"component": "ChatFilter",
			"chat_id":   message.Chat.ID,
			"chat_type": message.Chat.Type,
		}).Debug("nil message.From (service/channel message?)")
		return false
	}

	logger := log.WithFields(log.Fields{
		"component": "ChatFilter",
		"chat_id":   message.Chat.ID,
		"chat_type": message.Chat.Type,
		"user_id":   message.From.ID,
	})

	if !message.Chat.IsPrivate() && !f.IsAllowedGroup(message.Chat.ID) {
		logger.Debug("deny: group not in ALLOWED_CHAT_IDS")
		return false
	}

	if f.members != nil {
		banned, err := f.members.IsBanned(ctx, message.From.ID)
		if err != nil {
			// БД недоступна — не блокируем, но фиксируем
			logger.WithError(err).Warn("ban check failed (allowing)")
		} else if banned {
			logger.Info("deny: banned user")
			return false
		}
	}

	logger.Debug("allow")
	return true
}
