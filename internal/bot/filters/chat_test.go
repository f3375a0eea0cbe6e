package filters

import (
	"context"
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type banList map[int64]bool

func (b banList) IsBanned(_ context.Context, userID int64) (bool, error) {
	if userID < 0 {
		return false, errors.New("db down")
	}
	return b[userID], nil
}

func message(chatID int64, chatType string, userID int64) *tgbotapi.Message {
	return &tgbotapi.Message{
		Chat: &tgbotapi.Chat{ID: chatID, Type: chatType},
		From: &tgbotapi.User{ID: userID},
		Text: "!привычки",
	}
}

func TestCheckAccess(t *testing.T) {
	f := NewChatFilter([]int64{-1001}, banList{13: true})
	ctx := context.Background()

	tests := []struct {
		name string
		msg  *tgbotapi.Message
		want bool
	}{
		{"private", message(7, "private", 7), true},
		{"allowed group", message(-1001, "supergroup", 7), true},
		{"other group", message(-2002, "group", 7), false},
		{"banned in private", message(13, "private", 13), false},
		{"banned in allowed group", message(-1001, "supergroup", 13), false},
		{"ban check fails open", message(-5, "private", -5), true},
		{"no sender", &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: -1001, Type: "channel"}}, false},
		{"nil message", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.CheckAccess(ctx, tt.msg); got != tt.want {
				t.Errorf("CheckAccess = %v, want %v", got, tt.want)
			}
		})
	}
}
