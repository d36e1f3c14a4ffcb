package main

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func TestCallbackChatID(t *testing.T) {
	inline := &tgbotapi.CallbackQuery{ID: "cb1", InlineMessageID: "inline-1", Data: callbackLike}
	if _, ok := callbackChatID(inline); ok {
		t.Fatalf("inline callback without message must not resolve a chat")
	}

	if _, ok := callbackChatID(&tgbotapi.CallbackQuery{ID: "cb2", Message: &tgbotapi.Message{}}); ok {
		t.Fatalf("message without chat must not resolve a chat")
	}

	cq := &tgbotapi.CallbackQuery{ID: "cb3", Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 42}}}
	chatID, ok := callbackChatID(cq)
	if !ok || chatID != 42 {
		t.Fatalf("expected chat 42, got %d (ok=%v)", chatID, ok)
	}
}
