package bots_monitor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTelegramNotifierSendsPlainText(t *testing.T) {
	bot := newFakeBot()
	notifier := NewTelegramNotifier(bot)

	require.NoError(t, notifier.Send(context.Background(), 42, "✅ SAFE NEW SOLANA TOKEN\n\nCA: X"))

	sent := bot.messages()
	require.Len(t, sent, 1)
	assert.Equal(t, int64(42), sent[0].ChatID)
	assert.Equal(t, "✅ SAFE NEW SOLANA TOKEN\n\nCA: X", sent[0].Text)
	assert.Empty(t, sent[0].ParseMode)
	assert.True(t, sent[0].DisableWebPagePreview)
}

func TestTelegramNotifierWrapsSendError(t *testing.T) {
	bot := newFakeBot()
	bot.err = errors.New("Bad Request: chat not found")

	err := NewTelegramNotifier(bot).Send(context.Background(), 42, "hi")

	assert.ErrorContains(t, err, "chat 42")
	assert.ErrorIs(t, err, bot.err)
}

func TestTelegramNotifierCancelledContext(t *testing.T) {
	bot := newFakeBot()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewTelegramNotifier(bot).Send(ctx, 42, "hi")

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, bot.messages())
}
