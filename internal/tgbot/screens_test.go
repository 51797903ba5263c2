package tgbot

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tipster-bot/internal/models"
)

func TestMainMenuKeyboard(t *testing.T) {
	kb := mainMenuKeyboard()
	require.Len(t, kb.InlineKeyboard, 3)

	var data []string
	for _, row := range kb.InlineKeyboard {
		require.Len(t, row, 1)
		data = append(data, *row[0].CallbackData)
	}
	require.Equal(t, []string{"menu:daily", "menu:info", "menu:results"}, data)
}

func TestTierKeyboard(t *testing.T) {
	kb := tierKeyboard()
	// one row per tier plus back
	require.Len(t, kb.InlineKeyboard, len(models.Tiers)+1)

	for i, tier := range models.Tiers {
		row := kb.InlineKeyboard[i]
		require.Len(t, row, 1)
		require.Equal(t, tier.Label, row[0].Text)
		require.Equal(t, "buy:"+tier.Code, *row[0].CallbackData)
	}

	back := kb.InlineKeyboard[len(models.Tiers)]
	require.Equal(t, "menu:back", *back[0].CallbackData)
}

func TestPaymentText(t *testing.T) {
	tests := []struct {
		code  string
		price string
	}{
		{"gold", "10 USDT"},
		{"silver", "6 USDT"},
		{"bronze", "3 USDT"},
	}

	for _, tt := range tests {
		tier, ok := models.TierByCode(tt.code)
		require.True(t, ok)

		txt := paymentText(tier)
		require.Contains(t, txt, tier.Label)
		require.Contains(t, txt, tt.price)
	}
}

func TestInfoTextListsTiers(t *testing.T) {
	txt := infoText()
	for _, tier := range models.Tiers {
		require.Contains(t, txt, tier.Description)
	}
	require.Contains(t, txt, "CryptoCloud")
}

func TestWeeklyResultsText(t *testing.T) {
	txt := weeklyResultsText(models.WeeklyResult{
		Week:     "2026-W35",
		Wins:     "12",
		Losses:   "2",
		Accuracy: "86%",
	})
	require.Contains(t, txt, "2026-W35")
	require.Contains(t, txt, "12 Pergalių")
	require.Contains(t, txt, "2 Pralaimėjimai")
	require.Contains(t, txt, "86%")
}
