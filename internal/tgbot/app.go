package tgbot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"tipster-bot/internal/config"
	"tipster-bot/internal/invoices"
	"tipster-bot/internal/models"
	"tipster-bot/internal/sheets"
)

type App struct {
	cfg     config.Config
	bot     *tgbotapi.BotAPI
	creator *invoices.Creator
	results *sheets.Client // nil when Sheets is not configured
	zaplog  *zap.Logger
}

func New(cfg config.Config, creator *invoices.Creator, results *sheets.Client, zaplog *zap.Logger) (*App, error) {
	b, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return nil, err
	}
	b.Debug = false
	return &App{
		cfg:     cfg,
		bot:     b,
		creator: creator,
		results: results,
		zaplog:  zaplog,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := a.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case upd := <-updates:
			if upd.Message != nil {
				if err := a.handleMessage(upd.Message); err != nil {
					a.zaplog.Error("handle msg", zap.Error(err))
				}
			} else if upd.CallbackQuery != nil {
				if err := a.handleCallback(ctx, upd.CallbackQuery); err != nil {
					a.zaplog.Error("handle cb", zap.Error(err))
				}
			}
		}
	}
}

func (a *App) SendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := a.bot.Send(msg)
	return err
}

func (a *App) SendMarkdown(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	_, err := a.bot.Send(msg)
	return err
}

// ---------- Message handling ----------

func (a *App) handleMessage(m *tgbotapi.Message) error {
	txt := strings.TrimSpace(m.Text)
	if !strings.HasPrefix(txt, "/start") {
		return nil
	}

	msg := tgbotapi.NewMessage(m.Chat.ID, "Pasirink, ką nori peržiūrėti 👇")
	msg.ReplyMarkup = mainMenuKeyboard()
	_, err := a.bot.Send(msg)
	return err
}

// ---------- Callback handling ----------

func (a *App) handleCallback(ctx context.Context, q *tgbotapi.CallbackQuery) error {
	data := q.Data

	// ack
	cb := tgbotapi.NewCallback(q.ID, "")
	_, _ = a.bot.Request(cb)

	if q.Message == nil {
		return nil
	}

	if strings.HasPrefix(data, "menu:") {
		return a.handleMenu(q, strings.TrimPrefix(data, "menu:"))
	}
	if strings.HasPrefix(data, "buy:") {
		return a.handleBuy(ctx, q, strings.TrimPrefix(data, "buy:"))
	}
	return nil
}

func (a *App) handleMenu(q *tgbotapi.CallbackQuery, choice string) error {
	switch choice {
	case "daily":
		return a.editScreen(q, "Pasirink lygį ir apmokėk – po apmokėjimo iškart gausi statymą:", tierKeyboard(), false)
	case "info":
		return a.editScreen(q, infoText(), backKeyboard(), true)
	case "results":
		return a.editScreen(q, a.resultsText(), backKeyboard(), true)
	case "back":
		return a.editScreen(q, "Grįžai į pagrindinį meniu 👇", mainMenuKeyboard(), false)
	}
	return nil
}

// editScreen rewrites the menu message in place. Repeated presses of the
// same button re-render identical content, which Telegram rejects with
// "message is not modified"; that is not an error for us.
func (a *App) editScreen(q *tgbotapi.CallbackQuery, text string, kb tgbotapi.InlineKeyboardMarkup, markdown bool) error {
	edit := tgbotapi.NewEditMessageTextAndMarkup(q.Message.Chat.ID, q.Message.MessageID, text, kb)
	if markdown {
		edit.ParseMode = tgbotapi.ModeMarkdown
	}
	if _, err := a.bot.Send(edit); err != nil {
		if strings.Contains(err.Error(), "message is not modified") {
			return nil
		}
		return err
	}
	return nil
}

// ---------- Buying ----------

func (a *App) handleBuy(ctx context.Context, q *tgbotapi.CallbackQuery, code string) error {
	chatID := q.Message.Chat.ID

	tier, ok := models.TierByCode(code)
	if !ok {
		return a.SendText(chatID, "⚠️ Klaida: nežinomas planas.")
	}

	payURL, err := a.creator.Create(ctx, tier, chatID)
	if err != nil {
		// Internal detail already logged by the creator; the user gets
		// the generic fallback.
		return a.SendText(chatID, "⚠️ Nepavyko sukurti mokėjimo nuorodos. Bandyk vėliau.")
	}

	msg := tgbotapi.NewMessage(chatID, paymentText(tier))
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("💸 Apmokėti dabar", payURL),
		),
	)
	_, err = a.bot.Send(msg)
	return err
}

// ---------- Screens ----------

func mainMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎯 Dienos statymai", "menu:daily"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("ℹ️ Info", "menu:info"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Rezultatai", "menu:results"),
		),
	)
}

func tierKeyboard() tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{}
	for _, t := range models.Tiers {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(t.Label, "buy:"+t.Code),
		))
	}
	rows = append(rows, backRow())
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func backKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(backRow())
}

func backRow() []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔙 Grįžti į meniu", "menu:back"),
	)
}

func infoText() string {
	b := strings.Builder{}
	b.WriteString("📘 *Apie šį botą:*\n\n")
	b.WriteString("Šis botas kasdien pateikia 3 statymus:\n")
	for _, t := range models.Tiers {
		b.WriteString(t.Description + "\n")
	}
	b.WriteString("\nPo apmokėjimo automatiškai gausi statymą.\n")
	b.WriteString("Mokėjimai vykdomi per CryptoCloud (USDT).")
	return b.String()
}

func (a *App) resultsText() string {
	if a.results != nil {
		res, err := a.results.LatestWeeklyResult()
		if err != nil {
			a.zaplog.Error("weekly results", zap.Error(err))
		} else if res != nil {
			return weeklyResultsText(*res)
		}
	}
	return "📊 *Savaitės rezultatai:*\n\n" +
		"✅ 10 Pergalių\n" +
		"❌ 3 Pralaimėjimai\n" +
		"📈 Tikslumas: *77%*\n\n" +
		"_Duomenys atnaujinami._"
}

func weeklyResultsText(res models.WeeklyResult) string {
	return fmt.Sprintf("📊 *Savaitės rezultatai (%s):*\n\n"+
		"✅ %s Pergalių\n"+
		"❌ %s Pralaimėjimai\n"+
		"📈 Tikslumas: *%s*\n\n"+
		"_Duomenys atnaujinami._",
		res.Week, res.Wins, res.Losses, res.Accuracy,
	)
}

func paymentText(tier models.Tier) string {
	price := strconv.FormatFloat(tier.PriceUSDT, 'f', -1, 64)
	return fmt.Sprintf("Pasirinkai %s.\n\nKaina: *%s USDT* 💰\nPaspausk mygtuką žemiau, kad apmokėtum 👇",
		tier.Label, price,
	)
}
