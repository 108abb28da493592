package notifier

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"
	"time"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"poolpower/internal/domain/service/catalog"
	"poolpower/pkg/contextx"
	"poolpower/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// TelegramBot posts catalog sync reports to the ops chat.
type TelegramBot struct {
	bot    *telego.Bot
	chatID int64
}

func NewTelegramBot(token string, chatID int64, opts ...telego.BotOption) (*TelegramBot, error) {
	bot, err := telego.NewBot(token, opts...)
	if err != nil {
		return nil, fmt.Errorf("telego.NewBot: %w", err)
	}

	return &TelegramBot{
		bot:    bot,
		chatID: chatID,
	}, nil
}

// Run sends every report read from reports until ctx is done or the channel
// is closed.
func (b *TelegramBot) Run(ctx context.Context, reports <-chan catalog.SyncReport) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case report, ok := <-reports:
			if !ok {
				return nil
			}

			if err := b.SendReport(ctx, report); err != nil {
				logger(ctx).Error("failed to send sync report", logx.Error(err))
			}
		}
	}
}

func (b *TelegramBot) SendReport(ctx context.Context, report catalog.SyncReport) error {
	msg := tu.Message(
		tu.ID(b.chatID),
		FormatReport(report),
	).WithParseMode(telego.ModeHTML)

	if _, err := b.bot.SendMessage(ctx, msg); err != nil {
		return fmt.Errorf("bot.SendMessage: %w", err)
	}

	logger(ctx).Debug("sync report sent", slog.Int64("chat-id", b.chatID))

	return nil
}

// SendText sends a plain message.
func (b *TelegramBot) SendText(ctx context.Context, text string) error {
	msg := tu.Message(tu.ID(b.chatID), text)

	if _, err := b.bot.SendMessage(ctx, msg); err != nil {
		return fmt.Errorf("bot.SendMessage: %w", err)
	}

	return nil
}

// FormatReport renders report as Telegram HTML.
func FormatReport(report catalog.SyncReport) string {
	var sb strings.Builder

	if report.Failed() {
		sb.WriteString("❌ <b>Catalog sync failed</b>\n\n")
		fmt.Fprintf(&sb, "<b>Reason:</b> %s\n", html.EscapeString(report.Failure))
	} else {
		sb.WriteString("✅ <b>Catalog synced</b>\n\n")
		fmt.Fprintf(&sb, "📄 <b>Rows:</b> %d\n", report.Fetched)
		fmt.Fprintf(&sb, "🛒 <b>Active deals:</b> %d\n", report.Active)
		fmt.Fprintf(&sb, "💤 <b>Deactivated:</b> %d\n", report.Deactivated)
	}

	fmt.Fprintf(&sb, "⏱ <b>Took:</b> %s", report.Duration.Round(time.Millisecond))

	return sb.String()
}
