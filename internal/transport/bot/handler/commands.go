package handler

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"poolpower/internal/domain/service/pool"
	"poolpower/internal/domain/value"
	"poolpower/internal/worker"
	"poolpower/pkg/logx"
)

func (h *Handler) OnStart(ctx *th.Context, msg telego.Message) error {
	return h.sendHTML(ctx, msg.Chat.ID, startMessage)
}

func (h *Handler) OnDeals(ctx *th.Context, msg telego.Message) error {
	deals, err := h.catalog.ActiveDeals(ctx)
	if err != nil {
		logger(ctx).Error("catalog.ActiveDeals", logx.Error(err))
		return h.sendHTML(ctx, msg.Chat.ID, dealsError)
	}

	if len(deals) == 0 {
		return h.sendHTML(ctx, msg.Chat.ID, dealsEmpty)
	}

	text, page, totalPages := dealsPage(deals, 1)

	_, err = ctx.Bot().SendMessage(ctx, &telego.SendMessageParams{
		ChatID:      telego.ChatID{ID: msg.Chat.ID},
		Text:        text,
		ParseMode:   telego.ModeHTML,
		ReplyMarkup: createPaginationKeyboard(page, totalPages),
	})

	return err
}

func (h *Handler) OnSync(ctx *th.Context, msg telego.Message) error {
	return h.sendHTML(ctx, msg.Chat.ID, h.syncReply(ctx))
}

// OnLink is the chat host of the pool handler.
// Usage: /link DEAL-7 3
func (h *Handler) OnLink(ctx *th.Context, msg telego.Message) error {
	return h.sendHTML(ctx, msg.Chat.ID, h.linkReply(ctx, strings.Fields(msg.Text)))
}

func (h *Handler) syncReply(ctx context.Context) string {
	id, err := h.syncer.RequestSync(ctx, worker.ReasonBot)

	switch {
	case errors.Is(err, worker.ErrSyncAlreadyQueued):
		return syncAlreadyQueued
	case err != nil:
		logger(ctx).Error("syncer.RequestSync", logx.Error(err))
		return syncError
	default:
		return fmt.Sprintf(syncQueued, html.EscapeString(id))
	}
}

// linkReply answers a /link command. args[0] is the command itself; the
// quantity is everything after the deal id, so "3 bags" is read as 3.
func (h *Handler) linkReply(ctx context.Context, args []string) string {
	if len(args) < 2 {
		return linkUsage
	}

	id, err := value.ParseDealID(args[1])
	if err != nil {
		return linkUsage
	}

	prompter := pool.NewFixedAnswer(strings.Join(args[2:], " "), len(args) > 2)

	var navigator pool.LinkCollector

	link, err := h.pools.Activate(ctx, id, prompter, &navigator)

	switch {
	case errors.Is(err, pool.ErrInvalidQuantity):
		message := pool.ValidationMessage
		if alerts := prompter.Alerts(); len(alerts) > 0 {
			message = alerts[len(alerts)-1]
		}
		return "❌ " + html.EscapeString(message)
	case errors.Is(err, pool.ErrDealNotBound):
		return fmt.Sprintf(linkUnknownDeal, html.EscapeString(id.String()))
	case err != nil:
		logger(ctx).Error("pools.Activate", logx.Error(err))
		return linkError
	default:
		return html.EscapeString(link)
	}
}

func (h *Handler) sendHTML(ctx *th.Context, chatID int64, text string) error {
	_, err := ctx.Bot().SendMessage(ctx, &telego.SendMessageParams{
		ChatID:    telego.ChatID{ID: chatID},
		Text:      text,
		ParseMode: telego.ModeHTML,
	})

	return err
}
