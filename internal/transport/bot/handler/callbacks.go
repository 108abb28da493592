package handler

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
	tu "github.com/mymmrac/telego/telegoutil"

	"poolpower/internal/domain/entity"
	"poolpower/pkg/logx"
)

const (
	dealsPerPage       = 10
	dealsPageCallback  = "deals_page"
	noopCallbackData   = "noop"
	callbackDataFormat = dealsPageCallback + ":%d"
)

func (h *Handler) OnDealsCallback(ctx *th.Context, query telego.CallbackQuery) error {
	var page int
	if _, err := fmt.Sscanf(query.Data, callbackDataFormat, &page); err != nil || page < 1 {
		page = 1
	}

	deals, err := h.catalog.ActiveDeals(ctx)
	if err != nil {
		_ = ctx.Bot().AnswerCallbackQuery(ctx, tu.CallbackQuery(query.ID).
			WithText(dealsError).WithShowAlert())
		return err
	}

	text, page, totalPages := dealsPage(deals, page)

	if query.Message != nil {
		_, err = ctx.Bot().EditMessageText(ctx, &telego.EditMessageTextParams{
			ChatID:      tu.ID(query.Message.GetChat().ID),
			MessageID:   query.Message.GetMessageID(),
			Text:        text,
			ParseMode:   telego.ModeHTML,
			ReplyMarkup: createPaginationKeyboard(page, totalPages),
		})
		// Telegram rejects edits that change nothing, e.g. the same page twice.
		if err != nil {
			logger(ctx).Debug("bot.EditMessageText", logx.Error(err))
		}
	}

	return ctx.Bot().AnswerCallbackQuery(ctx, tu.CallbackQuery(query.ID))
}

// OnNoopCallback acknowledges the page counter button.
func (h *Handler) OnNoopCallback(ctx *th.Context, query telego.CallbackQuery) error {
	return ctx.Bot().AnswerCallbackQuery(ctx, tu.CallbackQuery(query.ID))
}

// dealsPage renders one page of deals and returns the page actually shown,
// clamped to the available range.
func dealsPage(deals []entity.Deal, page int) (string, int, int) {
	totalPages := max((len(deals)+dealsPerPage-1)/dealsPerPage, 1)
	page = min(max(page, 1), totalPages)

	start := (page - 1) * dealsPerPage
	end := min(start+dealsPerPage, len(deals))

	var sb strings.Builder

	fmt.Fprintf(&sb, dealsPageHeader, page, totalPages)

	for _, d := range deals[start:end] {
		target := "N/A"
		if d.TargetQty > 0 {
			target = strconv.Itoa(d.TargetQty)
		}

		fmt.Fprintf(&sb, dealsItemTemplate,
			html.EscapeString(d.ItemName),
			html.EscapeString(d.ID.String()),
			target,
			html.EscapeString(d.EstPricePerItem),
		)
	}

	return sb.String(), page, totalPages
}

func createPaginationKeyboard(page, totalPages int) *telego.InlineKeyboardMarkup {
	var buttons []telego.InlineKeyboardButton

	if page > 1 {
		buttons = append(buttons, tu.InlineKeyboardButton("⬅️").
			WithCallbackData(fmt.Sprintf(callbackDataFormat, page-1)))
	}

	buttons = append(buttons, tu.InlineKeyboardButton(fmt.Sprintf("%d / %d", page, totalPages)).
		WithCallbackData(noopCallbackData))

	if page < totalPages {
		buttons = append(buttons, tu.InlineKeyboardButton("➡️").
			WithCallbackData(fmt.Sprintf(callbackDataFormat, page+1)))
	}

	return tu.InlineKeyboard(
		tu.InlineKeyboardRow(buttons...),
	)
}
