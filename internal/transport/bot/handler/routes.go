package handler

import (
	th "github.com/mymmrac/telego/telegohandler"

	"poolpower/internal/transport/bot/middleware"
)

func (h *Handler) RegisterRoutes(bh *th.BotHandler, adminID int64) {
	adminGroup := bh.Group(th.AnyMessage())
	adminGroup.Use(middleware.AdminOnly(adminID))

	adminGroup.HandleMessage(h.OnStart, th.CommandEqual("start"))
	adminGroup.HandleMessage(h.OnDeals, th.CommandEqual("deals"))
	adminGroup.HandleMessage(h.OnSync, th.CommandEqual("sync"))
	adminGroup.HandleMessage(h.OnLink, th.CommandEqual("link"))

	cbGroup := bh.Group(th.AnyCallbackQuery())
	cbGroup.Use(middleware.AdminOnly(adminID))

	cbGroup.HandleCallbackQuery(h.OnDealsCallback, th.CallbackDataPrefix(dealsPageCallback))
	cbGroup.HandleCallbackQuery(h.OnNoopCallback, th.CallbackDataEqual(noopCallbackData))
}
