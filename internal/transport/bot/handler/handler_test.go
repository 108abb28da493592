package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"poolpower/internal/domain/entity"
	"poolpower/internal/domain/service/pool"
	"poolpower/internal/domain/value"
	"poolpower/internal/worker"
)

type fakeSyncer struct {
	id     string
	err    error
	reason string
}

func (f *fakeSyncer) RequestSync(_ context.Context, reason string) (string, error) {
	f.reason = reason
	return f.id, f.err
}

func newTestHandler(syncer syncRequester) *Handler {
	pools := pool.NewHandler()
	pools.Initialize(context.Background(), []entity.ActionableItem{{
		DealID:        "DEAL-7",
		ItemName:      "Rice 5kg Bag",
		ContactNumber: "15551234567",
	}})

	return New(nil, pools, syncer)
}

func TestLinkReply(t *testing.T) {
	rq := require.New(t)

	h := newTestHandler(nil)

	testCases := []struct {
		name string
		text string
		want string
	}{
		{
			name: "Valid",
			text: "/link DEAL-7 3",
			want: "https://wa.me/15551234567?text=Hi%20PoolPower%2C%20I%20want%20to%20join%2Fcreate%20a%20pool%20for%20Rice%205kg%20Bag%20(DEAL-7).%20I%20need%203%20units.",
		},
		{
			name: "Quantity with suffix",
			text: "/link DEAL-7 3 bags",
			want: "https://wa.me/15551234567?text=Hi%20PoolPower%2C%20I%20want%20to%20join%2Fcreate%20a%20pool%20for%20Rice%205kg%20Bag%20(DEAL-7).%20I%20need%203%20units.",
		},
		{name: "Missing quantity", text: "/link DEAL-7", want: "❌ " + pool.ValidationMessage},
		{name: "Zero", text: "/link DEAL-7 0", want: "❌ " + pool.ValidationMessage},
		{name: "Text quantity", text: "/link DEAL-7 many", want: "❌ " + pool.ValidationMessage},
		{name: "Unknown deal", text: "/link DEAL-9 3", want: fmt.Sprintf(linkUnknownDeal, "DEAL-9")},
		{name: "No arguments", text: "/link", want: linkUsage},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(_ *testing.T) {
			rq.Equal(tc.want, h.linkReply(context.Background(), strings.Fields(tc.text)))
		})
	}
}

func TestSyncReply(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name   string
		syncer *fakeSyncer
		want   string
	}{
		{name: "Queued", syncer: &fakeSyncer{id: "task-1"}, want: fmt.Sprintf(syncQueued, "task-1")},
		{name: "Already queued", syncer: &fakeSyncer{err: worker.ErrSyncAlreadyQueued}, want: syncAlreadyQueued},
		{name: "Broker down", syncer: &fakeSyncer{err: errors.New("dial tcp: refused")}, want: syncError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(_ *testing.T) {
			h := newTestHandler(tc.syncer)

			rq.Equal(tc.want, h.syncReply(context.Background()))
			rq.Equal(worker.ReasonBot, tc.syncer.reason)
		})
	}
}

func TestDealsPage(t *testing.T) {
	rq := require.New(t)

	deals := make([]entity.Deal, 0, 23)
	for i := range 23 {
		deals = append(deals, entity.Deal{
			ID:              value.DealID(fmt.Sprintf("DEAL-%d", i)),
			ItemName:        fmt.Sprintf("Item <%d>", i),
			EstPricePerItem: "100",
			IsActive:        true,
		})
	}

	testCases := []struct {
		name      string
		page      int
		wantPage  int
		wantFirst string
		wantItems int
	}{
		{name: "First page", page: 1, wantPage: 1, wantFirst: "DEAL-0", wantItems: 10},
		{name: "Last page", page: 3, wantPage: 3, wantFirst: "DEAL-20", wantItems: 3},
		{name: "Past the end", page: 9, wantPage: 3, wantFirst: "DEAL-20", wantItems: 3},
		{name: "Before the start", page: 0, wantPage: 1, wantFirst: "DEAL-0", wantItems: 10},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(_ *testing.T) {
			text, page, total := dealsPage(deals, tc.page)

			rq.Equal(tc.wantPage, page)
			rq.Equal(3, total)
			rq.Contains(text, fmt.Sprintf("(page %d/3)", tc.wantPage))
			rq.Contains(text, "<code>"+tc.wantFirst+"</code>")
			rq.Equal(tc.wantItems, strings.Count(text, "• "))
			rq.Contains(text, "Item &lt;")
			rq.Contains(text, "Target: N/A")
		})
	}
}

func TestDealsPageEmpty(t *testing.T) {
	rq := require.New(t)

	text, page, total := dealsPage(nil, 2)

	rq.Equal(1, page)
	rq.Equal(1, total)
	rq.Contains(text, "(page 1/1)")
}

func TestCreatePaginationKeyboard(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name     string
		page     int
		total    int
		wantData []string
	}{
		{name: "Single page", page: 1, total: 1, wantData: []string{noopCallbackData}},
		{name: "First of many", page: 1, total: 3, wantData: []string{noopCallbackData, "deals_page:2"}},
		{name: "Middle", page: 2, total: 3, wantData: []string{"deals_page:1", noopCallbackData, "deals_page:3"}},
		{name: "Last", page: 3, total: 3, wantData: []string{"deals_page:2", noopCallbackData}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(_ *testing.T) {
			kb := createPaginationKeyboard(tc.page, tc.total)
			rq.Len(kb.InlineKeyboard, 1)

			data := make([]string, 0, len(kb.InlineKeyboard[0]))
			for _, b := range kb.InlineKeyboard[0] {
				data = append(data, b.CallbackData)
			}

			rq.Equal(tc.wantData, data)
		})
	}
}
