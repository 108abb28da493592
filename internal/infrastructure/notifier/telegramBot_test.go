package notifier_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mymmrac/telego"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"poolpower/internal/domain/service/catalog"
	"poolpower/internal/infrastructure/notifier"
)

const testToken = "123456789:AAHdqTcvCH1vGWJxfSeofSAs0K5PALDsawA"

func TestFormatReport(t *testing.T) {
	testCases := []struct {
		name   string
		report catalog.SyncReport
		want   []string
	}{
		{
			name:   "success",
			report: catalog.SyncReport{Fetched: 5, Active: 3, Deactivated: 1, Duration: 1500 * time.Millisecond},
			want: []string{
				"Catalog synced",
				"<b>Rows:</b> 5",
				"<b>Active deals:</b> 3",
				"<b>Deactivated:</b> 1",
				"<b>Took:</b> 1.5s",
			},
		},
		{
			name:   "failure is escaped",
			report: catalog.SyncReport{Failure: "missing column <Deal ID>"},
			want: []string{
				"Catalog sync failed",
				"missing column &lt;Deal ID&gt;",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			text := notifier.FormatReport(tc.report)

			for _, want := range tc.want {
				rq.Contains(text, want)
			}
		})
	}
}

type telegramAPI struct {
	mu    sync.Mutex
	paths []string
	body  []string
}

func (a *telegramAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b, _ := io.ReadAll(r.Body)

	a.mu.Lock()
	a.paths = append(a.paths, r.URL.Path)
	a.body = append(a.body, string(b))
	a.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, `{"ok":true,"result":{"message_id":1,"date":0,"chat":{"id":42,"type":"private"}}}`)
}

func (a *telegramAPI) calls() ([]string, []string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	return append([]string(nil), a.paths...), append([]string(nil), a.body...)
}

func TestTelegramBotRun(t *testing.T) {
	rq := require.New(t)

	api := &telegramAPI{}
	srv := httptest.NewServer(api)
	defer srv.Close()

	bot, err := notifier.NewTelegramBot(testToken, 42, telego.WithAPIServer(srv.URL), telego.WithDiscardLogger())
	rq.NoError(err)

	reports := make(chan catalog.SyncReport, 1)
	reports <- catalog.SyncReport{Fetched: 2, Active: 2}
	close(reports)

	rq.NoError(bot.Run(context.Background(), reports))

	paths, bodies := api.calls()
	rq.Len(paths, 1)
	rq.True(strings.HasSuffix(paths[0], "/sendMessage"))
	rq.Contains(bodies[0], "Catalog synced")
}

func TestTelegramBotRunStopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	rq := require.New(t)

	bot, err := notifier.NewTelegramBot(testToken, 42, telego.WithDiscardLogger())
	rq.NoError(err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rq.ErrorIs(bot.Run(ctx, make(chan catalog.SyncReport)), context.Canceled)
}
