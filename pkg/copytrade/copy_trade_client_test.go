package copytrade

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"traderscout/internal/domain"

	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.HandlerFunc) (Client, func()) {
	server := httptest.NewServer(handler)
	return Client{
		HttpClient: server.Client(),
		BaseUrl:    server.URL,
		ApiKey:     "test-key",
	}, server.Close
}

func TestGetLeaderboard(t *testing.T) {
	client, teardown := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/public/leaderboard", r.URL.Path)
		require.Equal(t, "test-key", r.Header.Get("X-API-KEY"))
		w.Write([]byte(`{"code":"000000","data":[
			{"accountId":"0xabc","windowLabel":"allTime","pnl":"1250.5","roi":0.45},
			{"accountId":"0xdef","windowLabel":"allTime","pnl":"900","roi":0.31}
		]}`))
	})
	defer teardown()

	snapshots, err := client.GetLeaderboard(context.Background(), domain.Window_AllTime, 10)
	require.NoError(t, err)
	require.Len(t, snapshots, 2)
	require.Equal(t, "0xabc", snapshots[0].AccountID)
	require.Equal(t, 0.45, snapshots[0].Roi)
}

func TestFills(t *testing.T) {
	t.Run("decodes fills", func(t *testing.T) {
		client, teardown := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/v1/public/account/fills", r.URL.Path)
			w.Write([]byte(`{"code":"000000","data":[
				{"instrument":"BTC","price":"50000","size":"0.5","side":"buy","timestampMs":1700000000000,"closedPnl":"120"}
			]}`))
		})
		defer teardown()

		fills, err := client.Fills(context.Background(), "0xabc")
		require.NoError(t, err)
		require.Len(t, fills, 1)
		require.Equal(t, "BTC", fills[0].Instrument)
		require.True(t, fills[0].IsClosing())
	})

	t.Run("venue error code surfaces as error", func(t *testing.T) {
		client, teardown := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"code":"100400","message":"account not found"}`))
		})
		defer teardown()

		_, err := client.Fills(context.Background(), "0xnone")
		require.ErrorContains(t, err, "account not found")
	})

	t.Run("non-200 surfaces the venue message", func(t *testing.T) {
		client, teardown := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"code":"100403","message":"invalid api key"}`))
		})
		defer teardown()

		_, err := client.Fills(context.Background(), "0xabc")
		require.ErrorContains(t, err, "invalid api key")
	})
}
