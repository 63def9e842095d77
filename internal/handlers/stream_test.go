package handlers_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/crypto_pulse/internal/core/domain"
	portssvc "github.com/SscSPs/crypto_pulse/internal/core/ports/services"
	"github.com/SscSPs/crypto_pulse/internal/dto"
	"github.com/SscSPs/crypto_pulse/internal/handlers"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func slogDiscard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func readSnapshot(t *testing.T, conn *websocket.Conn) dto.ChartResponse {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var resp dto.ChartResponse
	require.NoError(t, json.Unmarshal(data, &resp))
	return resp
}

func TestChartStream_FollowsSurfaceRebuilds(t *testing.T) {
	gin.SetMode(gin.TestMode)
	chart := new(MockChartService)

	first := make(chan domain.PriceSeries, 1)
	second := make(chan domain.PriceSeries, 1)
	chart.On("Subscribe", mock.Anything).Return((<-chan domain.PriceSeries)(first), nil).Once()
	chart.On("Subscribe", mock.Anything).Return((<-chan domain.PriceSeries)(second), nil)

	chart.On("Snapshot", mock.Anything).Return(domain.ChartSnapshot{Currency: "usd", Loading: true, Generation: 1, Series: domain.PriceSeries{}}, nil).Once()
	chart.On("Snapshot", mock.Anything).Return(domain.ChartSnapshot{Currency: "usd", Generation: 1, Series: domain.PriceSeries{{Timestamp: 1, Value: 1}}}, nil).Once()
	chart.On("Snapshot", mock.Anything).Return(domain.ChartSnapshot{Currency: "eur", Loading: true, Generation: 2, Series: domain.PriceSeries{}}, nil)

	router := gin.New()
	handlers.RegisterRoutes(router, &portssvc.ServiceContainer{Chart: chart, Map: new(MockMapService)}, handlers.RouteOptions{})
	server := httptest.NewServer(router)
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/v1/chart/stream"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	initial := readSnapshot(t, conn)
	assert.True(t, initial.Loading)
	assert.Equal(t, domain.LoadingText, initial.LoadingText)

	first <- domain.PriceSeries{{Timestamp: 1, Value: 1}}
	loaded := readSnapshot(t, conn)
	assert.False(t, loaded.Loading)
	assert.Len(t, loaded.Series, 1)

	// the surface is replaced after a currency change
	close(first)
	rebuilt := readSnapshot(t, conn)
	assert.Equal(t, "eur", rebuilt.Currency)
	assert.Equal(t, uint64(2), rebuilt.Generation)
}

func TestChartStream_RejectsForeignOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handlers.RegisterRoutes(router, &portssvc.ServiceContainer{Chart: new(MockChartService), Map: new(MockMapService)}, handlers.RouteOptions{
		AllowedOrigins: []string{"https://dashboard.example"},
	})
	server := httptest.NewServer(router)
	defer server.Close()

	header := map[string][]string{"Origin": {"https://evil.example"}}
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/v1/chart/stream"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, header)

	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 403, resp.StatusCode)
}
