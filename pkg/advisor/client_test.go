package advisor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ArowuTest/gaspay-backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generated(t *testing.T, text string) string {
	t.Helper()
	body, err := json.Marshal(map[string]interface{}{
		"candidates": []interface{}{
			map[string]interface{}{"content": map[string]interface{}{
				"parts": []interface{}{map[string]interface{}{"text": text}},
			}},
		},
	})
	require.NoError(t, err)
	return string(body)
}

func TestFuelTipsSummarisesFiveMostRecent(t *testing.T) {
	var prompt string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/gemini-2.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "key", r.Header.Get("x-goog-api-key"))
		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		prompt = req.Contents[0].Parts[0].Text
		w.Write([]byte(generated(t, `[{"tip":"Plan routes","explanation":"Avoid Circle at rush hour."}]`)))
	}))
	defer srv.Close()

	txs := make([]models.Transaction, 7)
	for i := range txs {
		txs[i] = models.Transaction{Amount: decimal.NewFromInt(int64(10 * (i + 1)))}
	}

	tips, err := NewClient(srv.URL, "key", "gemini-2.5-flash", false, time.Second).FuelTips(context.Background(), txs)
	require.NoError(t, err)
	require.Len(t, tips, 1)
	assert.Equal(t, "Plan routes", tips[0].Tip)
	assert.Contains(t, prompt, "GH₵10.00, GH₵20.00, GH₵30.00, GH₵40.00, GH₵50.00,")
	assert.False(t, strings.Contains(prompt, "GH₵60.00"))
}

func TestFuelTipsReportsServerFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "key", "m", false, time.Second).FuelTips(context.Background(), nil)
	assert.Error(t, err)
}

func TestNearbyStationsRejectsEmptyAnswer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "key", "m", false, time.Second).NearbyStations(context.Background(), models.Coordinate{Lat: 5.6, Lng: -0.18})
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestMockModeServesStaticData(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", "", "m", true, time.Second)

	tips, err := c.FuelTips(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, tips, 3)

	stations, err := c.NearbyStations(context.Background(), models.Coordinate{})
	require.NoError(t, err)
	require.Len(t, stations, 4)
	assert.Equal(t, "Goil Osu", stations[0].Name)
	assert.Contains(t, stations[0].MapLink, "5.556,-0.183")
}
