package compare

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dealscout/alcopa-crawler/internal/domain"
)

type fixedClock struct{}

func (fixedClock) Now() time.Time {
	return time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)
}

const searchResults = `<html><body>
<div data-qa-id="aditem_container">
  <p data-qa-id="aditem_title">Peugeot 208 GT Line 2019</p>
  <p data-qa-id="aditem_price">9 500 &euro;</p>
</div>
<div data-qa-id="aditem_container">
  <p data-qa-id="aditem_title">Peugeot 208 Allure</p>
  <p data-qa-id="aditem_price">8 900 &euro;</p>
</div>
<div data-qa-id="aditem_container">
  <p data-qa-id="aditem_title">Peugeot 208 sans prix</p>
</div>
</body></html>`

func TestWebSourceSearch(t *testing.T) {
	t.Parallel()

	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("text")
		_, _ = w.Write([]byte(searchResults))
	}))
	defer server.Close()

	source := NewWebSource(WebConfig{BaseURL: server.URL}, fixedClock{})

	comparables, err := source.Search(context.Background(), domain.Vehicle{
		Brand: "Peugeot",
		Model: "208",
		Year:  2019,
	})
	require.NoError(t, err)
	require.Equal(t, "Peugeot 208", gotQuery)

	// The unpriced ad is skipped.
	require.Len(t, comparables, 2)
	require.Equal(t, domain.SourceLeboncoin, comparables[0].Source)
	require.InDelta(t, 9500, comparables[0].Price, 1e-9)
	require.InDelta(t, 8900, comparables[1].Price, 1e-9)
	require.Equal(t, fixedClock{}.Now(), comparables[0].CreatedAt)
}

func TestWebSourceSearchServerDown(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	server.Close()

	source := NewWebSource(WebConfig{BaseURL: server.URL, Timeout: time.Second}, fixedClock{})

	_, err := source.Search(context.Background(), domain.Vehicle{Brand: "Peugeot", Model: "208"})
	require.Error(t, err)
}
