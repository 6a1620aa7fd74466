package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cookanything/pantry/internal/demo"
	"github.com/cookanything/pantry/internal/metrics"
	"github.com/cookanything/pantry/internal/source"
)

func upstream(t *testing.T, n int) *httptest.Server {
	t.Helper()
	records := make([]map[string]any, n)
	for i := range records {
		records[i] = map[string]any{
			"name":      fmt.Sprintf("Dish %02d", i+1),
			"category":  []string{"Dessert", "Main"}[i%2],
			"cuisine":   "Italian",
			"tags":      "quick, vegan",
			"image url": fmt.Sprintf("images/dish-%d.jpg", i+1),
			"link":      fmt.Sprintf("/recipes/dish-%d.html", i+1),
			"date":      fmt.Sprintf("2024-01-%02d", i%28+1),
		}
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(records)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func failingUpstream(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	return srv
}

type fixture struct {
	handler http.Handler
	reg     *prometheus.Registry
}

func newFixture(t *testing.T, upstreamURL, demoConfig string) fixture {
	t.Helper()
	client, err := source.NewClient(upstreamURL, source.ClientOptions{})
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	s := New(Options{
		Fetcher:    source.NewFetcher(source.FetcherOptions{Source: client, Metrics: m}),
		DemoConfig: demoConfig,
		Metrics:    m,
		Gatherer:   reg,
	})
	return fixture{handler: s.Handler(), reg: reg}
}

func (f fixture) get(t *testing.T, target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func parse(t *testing.T, rec *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	return doc
}

func TestIndex_FirstPage(t *testing.T) {
	f := newFixture(t, upstream(t, 30).URL, "")

	rec := f.get(t, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	doc := parse(t, rec)
	assert.Equal(t, 24, doc.Find("#recipesContainer .recipe-card").Length())
	assert.Equal(t, "Page 1 of 2", strings.TrimSpace(doc.Find("#pageStatus").Text()))

	_, prevDisabled := doc.Find("#prevPage").Attr("disabled")
	_, nextDisabled := doc.Find("#nextPage").Attr("disabled")
	assert.True(t, prevDisabled)
	assert.False(t, nextDisabled)

	active := doc.Find("#pageNumbers .page-btn.active")
	require.Equal(t, 1, active.Length())
	assert.Equal(t, "1", strings.TrimSpace(active.Text()))
	current, _ := active.Attr("aria-current")
	assert.Equal(t, "page", current)

	img, _ := doc.Find(".recipe-card img").First().Attr("src")
	assert.True(t, strings.HasPrefix(img, "https://cookanythingkitchen.com/images/"), img)
	assert.Equal(t, "main | italian", strings.TrimSpace(doc.Find(".recipe-card p").First().Text()))
}

func TestIndex_LastPage(t *testing.T) {
	f := newFixture(t, upstream(t, 30).URL, "")

	doc := parse(t, f.get(t, "/?page=2"))
	assert.Equal(t, 6, doc.Find(".recipe-card").Length())
	_, nextDisabled := doc.Find("#nextPage").Attr("disabled")
	assert.True(t, nextDisabled)
	assert.Equal(t, "Page 2 of 2", strings.TrimSpace(doc.Find("#pageStatus").Text()))
}

func TestIndex_FiltersFromQuery(t *testing.T) {
	f := newFixture(t, upstream(t, 30).URL, "")

	doc := parse(t, f.get(t, "/?category=main&q=dish+0&sort=name"))
	names := doc.Find(".recipe-card h3").Map(func(_ int, s *goquery.Selection) string { return s.Text() })
	assert.Equal(t, []string{"Dish 02", "Dish 04", "Dish 06", "Dish 08"}, names)

	selected, _ := doc.Find("#filter-category option[selected]").Attr("value")
	assert.Equal(t, "main", selected)
	sortSel, _ := doc.Find("#sortSelect option[selected]").Attr("value")
	assert.Equal(t, "name", sortSel)
	search, _ := doc.Find("#searchCombined").Attr("value")
	assert.Equal(t, "dish 0", search)
}

func TestIndex_CategoryOptions(t *testing.T) {
	f := newFixture(t, upstream(t, 4).URL, "")

	doc := parse(t, f.get(t, "/"))
	labels := doc.Find("#filter-category option").Map(func(_ int, s *goquery.Selection) string { return s.Text() })
	assert.Equal(t, []string{"All Categories", "Dessert", "Main"}, labels)
}

func TestIndex_UpstreamFailureShowsMessage(t *testing.T) {
	f := newFixture(t, failingUpstream(t).URL, "")

	rec := f.get(t, "/")
	require.Equal(t, http.StatusOK, rec.Code)

	doc := parse(t, rec)
	assert.Equal(t, source.FailureMessage, strings.TrimSpace(doc.Find("#recipesContainer p").Text()))
	assert.Equal(t, 0, doc.Find(".recipe-card").Length())
	assert.Equal(t, "Page 1 of 0", strings.TrimSpace(doc.Find("#pageStatus").Text()))
	_, nextDisabled := doc.Find("#nextPage").Attr("disabled")
	assert.True(t, nextDisabled)
}

func TestIndex_DemoBanner(t *testing.T) {
	f := newFixture(t, upstream(t, 3).URL, "")

	doc := parse(t, f.get(t, "/"))
	assert.Equal(t, 0, doc.Find("#demoBanner").Length())

	rec := f.get(t, "/?demo=true")
	doc = parse(t, rec)
	require.Equal(t, 1, doc.Find("#demoBanner").Length())
	href, _ := doc.Find("#demoBanner a").Attr("href")
	assert.Equal(t, demo.LicenseURL, href)

	var sticky *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == demo.SessionKey {
			sticky = c
		}
	}
	require.NotNil(t, sticky)
	assert.Equal(t, "true", sticky.Value)

	doc = parse(t, f.get(t, "/", sticky))
	assert.Equal(t, 1, doc.Find("#demoBanner").Length())
}

func TestIndex_DemoFromConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"demo": true}`), 0o644))
	f := newFixture(t, upstream(t, 3).URL, path)

	rec := f.get(t, "/")
	doc := parse(t, rec)
	assert.Equal(t, 1, doc.Find("#demoBanner").Length())
	assert.Empty(t, rec.Result().Cookies())
}

func TestAPIRecipes(t *testing.T) {
	f := newFixture(t, upstream(t, 30).URL, "")

	rec := f.get(t, "/api/recipes?page=2")
	require.Equal(t, http.StatusOK, rec.Code)

	var body recipesResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, 2, body.Page)
	assert.Equal(t, 2, body.TotalPages)
	assert.Equal(t, 30, body.Total)
	assert.Len(t, body.Items, 6)
	assert.Empty(t, body.Error)
}

func TestHugePageRendersEmpty(t *testing.T) {
	f := newFixture(t, upstream(t, 30).URL, "")

	rec := f.get(t, "/?page=9223372036854775807")
	require.Equal(t, http.StatusOK, rec.Code)
	doc := parse(t, rec)
	assert.Equal(t, 0, doc.Find("#recipesContainer .recipe-card").Length())
	assert.Contains(t, doc.Find("#pageStatus").Text(), "of 2")
	_, nextDisabled := doc.Find("#nextPage").Attr("disabled")
	assert.True(t, nextDisabled)

	var body recipesResponse
	rec = f.get(t, "/api/recipes?page=9223372036854775807")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Empty(t, body.Items)
	assert.Equal(t, 30, body.Total)
}

func TestAPIRecipes_Failure(t *testing.T) {
	f := newFixture(t, failingUpstream(t).URL, "")

	var body recipesResponse
	require.NoError(t, json.NewDecoder(f.get(t, "/api/recipes").Body).Decode(&body))
	assert.Equal(t, source.FailureMessage, body.Error)
	assert.NotNil(t, body.Items)
	assert.Zero(t, body.Total)
}

func TestMetricsEndpoint(t *testing.T) {
	f := newFixture(t, upstream(t, 3).URL, "")
	f.get(t, "/")

	rec := f.get(t, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `pantry_http_requests_total{code="200",route="/"} 1`)
	assert.Contains(t, body, `pantry_fetches_total{result="ok"} 1`)
}

func TestRequestID(t *testing.T) {
	f := newFixture(t, upstream(t, 1).URL, "")

	rec := f.get(t, "/api/recipes")
	_, err := uuid.Parse(rec.Header().Get(RequestIDHeader))
	assert.NoError(t, err)

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/api/recipes", nil)
	req.Header.Set(RequestIDHeader, id)
	rec = httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	assert.Equal(t, id, rec.Header().Get(RequestIDHeader))
}

func TestCORSPreflight(t *testing.T) {
	f := newFixture(t, upstream(t, 1).URL, "")

	req := httptest.NewRequest(http.MethodOptions, "/api/recipes", nil)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
