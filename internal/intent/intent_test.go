package intent

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fashiopulse/internal/constants"
	"github.com/fashiopulse/internal/models"
	"github.com/fashiopulse/internal/service"

	"github.com/shopspring/decimal"
)

func TestRemoteQuery(t *testing.T) {
	var got queryRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ai-query/" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{
			"message": "Here are some jackets",
			"machine_readable_json": {"intent": "search", "search_query": "jacket", "quantity": "2"},
			"products": [{"product_id": 5, "product_name": "Denim Jacket", "product_price": "2499.00"}]
		}`))
	}))
	defer server.Close()

	remote := NewRemote(server.URL, time.Second, server.Client())
	result, err := remote.Query(context.Background(), "show me jackets", "7")
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if got.Prompt != "show me jackets" || got.UserID != "7" {
		t.Fatalf("unexpected request body: %+v", got)
	}
	if result.Intent == nil || result.Intent.Category != constants.IntentSearch || result.Intent.Quantity != 2 {
		t.Fatalf("unexpected intent: %+v", result.Intent)
	}
	if len(result.Candidates) != 1 || result.Candidates[0].ID != "5" || !result.Candidates[0].Price.Equal(decimal.NewFromInt(2499)) {
		t.Fatalf("unexpected candidates: %+v", result.Candidates)
	}
	if !result.NewSearch() {
		t.Fatalf("search result should replace candidates")
	}
}

func TestRemoteQueryFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	remote := NewRemote(server.URL, time.Second, server.Client())
	if _, err := remote.Query(context.Background(), "hi", "7"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("want unavailable, got %v", err)
	}
	if _, err := NewRemote("", 0, nil).Query(context.Background(), "hi", "7"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("empty base url should be unavailable, got %v", err)
	}
}

func TestRemoteQueryWithoutIntent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message": "Hello!", "machine_readable_json": null, "products": []}`))
	}))
	defer server.Close()

	result, err := NewRemote(server.URL, time.Second, server.Client()).Query(context.Background(), "hello", "7")
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if result.Intent != nil || result.NewSearch() || result.Message != "Hello!" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

type fakeGenerator struct {
	reply string
	err   error
	calls int
}

func (f *fakeGenerator) Generate(_ context.Context, system, prompt string) (string, error) {
	f.calls++
	return f.reply, f.err
}

type fakeSearcher struct {
	input    service.ProductSearchInput
	products []models.Product
	err      error
}

func (f *fakeSearcher) Search(input service.ProductSearchInput) ([]models.Product, error) {
	f.input = input
	return f.products, f.err
}

func TestGeminiSearchUsesCatalog(t *testing.T) {
	gen := &fakeGenerator{reply: "```json\n{\"message\":\"\",\"machine_readable_json\":{\"intent\":\"Search\",\"search_query\":\"red dress\"}}\n```"}
	searcher := &fakeSearcher{products: []models.Product{
		{ID: 3, Name: "Red Midi Dress", Price: models.NewMoneyFromDecimal(decimal.NewFromInt(1899)), Size: "S"},
		{ID: 4, Name: "Red Wrap Dress", Price: models.NewMoneyFromDecimal(decimal.NewFromInt(2199))},
	}}
	g := NewGemini(gen, searcher, 12)

	result, err := g.Query(context.Background(), "find me a red dress", "7")
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if searcher.input.Query != "red dress" || searcher.input.Limit != 12 {
		t.Fatalf("unexpected search input: %+v", searcher.input)
	}
	if len(result.Candidates) != 2 || result.Candidates[0].ID != "3" || result.Candidates[0].Size != "S" {
		t.Fatalf("unexpected candidates: %+v", result.Candidates)
	}
	if result.Message == "" {
		t.Fatalf("empty model message should get a default")
	}
}

func TestGeminiNonSearchSkipsCatalog(t *testing.T) {
	gen := &fakeGenerator{reply: `{"message":"Adding it","machine_readable_json":{"intent":"cart","action":"add","product_reference":"2nd"}}`}
	searcher := &fakeSearcher{}
	result, err := NewGemini(gen, searcher, 0).Query(context.Background(), "add the second one", "7")
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if searcher.input.Query != "" {
		t.Fatalf("catalog should not be searched for cart intents")
	}
	if result.Intent == nil || result.Intent.ProductReference != "2nd" || result.NewSearch() {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestGeminiFailures(t *testing.T) {
	if _, err := NewGemini(&fakeGenerator{err: errors.New("quota")}, nil, 0).Query(context.Background(), "hi", "7"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("generator error should be unavailable, got %v", err)
	}
	if _, err := NewGemini(&fakeGenerator{reply: "not json"}, nil, 0).Query(context.Background(), "hi", "7"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("garbage reply should be unavailable, got %v", err)
	}
	if _, err := NewGemini(nil, nil, 0).Query(context.Background(), "hi", "7"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("missing generator should be unavailable, got %v", err)
	}
}
