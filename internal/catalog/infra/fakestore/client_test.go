package fakestore

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shophub/storefront/internal/catalog/app"
)

func newTestServer(t *testing.T, routes map[string]func(w http.ResponseWriter, r *http.Request)) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	for pattern, fn := range routes {
		mux.HandleFunc(pattern, fn)
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestListProducts(t *testing.T) {
	srv := newTestServer(t, map[string]func(w http.ResponseWriter, r *http.Request){
		"/products": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"id":1,"title":"Backpack","price":109.95},{"id":2,"title":"Shirt","price":22.3}]`))
		},
	})

	client := NewClient(srv.URL, time.Second)
	products, err := client.ListProducts(context.Background())
	if err != nil {
		t.Fatalf("ListProducts failed: %v", err)
	}
	if len(products) != 2 || products[0].Title != "Backpack" {
		t.Fatalf("unexpected products: %+v", products)
	}
}

func TestGetProductNullBodyMeansNotFound(t *testing.T) {
	srv := newTestServer(t, map[string]func(w http.ResponseWriter, r *http.Request){
		"/products/999": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("null"))
		},
	})

	client := NewClient(srv.URL, time.Second)
	_, err := client.GetProduct(context.Background(), "999")
	if !errors.Is(err, app.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for null body, got %v", err)
	}
}

func TestGetProduct404(t *testing.T) {
	srv := newTestServer(t, nil)

	client := NewClient(srv.URL, time.Second)
	_, err := client.GetProduct(context.Background(), "1")
	if !errors.Is(err, app.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for 404, got %v", err)
	}
}

func TestUnexpectedStatusIsAnError(t *testing.T) {
	srv := newTestServer(t, map[string]func(w http.ResponseWriter, r *http.Request){
		"/products": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		},
	})

	client := NewClient(srv.URL, time.Second)
	if _, err := client.ListProducts(context.Background()); err == nil {
		t.Fatal("expected error for 502 response")
	}
}

func TestContextCancellationAborts(t *testing.T) {
	block := make(chan struct{})
	srv := newTestServer(t, map[string]func(w http.ResponseWriter, r *http.Request){
		"/products": func(w http.ResponseWriter, r *http.Request) {
			<-block
		},
	})
	defer close(block)

	client := NewClient(srv.URL, time.Minute)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if _, err := client.ListProducts(ctx); err == nil {
		t.Fatal("expected context timeout error")
	}
}

func TestListCategories(t *testing.T) {
	srv := newTestServer(t, map[string]func(w http.ResponseWriter, r *http.Request){
		"/products/categories": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`["electronics","jewelery"]`))
		},
	})

	client := NewClient(srv.URL, time.Second)
	cats, err := client.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("ListCategories failed: %v", err)
	}
	if len(cats) != 2 || cats[0] != "electronics" {
		t.Fatalf("unexpected categories: %v", cats)
	}
}
