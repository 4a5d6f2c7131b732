package services_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"storedash/internal/apiclient"
	"storedash/internal/domain"
	"storedash/internal/querycache"
)

// fakeAPI is an in-memory stand-in for the store backend.
type fakeAPI struct {
	mu         sync.Mutex
	products   []domain.Product
	orders     []domain.Order
	nextID     int
	fail       bool // every mutation answers 500
	ordersDown bool
	gets       int
	patches    []string
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/products/products":
		f.gets++
		_ = json.NewEncoder(w).Encode(f.products)
		return
	case r.Method == http.MethodGet && r.URL.Path == "/orders/":
		f.gets++
		if f.ordersDown {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("orders offline"))
			return
		}
		_ = json.NewEncoder(w).Encode(f.orders)
		return
	}

	if f.fail {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"detail":"database unavailable"}`))
		return
	}

	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/products/products":
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			w.WriteHeader(http.StatusUnprocessableEntity)
			return
		}
		f.nextID++
		f.products = append(f.products, productFromForm(r, strconv.Itoa(100+f.nextID)))
		w.WriteHeader(http.StatusCreated)
	case r.Method == http.MethodPut && strings.HasPrefix(r.URL.Path, "/products/products/"):
		id := strings.TrimPrefix(r.URL.Path, "/products/products/")
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			w.WriteHeader(http.StatusUnprocessableEntity)
			return
		}
		for i, p := range f.products {
			if p.ID == id {
				f.products[i] = productFromForm(r, id)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Product not found"}`))
	case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/products/products/"):
		id := strings.TrimPrefix(r.URL.Path, "/products/products/")
		for i, p := range f.products {
			if p.ID == id {
				f.products = append(f.products[:i], f.products[i+1:]...)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
	case r.Method == http.MethodPatch && strings.HasPrefix(r.URL.Path, "/orders/"):
		id := strings.TrimPrefix(r.URL.Path, "/orders/")
		status := r.URL.Query().Get("status")
		f.patches = append(f.patches, id+"="+status)
		for i, o := range f.orders {
			if o.OrderID == id {
				f.orders[i].Status = status
			}
		}
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func productFromForm(r *http.Request, id string) domain.Product {
	price, _ := strconv.ParseFloat(r.FormValue("price"), 64)
	qty, _ := strconv.Atoi(r.FormValue("quantity"))
	return domain.Product{
		ID:       id,
		Name:     r.FormValue("name"),
		Price:    price,
		Quantity: qty,
		Category: r.FormValue("category"),
		Brand:    r.FormValue("brand"),
	}
}

func newFake(t *testing.T, products ...domain.Product) (*fakeAPI, *apiclient.Client, *querycache.Cache) {
	t.Helper()
	f := &fakeAPI{products: products}
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	return f, apiclient.New(srv.URL), querycache.New()
}
