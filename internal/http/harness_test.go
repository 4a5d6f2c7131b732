package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"

	"storedash/internal/config"
	"storedash/internal/domain"
	"storedash/internal/http/handlers"
	"storedash/internal/querycache"
	"storedash/internal/repos"
)

const (
	testSID   = "sid-test"
	testToken = "tok"
	goodPass  = "secret"
)

// backend fakes the store REST API the dashboard talks to.
type backend struct {
	mu         sync.Mutex
	products   []domain.Product
	categories []domain.Category
	orders     []domain.Order
	nextID     int

	failMutations  bool
	productsDown   bool
	categoriesDown bool
	ordersDown     bool

	productGets int
	posts       int
	auth        []string
	patches     []string
	puts        map[string]string // id -> quantity sent
}

func (b *backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.auth = append(b.auth, r.Header.Get("Authorization"))
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/owner-auth/login":
		var in struct{ Email, Password string }
		_ = json.NewDecoder(r.Body).Decode(&in)
		if in.Password != goodPass {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"Invalid email or password"}`))
			return
		}
		_, _ = w.Write([]byte(`{"token":"tok-new"}`))
		return
	case r.Method == http.MethodGet && r.URL.Path == "/products/products":
		b.productGets++
		if b.productsDown {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"detail":"catalog offline"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(orEmpty(b.products))
		return
	case r.Method == http.MethodGet && r.URL.Path == "/category/categories":
		if b.categoriesDown {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"detail":"categories offline"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(orEmpty(b.categories))
		return
	case r.Method == http.MethodGet && r.URL.Path == "/orders/":
		if b.ordersDown {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"detail":"orders offline"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(orEmpty(b.orders))
		return
	}

	if b.failMutations {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"detail":"database unavailable"}`))
		return
	}

	const prefix = "/products/products/"
	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/products/products":
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			w.WriteHeader(http.StatusUnprocessableEntity)
			return
		}
		b.posts++
		b.nextID++
		b.products = append(b.products, productFrom(r, "p"+strconv.Itoa(b.nextID)))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{}`))
	case r.Method == http.MethodPut && strings.HasPrefix(r.URL.Path, prefix):
		id := strings.TrimPrefix(r.URL.Path, prefix)
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			w.WriteHeader(http.StatusUnprocessableEntity)
			return
		}
		if b.puts == nil {
			b.puts = map[string]string{}
		}
		b.puts[id] = r.FormValue("quantity")
		for i, p := range b.products {
			if p.ID == id {
				b.products[i] = productFrom(r, id)
				_, _ = w.Write([]byte(`{}`))
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Product not found"}`))
	case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, prefix):
		id := strings.TrimPrefix(r.URL.Path, prefix)
		for i, p := range b.products {
			if p.ID == id {
				b.products = append(b.products[:i], b.products[i+1:]...)
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Product not found"}`))
	case r.Method == http.MethodPost && r.URL.Path == "/category/categories":
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			w.WriteHeader(http.StatusUnprocessableEntity)
			return
		}
		b.nextID++
		b.categories = append(b.categories, domain.Category{
			ID:          "c" + strconv.Itoa(b.nextID),
			Name:        r.FormValue("name"),
			Description: r.FormValue("description"),
		})
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{}`))
	case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/category/categories/"):
		id := strings.TrimPrefix(r.URL.Path, "/category/categories/")
		for i, c := range b.categories {
			if c.ID == id {
				b.categories = append(b.categories[:i], b.categories[i+1:]...)
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Category not found"}`))
	case r.Method == http.MethodPatch && strings.HasPrefix(r.URL.Path, "/orders/"):
		id := strings.TrimPrefix(r.URL.Path, "/orders/")
		status := r.URL.Query().Get("status")
		b.patches = append(b.patches, id+"="+status)
		for i, o := range b.orders {
			if o.OrderID == id {
				b.orders[i].Status = status
			}
		}
		_, _ = w.Write([]byte(`{}`))
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Not Found"}`))
	}
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func productFrom(r *http.Request, id string) domain.Product {
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

func (b *backend) sawAuth(want string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, a := range b.auth {
		if a == want {
			return true
		}
	}
	return false
}

func (b *backend) gets() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.productGets
}

func (b *backend) postCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.posts
}

type harness struct {
	app  *fiber.App
	api  *backend
	db   *sqlx.DB
	csrf string
}

func testOptions() handlers.AppOptions {
	return handlers.AppOptions{RateLimit: 1000, LoginLimit: 100}
}

// newHarness wires the real app against a fake backend and an in-memory
// store. Pass a nil backend to point the app at an address nothing listens on.
func newHarness(t *testing.T, api *backend, opts handlers.AppOptions) *harness {
	t.Helper()
	apiURL := "http://127.0.0.1:1"
	if api != nil {
		srv := httptest.NewServer(api)
		t.Cleanup(srv.Close)
		apiURL = srv.URL
	}
	cfg := config.Config{
		APIURL:       apiURL,
		OrdersAPIURL: apiURL,
		ShopName:     "Test Hardware",
		DBDSN:        ":memory:",
	}
	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	deps := handlers.NewDeps(db, cfg, querycache.New())
	engine := handlers.NewEngine("../../web/templates")
	return &harness{app: handlers.NewApp(deps, engine, opts), api: api, db: db}
}

// signIn binds the test session to an owner token.
func (h *harness) signIn(t *testing.T) {
	t.Helper()
	if err := repos.NewSessionRepo(h.db).Bind(testSID, testToken); err != nil {
		t.Fatalf("bind session: %v", err)
	}
}

func extractCookie(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

// token fetches a CSRF token the way a browser would, from the login page.
func (h *harness) token(t *testing.T) string {
	t.Helper()
	if h.csrf != "" {
		return h.csrf
	}
	resp, err := h.app.Test(httptest.NewRequest("GET", "/login", nil))
	if err != nil {
		t.Fatal(err)
	}
	h.csrf = extractCookie(resp, "csrf_")
	if h.csrf == "" {
		t.Fatal("csrf token missing")
	}
	return h.csrf
}

func (h *harness) do(t *testing.T, req *http.Request) *http.Response {
	t.Helper()
	req.AddCookie(&http.Cookie{Name: "sid", Value: testSID})
	if h.csrf != "" {
		req.AddCookie(&http.Cookie{Name: "csrf_", Value: h.csrf})
	}
	resp, err := h.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", req.Method, req.URL.Path, err)
	}
	return resp
}

func (h *harness) get(t *testing.T, path string) *http.Response {
	t.Helper()
	return h.do(t, httptest.NewRequest("GET", path, nil))
}

// post submits a urlencoded form with a valid CSRF token.
func (h *harness) post(t *testing.T, path string, form url.Values) *http.Response {
	t.Helper()
	if form == nil {
		form = url.Values{}
	}
	form.Set("csrf", h.token(t))
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return h.do(t, req)
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(b)
}

func flashOf(resp *http.Response) string {
	v, _ := url.QueryUnescape(extractCookie(resp, "flash"))
	return v
}

func expectRedirect(t *testing.T, resp *http.Response, to string) {
	t.Helper()
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected 302, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != to {
		t.Fatalf("expected redirect to %s, got %q", to, loc)
	}
}

type logEntry struct {
	Level  string         `json:"level"`
	Action string         `json:"action"`
	Fields map[string]any `json:"fields"`
}

type lockedBuf struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (l *lockedBuf) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.b.Write(p)
}

// captureLogs collects the JSON log lines fn produces.
func captureLogs(t *testing.T, fn func()) []logEntry {
	t.Helper()
	buf := &lockedBuf{}
	oldW := log.Writer()
	oldFlags := log.Flags()
	log.SetOutput(buf)
	log.SetFlags(0)
	defer func() {
		log.SetOutput(oldW)
		log.SetFlags(oldFlags)
	}()

	fn()

	buf.mu.Lock()
	defer buf.mu.Unlock()
	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.b.String()), "\n") {
		var e logEntry
		if err := json.Unmarshal([]byte(strings.TrimSpace(line)), &e); err == nil && e.Action != "" {
			entries = append(entries, e)
		}
	}
	return entries
}

func findLog(entries []logEntry, action string) (logEntry, bool) {
	for _, e := range entries {
		if e.Action == action {
			return e, true
		}
	}
	return logEntry{}, false
}
