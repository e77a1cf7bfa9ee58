package web

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/alexedwards/scs"
	"github.com/go-chi/chi/v5"
	"github.com/warblerhq/warbler/internal/config"
	"github.com/warblerhq/warbler/internal/db"
	dbimpl "github.com/warblerhq/warbler/internal/db/impl"
	"github.com/warblerhq/warbler/internal/initialization"
	"github.com/warblerhq/warbler/internal/mocks"
	core "github.com/warblerhq/warbler/internal/service/impl"
	"github.com/warblerhq/warbler/internal/state"
	"go.uber.org/mock/gomock"
)

var (
	testDB  db.DB
	testCfg = config.Configuration{
		SessionKey:        "u46IpCV9y5Vlur8YvODJEhgOY8m9JVE4",
		ReservedUsernames: []string{"admin", "support", "api", "root"},
	}
)

func TestMain(m *testing.M) {
	d, err := initialization.OpenDB("file:webtest?mode=memory&cache=shared")
	if err != nil {
		return
	}
	d.SetMaxOpenConns(1)

	if err = initialization.SetupDB(d, "../../migrations", "webtest"); err != nil {
		return
	}
	testDB = dbimpl.New(testCfg, d)

	gob.Register(Session{})
	m.Run()
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

// newServer wires the full stack over the shared test database and returns a client
// whose cookie jar carries the login session between requests.
func newServer(t *testing.T) (*httptest.Server, *http.Client) {
	t.Helper()
	return newServerWith(t, testCfg)
}

func newServerWith(t *testing.T, cfg config.Configuration) (*httptest.Server, *http.Client) {
	t.Helper()

	ctrl := gomock.NewController(t)
	notifier := mocks.NewMockNotifier(ctrl)
	notifier.EXPECT().
		Notify(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).AnyTimes()

	svc := core.New(&state.State{DB: testDB, Config: cfg}, notifier)
	manager := scs.NewCookieManager(cfg.SessionKey)

	handler := New(&cfg, svc, manager)
	router := chi.NewRouter()
	handler.Mount(router)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	return server, &http.Client{Jar: jar}
}

func doJSON(t *testing.T, client *http.Client, method, url string, body any) (int, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
	}

	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := client.Do(req)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	defer res.Body.Close()

	var payload map[string]any
	if err = json.NewDecoder(res.Body).Decode(&payload); err != nil {
		t.Fatalf("unexpected error decoding response: %s", err)
	}
	return res.StatusCode, payload
}

func signUp(t *testing.T, client *http.Client, base, username string) {
	t.Helper()

	status, payload := doJSON(t, client, http.MethodPost, base+"/auth/register", map[string]any{
		"name":     "Test " + username,
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
	})
	if status != http.StatusCreated {
		t.Fatalf("expected 201 registering %s, got %d: %v", username, status, payload)
	}

	status, payload = doJSON(t, client, http.MethodPost, base+"/auth/login", map[string]any{
		"emailOrUsername": username,
		"password":        "password123",
	})
	if status != http.StatusOK {
		t.Fatalf("expected 200 logging in %s, got %d: %v", username, status, payload)
	}
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	server, client := newServer(t)

	for _, route := range []string{"/tweets/feed", "/user/me", "/notifications/"} {
		status, payload := doJSON(t, client, http.MethodGet, server.URL+route, nil)
		if status != http.StatusUnauthorized {
			t.Errorf("expected 401 for %s without session, got %d", route, status)
		}
		if success, _ := payload["success"].(bool); success {
			t.Errorf("expected success=false for %s, got %v", route, payload)
		}
	}
}

func TestTweetLifecycleOverHTTP(t *testing.T) {
	server, client := newServer(t)
	signUp(t, client, server.URL, "httpuser")

	status, payload := doJSON(t, client, http.MethodPost, server.URL+"/tweets/", map[string]any{
		"content": "hello over http",
	})
	if status != http.StatusCreated {
		t.Fatalf("expected 201 creating tweet, got %d: %v", status, payload)
	}
	tweet, ok := payload["tweet"].(map[string]any)
	if !ok {
		t.Fatalf("expected tweet in payload, got %v", payload)
	}
	if tweet["content"] != "hello over http" {
		t.Errorf("unexpected tweet content %v", tweet["content"])
	}
	id := int64(tweet["id"].(float64))

	status, payload = doJSON(t, client, http.MethodPut, server.URL+"/tweets/"+itoa(id)+"/like", nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200 liking tweet, got %d: %v", status, payload)
	}
	liked := payload["tweet"].(map[string]any)
	if liked["liked"] != true || liked["likes"] != float64(1) {
		t.Errorf("expected liked tweet with 1 like, got %v", liked)
	}

	status, payload = doJSON(t, client, http.MethodGet, server.URL+"/tweets/feed", nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200 fetching feed, got %d: %v", status, payload)
	}
	tweets := payload["tweets"].([]any)
	if len(tweets) != 1 {
		t.Fatalf("expected 1 feed tweet, got %d", len(tweets))
	}
	if tweets[0].(map[string]any)["liked"] != true {
		t.Errorf("expected feed tweet annotated as liked, got %v", tweets[0])
	}

	status, payload = doJSON(t, client, http.MethodDelete, server.URL+"/tweets/"+itoa(id), nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200 deleting tweet, got %d: %v", status, payload)
	}
	status, _ = doJSON(t, client, http.MethodGet, server.URL+"/tweets/"+itoa(id), nil)
	if status != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", status)
	}
}

func TestFollowOverHTTP(t *testing.T) {
	server, client := newServer(t)
	signUp(t, client, server.URL, "httpfollowee")

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	other := &http.Client{Jar: jar}
	signUp(t, other, server.URL, "httpfollower")

	status, payload := doJSON(t, other, http.MethodPost, server.URL+"/user/httpfollowee/follow", nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200 following, got %d: %v", status, payload)
	}

	status, payload = doJSON(t, other, http.MethodGet, server.URL+"/user/httpfollowee/is-following", nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", status, payload)
	}
	if payload["isFollowing"] != true {
		t.Errorf("expected isFollowing=true, got %v", payload["isFollowing"])
	}

	status, payload = doJSON(t, client, http.MethodGet, server.URL+"/user/httpfollowee", nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", status, payload)
	}
	user := payload["user"].(map[string]any)
	if user["followers"] != float64(1) {
		t.Errorf("expected 1 follower, got %v", user["followers"])
	}
	// Public profiles never expose the email address.
	if _, leaked := user["email"]; leaked {
		t.Error("public profile leaked the email address")
	}

	status, payload = doJSON(t, other, http.MethodPost, server.URL+"/user/httpfollower/follow", nil)
	if status != http.StatusBadRequest {
		t.Errorf("expected 400 following yourself, got %d: %v", status, payload)
	}
}

func TestPagingParamsClamped(t *testing.T) {
	server, client := newServer(t)
	signUp(t, client, server.URL, "httppager")

	status, payload := doJSON(t, client, http.MethodGet,
		server.URL+"/tweets/feed?page=0&limit=500", nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", status, payload)
	}

	meta := payload["meta"].(map[string]any)
	if meta["page"] != float64(1) {
		t.Errorf("expected page clamped to 1, got %v", meta["page"])
	}
	if meta["limit"] != float64(100) {
		t.Errorf("expected limit clamped to 100, got %v", meta["limit"])
	}
}

// Debug mode adds the request logging middleware; the surface must behave the same.
func TestDebugModeServesRequests(t *testing.T) {
	cfg := testCfg
	cfg.Debug = true
	server, client := newServerWith(t, cfg)

	status, payload := doJSON(t, client, http.MethodGet, server.URL+"/tweets/trending", nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200 with debug logging enabled, got %d: %v", status, payload)
	}
	if success, _ := payload["success"].(bool); !success {
		t.Errorf("expected success envelope, got %v", payload)
	}
}

func TestUnknownProfileIsNotFound(t *testing.T) {
	server, client := newServer(t)

	status, payload := doJSON(t, client, http.MethodGet, server.URL+"/user/nobodyhome", nil)
	if status != http.StatusNotFound {
		t.Errorf("expected 404, got %d: %v", status, payload)
	}
}
