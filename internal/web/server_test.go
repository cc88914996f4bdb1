package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mkosler/linkcast/internal/config"
	"github.com/mkosler/linkcast/internal/domain"
	"github.com/mkosler/linkcast/internal/store"
)

func testServer(t *testing.T) (*Server, string) {
	t.Helper()
	settings := store.Defaults()
	settings.Room.SetRoom("Ark", "pw", domain.PolicyInclude)
	settings.Room.SetHost("gm", "DM")
	settings.Room.AddPlayer("alice", "Rogue")
	path := filepath.Join(t.TempDir(), "settings.json")
	return New(settings, path, config.OBSOverrides{}), path
}

func do(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func TestGetRoom(t *testing.T) {
	s, _ := testServer(t)
	w := do(t, s, http.MethodGet, "/api/room", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatalf("body: %v", err)
	}
	if string(doc["room"]) != `"Ark"` {
		t.Errorf("room = %s", doc["room"])
	}
}

func TestGetLinks(t *testing.T) {
	s, _ := testServer(t)
	w := do(t, s, http.MethodGet, "/api/links", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body)
	}
	var resp struct {
		Director string        `json:"director"`
		Players  []playerLinks `json:"players"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("body: %v", err)
	}
	if !strings.Contains(resp.Director, "room=Ark") || !strings.Contains(resp.Director, "director") {
		t.Errorf("director link = %q", resp.Director)
	}
	if len(resp.Players) != 1 || resp.Players[0].Username != "alice" {
		t.Fatalf("players = %+v", resp.Players)
	}
	if !strings.Contains(resp.Players[0].SoloLink, "solo") {
		t.Errorf("solo link = %q", resp.Players[0].SoloLink)
	}
}

func TestGetLinksUnconfiguredRoom(t *testing.T) {
	settings := store.Defaults()
	s := New(settings, filepath.Join(t.TempDir(), "settings.json"), config.OBSOverrides{})
	w := do(t, s, http.MethodGet, "/api/links", "")
	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", w.Code)
	}
}

func TestAddAndRemovePlayerPersists(t *testing.T) {
	s, path := testServer(t)

	w := do(t, s, http.MethodPost, "/api/players", `{"username": "bob", "character": "Mage"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("add status = %d: %s", w.Code, w.Body)
	}

	saved, err := store.Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if _, err := saved.Room.Player("bob"); err != nil {
		t.Errorf("bob not persisted: %v", err)
	}

	w = do(t, s, http.MethodDelete, "/api/players/alice", "")
	if w.Code != http.StatusOK {
		t.Fatalf("remove status = %d", w.Code)
	}
	saved, err = store.Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if _, err := saved.Room.Player("alice"); err == nil {
		t.Error("alice still in persisted roster")
	}
}

func TestAddPlayerRequiresUsername(t *testing.T) {
	s, _ := testServer(t)
	w := do(t, s, http.MethodPost, "/api/players", `{"character": "Mage"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestPutRoom(t *testing.T) {
	s, path := testServer(t)
	body := `{"room": "Keep", "password": "pw2", "exclude_password": true, "host_username": "dm"}`
	w := do(t, s, http.MethodPut, "/api/room", body)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body)
	}

	saved, err := store.Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if saved.Room.Name != "Keep" || saved.Room.Policy != domain.PolicyExclude {
		t.Errorf("room = %+v", saved.Room)
	}
	// Replacing room attributes keeps the roster.
	if _, err := saved.Room.Player("alice"); err != nil {
		t.Errorf("roster lost on room update: %v", err)
	}
}
