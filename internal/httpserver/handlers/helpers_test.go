package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/skulk-project/skulk/internal/account"
	"github.com/skulk-project/skulk/internal/health"
	"github.com/skulk-project/skulk/internal/httpserver/deps"
	"github.com/skulk-project/skulk/internal/httpserver/routes"
	"github.com/skulk-project/skulk/internal/launcher"
	"github.com/skulk-project/skulk/internal/logger"
	"github.com/skulk-project/skulk/internal/probe"
	"github.com/skulk-project/skulk/internal/workspace"
)

// envelope mirrors the wire format with data left raw for per-test
// decoding.
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type fakeLauncher struct {
	runningDirs  map[string]bool
	startOutcome launcher.Outcome
	startErr     error
	stopOutcome  launcher.Outcome
	stopErr      error
	startedIDs   []string
	skippedIDs   []string
}

func (f *fakeLauncher) Start(acc account.Account) (launcher.Outcome, error) {
	return f.startOutcome, f.startErr
}

func (f *fakeLauncher) Stop(acc account.Account) (launcher.Outcome, error) {
	return f.stopOutcome, f.stopErr
}

func (f *fakeLauncher) Running(acc account.Account) bool {
	return f.runningDirs[acc.ProfileDir]
}

func (f *fakeLauncher) StartAllAutostart(accounts []account.Account) ([]string, []string) {
	return f.startedIDs, f.skippedIDs
}

type fakeClipboard struct {
	content  string
	readErr  error
	writeErr error
}

func (f *fakeClipboard) Read() (string, error) {
	if f.readErr != nil {
		return "", f.readErr
	}
	return f.content, nil
}

func (f *fakeClipboard) Write(content string) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.content = content
	return nil
}

// testEnv wires the full route table over a temp workspace. The
// session processes live in a fake probe so tests can degrade the
// stack by terminating entries.
type testEnv struct {
	router       chi.Router
	store        *account.Store
	ws           *workspace.Workspace
	launcher     *fakeLauncher
	clipboard    *fakeClipboard
	sessionProcs *probe.Fake
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ws := workspace.New(t.TempDir())
	store := account.NewStore(ws)
	fl := &fakeLauncher{runningDirs: map[string]bool{}}
	fc := &fakeClipboard{}
	procs := probe.NewFake(
		"/usr/bin/Xvnc :1 -geometry 1920x1080",
		"/usr/bin/websockify --web /usr/share/novnc 5901 localhost:5900",
	)

	r := chi.NewRouter()
	routes.Mount(r, deps.Deps{
		Logger:    logger.NewNop(),
		Store:     store,
		Launcher:  fl,
		Clipboard: fc,
		Health:    health.NewChecker(procs, ":1", 5901),
		Workspace: ws,
	})

	return &testEnv{
		router:       r,
		store:        store,
		ws:           ws,
		launcher:     fl,
		clipboard:    fc,
		sessionProcs: procs,
	}
}

// do runs one request through the router and decodes the envelope.
func (e *testEnv) do(t *testing.T, method, path string, body interface{}) (int, envelope) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		rd = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, rd)
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("response is not an envelope: %v: %s", err, rec.Body.String())
	}
	return rec.Code, env
}

// doRaw is do with a verbatim body, for malformed payloads.
func (e *testEnv) doRaw(t *testing.T, method, path, body string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("response is not an envelope: %v: %s", err, rec.Body.String())
	}
	return rec.Code, env
}

func decodeData(t *testing.T, env envelope, target interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, target); err != nil {
		t.Fatalf("decoding data: %v: %s", err, env.Data)
	}
}

// createAccount seeds one account through the store and returns it.
func (e *testEnv) createAccount(t *testing.T, name string) account.Account {
	t.Helper()
	acc, err := e.store.Create(account.Payload{Name: &name})
	if err != nil {
		t.Fatalf("seeding account: %v", err)
	}
	return *acc
}
