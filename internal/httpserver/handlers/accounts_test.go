package handlers_test

import (
	"encoding/json"
	"net/http"
	"os"
	"regexp"
	"testing"

	"github.com/skulk-project/skulk/internal/account"
	"github.com/skulk-project/skulk/internal/profile"
)

func TestAccountCreate(t *testing.T) {
	e := newTestEnv(t)

	status, env := e.do(t, http.MethodPost, "/api/accounts", map[string]interface{}{
		"name":      "Work",
		"autostart": true,
	})
	if status != http.StatusOK || env.Code != 0 {
		t.Fatalf("status = %d, code = %d, message = %q", status, env.Code, env.Message)
	}

	var data struct {
		Account map[string]json.RawMessage `json:"account"`
	}
	decodeData(t, env, &data)

	var id string
	if err := json.Unmarshal(data.Account["id"], &id); err != nil {
		t.Fatal(err)
	}
	if !regexp.MustCompile(`^acc-\d+-[0-9a-f]{6}$`).MatchString(id) {
		t.Errorf("id = %q, not in expected form", id)
	}
	if string(data.Account["version"]) != "1" {
		t.Errorf("version = %s, want 1", data.Account["version"])
	}
	if _, ok := data.Account["running"]; ok {
		t.Error("create response must not include running")
	}

	// Profile must be provisioned immediately.
	accounts, err := e.store.Load()
	if err != nil || len(accounts) != 1 {
		t.Fatalf("store holds %d accounts (err %v), want 1", len(accounts), err)
	}
	if _, err := os.Stat(profile.UserJSPath(accounts[0].ProfileDir)); err != nil {
		t.Errorf("user.js not provisioned: %v", err)
	}
}

func TestAccountCreate_Invalid(t *testing.T) {
	e := newTestEnv(t)

	status, env := e.do(t, http.MethodPost, "/api/accounts", map[string]interface{}{
		"name": "   ",
	})
	if status != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", status)
	}
	if env.Code != 1001 || env.Message != "name is required" {
		t.Errorf("envelope = %d %q, want 1001 %q", env.Code, env.Message, "name is required")
	}
}

func TestAccountCreate_EmptyBody(t *testing.T) {
	e := newTestEnv(t)

	status, env := e.doRaw(t, http.MethodPost, "/api/accounts", "")
	if status != http.StatusBadRequest || env.Code != 1001 {
		t.Errorf("status = %d, code = %d; want 400, 1001", status, env.Code)
	}
}

func TestAccountList(t *testing.T) {
	e := newTestEnv(t)
	first := e.createAccount(t, "First")
	e.createAccount(t, "Second")
	e.launcher.runningDirs[first.ProfileDir] = true

	status, env := e.do(t, http.MethodGet, "/api/accounts", nil)
	if status != http.StatusOK || env.Code != 0 {
		t.Fatalf("status = %d, code = %d", status, env.Code)
	}

	var data struct {
		Accounts []struct {
			ID      string `json:"id"`
			Name    string `json:"name"`
			Running bool   `json:"running"`
		} `json:"accounts"`
	}
	decodeData(t, env, &data)

	if len(data.Accounts) != 2 {
		t.Fatalf("accounts = %d, want 2", len(data.Accounts))
	}
	if !data.Accounts[0].Running {
		t.Error("first account should report running")
	}
	if data.Accounts[1].Running {
		t.Error("second account should not report running")
	}
}

func TestAccountGet(t *testing.T) {
	e := newTestEnv(t)
	acc := e.createAccount(t, "Work")

	status, env := e.do(t, http.MethodGet, "/api/accounts/"+acc.ID, nil)
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}

	var data struct {
		Account struct {
			ID      string `json:"id"`
			Running bool   `json:"running"`
		} `json:"account"`
	}
	decodeData(t, env, &data)
	if data.Account.ID != acc.ID {
		t.Errorf("id = %q, want %q", data.Account.ID, acc.ID)
	}
	if data.Account.Running {
		t.Error("running = true for a never-started account")
	}
}

func TestAccountGet_NotFound(t *testing.T) {
	e := newTestEnv(t)

	status, env := e.do(t, http.MethodGet, "/api/accounts/acc-0-ffffff", nil)
	if status != http.StatusNotFound {
		t.Errorf("status = %d, want 404", status)
	}
	if env.Code != 1002 || env.Message != "account not found" {
		t.Errorf("envelope = %d %q", env.Code, env.Message)
	}
}

func TestAccountUpdate(t *testing.T) {
	e := newTestEnv(t)
	acc := e.createAccount(t, "Work")

	status, env := e.do(t, http.MethodPut, "/api/accounts/"+acc.ID, map[string]interface{}{
		"name":    "Renamed",
		"version": 1,
	})
	if status != http.StatusOK || env.Code != 0 {
		t.Fatalf("status = %d, code = %d, message = %q", status, env.Code, env.Message)
	}

	var data struct {
		Account struct {
			Name    string `json:"name"`
			Version int    `json:"version"`
			Running bool   `json:"running"`
		} `json:"account"`
	}
	decodeData(t, env, &data)
	if data.Account.Name != "Renamed" || data.Account.Version != 2 {
		t.Errorf("account = %+v, want Renamed v2", data.Account)
	}
}

func TestAccountUpdate_StaleVersion(t *testing.T) {
	e := newTestEnv(t)
	acc := e.createAccount(t, "Work")

	// First update bumps to version 2.
	if _, env := e.do(t, http.MethodPut, "/api/accounts/"+acc.ID, map[string]interface{}{
		"notes": "first", "version": 1,
	}); env.Code != 0 {
		t.Fatalf("setup update failed: %q", env.Message)
	}

	status, env := e.do(t, http.MethodPut, "/api/accounts/"+acc.ID, map[string]interface{}{
		"notes": "second", "version": 1,
	})
	if status != http.StatusConflict {
		t.Errorf("status = %d, want 409", status)
	}
	if env.Code != 1007 || env.Message != "version conflict" {
		t.Errorf("envelope = %d %q", env.Code, env.Message)
	}

	var data struct {
		ExpectedVersion int `json:"expected_version"`
		ActualVersion   int `json:"actual_version"`
	}
	decodeData(t, env, &data)
	if data.ExpectedVersion != 1 || data.ActualVersion != 2 {
		t.Errorf("conflict data = %+v, want expected 1 actual 2", data)
	}

	// The losing write must not have landed.
	accounts, _ := e.store.Load()
	if accounts[0].Notes != "first" {
		t.Errorf("notes = %q, stale write landed", accounts[0].Notes)
	}
}

func TestAccountUpdate_NoVersionSkipsCheck(t *testing.T) {
	e := newTestEnv(t)
	acc := e.createAccount(t, "Work")

	for i := 0; i < 3; i++ {
		status, env := e.do(t, http.MethodPut, "/api/accounts/"+acc.ID, map[string]interface{}{
			"notes": "pass",
		})
		if status != http.StatusOK || env.Code != 0 {
			t.Fatalf("update %d: status = %d, code = %d", i, status, env.Code)
		}
	}

	accounts, _ := e.store.Load()
	if accounts[0].Version != 4 {
		t.Errorf("version = %d, want 4 after three updates", accounts[0].Version)
	}
}

func TestAccountUpdate_NotFound(t *testing.T) {
	e := newTestEnv(t)

	status, env := e.do(t, http.MethodPut, "/api/accounts/acc-0-ffffff", map[string]interface{}{
		"name": "X",
	})
	if status != http.StatusNotFound || env.Code != 1002 {
		t.Errorf("status = %d, code = %d; want 404, 1002", status, env.Code)
	}
}

func TestAccountDelete(t *testing.T) {
	e := newTestEnv(t)
	acc := e.createAccount(t, "Work")
	if err := profile.Ensure(acc); err != nil {
		t.Fatal(err)
	}

	status, env := e.do(t, http.MethodDelete, "/api/accounts/"+acc.ID+"?delete_profile=true", nil)
	if status != http.StatusOK || env.Code != 0 {
		t.Fatalf("status = %d, code = %d", status, env.Code)
	}

	var data struct {
		Result        string `json:"result"`
		DeleteProfile bool   `json:"delete_profile"`
	}
	decodeData(t, env, &data)
	if data.Result != "deleted" || !data.DeleteProfile {
		t.Errorf("data = %+v, want deleted with delete_profile", data)
	}
	if _, err := os.Stat(acc.ProfileDir); !os.IsNotExist(err) {
		t.Error("profile dir should be removed")
	}

	// Deleting again settles as already_deleted.
	_, env = e.do(t, http.MethodDelete, "/api/accounts/"+acc.ID+"?delete_profile=true", nil)
	decodeData(t, env, &data)
	if data.Result != "already_deleted" {
		t.Errorf("result = %q, want already_deleted", data.Result)
	}
}

func TestAccountDelete_KeepsProfileByDefault(t *testing.T) {
	e := newTestEnv(t)
	acc := e.createAccount(t, "Work")
	if err := profile.Ensure(acc); err != nil {
		t.Fatal(err)
	}

	_, env := e.do(t, http.MethodDelete, "/api/accounts/"+acc.ID, nil)

	var data struct {
		Result        string `json:"result"`
		DeleteProfile bool   `json:"delete_profile"`
	}
	decodeData(t, env, &data)
	if data.Result != "deleted" || data.DeleteProfile {
		t.Errorf("data = %+v, want deleted without delete_profile", data)
	}
	if _, err := os.Stat(acc.ProfileDir); err != nil {
		t.Errorf("profile dir should survive: %v", err)
	}

	accounts, _ := e.store.Load()
	if len(accounts) != 0 {
		t.Errorf("store holds %d accounts, want 0", len(accounts))
	}
}

func TestAccountCreate_UnknownProxySchemeDropped(t *testing.T) {
	e := newTestEnv(t)

	_, env := e.do(t, http.MethodPost, "/api/accounts", map[string]interface{}{
		"name": "Proxied",
		"proxy": map[string]interface{}{
			"http": map[string]interface{}{"host": "proxy.local", "port": 3128},
			"ftp":  map[string]interface{}{"host": "ftp.local", "port": 21},
		},
	})
	if env.Code != 0 {
		t.Fatalf("create failed: %q", env.Message)
	}

	var data struct {
		Account struct {
			Proxy map[string]account.Proxy `json:"proxy"`
		} `json:"account"`
	}
	decodeData(t, env, &data)
	if _, ok := data.Account.Proxy["ftp"]; ok {
		t.Error("unknown proxy scheme should be dropped")
	}
	if data.Account.Proxy["http"].Host != "proxy.local" {
		t.Errorf("proxy.http = %+v", data.Account.Proxy["http"])
	}
}
