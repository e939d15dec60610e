package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func jsonReq(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestRegisterAndLogin(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(jsonReq("POST", "/register",
		`{"name":"Alice","email":"alice@example.com","password":"Passw0rd!"}`), -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("register: want 200, got %d", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["message"] != "User registered successfully" {
		t.Fatalf("unexpected message: %q", body["message"])
	}

	resp, err = app.Test(jsonReq("POST", "/login",
		`{"email":"alice@example.com","password":"Passw0rd!"}`), -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: want 200, got %d", resp.StatusCode)
	}

	// Wrong password and unknown email both come back as the same 400.
	resp, err = app.Test(jsonReq("POST", "/login",
		`{"email":"alice@example.com","password":"WrongPass1!"}`), -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad password: want 400, got %d", resp.StatusCode)
	}
	resp, err = app.Test(jsonReq("POST", "/login",
		`{"email":"nobody@example.com","password":"Passw0rd!"}`), -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("unknown email: want 400, got %d", resp.StatusCode)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(jsonReq("POST", "/register",
		`{"name":"Bob","email":"bob@example.com","password":"Passw0rd!"}`), -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("first register: want 200, got %d", resp.StatusCode)
	}

	// Same address, different case: still taken.
	resp, err = app.Test(jsonReq("POST", "/register",
		`{"name":"Bobby","email":"BOB@example.com","password":"Passw0rd!"}`), -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("duplicate register: want 400, got %d", resp.StatusCode)
	}
}

func TestRegisterRejectsBadInput(t *testing.T) {
	app := newTestApp(t)
	for name, body := range map[string]string{
		"bad email":      `{"name":"A","email":"not-an-email","password":"Passw0rd!"}`,
		"short password": `{"name":"A","email":"a@example.com","password":"short"}`,
		"empty name":     `{"name":"","email":"a@example.com","password":"Passw0rd!"}`,
		"not json":       `title=x`,
	} {
		resp, err := app.Test(jsonReq("POST", "/register", body), -1)
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s: want 400, got %d", name, resp.StatusCode)
		}
	}
}
