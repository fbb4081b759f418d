package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ideadrop/api/internal/handler"
)

func TestIntegration_RegisterCreateUpdateRefreshDeleteLogout(t *testing.T) {
	auth, ideas := newTestServices(t)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, auth, ideas, false)

	srv := httptest.NewServer(mux)
	defer srv.Close()

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("create cookie jar: %v", err)
	}
	client := &http.Client{Jar: jar}

	post := func(path, body, token string) *http.Response {
		t.Helper()
		req, err := http.NewRequest(http.MethodPost, srv.URL+path, strings.NewReader(body))
		if err != nil {
			t.Fatalf("new request: %v", err)
		}
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		resp, err := client.Do(req)
		if err != nil {
			t.Fatalf("POST %s: %v", path, err)
		}
		return resp
	}

	decode := func(resp *http.Response) map[string]any {
		t.Helper()
		defer resp.Body.Close()
		var body map[string]any
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		return body
	}

	// 1. Register.
	resp := post("/api/auth/register", `{"name":"Flow","email":"flow@example.com","password":"password123"}`, "")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d", resp.StatusCode)
	}
	accessToken := decode(resp)["accessToken"].(string)

	// 2. Create an idea with the access token.
	resp = post("/api/ideas", `{"title":"Flow idea","summary":"S","description":"D","tags":"a,b"}`, accessToken)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create idea: expected 201, got %d", resp.StatusCode)
	}
	ideaID := decode(resp)["id"].(string)

	// 3. List publicly.
	listResp, err := client.Get(srv.URL + "/api/ideas")
	if err != nil {
		t.Fatalf("GET /api/ideas: %v", err)
	}
	var listed []map[string]any
	if err := json.NewDecoder(listResp.Body).Decode(&listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	listResp.Body.Close()
	if len(listed) != 1 || listed[0]["title"] != "Flow idea" {
		t.Fatalf("expected one listed idea, got %v", listed)
	}

	// 4. Refresh: the jar carries the refresh cookie from registration.
	resp = post("/api/auth/refresh", "", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("refresh: expected 200, got %d", resp.StatusCode)
	}
	freshToken := decode(resp)["accessToken"].(string)
	if freshToken == "" {
		t.Fatal("expected a fresh access token")
	}

	// 5. Update with the refreshed token.
	req, err := http.NewRequest(http.MethodPut, srv.URL+"/api/ideas/"+ideaID,
		strings.NewReader(`{"title":"Updated","summary":"S2","description":"D2","tags":[]}`))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+freshToken)
	updateResp, err := client.Do(req)
	if err != nil {
		t.Fatalf("PUT idea: %v", err)
	}
	if updateResp.StatusCode != http.StatusOK {
		t.Fatalf("update: expected 200, got %d", updateResp.StatusCode)
	}
	updateResp.Body.Close()

	// 6. Delete.
	req, err = http.NewRequest(http.MethodDelete, srv.URL+"/api/ideas/"+ideaID, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+freshToken)
	deleteResp, err := client.Do(req)
	if err != nil {
		t.Fatalf("DELETE idea: %v", err)
	}
	if deleteResp.StatusCode != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", deleteResp.StatusCode)
	}
	deleteResp.Body.Close()

	// 7. Logout clears the refresh cookie; refresh now fails.
	resp = post("/api/auth/logout", "", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = post("/api/auth/refresh", "", "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("refresh after logout: expected 401, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}
