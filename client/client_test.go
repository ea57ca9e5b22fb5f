package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// fakeServer returns a test server whose /graphql handler is driven by
// the given respond func, plus a client pointed at it.
func fakeServer(t *testing.T, respond func(query string, vars map[string]interface{}, r *http.Request) (string, int)) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/graphql" {
			http.NotFound(w, r)
			return
		}
		var body struct {
			Query     string                 `json:"query"`
			Variables map[string]interface{} `json:"variables"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		payload, status := respond(body.Query, body.Variables, r)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(payload))
	}))
	t.Cleanup(srv.Close)
	return New(srv.URL), srv
}

func TestLoginStoresToken(t *testing.T) {
	c, _ := fakeServer(t, func(query string, vars map[string]interface{}, r *http.Request) (string, int) {
		if !strings.Contains(query, "$input: LoginInput!") {
			t.Errorf("unexpected query: %s", query)
		}
		input, _ := vars["input"].(map[string]interface{})
		if input["email"] != "ana@example.com" {
			t.Errorf("email var = %v", input["email"])
		}
		return `{"data":{"login":{"token":"tok-123","user":{"id":"u1","email":"ana@example.com","name":"Ana","role":"ADMIN","createdAt":"2026-01-02T15:04:05Z"}}}}`, http.StatusOK
	})

	payload, err := c.Login(context.Background(), "ana@example.com", "secret-password")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if payload.Token != "tok-123" {
		t.Errorf("token = %q, want tok-123", payload.Token)
	}
	if payload.User.Role != RoleAdmin {
		t.Errorf("role = %q, want ADMIN", payload.User.Role)
	}
	if c.Token() != "tok-123" {
		t.Errorf("client did not store session token, got %q", c.Token())
	}
}

func TestBearerHeaderSent(t *testing.T) {
	var gotAuth string
	c, _ := fakeServer(t, func(query string, vars map[string]interface{}, r *http.Request) (string, int) {
		gotAuth = r.Header.Get("Authorization")
		return `{"data":{"me":null}}`, http.StatusOK
	})
	c.SetToken("tok-abc")

	if _, err := c.Me(context.Background()); err != nil {
		t.Fatalf("Me: %v", err)
	}
	if gotAuth != "Bearer tok-abc" {
		t.Errorf("Authorization = %q, want Bearer tok-abc", gotAuth)
	}
}

func TestMeReturnsNilWhenLoggedOut(t *testing.T) {
	c, _ := fakeServer(t, func(query string, vars map[string]interface{}, r *http.Request) (string, int) {
		return `{"data":{"me":null}}`, http.StatusOK
	})

	me, err := c.Me(context.Background())
	if err != nil {
		t.Fatalf("Me: %v", err)
	}
	if me != nil {
		t.Errorf("me = %+v, want nil", me)
	}
}

func TestAPIErrorCodes(t *testing.T) {
	cases := []struct {
		name  string
		body  string
		check func(error) bool
	}{
		{"conflict", `{"data":null,"errors":[{"message":"email already in use","extensions":{"code":"CONFLICT"}}]}`, IsConflict},
		{"not found", `{"data":null,"errors":[{"message":"team not found","extensions":{"code":"NOT_FOUND"}}]}`, IsNotFound},
		{"forbidden", `{"data":null,"errors":[{"message":"permission denied","extensions":{"code":"FORBIDDEN"}}]}`, IsForbidden},
		{"unauthorized", `{"data":null,"errors":[{"message":"authentication required","extensions":{"code":"UNAUTHORIZED"}}]}`, IsUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := fakeServer(t, func(query string, vars map[string]interface{}, r *http.Request) (string, int) {
				return tc.body, http.StatusOK
			})
			_, err := c.Teams(context.Background())
			if err == nil {
				t.Fatal("expected error")
			}
			if !tc.check(err) {
				t.Errorf("predicate failed for %v", err)
			}
		})
	}
}

func TestLogoutClearsToken(t *testing.T) {
	c, _ := fakeServer(t, func(query string, vars map[string]interface{}, r *http.Request) (string, int) {
		return `{"data":{"logout":"logged out"}}`, http.StatusOK
	})
	c.SetToken("tok-old")

	if err := c.Logout(context.Background()); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if c.Token() != "" {
		t.Errorf("token = %q after logout, want empty", c.Token())
	}
}

func TestUpdateTaskSendsExplicitNulls(t *testing.T) {
	var gotVars map[string]interface{}
	c, _ := fakeServer(t, func(query string, vars map[string]interface{}, r *http.Request) (string, int) {
		gotVars = vars
		return `{"data":{"updateTask":{"id":"t1","title":"Ship it","status":"TODO","priority":"MEDIUM","project":{"id":"p1"}}}}`, http.StatusOK
	})

	_, err := c.UpdateTask(context.Background(), "t1", UpdateTaskInput{
		ClearDueDate:  true,
		ClearAssignee: true,
	})
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}

	if gotVars["id"] != "t1" {
		t.Errorf("id var = %v, want t1", gotVars["id"])
	}
	input, _ := gotVars["input"].(map[string]interface{})
	if v, ok := input["dueDate"]; !ok || v != nil {
		t.Errorf("dueDate field = %v (present=%v), want explicit null", v, ok)
	}
	if v, ok := input["assigneeId"]; !ok || v != nil {
		t.Errorf("assigneeId field = %v (present=%v), want explicit null", v, ok)
	}
	if _, ok := input["title"]; ok {
		t.Errorf("title should be absent when unchanged")
	}
}

func TestCacheListReplacement(t *testing.T) {
	phase := 0
	c, _ := fakeServer(t, func(query string, vars map[string]interface{}, r *http.Request) (string, int) {
		if phase == 0 {
			return `{"data":{"tasks":[
				{"id":"t1","title":"First","status":"TODO","priority":"MEDIUM","project":{"id":"p1"}},
				{"id":"t2","title":"Second","status":"TODO","priority":"MEDIUM","project":{"id":"p1"}}
			]}}`, http.StatusOK
		}
		return `{"data":{"tasks":[
			{"id":"t2","title":"Second","status":"DONE","priority":"MEDIUM","project":{"id":"p1"}}
		]}}`, http.StatusOK
	})

	if _, err := c.Tasks(context.Background(), "p1"); err != nil {
		t.Fatalf("Tasks: %v", err)
	}
	if got, _ := c.CachedTasks("p1"); len(got) != 2 {
		t.Fatalf("cached %d tasks, want 2", len(got))
	}

	phase = 1
	if _, err := c.Tasks(context.Background(), "p1"); err != nil {
		t.Fatalf("Tasks refetch: %v", err)
	}
	got, ok := c.CachedTasks("p1")
	if !ok || len(got) != 1 {
		t.Fatalf("cached %d tasks after refetch, want 1", len(got))
	}
	if got[0].ID != "t2" || got[0].Status != StatusDone {
		t.Errorf("cached task = %+v, want t2 DONE", got[0])
	}
	if _, ok := c.CachedTask("t1"); ok {
		t.Errorf("t1 should be evicted after list replacement")
	}
}

func TestEvictProjectDropsTasks(t *testing.T) {
	step := 0
	c, _ := fakeServer(t, func(query string, vars map[string]interface{}, r *http.Request) (string, int) {
		step++
		if step == 1 {
			return `{"data":{"tasks":[{"id":"t1","title":"Only","status":"TODO","priority":"MEDIUM","project":{"id":"p1"}}]}}`, http.StatusOK
		}
		return `{"data":{"deleteProject":{"id":"p1","name":"Only","team":{"id":"tm1"},"tasks":[]}}}`, http.StatusOK
	})

	if _, err := c.Tasks(context.Background(), "p1"); err != nil {
		t.Fatalf("Tasks: %v", err)
	}
	if _, err := c.DeleteProject(context.Background(), "p1"); err != nil {
		t.Fatalf("DeleteProject: %v", err)
	}
	if _, ok := c.CachedTasks("p1"); ok {
		t.Errorf("task list for p1 should be gone")
	}
	if _, ok := c.CachedTask("t1"); ok {
		t.Errorf("t1 should be gone with its project")
	}
}
