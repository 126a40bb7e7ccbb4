package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/kaffecito/kaffecito/internal/session"
	"github.com/kaffecito/kaffecito/pkg/config"
	pkgerrors "github.com/kaffecito/kaffecito/pkg/errors"
	"github.com/kaffecito/kaffecito/pkg/logger"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *session.MemoryStore, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	sess := session.NewMemoryStore()
	client, err := New(config.APIConfig{BaseURL: server.URL}, sess, logger.New(logger.Options{ServiceName: "test"}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return client, sess, server
}

func TestGetInjectsBearerAndRequestID(t *testing.T) {
	var gotAuth, gotRequestID string
	router := chi.NewRouter()
	router.Get("/categorias", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	})

	client, sess, _ := newTestClient(t, router)
	if err := sess.Save(testToken(t)); err != nil {
		t.Fatalf("Save: %v", err)
	}

	var out []struct{}
	if err := client.Get(context.Background(), "/categorias", &out); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if gotAuth != "Bearer "+mustToken(sess) {
		t.Fatalf("unexpected Authorization header %q", gotAuth)
	}
	if gotRequestID == "" {
		t.Fatal("expected X-Request-ID to be set")
	}
}

func TestUnauthorizedClearsSessionAndFiresHook(t *testing.T) {
	router := chi.NewRouter()
	router.Get("/pedidos", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	client, sess, _ := newTestClient(t, router)
	if err := sess.Save(testToken(t)); err != nil {
		t.Fatalf("Save: %v", err)
	}

	var hookFired bool
	client.OnUnauthorized(func() { hookFired = true })

	err := client.Get(context.Background(), "/pedidos", nil)
	if err == nil {
		t.Fatal("expected error from 401")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized code, got %v", err)
	}
	if _, ok := sess.Token(); ok {
		t.Fatal("session should be invalidated after 401")
	}
	if !hookFired {
		t.Fatal("unauthorized hook should have fired")
	}
}

func TestBadRequestSurfacesBackendMessageVerbatim(t *testing.T) {
	router := chi.NewRouter()
	router.Post("/pedidos", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":["cantidad inválida","precio inválido"]}`))
	})

	client, _, _ := newTestClient(t, router)

	err := client.Post(context.Background(), "/pedidos", map[string]any{}, nil)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeRejected {
		t.Fatalf("expected rejection, got %v", err)
	}
	if typed.Message() != "cantidad inválida; precio inválido" {
		t.Fatalf("backend message not preserved: %q", typed.Message())
	}
}

func TestServerErrorIsGeneric(t *testing.T) {
	router := chi.NewRouter()
	router.Get("/productos", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"panic: nil pointer"}`))
	})

	client, _, _ := newTestClient(t, router)

	err := client.Get(context.Background(), "/productos", nil)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeServer {
		t.Fatalf("expected server error, got %v", err)
	}
	if typed.Message() == "panic: nil pointer" {
		t.Fatal("5xx details must not leak to the user")
	}
}

func TestNetworkFailureMapsToNetworkCode(t *testing.T) {
	client, _, server := newTestClient(t, chi.NewRouter())
	server.Close()

	err := client.Get(context.Background(), "/categorias", nil)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNetwork {
		t.Fatalf("expected network error, got %v", err)
	}
}

func testToken(t *testing.T) string {
	t.Helper()
	// header/payload/signature of an HS256 token carrying id_usuario=1;
	// the client never verifies signatures so any well-formed token works.
	return "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9." +
		"eyJpZF91c3VhcmlvIjoxfQ." +
		"3q2sU1vVb0C8tS6hH1m0iRkG1xX0w0p9cQO4mWWkGxM"
}

func mustToken(sess *session.MemoryStore) string {
	token, _ := sess.Token()
	return token
}
