package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/geotrace/geolocation-api/internal/core/domain"
	"github.com/geotrace/geolocation-api/internal/core/ports"
)

type stubHistoryService struct {
	listFn   func(ctx context.Context, userID string) ([]*domain.History, error)
	addFn    func(ctx context.Context, input ports.AddHistoryInput) (*domain.History, error)
	deleteFn func(ctx context.Context, userID string, ids []string) (int64, error)
}

func (s *stubHistoryService) List(ctx context.Context, userID string) ([]*domain.History, error) {
	return s.listFn(ctx, userID)
}

func (s *stubHistoryService) Add(ctx context.Context, input ports.AddHistoryInput) (*domain.History, error) {
	return s.addFn(ctx, input)
}

func (s *stubHistoryService) Delete(ctx context.Context, userID string, ids []string) (int64, error) {
	return s.deleteFn(ctx, userID, ids)
}

// newHistoryContext builds an echo context with the claims the auth
// middleware would have injected.
func newHistoryContext(t *testing.T, method, body, userID string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, "/api/history", nil)
	} else {
		req = httptest.NewRequest(method, "/api/history", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != "" {
		c.Set("user_id", userID)
		c.Set("email", "test@example.com")
	}
	return c, rec
}

func TestHistoryHandler_List(t *testing.T) {
	now := time.Now().UTC()
	stub := &stubHistoryService{
		listFn: func(ctx context.Context, userID string) ([]*domain.History, error) {
			if userID != "userA" {
				t.Fatalf("expected scope userA, got %q", userID)
			}
			return []*domain.History{
				{ID: "h2", UserID: "userA", IPAddress: "1.1.1.1", Location: `{"city":"Sydney"}`, CreatedAt: now},
				{ID: "h1", UserID: "userA", IPAddress: "8.8.8.8", Location: `{"city":"Mountain View"}`, CreatedAt: now.Add(-time.Hour)},
			}, nil
		},
	}
	h := NewHistoryHandler(stub)

	c, rec := newHistoryContext(t, http.MethodGet, "", "userA")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Histories []map[string]any `json:"histories"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Histories) != 2 {
		t.Fatalf("expected 2 histories, got %d", len(resp.Histories))
	}
	first := resp.Histories[0]
	if first["ipAddress"] != "1.1.1.1" || first["location"] != `{"city":"Sydney"}` {
		t.Fatalf("unexpected payload: %+v", first)
	}
}

func TestHistoryHandler_ListWithoutClaims(t *testing.T) {
	stub := &stubHistoryService{
		listFn: func(ctx context.Context, userID string) ([]*domain.History, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewHistoryHandler(stub)

	c, _ := newHistoryContext(t, http.MethodGet, "", "")
	err := h.List(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestHistoryHandler_Add(t *testing.T) {
	stub := &stubHistoryService{
		addFn: func(ctx context.Context, input ports.AddHistoryInput) (*domain.History, error) {
			// Owner comes from the claims, never from the payload.
			if input.UserID != "userA" {
				t.Fatalf("expected owner userA, got %q", input.UserID)
			}
			if input.IPAddress != "8.8.8.8" {
				t.Fatalf("unexpected ip: %q", input.IPAddress)
			}
			if input.Location != `{"city":"Mountain View","loc":"37.4,-122.0"}` {
				t.Fatalf("unexpected location: %q", input.Location)
			}
			return &domain.History{ID: "h1", UserID: input.UserID, IPAddress: input.IPAddress, Location: input.Location}, nil
		},
	}
	h := NewHistoryHandler(stub)

	body := `{"ipAddress":"8.8.8.8","location":{"city":"Mountain View","loc":"37.4,-122.0"}}`
	c, rec := newHistoryContext(t, http.MethodPost, body, "userA")
	if err := h.Add(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "History added" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
}

func TestHistoryHandler_AddMissingFields(t *testing.T) {
	stub := &stubHistoryService{
		addFn: func(ctx context.Context, input ports.AddHistoryInput) (*domain.History, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewHistoryHandler(stub)

	for name, body := range map[string]string{
		"no location": `{"ipAddress":"8.8.8.8"}`,
		"no ip":       `{"location":{"city":"Berlin"}}`,
		"empty":       `{}`,
	} {
		c, rec := newHistoryContext(t, http.MethodPost, body, "userA")
		if err := h.Add(c); err != nil {
			t.Fatalf("%s: handler error: %v", name, err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", name, rec.Code)
		}
	}
}

func TestHistoryHandler_Delete(t *testing.T) {
	stub := &stubHistoryService{
		deleteFn: func(ctx context.Context, userID string, ids []string) (int64, error) {
			if userID != "userA" {
				t.Fatalf("expected scope userA, got %q", userID)
			}
			if len(ids) != 3 {
				t.Fatalf("expected 3 ids, got %d", len(ids))
			}
			// Two owned, one foreign: the foreign one is filtered out below
			// this layer.
			return 2, nil
		},
	}
	h := NewHistoryHandler(stub)

	c, rec := newHistoryContext(t, http.MethodDelete, `{"ids":["h1","h2","h3"]}`, "userA")
	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "2 history entries deleted." {
		t.Fatalf("unexpected message: %q", resp["message"])
	}
}

func TestHistoryHandler_DeleteMissingIDs(t *testing.T) {
	stub := &stubHistoryService{
		deleteFn: func(ctx context.Context, userID string, ids []string) (int64, error) {
			t.Fatalf("should not be called")
			return 0, nil
		},
	}
	h := NewHistoryHandler(stub)

	for name, body := range map[string]string{
		"empty list": `{"ids":[]}`,
		"no field":   `{}`,
	} {
		c, rec := newHistoryContext(t, http.MethodDelete, body, "userA")
		if err := h.Delete(c); err != nil {
			t.Fatalf("%s: handler error: %v", name, err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", name, rec.Code)
		}
	}
}
