package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/sbayrealty/brokerage-backend/db"
)

type fakeDedupe struct {
	exists  bool
	setKeys []string
	delKeys []string
}

func (f *fakeDedupe) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *goredis.BoolCmd {
	f.setKeys = append(f.setKeys, key)
	return goredis.NewBoolResult(!f.exists, nil)
}

func (f *fakeDedupe) Del(ctx context.Context, keys ...string) *goredis.IntCmd {
	f.delKeys = append(f.delKeys, keys...)
	return goredis.NewIntResult(int64(len(keys)), nil)
}

func leadRequest(t *testing.T) *http.Request {
	t.Helper()
	body, err := json.Marshal(map[string]string{
		"name":  "Jane Doe",
		"email": "jane@example.com",
	})
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest("POST", "/leads", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestCreateLeadDuplicateSubmission(t *testing.T) {
	fake := &fakeDedupe{exists: true}
	InitLeadDedupe(fake)
	defer InitLeadDedupe(nil)

	app := fiber.New()
	app.Post("/leads", CreateLead)

	resp, err := app.Test(leadRequest(t))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusTooManyRequests {
		t.Fatalf("expected 429 for duplicate submission, got %d", resp.StatusCode)
	}
	if len(fake.delKeys) != 0 {
		t.Fatalf("dedupe key must stand after a duplicate, deleted %v", fake.delKeys)
	}
}

func TestCreateLeadReleasesDedupeOnStoreFailure(t *testing.T) {
	fake := &fakeDedupe{}
	InitLeadDedupe(fake)
	defer InitLeadDedupe(nil)

	// No server behind the handle, so the insert transaction cannot begin
	db.DB = newOfflineDB(t)

	app := fiber.New()
	app.Post("/leads", CreateLead)

	resp, err := app.Test(leadRequest(t))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("expected 500 when the store is down, got %d", resp.StatusCode)
	}
	if len(fake.setKeys) != 1 {
		t.Fatalf("expected one dedupe reservation, got %v", fake.setKeys)
	}
	if len(fake.delKeys) != 1 || fake.delKeys[0] != fake.setKeys[0] {
		t.Fatalf("dedupe key not released after failed submission: set %v, deleted %v",
			fake.setKeys, fake.delKeys)
	}
}
