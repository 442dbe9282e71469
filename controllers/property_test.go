package controllers

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/sbayrealty/brokerage-backend/db"
	"github.com/sbayrealty/brokerage-backend/models"
)

// newOfflineDB builds a connectionless handle: dry-run statements are
// prepared but never executed, and transactions fail at begin.
func newOfflineDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=127.0.0.1 port=1 user=brokerage dbname=brokerage",
	}), &gorm.Config{
		DryRun:                 true,
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("open offline db: %v", err)
	}
	return gdb
}

func TestParsePagination(t *testing.T) {
	cases := []struct {
		pageQ, limitQ string
		page, limit   int
	}{
		{"1", "20", 1, 20},
		{"3", "50", 3, 50},
		{"abc", "abc", 1, 20},
		{"0", "0", 1, 20},
		{"-2", "-5", 1, 20},
	}
	for _, tc := range cases {
		page, limit := parsePagination(tc.pageQ, tc.limitQ)
		if page != tc.page || limit != tc.limit {
			t.Errorf("parsePagination(%q, %q) = %d, %d; want %d, %d",
				tc.pageQ, tc.limitQ, page, limit, tc.page, tc.limit)
		}
	}
}

func TestGetAllPropertiesBadPaginationInput(t *testing.T) {
	db.DB = newOfflineDB(t)

	app := fiber.New()
	app.Get("/properties", GetAllProperties)

	for _, target := range []string{
		"/properties?limit=abc",
		"/properties?limit=0",
		"/properties?page=xyz&limit=-1",
	} {
		req := httptest.NewRequest("GET", target, nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("request %s failed: %v", target, err)
		}
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("request %s returned %d", target, resp.StatusCode)
		}
	}
}

func TestListedPropertiesCountKeepsCountyFilter(t *testing.T) {
	gdb := newOfflineDB(t)

	var count int64
	tx := listedProperties(gdb.Model(&models.Property{}), "Alameda").Count(&count)
	if tx.Error != nil {
		t.Fatalf("count query failed: %v", tx.Error)
	}
	sql := tx.Statement.SQL.String()
	if !strings.Contains(sql, "county") {
		t.Fatalf("count query dropped the county filter: %s", sql)
	}
	if !strings.Contains(sql, "is_listed") {
		t.Fatalf("count query dropped the listing filter: %s", sql)
	}
}
