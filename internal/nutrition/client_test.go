// ABOUTME: Tests for the nutrition API client.
// ABOUTME: HTTP calls are intercepted with gock.
package nutrition

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/h2non/gock"
)

const testBase = "https://nutrition.test"

func newTestClient() *Client {
	c := NewClient("secret", WithBaseURL(testBase+"/"))
	gock.InterceptClient(c.http)
	return c
}

func TestLookup(t *testing.T) {
	defer gock.Off()

	gock.New(testBase).
		Get("/v1/nutrition").
		MatchParam("query", "1 apple").
		MatchHeader("X-Api-Key", "secret").
		Reply(200).
		JSON(map[string]any{"items": []map[string]any{
			{"name": "apple", "calories": 95.0, "protein_g": 0.5, "carbohydrates_total_g": 25.0, "fat_total_g": 0.3},
			{"name": "pear", "calories": 100.0},
		}})

	item, err := newTestClient().Lookup(context.Background(), " 1 apple ")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if item.Name != "apple" || item.Calories != 95 {
		t.Errorf("Lookup = %+v, want apple/95", item)
	}
	if item.CarbohydrateG != 25 {
		t.Errorf("CarbohydrateG = %v, want 25", item.CarbohydrateG)
	}
	if !gock.IsDone() {
		t.Error("expected request was not made")
	}
}

func TestLookupErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   map[string]any
		check  func(error) bool
	}{
		{"no results", 200, map[string]any{"items": []any{}}, func(err error) bool { return errors.Is(err, ErrNoResults) }},
		{"unauthorized", 401, map[string]any{"error": "bad key"}, func(err error) bool {
			var se *StatusError
			return errors.As(err, &se) && se.StatusCode == http.StatusUnauthorized
		}},
		{"server error", 502, map[string]any{}, func(err error) bool {
			var se *StatusError
			return errors.As(err, &se) && se.StatusCode == http.StatusBadGateway
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer gock.Off()
			gock.New(testBase).Get("/v1/nutrition").Reply(tt.status).JSON(tt.body)

			_, err := newTestClient().Lookup(context.Background(), "rice")
			if !tt.check(err) {
				t.Errorf("Lookup error = %v", err)
			}
		})
	}
}

func TestLookupEmptyQuery(t *testing.T) {
	defer gock.Off()
	gock.New(testBase).Get("/v1/nutrition").Reply(200).JSON(map[string]any{"items": []any{}})

	_, err := newTestClient().Lookup(context.Background(), "   ")
	if !errors.Is(err, ErrEmptyQuery) {
		t.Errorf("Lookup error = %v, want ErrEmptyQuery", err)
	}
	if gock.IsDone() {
		t.Error("blank query should not reach the API")
	}
}
