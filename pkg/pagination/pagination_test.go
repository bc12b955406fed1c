package pagination

import (
	"net/url"
	"testing"
	"time"
)

func TestNormalizeLimit(t *testing.T) {
	if got := NormalizeLimit(0); got != DefaultLimit {
		t.Fatalf("expected default limit, got %d", got)
	}
	if got := NormalizeLimit(-3); got != DefaultLimit {
		t.Fatalf("expected default limit for negative input, got %d", got)
	}
	if got := NormalizeLimit(MaxLimit + 50); got != MaxLimit {
		t.Fatalf("expected max limit cap, got %d", got)
	}
	if got := NormalizeLimit(7); got != 7 {
		t.Fatalf("expected limit to pass through, got %d", got)
	}
}

func TestCursorRoundTrip(t *testing.T) {
	// Ids are opaque strings; hand-written and pre-migration ids must
	// round-trip the same as generated ones.
	for _, id := range []string{"6ba7b810-9dad-11d1-80b4-00c04fd430c8", "order-legacy-7"} {
		want := Cursor{
			CreatedAt: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
			ID:        id,
		}

		got, err := ParseCursor(EncodeCursor(want))
		if err != nil {
			t.Fatalf("parse cursor for id %q: %v", id, err)
		}
		if got == nil {
			t.Fatal("expected cursor, got nil")
		}
		if !got.CreatedAt.Equal(want.CreatedAt) || got.ID != want.ID {
			t.Fatalf("cursor mismatch: got %+v want %+v", got, want)
		}
	}
}

func TestParseCursorEmpty(t *testing.T) {
	got, err := ParseCursor("   ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil cursor for blank input, got %+v", got)
	}
}

func TestParseCursorMalformed(t *testing.T) {
	for _, value := range []string{"not-base64!!", "bm8tcGlwZQ=="} {
		if _, err := ParseCursor(value); err == nil {
			t.Fatalf("expected error for cursor %q", value)
		}
	}
}

func TestFromQuery(t *testing.T) {
	query := url.Values{}
	query.Set("limit", "12")
	query.Set("cursor", "abc")

	params := FromQuery(query)
	if params.Limit != 12 || params.Cursor != "abc" {
		t.Fatalf("unexpected params: %+v", params)
	}

	params = FromQuery(url.Values{"limit": {"garbage"}})
	if params.Limit != 0 {
		t.Fatalf("expected zero limit for malformed input, got %d", params.Limit)
	}
}

func TestCursorAfter(t *testing.T) {
	base := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	cursor := &Cursor{CreatedAt: base, ID: "order-b"}

	if !cursor.After(base.Add(-time.Minute), "anything") {
		t.Fatal("older record should be on a later page")
	}
	if cursor.After(base.Add(time.Minute), "anything") {
		t.Fatal("newer record belongs to an earlier page")
	}
	if !cursor.After(base, "order-c") {
		t.Fatal("timestamp tie should break on id ascending")
	}
	if cursor.After(base, "order-a") {
		t.Fatal("timestamp tie with a smaller id belongs to an earlier page")
	}

	var nilCursor *Cursor
	if !nilCursor.After(base, "any") {
		t.Fatal("nil cursor means first page, everything qualifies")
	}
}
