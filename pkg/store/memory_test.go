package store

import (
	"testing"
	"time"
)

func TestSessionCache_GetPut(t *testing.T) {
	c := NewSessionCache()

	if _, ok := c.Get("abc123"); ok {
		t.Fatal("empty cache should miss")
	}

	entry := testEntry("abc123", time.Now().UTC())
	c.Put(entry)

	got, ok := c.Get("abc123")
	if !ok {
		t.Fatal("expected hit after Put")
	}
	if got.Summary.Title != entry.Summary.Title {
		t.Errorf("title = %q", got.Summary.Title)
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d", c.Len())
	}
}

func TestSessionCache_PutReplaces(t *testing.T) {
	c := NewSessionCache()

	first := testEntry("abc123", time.Now().UTC())
	c.Put(first)

	second := first
	second.Summary.Title = "Updated"
	c.Put(second)

	got, _ := c.Get("abc123")
	if got.Summary.Title != "Updated" {
		t.Error("session cache should mirror the latest entry")
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d", c.Len())
	}
}
