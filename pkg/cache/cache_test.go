package cache

import "testing"

func TestSetGet(t *testing.T) {
	s := New()

	key := Key("occurrences", "user-1", "search=launch")
	if _, ok := s.Get(key); ok {
		t.Fatal("expected miss on empty cache")
	}

	s.Set(key, "result-a")
	v, ok := s.Get(key)
	if !ok || v.(string) != "result-a" {
		t.Fatalf("Get = (%v, %v), want (result-a, true)", v, ok)
	}

	// Last write wins
	s.Set(key, "result-b")
	v, _ = s.Get(key)
	if v.(string) != "result-b" {
		t.Errorf("Get after overwrite = %v, want result-b", v)
	}
}

func TestInvalidateByQuery(t *testing.T) {
	s := New()
	s.Set(Key("occurrences", "user-1"), 1)
	s.Set(Key("occurrences", "user-2"), 2)
	s.Set(Key("projects", "user-1"), 3)

	s.Invalidate("occurrences")

	if _, ok := s.Get(Key("occurrences", "user-1")); ok {
		t.Error("occurrences|user-1 should be invalidated")
	}
	if _, ok := s.Get(Key("occurrences", "user-2")); ok {
		t.Error("occurrences|user-2 should be invalidated")
	}
	if _, ok := s.Get(Key("projects", "user-1")); !ok {
		t.Error("projects|user-1 should survive occurrence invalidation")
	}
}

func TestInvalidateAll(t *testing.T) {
	s := New()
	s.Set(Key("a"), 1)
	s.Set(Key("b", "x"), 2)

	s.InvalidateAll()

	if s.Len() != 0 {
		t.Errorf("Len after InvalidateAll = %d, want 0", s.Len())
	}
}

func TestKey(t *testing.T) {
	if got := Key("occurrences"); got != "occurrences" {
		t.Errorf("Key no params = %q", got)
	}
	if got := Key("occurrences", "u1", "kind=meeting"); got != "occurrences|u1|kind=meeting" {
		t.Errorf("Key with params = %q", got)
	}
}
