package store

import "testing"

func TestGroupDisplayName_PlaceholderWhenUnnamed(t *testing.T) {
	if got := (Group{Name: "Study Group"}).DisplayName(); got != "Study Group" {
		t.Errorf("got %q", got)
	}
	if got := (Group{}).DisplayName(); got != "Unnamed Group" {
		t.Errorf("unnamed group: got %q, want placeholder", got)
	}
}

func TestUserDisplayName_PlaceholderWhenUnset(t *testing.T) {
	if got := (User{Nick: "Alice"}).DisplayName(); got != "Alice" {
		t.Errorf("got %q", got)
	}
	if got := (User{}).DisplayName(); got != "A member" {
		t.Errorf("nickless user: got %q, want placeholder", got)
	}
}
