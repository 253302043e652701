package repository

import "testing"

func TestNewIDIsValid(t *testing.T) {
	id := NewID()
	if !ValidID(id) {
		t.Fatalf("NewID produced invalid id %q", id)
	}
	if NewID() == id {
		t.Fatal("NewID must not repeat")
	}
}

func TestValidIDRejectsMalformed(t *testing.T) {
	for _, id := range []string{"", "42", "not-a-uuid", "'; DROP TABLE users; --"} {
		if ValidID(id) {
			t.Errorf("expected %q to be invalid", id)
		}
	}
}
