package utils

import "testing"

func TestValidateEmail(t *testing.T) {
	valid := []string{"alice@school.edu", "hod.office@dept.school.edu"}
	invalid := []string{"", "alice", "alice@", "@school.edu", "alice@school"}

	for _, email := range valid {
		if !ValidateEmail(email) {
			t.Fatalf("expected %q to be valid", email)
		}
	}
	for _, email := range invalid {
		if ValidateEmail(email) {
			t.Fatalf("expected %q to be invalid", email)
		}
	}
}

func TestSanitizeInput(t *testing.T) {
	if got := SanitizeInput("  fever\x00  "); got != "fever" {
		t.Fatalf("unexpected sanitized value: %q", got)
	}
}
