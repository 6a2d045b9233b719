package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2026-01-01", "2000-12-31"}
	invalid := []string{"2026-13-01", "2026-01-32", "01-01-2026", "2026/01/01", "", "not-a-date"}
	for _, s := range valid {
		if _, ok := IsValidDate(s); !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidPlateNumber(t *testing.T) {
	valid := []string{"KBZ 123A", "kbz 123a", "T123-ABC", "UAX999"}
	invalid := []string{"", "K", "K!", "KBZ_123"}
	for _, s := range valid {
		if !IsValidPlateNumber(s) {
			t.Errorf("IsValidPlateNumber(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidPlateNumber(s) {
			t.Errorf("IsValidPlateNumber(%q) = true, want false", s)
		}
	}
}

func TestIsValidPhoneNumber(t *testing.T) {
	valid := []string{"+254712345678", "0712345678", "0712 345 678", "0712-345-678"}
	invalid := []string{"", "12345", "phone", "+2547123456789012345"}
	for _, s := range valid {
		if !IsValidPhoneNumber(s) {
			t.Errorf("IsValidPhoneNumber(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidPhoneNumber(s) {
			t.Errorf("IsValidPhoneNumber(%q) = true, want false", s)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	roles := []string{"turnboy", "loader"}
	if !IsInSlice("turnboy", roles) {
		t.Error("IsInSlice(turnboy) = false, want true")
	}
	if IsInSlice("driver", roles) {
		t.Error("IsInSlice(driver) = true, want false")
	}
}

func TestValidationErrorsToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "name", Message: "is required"},
		{Field: "role", Message: "must be 'turnboy' or 'loader'"},
	}

	m := errs.ToMap()
	if len(m) != 2 {
		t.Fatalf("ToMap() returned %d entries, want 2", len(m))
	}
	if m["name"] != "is required" {
		t.Errorf("ToMap()[name] = %q", m["name"])
	}

	want := "name: is required; role: must be 'turnboy' or 'loader'"
	if errs.Error() != want {
		t.Errorf("Error() = %q, want %q", errs.Error(), want)
	}
}
