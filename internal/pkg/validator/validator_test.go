package validator

import (
	"math"
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

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@com", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	if _, ok := IsValidDate("2025-03-10"); !ok {
		t.Error("IsValidDate(2025-03-10) = false, want true")
	}
	for _, s := range []string{"10-03-2025", "2025-13-01", "2025-02-30", ""} {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidDateTime(t *testing.T) {
	valid := []string{"2025-03-10T09:00:00Z", "2025-03-10T09:00:00+07:00", "2025-03-10T09:00:00.123Z"}
	invalid := []string{"2025-03-10", "2025-03-10 09:00:00", ""}
	for _, s := range valid {
		if _, ok := IsValidDateTime(s); !ok {
			t.Errorf("IsValidDateTime(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidDateTime(s); ok {
			t.Errorf("IsValidDateTime(%q) = true, want false", s)
		}
	}
}

func TestIsValidLatitude(t *testing.T) {
	valid := []float64{0, -90, 90, 51.5}
	invalid := []float64{-90.01, 90.01, math.NaN(), math.Inf(1)}
	for _, lat := range valid {
		if !IsValidLatitude(lat) {
			t.Errorf("IsValidLatitude(%v) = false, want true", lat)
		}
	}
	for _, lat := range invalid {
		if IsValidLatitude(lat) {
			t.Errorf("IsValidLatitude(%v) = true, want false", lat)
		}
	}
}

func TestIsValidLongitude(t *testing.T) {
	valid := []float64{0, -180, 180, -0.12}
	invalid := []float64{-180.01, 180.01, math.NaN(), math.Inf(-1)}
	for _, lon := range valid {
		if !IsValidLongitude(lon) {
			t.Errorf("IsValidLongitude(%v) = false, want true", lon)
		}
	}
	for _, lon := range invalid {
		if IsValidLongitude(lon) {
			t.Errorf("IsValidLongitude(%v) = true, want false", lon)
		}
	}
}

func TestValidationErrorsToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "from", Message: "from is required"},
		{Field: "to", Message: "to is required"},
	}
	m := errs.ToMap()
	if len(m) != 2 || m["from"] != "from is required" {
		t.Errorf("ToMap() = %v", m)
	}
	if errs.Error() == "" {
		t.Error("Error() should not be empty")
	}
}
