package utils

import (
	"strings"
	"testing"
	"time"
)

func TestUtils_ShouldFormatDurations(t *testing.T) {
	cases := []struct {
		d        time.Duration
		expected string
	}{
		{42 * time.Second, "42.00s"},
		{90 * time.Second, "1m 30.00s"},
		{2*time.Hour + 3*time.Minute, "2h 3m 0.00s"},
	}

	for _, c := range cases {
		if got := FormatTime(c.d); got != c.expected {
			t.Errorf("FormatTime(%v) expected to be %q. Got %q", c.d, c.expected, got)
		}
	}
}

func TestUtils_ShouldDecorateText(t *testing.T) {
	got := DecorateText("done", SuccessMessage)
	if !strings.HasPrefix(got, SuccessColor) || !strings.HasSuffix(got, DefaultColor) {
		t.Errorf("Decorated text expected to be wrapped in color escapes, got %q", got)
	}
}

func TestUtils_ShouldValidateUrls(t *testing.T) {
	if !IsValidUrl("https://raw.githubusercontent.com/esimov/pigo/master/cascade/facefinder") {
		t.Errorf("A valid URL should have been accepted")
	}
	if IsValidUrl("./facefinder") {
		t.Errorf("A filesystem path should not be a valid URL")
	}
}

func TestUtils_MathHelpers(t *testing.T) {
	if got := Min(3, 7); got != 3 {
		t.Errorf("Min expected to be 3. Got %v", got)
	}
	if got := Max(3, 7); got != 7 {
		t.Errorf("Max expected to be 7. Got %v", got)
	}
	if got := Abs(-2.5); got != 2.5 {
		t.Errorf("Abs expected to be 2.5. Got %v", got)
	}
}
