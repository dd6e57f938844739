package templates

import "testing"

func TestCheckinJobName(t *testing.T) {
	got := CheckinJobName("Jane", "2024-06-01 08:00am", "SEA", "SFO")
	want := "Jane-2024-06-01_08:00am-SEA-SFO"
	if got != want {
		t.Errorf("CheckinJobName = %q, want %q", got, want)
	}
}

func TestCheckinJobNameWithoutSpaces(t *testing.T) {
	got := CheckinJobName("Jane", "2024-06-01", "SEA", "SFO")
	want := "Jane-2024-06-01-SEA-SFO"
	if got != want {
		t.Errorf("CheckinJobName = %q, want %q", got, want)
	}
}

func TestDetailJobName(t *testing.T) {
	got := DetailJobName("ABC123", "Jane", "Doe")
	want := "Flight Info Request: ABC123, Jane Doe"
	if got != want {
		t.Errorf("DetailJobName = %q, want %q", got, want)
	}
}
