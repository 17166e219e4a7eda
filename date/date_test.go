package date

import (
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestParseStatement(t *testing.T) {
	testCases := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{in: "01.02.2021", want: New(2021, time.February, 1)},
		{in: "31.12.2020", want: New(2020, time.December, 31)},
		{in: "2021-02-01", wantErr: true},
		{in: "32.01.2021", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range testCases {
		got, err := ParseStatement(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseStatement(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseStatement(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseStatementTime(t *testing.T) {
	got, err := ParseStatementTime("01.02.2021", "17:01:05")
	if err != nil {
		t.Fatalf("ParseStatementTime() error = %v", err)
	}
	want := time.Date(2021, time.February, 1, 17, 1, 5, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ParseStatementTime() = %v, want %v", got, want)
	}

	if _, err := ParseStatementTime("01.02.2021", "17:01"); err == nil {
		t.Errorf("ParseStatementTime() with truncated time: want error")
	}
}

func TestMin(t *testing.T) {
	a, b, c := New(2021, 3, 1), New(2020, 12, 31), New(2021, 1, 1)
	if got := Min(a, b, c); got != b {
		t.Errorf("Min() = %v, want %v", got, b)
	}
	if got := Min(); !got.IsZero() {
		t.Errorf("Min() of nothing = %v, want zero", got)
	}
}

func TestDaysSince(t *testing.T) {
	from, to := New(2021, 1, 15), New(2021, 3, 1)
	if got := to.DaysSince(from); got != 45 {
		t.Errorf("DaysSince() = %d, want 45", got)
	}
	if got := from.DaysSince(to); got != -45 {
		t.Errorf("DaysSince() = %d, want -45", got)
	}
}
