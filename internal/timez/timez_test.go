package timez

import (
	"testing"
	"time"
)

func TestParseShort_warsaw(t *testing.T) {
	loc, err := LoadZone("Europe/Warsaw")
	if err != nil {
		t.Fatalf("LoadZone: %v", err)
	}

	got, err := ParseShort("2015-01-01 12:00", loc)
	if err != nil {
		t.Fatalf("ParseShort: %v", err)
	}
	want := time.Date(2015, 1, 1, 11, 0, 0, 0, time.UTC)
	if !got.Equal(want) || got.Location() != time.UTC {
		t.Errorf("ParseShort() = %v, want %v", got, want)
	}

	if s := FormatLong(got, loc); s != "2015-01-01 12:00:00" {
		t.Errorf("FormatLong() = %s", s)
	}
	if s := FormatShort(got, loc); s != "2015-01-01 12:00" {
		t.Errorf("FormatShort() = %s", s)
	}
}

func TestParseShort_rejects(t *testing.T) {
	for _, in := range []string{"", "2015-01-01", "01/01/2015 12:00", "2015-13-01 00:00", "tomorrow"} {
		if _, err := ParseShort(in, time.UTC); err == nil {
			t.Errorf("ParseShort(%q) should fail", in)
		}
	}
}

func TestParseDate(t *testing.T) {
	loc, _ := LoadZone("America/New_York")
	got, err := ParseDate("2016-03-01", loc)
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if want := time.Date(2016, 3, 1, 5, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("ParseDate() = %v, want %v", got, want)
	}
	if _, err := ParseDate("2016-03-01 10:00", loc); err == nil {
		t.Error("ParseDate should reject a time component")
	}
}

func TestParseShortOrDate(t *testing.T) {
	if _, err := ParseShortOrDate("2016-03-01", time.UTC); err != nil {
		t.Errorf("date form rejected: %v", err)
	}
	if _, err := ParseShortOrDate("2016-03-01 08:30", time.UTC); err != nil {
		t.Errorf("short form rejected: %v", err)
	}
	if _, err := ParseShortOrDate("March 1st", time.UTC); err == nil {
		t.Error("garbage accepted")
	}
}

func TestLoadZone(t *testing.T) {
	if loc, err := LoadZone(""); err != nil || loc != time.UTC {
		t.Errorf("LoadZone(\"\") = %v, %v; want UTC", loc, err)
	}
	if _, err := LoadZone("Mars/Olympus_Mons"); err == nil {
		t.Error("unknown zone accepted")
	}
	if MustZone("Mars/Olympus_Mons") != time.UTC {
		t.Error("MustZone should fall back to UTC")
	}
}

func TestFromUnix(t *testing.T) {
	ts := FromUnix(0)
	if ts.Location() != time.UTC || ts.Year() != 1970 {
		t.Errorf("FromUnix(0) = %v", ts)
	}
}

func TestNextDay(t *testing.T) {
	warsaw := MustZone("Europe/Warsaw")
	day, _ := ParseDate("2016-03-26", warsaw)

	// The night of 26-27 March 2016 is the DST switch in Warsaw.
	next := NextDay(day, warsaw)
	if got := FormatLong(next, warsaw); got != "2016-03-27 00:00:00" {
		t.Errorf("NextDay() = %s", got)
	}
	if next.Sub(day) != 24*time.Hour {
		t.Errorf("interval = %v", next.Sub(day))
	}
}
