package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/theirongolddev/backpack/internal/model"
	"github.com/theirongolddev/backpack/internal/pipeline"

	"github.com/spf13/pflag"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"1200", 1200, false},
		{" 45.50 ", 45.5, false},
		{"£300", 300, false},
		{"€0", 0, false},
		{"abc", 0, true},
		{"-5", 0, true},
	}
	for _, c := range cases {
		got, err := parseAmount(c.in)
		if (err != nil) != c.wantErr {
			t.Fatalf("parseAmount(%q) err = %v, wantErr %v", c.in, err, c.wantErr)
		}
		if !c.wantErr && got != c.want {
			t.Errorf("parseAmount(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseDayArg(t *testing.T) {
	trip := model.Trip{TripState: model.TripState{Days: make([]model.DayRecord, 3)}}

	idx, err := parseDayArg("2", trip)
	if err != nil || idx != 1 {
		t.Fatalf("parseDayArg(2) = %d, %v; want 1, nil", idx, err)
	}
	if _, err := parseDayArg("4", trip); !errors.Is(err, pipeline.ErrDayOutOfRange) {
		t.Fatalf("parseDayArg(4) err = %v, want ErrDayOutOfRange", err)
	}
	if _, err := parseDayArg("0", trip); !errors.Is(err, pipeline.ErrDayOutOfRange) {
		t.Fatalf("parseDayArg(0) err = %v, want ErrDayOutOfRange", err)
	}
	if _, err := parseDayArg("two", trip); err == nil {
		t.Fatal("parseDayArg(two) expected error")
	}
}

func TestApplyDayFlags_OnlyChanged(t *testing.T) {
	f := pflag.NewFlagSet("day", pflag.ContinueOnError)
	addDayFlags(f)
	if err := f.Parse([]string{"--location", "Hanoi", "--stay-cost", "12.5", "--date", "2025-03-04"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	d := model.DayRecord{
		TransportFrom:     "Hue",
		AccommodationCost: 40,
		Notes:             "keep me",
	}
	if err := applyDayFlags(f, &d); err != nil {
		t.Fatalf("applyDayFlags: %v", err)
	}
	if d.Location != "Hanoi" {
		t.Errorf("Location = %q, want Hanoi", d.Location)
	}
	if d.AccommodationCost != 12.5 {
		t.Errorf("AccommodationCost = %v, want 12.5", d.AccommodationCost)
	}
	if d.TransportFrom != "Hue" || d.Notes != "keep me" {
		t.Errorf("unset flags overwrote fields: from=%q notes=%q", d.TransportFrom, d.Notes)
	}
	if !d.Date.Equal(model.NewDate(2025, time.March, 4).Time) {
		t.Errorf("Date = %v, want 2025-03-04", d.Date)
	}
}

func TestApplyDayFlags_BadDate(t *testing.T) {
	f := pflag.NewFlagSet("day", pflag.ContinueOnError)
	addDayFlags(f)
	if err := f.Parse([]string{"--date", "04/03/2025"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	var d model.DayRecord
	if err := applyDayFlags(f, &d); err == nil {
		t.Fatal("expected error for malformed date")
	}
}

func TestFilterDetachArg(t *testing.T) {
	got := filterDetachArg([]string{"serve", "--detach", "--addr", ":9000", "--detach=true"})
	want := []string{"serve", "--addr", ":9000"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("filterDetachArg = %v, want %v", got, want)
	}
}

func TestPIDFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backpack.pid")
	if err := writePID(path, 4242); err != nil {
		t.Fatalf("writePID: %v", err)
	}
	pid, err := readPID(path)
	if err != nil || pid != 4242 {
		t.Fatalf("readPID = %d, %v; want 4242, nil", pid, err)
	}

	if err := os.WriteFile(path, []byte("nope\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := readPID(path); err == nil {
		t.Fatal("expected error for invalid pid")
	}
}

func TestNewLogger(t *testing.T) {
	if _, err := newLogger("debug"); err != nil {
		t.Fatalf("newLogger(debug): %v", err)
	}
	if _, err := newLogger("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
