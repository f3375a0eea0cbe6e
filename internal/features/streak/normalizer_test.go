package streak

import (
	"errors"
	"testing"
	"time"
)

func TestNormalizePutsSentinelFirst(t *testing.T) {
	n := Normalizer{}

	seq, err := n.Normalize([]string{"2022-01-02 10:00:00", "2022-01-01 10:00:00"})
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if len(seq) != 3 {
		t.Fatalf("len = %d, want 3", len(seq))
	}
	if !seq[0].Equal(Sentinel(time.UTC)) {
		t.Errorf("seq[0] = %v, want sentinel", seq[0])
	}
	// без Sort порядок хранения не меняется
	if !seq[1].Equal(at("2022-01-02 10:00:00")) || !seq[2].Equal(at("2022-01-01 10:00:00")) {
		t.Errorf("order changed: %v", seq[1:])
	}
}

func TestNormalizeEmpty(t *testing.T) {
	seq, err := Normalizer{}.Normalize(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(seq) != 1 {
		t.Errorf("len = %d, want only the sentinel", len(seq))
	}
}

func TestNormalizeKeepsDuplicates(t *testing.T) {
	seq, err := Normalizer{}.Normalize([]string{"2022-01-01 10:00:00", "2022-01-01 10:00:00"})
	if err != nil {
		t.Fatal(err)
	}
	if len(seq) != 3 {
		t.Errorf("len = %d, want 3", len(seq))
	}
}

func TestNormalizeRejectsMalformed(t *testing.T) {
	_, err := Normalizer{}.Normalize([]string{"2022-01-01 10:00:00", "2022-13-40 99:00:00"})

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if parseErr.Index != 1 {
		t.Errorf("Index = %d, want 1", parseErr.Index)
	}
	if parseErr.Unwrap() == nil {
		t.Error("ParseError should wrap the time.Parse error")
	}
}

func TestNormalizeSortKeepsSentinelFirst(t *testing.T) {
	n := Normalizer{Sort: true}

	seq, err := n.Normalize([]string{"2022-01-03 10:00:00", "2022-01-01 10:00:00", "2022-01-02 10:00:00"})
	if err != nil {
		t.Fatal(err)
	}
	if !seq[0].Equal(Sentinel(time.UTC)) {
		t.Fatalf("seq[0] = %v, want sentinel", seq[0])
	}
	for i := 2; i < len(seq); i++ {
		if seq[i].Before(seq[i-1]) {
			t.Errorf("seq not sorted at %d: %v", i, seq)
		}
	}
}

func TestNormalizeCustomLayoutAndLocation(t *testing.T) {
	loc := time.FixedZone("MSK", 3*60*60)
	n := Normalizer{Layout: "02.01.2006 15:04", Location: loc}

	seq, err := n.Normalize([]string{"15.03.2022 08:30"})
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(2022, time.March, 15, 8, 30, 0, 0, loc)
	if !seq[1].Equal(want) {
		t.Errorf("seq[1] = %v, want %v", seq[1], want)
	}
	if seq[0].Location() != loc {
		t.Errorf("sentinel location = %v, want %v", seq[0].Location(), loc)
	}
}

func TestParseCadence(t *testing.T) {
	tests := []struct {
		in      string
		want    Cadence
		wantErr bool
	}{
		{"daily", Daily, false},
		{" Weekly ", Weekly, false},
		{"MONTHLY", Monthly, false},
		{"yearly", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseCadence(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseCadence(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCadence(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
