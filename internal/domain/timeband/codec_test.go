package timeband

import (
	"strings"
	"testing"
)

func TestDecodeValid(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Segment
	}{
		{
			name: "single segment full day",
			in:   "96-1",
			want: []Segment{{End: 96, Band: 1}},
		},
		{
			name: "standard three bands",
			in:   "28-3,76-1,96-2",
			want: []Segment{{End: 28, Band: 3}, {End: 76, Band: 1}, {End: 96, Band: 2}},
		},
		{
			name: "peak offpeak",
			in:   "32-8,80-7,96-8",
			want: []Segment{{End: 32, Band: 8}, {End: 80, Band: 7}, {End: 96, Band: 8}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d segments, got %d", len(tt.want), len(got))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("segment %d: expected %+v, got %+v", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"not increasing", "10-1,10-2"},
		{"decreasing", "20-1,10-2"},
		{"quarter zero", "0-1"},
		{"quarter beyond day", "97-1"},
		{"band zero", "96-0"},
		{"band beyond range", "96-9"},
		{"missing separator", "961"},
		{"non numeric quarter", "ab-1"},
		{"non numeric band", "96-x"},
		{"eleven segments", "1-1,2-2,3-3,4-4,5-5,6-6,7-7,8-8,9-1,10-2,11-3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(tt.in); err == nil {
				t.Errorf("expected error for %q", tt.in)
			}
		})
	}
}

func TestDecodeRejectsOverlongString(t *testing.T) {
	in := strings.Repeat("1", MaxEncodedLen) + "-1"
	if _, err := Decode(in); err == nil {
		t.Error("expected error for string beyond maximum length")
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	inputs := [][]Segment{
		{{End: 96, Band: 1}},
		{{End: 28, Band: 3}, {End: 76, Band: 1}, {End: 96, Band: 2}},
		{{End: 1, Band: 1}, {End: 2, Band: 2}, {End: 96, Band: 8}},
	}

	for _, segs := range inputs {
		encoded, err := Encode(segs)
		if err != nil {
			t.Fatalf("encode %+v: %v", segs, err)
		}
		decoded, err := Decode(encoded)
		if err != nil {
			t.Fatalf("decode %q: %v", encoded, err)
		}
		if len(decoded) != len(segs) {
			t.Fatalf("round trip of %+v lost segments: %+v", segs, decoded)
		}
		for i := range segs {
			if decoded[i] != segs[i] {
				t.Errorf("round trip of %+v: segment %d became %+v", segs, i, decoded[i])
			}
		}
	}
}

func TestEncodeRejects(t *testing.T) {
	tests := []struct {
		name string
		in   []Segment
	}{
		{"empty", nil},
		{"not increasing", []Segment{{End: 10, Band: 1}, {End: 10, Band: 2}}},
		{"band out of range", []Segment{{End: 96, Band: 9}}},
		{"quarter out of range", []Segment{{End: 100, Band: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Encode(tt.in); err == nil {
				t.Errorf("expected error for %+v", tt.in)
			}
		})
	}
}

func TestComplete(t *testing.T) {
	if !Complete([]Segment{{End: 96, Band: 1}}) {
		t.Error("schedule ending at quarter 96 should be complete")
	}
	if Complete([]Segment{{End: 95, Band: 1}}) {
		t.Error("schedule ending at quarter 95 should be incomplete")
	}
	if Complete(nil) {
		t.Error("empty schedule should be incomplete")
	}
}

func TestMaxBandUsed(t *testing.T) {
	segs := []Segment{{End: 28, Band: 3}, {End: 76, Band: 1}, {End: 96, Band: 2}}
	if got := MaxBandUsed(segs); got != 3 {
		t.Errorf("expected max band 3, got %d", got)
	}
}

func TestSegmentClock(t *testing.T) {
	tests := []struct {
		end  int
		want string
	}{
		{96, "24:00"},
		{28, "07:00"},
		{1, "00:15"},
		{34, "08:30"},
	}
	for _, tt := range tests {
		s := Segment{End: tt.end, Band: 1}
		if got := s.Clock(); got != tt.want {
			t.Errorf("quarter %d: expected %s, got %s", tt.end, tt.want, got)
		}
	}
}
