// Package timeband implements the compact weekly schedule notation used
// by the custom time-band sections: an ordered list of day segments
// "q1-b1,q2-b2,...,qN-bN" where q is the segment's last quarter-hour
// (1..96) and b the tariff band applied up to it (1..8).
package timeband

import (
	"fmt"
	"strconv"
	"strings"
)

// Notation limits.
const (
	QuartersPerDay = 96
	MaxBand        = 8
	MaxSegments    = 10
	MaxEncodedLen  = 49
)

// Band numbers 1..6 denote tariff bands F1..F6, 7 peak, 8 off-peak.
const (
	BandPeak    = 7
	BandOffPeak = 8
)

// Segment applies one band up to (and including) a quarter-hour of day.
type Segment struct {
	// End is the segment's last quarter-hour, 1..96. Quarter q covers
	// wall-clock time up to q/4 hours.
	End int `json:"end"`
	// Band is the tariff band in force until End.
	Band int `json:"band"`
}

// Clock renders the segment end as wall-clock "HH:MM".
func (s Segment) Clock() string {
	return fmt.Sprintf("%02d:%02d", s.End/4, (s.End%4)*15)
}

// Encode renders segments in the wire notation. It enforces the same
// invariants as Decode so that Decode(Encode(s)) == s for any accepted s.
func Encode(segments []Segment) (string, error) {
	if len(segments) == 0 {
		return "", fmt.Errorf("schedule needs at least one segment")
	}
	if len(segments) > MaxSegments {
		return "", fmt.Errorf("schedule has %d segments, maximum is %d", len(segments), MaxSegments)
	}

	var b strings.Builder
	prev := 0
	for i, s := range segments {
		if s.End < 1 || s.End > QuartersPerDay {
			return "", fmt.Errorf("segment %d: quarter-hour %d out of range 1..%d", i+1, s.End, QuartersPerDay)
		}
		if s.End <= prev {
			return "", fmt.Errorf("segment %d: quarter-hour %d not increasing", i+1, s.End)
		}
		if s.Band < 1 || s.Band > MaxBand {
			return "", fmt.Errorf("segment %d: band %d out of range 1..%d", i+1, s.Band, MaxBand)
		}
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(s.End))
		b.WriteByte('-')
		b.WriteString(strconv.Itoa(s.Band))
		prev = s.End
	}

	out := b.String()
	if len(out) > MaxEncodedLen {
		return "", fmt.Errorf("encoded schedule is %d characters, maximum is %d", len(out), MaxEncodedLen)
	}
	return out, nil
}

// Decode parses the wire notation back into segments. Quarter-hours must
// be strictly increasing and at most MaxSegments segments are accepted.
func Decode(s string) ([]Segment, error) {
	if s == "" {
		return nil, fmt.Errorf("empty schedule")
	}
	if len(s) > MaxEncodedLen {
		return nil, fmt.Errorf("schedule is %d characters, maximum is %d", len(s), MaxEncodedLen)
	}

	parts := strings.Split(s, ",")
	if len(parts) > MaxSegments {
		return nil, fmt.Errorf("schedule has %d segments, maximum is %d", len(parts), MaxSegments)
	}

	segments := make([]Segment, 0, len(parts))
	prev := 0
	for i, part := range parts {
		q, band, ok := strings.Cut(part, "-")
		if !ok {
			return nil, fmt.Errorf("segment %d: %q is not in quarter-band form", i+1, part)
		}
		end, err := strconv.Atoi(q)
		if err != nil {
			return nil, fmt.Errorf("segment %d: bad quarter-hour %q", i+1, q)
		}
		bn, err := strconv.Atoi(band)
		if err != nil {
			return nil, fmt.Errorf("segment %d: bad band %q", i+1, band)
		}
		if end < 1 || end > QuartersPerDay {
			return nil, fmt.Errorf("segment %d: quarter-hour %d out of range 1..%d", i+1, end, QuartersPerDay)
		}
		if end <= prev {
			return nil, fmt.Errorf("segment %d: quarter-hour %d not increasing", i+1, end)
		}
		if bn < 1 || bn > MaxBand {
			return nil, fmt.Errorf("segment %d: band %d out of range 1..%d", i+1, bn, MaxBand)
		}
		segments = append(segments, Segment{End: end, Band: bn})
		prev = end
	}

	return segments, nil
}

// Complete reports whether the schedule covers the whole day, i.e. its
// final segment ends at quarter 96. An incomplete schedule is still
// syntactically valid; callers surface it as a coverage warning.
func Complete(segments []Segment) bool {
	return len(segments) > 0 && segments[len(segments)-1].End == QuartersPerDay
}

// MaxBandUsed returns the highest band number referenced by the schedule.
func MaxBandUsed(segments []Segment) int {
	max := 0
	for _, s := range segments {
		if s.Band > max {
			max = s.Band
		}
	}
	return max
}
