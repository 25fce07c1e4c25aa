package types

import "testing"

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0.05", "0.050000"},
		{"123456.123456", "123456.123456"},
		{"10", "10.000000"},
		{"0", "0.000000"},
	}
	for _, tt := range tests {
		if got := FormatPrice(MustPrice(tt.in)); got != tt.want {
			t.Errorf("FormatPrice(%s): expected %s, got %s", tt.in, tt.want, got)
		}
	}
}

func TestCheckPrice(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{"zero", "0", false},
		{"max digits both sides", "999999.999999", false},
		{"negative", "-0.01", true},
		{"seven integer digits", "1000000", true},
		{"seven fractional digits", "0.0000001", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckPrice(MustPrice(tt.in))
			if tt.wantErr && err == nil {
				t.Errorf("expected error for %s", tt.in)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error for %s: %v", tt.in, err)
			}
		})
	}
}
