package validation

import (
	"strings"
	"testing"

	"offerte/internal/core/apperror"
	"offerte/internal/domain/offer"
)

func TestCheckFieldRequired(t *testing.T) {
	findings := CheckField("", FieldSpec{Path: "x", Kind: Text, Required: true})
	if len(findings) != 1 {
		t.Fatalf("expected one finding, got %d", len(findings))
	}
	if findings[0].Code != apperror.CodeRequiredFieldMissing {
		t.Errorf("expected %s, got %s", apperror.CodeRequiredFieldMissing, findings[0].Code)
	}

	if findings := CheckField("", FieldSpec{Path: "x", Kind: Text}); len(findings) != 0 {
		t.Errorf("optional empty field should pass, got %v", findings)
	}
}

func TestCheckFieldFormats(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		spec     FieldSpec
		wantCode string
	}{
		{"upper alnum ok", "OFFER2024", FieldSpec{Kind: UpperAlnum}, ""},
		{"upper alnum lowercase", "offer2024", FieldSpec{Kind: UpperAlnum}, apperror.CodeFormat},
		{"upper alnum space", "OFFER 24", FieldSpec{Kind: UpperAlnum}, apperror.CodeFormat},
		{"phone ok", "+39 0212345678", FieldSpec{Kind: Phone}, ""},
		{"phone letters", "call me", FieldSpec{Kind: Phone}, apperror.CodeFormat},
		{"timestamp ok", "01/06/2024_00:00:00", FieldSpec{Kind: Timestamp}, ""},
		{"timestamp iso rejected", "2024-06-01T00:00:00", FieldSpec{Kind: Timestamp}, apperror.CodeFormat},
		{"timestamp missing time", "01/06/2024", FieldSpec{Kind: Timestamp}, apperror.CodeFormat},
		{"month year ok", "06/2024", FieldSpec{Kind: MonthYear}, ""},
		{"month year thirteen", "13/2024", FieldSpec{Kind: MonthYear}, apperror.CodeFormat},
		{"enum ok", "01", FieldSpec{Kind: Enum, Set: offer.MarketTypes}, ""},
		{"enum unknown", "77", FieldSpec{Kind: Enum, Set: offer.MarketTypes}, apperror.CodeUnknownEnumValue},
		{"digits ok", "123", FieldSpec{Kind: Digits, Width: 3}, ""},
		{"digits wrong width", "12", FieldSpec{Kind: Digits, Width: 3}, apperror.CodeFormat},
		{"digits letters", "12a", FieldSpec{Kind: Digits, Width: 3}, apperror.CodeFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.spec.Path = "x"
			findings := CheckField(tt.value, tt.spec)
			if tt.wantCode == "" {
				if len(findings) != 0 {
					t.Errorf("expected no findings, got %v", findings)
				}
				return
			}
			if len(findings) != 1 {
				t.Fatalf("expected one finding, got %v", findings)
			}
			if findings[0].Code != tt.wantCode {
				t.Errorf("expected code %s, got %s", tt.wantCode, findings[0].Code)
			}
		})
	}
}

func TestCheckFieldMaxLen(t *testing.T) {
	findings := CheckField(strings.Repeat("a", 26), FieldSpec{Path: "x", Kind: Text, MaxLen: 25})
	if len(findings) != 1 || findings[0].Code != apperror.CodeRange {
		t.Errorf("expected one range finding, got %v", findings)
	}
}

func TestCheckEnumList(t *testing.T) {
	set := offer.PaymentMethodCodes

	if f := checkEnumList("methods", nil, set, true); len(f) != 1 {
		t.Errorf("required empty list: expected one finding, got %v", f)
	}
	if f := checkEnumList("methods", nil, set, false); len(f) != 0 {
		t.Errorf("optional empty list: expected no findings, got %v", f)
	}

	f := checkEnumList("methods", []string{"01", "77"}, set, true)
	if len(f) != 1 || f[0].Code != apperror.CodeUnknownEnumValue {
		t.Fatalf("expected one unknown-enum finding, got %v", f)
	}
	if f[0].Path != "methods[1]" {
		t.Errorf("expected path methods[1], got %s", f[0].Path)
	}

	f = checkEnumList("methods", []string{"01", "02", "01"}, set, true)
	if len(f) != 1 || f[0].Code != apperror.CodeCrossFieldInconsistency {
		t.Errorf("expected one duplicate finding, got %v", f)
	}
}
