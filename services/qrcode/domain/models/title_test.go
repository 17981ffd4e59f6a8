package models

import (
	"strings"
	"testing"
)

func TestNewTitle(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{"single character", "a", false},
		{"normal title", "Spring sale poster", false},
		{"255 characters", strings.Repeat("x", 255), false},
		{"255 multibyte characters", strings.Repeat("é", 255), false},
		{"empty", "", true},
		{"256 characters", strings.Repeat("x", 256), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTitle(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.String() != tt.in {
				t.Fatalf("expected %q, got %q", tt.in, got.String())
			}
		})
	}
}

func TestDestination_Valid(t *testing.T) {
	for _, d := range []Destination{DestinationProduct, DestinationCheckout, DestinationDiscount} {
		if !d.Valid() {
			t.Errorf("%q should be valid", d)
		}
	}
	for _, d := range []Destination{"", "homepage", "Product"} {
		if d.Valid() {
			t.Errorf("%q should be invalid", d)
		}
	}
}
