package models

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/ghuser/boundedstr/pkg/bounded"
)

func TestNewItemName(t *testing.T) {
	t.Run("valid single character", func(t *testing.T) {
		n, err := NewItemName("a")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n.String() != "a" {
			t.Fatalf("expected %q, got %q", "a", n.String())
		}
	})

	t.Run("valid 255 characters", func(t *testing.T) {
		s := strings.Repeat("x", 255)
		n, err := NewItemName(s)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n.String() != s {
			t.Fatalf("expected string of length 255, got %d", n.Len())
		}
	})

	t.Run("empty string is too short", func(t *testing.T) {
		_, err := NewItemName("")
		var short *bounded.TooShortError
		if !errors.As(err, &short) {
			t.Fatalf("expected TooShortError, got %v", err)
		}
		if short.Len != 0 || short.Min != 1 {
			t.Fatalf("unexpected error fields: %+v", *short)
		}
	})

	t.Run("256 characters is too long", func(t *testing.T) {
		_, err := NewItemName(strings.Repeat("x", 256))
		var long *bounded.TooLongError
		if !errors.As(err, &long) {
			t.Fatalf("expected TooLongError, got %v", err)
		}
		if long.Len != 256 || long.Max != 255 {
			t.Fatalf("unexpected error fields: %+v", *long)
		}
	})
}

func TestNewOwnerName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"three characters", "Ann", false},
		{"two characters", "Al", true},
		{"255 characters", strings.Repeat("o", 255), false},
		{"256 characters", strings.Repeat("o", 256), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewOwnerName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewOwnerName(%q) error = %v, wantErr = %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestNames_HaveIndependentBounds(t *testing.T) {
	if _, err := NewItemName("ab"); err != nil {
		t.Fatalf("two characters is a valid item name: %v", err)
	}
	if _, err := NewOwnerName("ab"); err == nil {
		t.Fatal("two characters must not be a valid owner name")
	}
}

func TestItemName_JSONField(t *testing.T) {
	var body struct {
		Name  ItemName  `json:"name"`
		Owner OwnerName `json:"owner_name"`
	}
	err := json.Unmarshal([]byte(`{"name":"Widget","owner_name":"Al"}`), &body)
	if !errors.Is(err, bounded.ErrInvalidLength) {
		t.Fatalf("expected owner_name length error, got %v", err)
	}
	if err.Error() != "json: length of value 2 shorter than 3" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}
