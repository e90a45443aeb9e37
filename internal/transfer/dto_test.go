package transfer

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseAmountAcceptsIntegers(t *testing.T) {
	cases := map[string]int64{
		"50":    50,
		" 100 ": 100,
		"0":     0,
		"-50":   -50,
	}
	for raw, want := range cases {
		got, err := ParseAmount(json.RawMessage(raw))
		if err != nil {
			t.Fatalf("%q: unexpected error %v", raw, err)
		}
		if got != want {
			t.Fatalf("%q: got %d want %d", raw, got, want)
		}
	}
}

func TestParseAmountRejectsNonIntegers(t *testing.T) {
	cases := []string{
		`"50"`,
		`"fifty"`,
		"50.5",
		"50.0",
		"5e2",
		"true",
		"null",
		`{"value": 50}`,
		"[50]",
		"",
	}
	for _, raw := range cases {
		if _, err := ParseAmount(json.RawMessage(raw)); !errors.Is(err, ErrInvalidAmountType) {
			t.Fatalf("%q: expected type error, got %v", raw, err)
		}
	}
}
