package transfer

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

// ErrInvalidAmountType indicates the amount was not supplied as a native JSON
// integer. This is a caller contract violation, kept distinct from the
// business-rule rejection of zero or negative amounts.
var ErrInvalidAmountType = errors.New("invalid amount type")

// ParseAmount decodes the raw amount field of a transfer request. Strings are
// rejected even when their content is numeric, as are fractional or exponent
// number forms; only a plain JSON integer passes.
func ParseAmount(raw json.RawMessage) (int64, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] == '"' {
		return 0, ErrInvalidAmountType
	}

	var num json.Number
	if err := json.Unmarshal(trimmed, &num); err != nil {
		return 0, ErrInvalidAmountType
	}
	if strings.ContainsAny(num.String(), ".eE") {
		return 0, ErrInvalidAmountType
	}

	amount, err := num.Int64()
	if err != nil {
		return 0, ErrInvalidAmountType
	}
	return amount, nil
}
