package enum

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DiscountKind selects how a line item's discount value is applied
type DiscountKind int

const (
	DiscountAbsolute DiscountKind = 0
	DiscountPercent  DiscountKind = 1
)

// String returns the wire name used by the storage endpoint ("amount" or "percent").
func (k DiscountKind) String() string {
	if k == DiscountPercent {
		return "percent"
	}
	return "amount"
}

// Symbol is the suffix printed after a discount value.
func (k DiscountKind) Symbol() string {
	if k == DiscountPercent {
		return "%"
	}
	return "Rs"
}

// ParseDiscountKind accepts "amount", "absolute", "percent" or "%" in any case.
func ParseDiscountKind(s string) (DiscountKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "amount", "absolute", "":
		return DiscountAbsolute, nil
	case "percent", "%":
		return DiscountPercent, nil
	}
	return DiscountAbsolute, fmt.Errorf("unknown discount kind %q", s)
}

func (k DiscountKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *DiscountKind) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*k = DiscountKind(i)
		return nil
	}
	parsed, err := ParseDiscountKind(str)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
