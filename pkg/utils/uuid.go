package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultBillPrefix is used when no shop prefix is configured.
const DefaultBillPrefix = "AC"

// NewRowID generates an identifier for a line item row.
func NewRowID() string {
	return uuid.NewString()
}

// NewRequestID generates a request correlation id.
func NewRequestID() string {
	return uuid.New().String()
}

// GenerateBillNumber returns "<PREFIX>-<YYYYMMDD>-<last 6 digits of epoch ms>".
// The date part uses the local calendar date of now.
func GenerateBillNumber(prefix string, now time.Time) string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = DefaultBillPrefix
	}
	ms := strconv.FormatInt(now.UnixMilli(), 10)
	if len(ms) > 6 {
		ms = ms[len(ms)-6:]
	}
	return fmt.Sprintf("%s-%s-%s", prefix, now.Format("20060102"), ms)
}
