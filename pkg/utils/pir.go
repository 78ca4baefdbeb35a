package utils

import (
	"fmt"
	"strings"
	"time"
)

// NormalizePIR canonicalizes a report identifier: trimmed, upper-cased.
// Every store and lookup compares PIRs in this form.
func NormalizePIR(pir string) string {
	return strings.ToUpper(strings.TrimSpace(pir))
}

// SynthesizeUntaggedPIR generates an identifier for a found bag that
// carries no tag, e.g. "UNTAGGED-1730000000000".
func SynthesizeUntaggedPIR(now time.Time) string {
	return fmt.Sprintf("UNTAGGED-%d", now.UnixMilli())
}

// SynthesizeShortTag generates the short form used when staff want a
// hand-writable label, e.g. "UNTG-4821" (last four digits of the
// millisecond clock).
func SynthesizeShortTag(now time.Time) string {
	ms := fmt.Sprintf("%d", now.UnixMilli())
	return "UNTG-" + ms[len(ms)-4:]
}
