package utils

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePIR(t *testing.T) {
	assert.Equal(t, "JEDSV12345", NormalizePIR("  jedsv12345 "))
	assert.Equal(t, "", NormalizePIR("   "))
}

func TestSynthesizeUntaggedPIR(t *testing.T) {
	now := time.UnixMilli(1730000000000)
	assert.Equal(t, "UNTAGGED-1730000000000", SynthesizeUntaggedPIR(now))
	assert.Regexp(t, regexp.MustCompile(`^UNTAGGED-\d+$`), SynthesizeUntaggedPIR(time.Now()))
}

func TestSynthesizeShortTag(t *testing.T) {
	now := time.UnixMilli(1730000004821)
	assert.Equal(t, "UNTG-4821", SynthesizeShortTag(now))
	assert.Regexp(t, regexp.MustCompile(`^UNTG-\d{4}$`), SynthesizeShortTag(time.Now()))
}
