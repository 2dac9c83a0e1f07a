package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeLegacyList(t *testing.T) {
	assert.Equal(t, []string{"lats", "biceps"}, DecodeLegacyList(`["lats", "biceps"]`))
	assert.Equal(t, []string{}, DecodeLegacyList(`[]`))
}

func TestDecodeLegacyListMalformed(t *testing.T) {
	// The old schema stored these as free text; anything unparseable reads
	// back as empty rather than failing the whole row.
	for _, raw := range []string{"", "not json", `{"a": 1}`, `["unterminated`} {
		assert.Equal(t, []string{}, DecodeLegacyList(raw), "raw=%q", raw)
	}
}
