package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSingleSlot(t *testing.T) {
	assert.True(t, IsSingleSlot(DocPhoto))
	assert.True(t, IsSingleSlot(DocPassport))
	assert.True(t, IsSingleSlot(DocLicense))

	// CVs accumulate, one per upload
	assert.False(t, IsSingleSlot(DocCV))
	assert.False(t, IsSingleSlot("unknown"))
}
