package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManualSubmit(t *testing.T) {
	c := &collector{}
	m := NewManualAdapter(c.submit)
	m.Start()

	require.NoError(t, m.Submit("  ASSET-1  "))
	assert.Equal(t, []string{"ASSET-1"}, c.all(), "input is trimmed before submission")
}

func TestManualSubmitValidation(t *testing.T) {
	c := &collector{}
	m := NewManualAdapter(c.submit)
	m.Start()

	assert.ErrorIs(t, m.Submit("   "), ErrEmptyInput)
	assert.ErrorIs(t, m.Submit(""), ErrEmptyInput)
	assert.Empty(t, c.all())
}

func TestManualSubmitWhenInactive(t *testing.T) {
	c := &collector{}
	m := NewManualAdapter(c.submit)

	assert.ErrorIs(t, m.Submit("ASSET-1"), ErrInactive)

	m.Start()
	m.Stop()
	assert.ErrorIs(t, m.Submit("ASSET-1"), ErrInactive)
	assert.Empty(t, c.all())
}
