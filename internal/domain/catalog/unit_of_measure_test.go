package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUnitOfMeasure(t *testing.T) {
	u, err := NewUnitOfMeasure("Kilogram", "kg")
	require.NoError(t, err)
	assert.Equal(t, "Kilogram", u.Name)
	assert.Equal(t, "kg", u.Abbreviation)

	_, err = NewUnitOfMeasure("", "kg")
	assert.Error(t, err)

	_, err = NewUnitOfMeasure("Kilogram", "")
	assert.Error(t, err)
}
