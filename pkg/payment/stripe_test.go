package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToMinorUnits(t *testing.T) {
	assert.Equal(t, int64(149999), toMinorUnits(1499.99))
	assert.Equal(t, int64(1000), toMinorUnits(10))
	assert.Equal(t, int64(30), toMinorUnits(0.3))
}
