//go:build !mobile

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMobile_Desktop(t *testing.T) {
	t.Setenv("PORTFOLIO_MOBILE_EMULATE", "")
	assert.False(t, IsMobile())

	t.Setenv("PORTFOLIO_MOBILE_EMULATE", "1")
	assert.True(t, IsMobile())
}
