package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanup_RunsInReverseOrder(t *testing.T) {
	var c Cleanup
	var order []int
	c.Add(func() { order = append(order, 1) })
	c.Add(nil)
	c.Add(func() { order = append(order, 2) })
	c.Add(func() { order = append(order, 3) })
	assert.Equal(t, 3, c.Len())

	c.Run()
	assert.Equal(t, []int{3, 2, 1}, order)
	assert.Zero(t, c.Len())

	c.Run()
	assert.Len(t, order, 3, "second Run is a no-op")
}

func TestCleanup_PanicDoesNotSkipOthers(t *testing.T) {
	var c Cleanup
	ran := 0
	c.Add(func() { ran++ })
	c.Add(func() { panic("boom") })
	c.Add(func() { ran++ })

	assert.PanicsWithValue(t, "boom", c.Run)
	assert.Equal(t, 2, ran)
	assert.Zero(t, c.Len())
}
