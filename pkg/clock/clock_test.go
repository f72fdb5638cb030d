package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManual(t *testing.T) {
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewManual(t0)

	assert.Equal(t, t0, c.Now())
	assert.Equal(t, t0.Add(time.Minute), c.Advance(time.Minute))

	c.Set(t0)
	assert.Equal(t, t0.Add(time.Minute), c.Now(), "clock must not go backwards")

	c.Advance(-time.Hour)
	assert.Equal(t, t0.Add(time.Minute), c.Now())

	c.Set(t0.Add(time.Hour))
	assert.Equal(t, t0.Add(time.Hour), c.Now())
}

func TestSystem(t *testing.T) {
	a := System{}.Now()
	b := System{}.Now()
	assert.False(t, b.Before(a))
	assert.Equal(t, time.UTC, a.Location())
}
