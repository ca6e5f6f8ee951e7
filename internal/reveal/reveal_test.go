package reveal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNearBottom(t *testing.T) {
	tests := []struct {
		name string
		s    Surface
		want bool
	}{
		{name: "top of long list", s: Surface{YOffset: 0, Height: 10, TotalLines: 40}, want: false},
		{name: "within threshold", s: Surface{YOffset: 28, Height: 10, TotalLines: 40}, want: true},
		{name: "just outside", s: Surface{YOffset: 27, Height: 10, TotalLines: 40}, want: false},
		{name: "at bottom", s: Surface{YOffset: 30, Height: 10, TotalLines: 40}, want: true},
		{name: "content shorter than view", s: Surface{YOffset: 0, Height: 10, TotalLines: 4}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NearBottom(tt.s, 2))
		})
	}
}

func TestWatcher_FiresOncePerPosition(t *testing.T) {
	w := New(2)
	w.Start()

	bottom := Surface{YOffset: 30, Height: 10, TotalLines: 40}
	assert.True(t, w.Observe(bottom))
	assert.False(t, w.Observe(bottom))

	// content grew after the reveal; same offset is a new position
	grown := Surface{YOffset: 30, Height: 10, TotalLines: 50}
	assert.False(t, w.Observe(grown))

	assert.True(t, w.Observe(Surface{YOffset: 40, Height: 10, TotalLines: 50}))
}

func TestWatcher_Stopped(t *testing.T) {
	w := New(2)
	bottom := Surface{YOffset: 30, Height: 10, TotalLines: 40}

	assert.False(t, w.Observe(bottom), "not started")

	w.Start()
	assert.True(t, w.Active())
	w.Stop()
	assert.False(t, w.Active())
	assert.False(t, w.Observe(bottom))

	w.Start()
	assert.True(t, w.Observe(bottom))
}
