package device

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFadeSequenceNoFades(t *testing.T) {
	seq := FadeSequence(time.Second, time.Second, 0, 0)

	require.Len(t, seq, 2)
	assert.Equal(t, Step{Value: 1, Delay: time.Second}, seq[0])
	assert.Equal(t, Step{Value: 0, Delay: time.Second}, seq[1])
}

func TestFadeSequenceShape(t *testing.T) {
	seq := FadeSequence(time.Second/2, time.Second/4, time.Second, 2*time.Second)

	// 25 fade-in steps, hold on, 50 fade-out steps, hold off
	require.Len(t, seq, 25+1+50+1)

	assert.Equal(t, Step{Value: 1, Delay: time.Second / 2}, seq[25])
	assert.Equal(t, Step{Value: 0, Delay: time.Second / 4}, seq[len(seq)-1])

	frame := time.Second / 25

	// fade-in climbs from 0 towards (but never reaching) 1
	assert.Equal(t, 0.0, seq[0].Value)
	for i := 1; i < 25; i++ {
		assert.Greater(t, seq[i].Value, seq[i-1].Value)
		assert.Less(t, seq[i].Value, 1.0)
		assert.Equal(t, frame, seq[i].Delay)
	}

	// fade-out starts at 1 and descends towards (but never reaching) 0
	assert.Equal(t, 1.0, seq[26].Value)
	for i := 27; i < 26+50; i++ {
		assert.Less(t, seq[i].Value, seq[i-1].Value)
		assert.Greater(t, seq[i].Value, 0.0)
		assert.Equal(t, frame, seq[i].Delay)
	}
}

func TestFadeSequenceOnlyFadeIn(t *testing.T) {
	seq := FadeSequence(0, 0, time.Second, 0)

	require.Len(t, seq, 25+2)
	assert.Equal(t, 0.0, seq[0].Value)
	assert.Equal(t, Step{Value: 1, Delay: 0}, seq[25])
	assert.Equal(t, Step{Value: 0, Delay: 0}, seq[26])
}
