package stopwatch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStopwatch_StopAndLap(t *testing.T) {
	var sw Stopwatch
	sw.Start()
	time.Sleep(5 * time.Millisecond)

	lap := sw.Lap()
	assert.GreaterOrEqual(t, lap, 5*time.Millisecond)

	time.Sleep(5 * time.Millisecond)
	total := sw.Stop()
	assert.GreaterOrEqual(t, total, 10*time.Millisecond)
}
