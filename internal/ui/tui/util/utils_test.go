package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "00:00", FormatTime(0))
	assert.Equal(t, "00:59", FormatTime(59.9))
	assert.Equal(t, "02:05", FormatTime(125))
	assert.Equal(t, "1:01:05", FormatTime(3665))
	assert.Equal(t, "00:00", FormatTime(-5))
}

func TestFormatTrackDuration(t *testing.T) {
	assert.Equal(t, "3:25", FormatTrackDuration(205))
	assert.Equal(t, "0:07", FormatTrackDuration(7))
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", TruncateString("short", 20))
	assert.Equal(t, "a long tit...", TruncateString("a long title that overflows", 13))
}

func TestPadString(t *testing.T) {
	assert.Equal(t, "abc  ", PadString("abc", 5))
	assert.Len(t, PadString("abc", 5), 5)
}
