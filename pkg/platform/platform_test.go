package platform

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	p := Detect()
	assert.Equal(t, runtime.GOOS, p.OS)
	assert.Equal(t, runtime.GOOS == "windows", p.Windows)
}

func TestForOS(t *testing.T) {
	assert.True(t, ForOS("windows").Windows)
	assert.False(t, ForOS("linux").Windows)
	assert.False(t, ForOS("darwin").Windows)
	assert.Equal(t, "darwin", ForOS("darwin").String())
}
