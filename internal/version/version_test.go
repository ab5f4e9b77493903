package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	assert.Equal(t, Version, String())

	oldCommit, oldTime := GitCommit, BuildTime
	t.Cleanup(func() { GitCommit, BuildTime = oldCommit, oldTime })

	GitCommit, BuildTime = "abc123", "2026-10-19"
	assert.Equal(t, Version+" (commit abc123, built 2026-10-19)", String())
}
