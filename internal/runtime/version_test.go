package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionString(t *testing.T) {
	oldVersion, oldCommit, oldTime := Version, GitCommit, BuildTime
	t.Cleanup(func() { Version, GitCommit, BuildTime = oldVersion, oldCommit, oldTime })

	Version, GitCommit, BuildTime = "1.2.3", "abc1234", "2026-01-02T03:04:05Z"
	assert.Equal(t, "1.2.3", ModuleVersion())
	assert.Equal(t, "chartpedia version 1.2.3 (abc1234) built 2026-01-02T03:04:05Z", VersionString())
}
