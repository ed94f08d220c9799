package stringtest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/saltyorg/chartpedia/internal/stringtest"
)

func TestJoin(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a\nb", stringtest.JoinLF("a", "b"))
	assert.Equal(t, "a\r\nb", stringtest.JoinCRLF("a", "b"))
	assert.Equal(t, "a\n\nb\n", stringtest.Lines("a", "", "b"))
	assert.Empty(t, stringtest.Lines())
}
