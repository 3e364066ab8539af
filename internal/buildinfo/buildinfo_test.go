package buildinfo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringAndTemplate(t *testing.T) {
	Version, Commit, Date = "v1.2.3", "abc123", "2024-01-01"
	t.Cleanup(func() { Version, Commit, Date = "dev", "none", "unknown" })

	assert.Equal(t, "version: v1.2.3\ncommit: abc123\nbuilt: 2024-01-01", String())
	assert.Equal(t, "{{.Name}} version v1.2.3\ncommit: abc123\nbuilt: 2024-01-01\n", Template())
}
