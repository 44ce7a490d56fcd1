package version

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInfoString(t *testing.T) {
	t.Parallel()

	info := Info{
		Version:   "1.2.0",
		GitCommit: "0123456789abcdef",
		BuildDate: "2026-10-01",
		Platform:  "linux/amd64",
	}
	assert.Equal(t, "0123456", info.ShortCommit())
	assert.Equal(t, "themectl 1.2.0 (linux/amd64) commit 0123456 built 2026-10-01", info.String())

	info.GitCommit = "abc"
	info.BuildDate = ""
	assert.Equal(t, "themectl 1.2.0 (linux/amd64) commit abc", info.String())
}

func TestInfoJSON(t *testing.T) {
	t.Parallel()

	data, err := Get().JSON()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, Version, decoded["version"])
	assert.NotEmpty(t, decoded["go_version"])
	assert.NotEmpty(t, decoded["platform"])
}
