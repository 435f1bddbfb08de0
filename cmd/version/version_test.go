package version

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd(t *testing.T) {
	var out bytes.Buffer
	cmd := NewVersionCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Core Version: vunknown\n")
	assert.Contains(t, out.String(), "Go Version: go")
}

func TestVersionCmdJSON(t *testing.T) {
	var out bytes.Buffer
	cmd := NewVersionCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--json"})

	require.NoError(t, cmd.Execute())

	var got Versions
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, Current(), got)
}
