package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
local:
  pfcp:
    - family: ipv4
      addr: ["127.0.0.1"]
      port: 8805
  pdn:
    - addr: "10.45.0.0/16"
      apn: internet
      range: ["10.45.0.10-10.45.0.20"]
remote:
  pfcp:
    - family: ipv4
      addr: ["127.0.0.2"]
      port: 8805
      tac: [1, 2]
      apn: ["internet"]
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadParsesDocument(t *testing.T) {
	path := writeTemp(t, sampleYAML)

	c, err := Load(path)
	require.NoError(t, err)
	require.Len(t, c.Local.PFCP, 1)
	assert.Equal(t, uint16(8805), c.Local.PFCP[0].Port)
	require.Len(t, c.Local.PDN, 1)
	assert.Equal(t, "internet", c.Local.PDN[0].APN)
	require.Len(t, c.Remote.PFCP, 1)
	assert.Equal(t, []uint16{1, 2}, c.Remote.PFCP[0].TAC)
}

func TestLoadRequiresLocalPFCPBind(t *testing.T) {
	path := writeTemp(t, "local:\n  pdn: []\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
