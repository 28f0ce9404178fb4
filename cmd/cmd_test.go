package cmd

import (
	"bytes"
	"os"
	"strings"
	"testing"

	internalApp "github.com/haierkeys/fast-note-folder-service/internal/app"
	pkgapp "github.com/haierkeys/fast-note-folder-service/pkg/app"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	c := newIDCommand()
	if args[0] == "token" {
		c = newTokenCommand()
		args = args[1:]
	}
	c.SetOut(&out)
	c.SetErr(&out)
	c.SetArgs(args)
	err := c.Execute()
	return out.String(), err
}

func TestIDCommand_RoundTrip(t *testing.T) {
	chdir(t, t.TempDir())

	key := uuid.New()
	out, err := runCommand(t, "encode", key.String())
	require.NoError(t, err)

	fields := strings.Fields(out)
	require.Len(t, fields, 2)
	opaque := fields[1]

	out, err = runCommand(t, "decode", opaque)
	require.NoError(t, err)
	assert.Equal(t, opaque+"\t"+key.String()+"\n", out)

	_, err = runCommand(t, "encode", "not-a-uuid")
	assert.Error(t, err)

	_, err = runCommand(t, "decode", "###")
	assert.Error(t, err)
}

func TestTokenCommand(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := runCommand(t, "token", "--uid", "0")
	assert.Error(t, err)

	out, err := runCommand(t, "token", "--uid", "42")
	require.NoError(t, err)

	cfg, err := internalApp.ParseConfig(nil)
	require.NoError(t, err)
	user, err := pkgapp.NewTokenManager(cfg.GetTokenConfig()).Parse(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, int64(42), user.UID)
}

func TestResolveConfigPath(t *testing.T) {
	chdir(t, t.TempDir())

	p, err := resolveConfigPath("custom.yaml", "")
	require.NoError(t, err)
	assert.Equal(t, "custom.yaml", p)

	p, err = resolveConfigPath("", "security:\n  auth-token-key: "+placeholderAuthKey+"\n")
	require.NoError(t, err)
	assert.Equal(t, defaultConfigPath, p)

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.NotContains(t, string(data), placeholderAuthKey)

	cfg, _, err := internalApp.LoadConfig(p)
	require.NoError(t, err)
	assert.False(t, checkSecurityConfigWithConfig(cfg, nil))

	// second call finds the written file
	p2, err := resolveConfigPath("", "")
	require.NoError(t, err)
	assert.Equal(t, defaultConfigPath, p2)
}

func TestApplyRunFlags(t *testing.T) {
	cfg, err := internalApp.ParseConfig(nil)
	require.NoError(t, err)

	applyRunFlags(cfg, &runFlags{port: "8080", runMode: "debug"})
	assert.Equal(t, ":8080", cfg.Server.HttpPort)
	assert.Equal(t, "debug", cfg.Server.RunMode)

	applyRunFlags(cfg, &runFlags{port: "127.0.0.1:9000"})
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.HttpPort)
	assert.Equal(t, "debug", cfg.Server.RunMode)

	assert.True(t, checkSecurityConfigWithConfig(cfg, nil))
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
