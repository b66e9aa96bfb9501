package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/timetracker/internal/domain/model"
)

func TestPrintUsageListsEveryCommand(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printUsage(&buf))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Usage: timetracker-admin"))
	for name := range commands() {
		assert.Contains(t, out, name)
	}
	assert.Less(t, strings.Index(out, "create-user"), strings.Index(out, "unlock-user"))
}

func TestParseCreateUserFlags(t *testing.T) {
	opts, err := parseCreateUserFlags([]string{"-username", " alice ", "-email", "a@example.com", "-role", "administrator"})
	require.NoError(t, err)
	assert.Equal(t, "alice", opts.Username)
	assert.Equal(t, "ADMINISTRATOR", opts.Role)
	assert.Empty(t, opts.Password)

	opts, err = parseCreateUserFlags([]string{"-username", "bob"})
	require.NoError(t, err)
	assert.Equal(t, "EMPLOYEE", opts.Role)

	_, err = parseCreateUserFlags(nil)
	require.ErrorContains(t, err, "-username")
}

func TestParseSetRoleFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    setRoleOptions
		wantErr string
	}{
		{name: "valid", args: []string{"-user-id", "7", "-role", "employee"}, want: setRoleOptions{UserID: 7, Role: "EMPLOYEE"}},
		{name: "missing id", args: []string{"-role", "EMPLOYEE"}, wantErr: "-user-id"},
		{name: "missing role", args: []string{"-user-id", "7"}, wantErr: "-role"},
		{name: "bad id", args: []string{"-user-id", "x"}, wantErr: "invalid value"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSetRoleFlags(tt.args)
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDeleteUserFlags(t *testing.T) {
	opts, err := parseDeleteUserFlags([]string{"-user-id", "12"})
	require.NoError(t, err)
	assert.Equal(t, int64(12), opts.UserID)

	_, err = parseDeleteUserFlags(nil)
	require.ErrorContains(t, err, "-user-id")

	_, err = parseDeleteUserFlags([]string{"-user-id", "-3"})
	require.ErrorContains(t, err, "-user-id")
}

func TestParseMigrateAndSeedFlags(t *testing.T) {
	m, err := parseMigrateFlags(nil)
	require.NoError(t, err)
	assert.Equal(t, defaultCommandTimeout, m.Timeout)

	m, err = parseMigrateFlags([]string{"-timeout", "30s"})
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, m.Timeout)

	_, err = parseMigrateFlags([]string{"-timeout", "0s"})
	require.Error(t, err)

	_, err = parseSeedFlags(nil)
	require.ErrorContains(t, err, "-file")

	s, err := parseSeedFlags([]string{"-file", "users.yaml"})
	require.NoError(t, err)
	assert.Equal(t, "users.yaml", s.File)

	_, err = parseUnlockFlags([]string{"-username", "  "})
	require.ErrorContains(t, err, "-username")
}

func TestReadPassword(t *testing.T) {
	pw, err := readPassword(strings.NewReader("Secret123\r\nignored\n"))
	require.NoError(t, err)
	assert.Equal(t, "Secret123", pw)

	pw, err = readPassword(strings.NewReader("NoNewline1"))
	require.NoError(t, err)
	assert.Equal(t, "NoNewline1", pw)

	_, err = readPassword(strings.NewReader("\n"))
	require.Error(t, err)
}

func TestWriteUsers(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeUsers(&buf, []*model.UserInfo{
		{ID: 1, Username: "admin", Email: "admin@example.com", Authority: "ADMINISTRATOR"},
		{ID: 2, Username: "bob", Email: "bob@example.com", Authority: "EMPLOYEE"},
	}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"ID", "USERNAME", "EMAIL", "AUTHORITY"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"2", "bob", "bob@example.com", "EMPLOYEE"}, strings.Fields(lines[2]))
}

func TestRunUnlockUser_RequiresRedis(t *testing.T) {
	err := runUnlockUser(&commandContext{}, []string{"-username", "alice"})
	require.ErrorContains(t, err, "redis is disabled")
}
