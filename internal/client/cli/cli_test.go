package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/todosync/internal/client/auth"
	"github.com/iudanet/todosync/internal/client/iocli"
	"github.com/iudanet/todosync/internal/client/storage"
	"github.com/iudanet/todosync/internal/models"
)

// output собирает вывод IOMock в строки
type output struct {
	lines  []string
	inputs []string
}

func joinArgs(a []any) string {
	parts := make([]string, len(a))
	for i, v := range a {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, " ")
}

func (o *output) mock() *iocli.IOMock {
	return &iocli.IOMock{
		PrintlnFunc: func(a ...any) {
			o.lines = append(o.lines, joinArgs(a))
		},
		PrintfFunc: func(format string, a ...any) {
			o.lines = append(o.lines, fmt.Sprintf(format, a...))
		},
		ReadInputFunc: func(prompt string) (string, error) {
			if len(o.inputs) == 0 {
				return "", errors.New("unexpected input")
			}
			in := o.inputs[0]
			o.inputs = o.inputs[1:]
			return in, nil
		},
		ReadPasswordFunc: func(prompt string) (string, error) {
			if len(o.inputs) == 0 {
				return "", errors.New("unexpected input")
			}
			in := o.inputs[0]
			o.inputs = o.inputs[1:]
			return in, nil
		},
	}
}

func (o *output) String() string {
	return strings.Join(o.lines, "\n")
}

// TestReadPassphrase_FromEnvVar переменная окружения важнее остальных источников
func TestReadPassphrase_FromEnvVar(t *testing.T) {
	t.Setenv(PassphraseEnvVar, "from-env")

	passphrase, err := ReadPassphrase(&iocli.IOMock{}, Passphrases{FromArgs: "from-args"}, true)
	require.NoError(t, err)
	assert.Equal(t, "from-env", passphrase)
}

// TestReadPassphrase_FromFile проверяет чтение пароля из файла
func TestReadPassphrase_FromFile(t *testing.T) {
	t.Setenv(PassphraseEnvVar, "")
	path := filepath.Join(t.TempDir(), "passphrase.txt")
	require.NoError(t, os.WriteFile(path, []byte("from-file\n"), 0o600))

	passphrase, err := ReadPassphrase(&iocli.IOMock{}, Passphrases{FromFile: path, FromArgs: "from-args"}, true)
	require.NoError(t, err)
	assert.Equal(t, "from-file", passphrase)

	empty := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(empty, []byte("\n"), 0o600))
	_, err = ReadPassphrase(&iocli.IOMock{}, Passphrases{FromFile: empty}, true)
	assert.ErrorContains(t, err, "passphrase file is empty")

	_, err = ReadPassphrase(&iocli.IOMock{}, Passphrases{FromFile: filepath.Join(t.TempDir(), "missing")}, true)
	assert.ErrorContains(t, err, "failed to read passphrase file")
}

func TestReadPassphrase_FromArgsAndPrompt(t *testing.T) {
	t.Setenv(PassphraseEnvVar, "")

	passphrase, err := ReadPassphrase(&iocli.IOMock{}, Passphrases{FromArgs: "from-args"}, true)
	require.NoError(t, err)
	assert.Equal(t, "from-args", passphrase)

	// без источников и без интерактива пароль просто не задан
	passphrase, err = ReadPassphrase(&iocli.IOMock{}, Passphrases{}, false)
	require.NoError(t, err)
	assert.Empty(t, passphrase)

	out := &output{inputs: []string{"typed"}}
	io := out.mock()
	passphrase, err = ReadPassphrase(io, Passphrases{}, true)
	require.NoError(t, err)
	assert.Equal(t, "typed", passphrase)
	assert.Len(t, io.ReadPasswordCalls(), 1)

	out = &output{inputs: []string{""}}
	_, err = ReadPassphrase(out.mock(), Passphrases{}, true)
	assert.ErrorContains(t, err, "passphrase cannot be empty")
}

func TestCli_RunToken(t *testing.T) {
	ctx := context.Background()
	out := &output{inputs: []string{"header.payload.sig"}}
	mockAuth := &auth.ServiceMock{
		SaveTokenFunc: func(ctx context.Context, token, passphrase string) (*storage.AuthData, error) {
			return &storage.AuthData{Username: "alice", ExpiresAt: 1700000000, Encrypted: passphrase != ""}, nil
		},
	}
	cli := &Cli{io: out.mock(), authService: mockAuth}

	require.NoError(t, cli.RunToken(ctx, "", "secret"))

	require.Len(t, mockAuth.SaveTokenCalls(), 1)
	assert.Equal(t, "header.payload.sig", mockAuth.SaveTokenCalls()[0].Token)
	assert.Equal(t, "secret", mockAuth.SaveTokenCalls()[0].Passphrase)
	assert.Contains(t, out.String(), "User:    alice")
	assert.Contains(t, out.String(), "encrypted")
}

func TestCli_RunToken_Error(t *testing.T) {
	out := &output{}
	cli := &Cli{io: out.mock(), authService: &auth.ServiceMock{
		SaveTokenFunc: func(ctx context.Context, token, passphrase string) (*storage.AuthData, error) {
			return nil, auth.ErrEmptyToken
		},
	}}

	err := cli.RunToken(context.Background(), " ", "")
	assert.ErrorIs(t, err, auth.ErrEmptyToken)
}

func TestCli_RunLogout(t *testing.T) {
	out := &output{}
	mockAuth := &auth.ServiceMock{
		LogoutFunc: func(ctx context.Context) error { return nil },
	}
	cli := &Cli{io: out.mock(), authService: mockAuth}

	require.NoError(t, cli.RunLogout(context.Background()))
	assert.Len(t, mockAuth.LogoutCalls(), 1)
	assert.Contains(t, out.String(), "Logout successful")

	mockAuth.LogoutFunc = func(ctx context.Context) error { return errors.New("disk full") }
	assert.ErrorContains(t, cli.RunLogout(context.Background()), "logout failed")
}

func TestParsePairs(t *testing.T) {
	fields, err := parsePairs([]string{"name=Groceries", " todo_id = 42", "note=a=b"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "Groceries", "todo_id": " 42", "note": "a=b"}, fields)

	_, err = parsePairs([]string{"broken"})
	assert.Error(t, err)
	_, err = parsePairs([]string{"=value"})
	assert.Error(t, err)
}

func TestSyncMark(t *testing.T) {
	assert.Empty(t, syncMark(&models.Record{SyncStatus: models.RecordSynced}))
	assert.Equal(t, " (not synced)", syncMark(&models.Record{SyncStatus: models.RecordModified}))
}
