package admin

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/blogkeeper/internal/common"
)

func stubPassword(t *testing.T, pw string, err error) {
	t.Helper()
	old := readPassword
	t.Cleanup(func() { readPassword = old })
	readPassword = func(int) ([]byte, error) {
		return []byte(pw), err
	}
}

func TestRun_CreateUser(t *testing.T) {
	stubPassword(t, "s3cret", nil)

	var out bytes.Buffer
	err := Run(context.Background(),
		[]string{"create-user", "-u", "admin", "-e", "admin@example.com", "-storage", "memory"},
		strings.NewReader(""), &out)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "User admin created with id ")
}

func TestRun_CreateUser_PromptsForMissingFields(t *testing.T) {
	stubPassword(t, "s3cret", nil)

	var out bytes.Buffer
	err := Run(context.Background(),
		[]string{"create-user", "-storage", "memory"},
		strings.NewReader("admin\nadmin@example.com\n"), &out)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Enter username")
	assert.Contains(t, out.String(), "Enter email")
	assert.Contains(t, out.String(), "User admin created")
}

func TestRun_CreateUser_EmptyPassword(t *testing.T) {
	stubPassword(t, "", nil)

	err := Run(context.Background(),
		[]string{"create-user", "-u", "admin", "-e", "admin@example.com", "-storage", "memory"},
		strings.NewReader(""), &bytes.Buffer{})

	require.Error(t, err)
	assert.Equal(t, common.KindValidation, common.KindOf(err))
}

func TestRun_CreateUser_PasswordReadFails(t *testing.T) {
	stubPassword(t, "", errors.New("not a terminal"))

	err := Run(context.Background(),
		[]string{"create-user", "-u", "admin", "-e", "admin@example.com", "-storage", "memory"},
		strings.NewReader(""), &bytes.Buffer{})

	assert.ErrorContains(t, err, "not a terminal")
}

func TestRun_Usage(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no command", nil},
		{"unknown command", []string{"drop-db"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Run(context.Background(), tt.args, strings.NewReader(""), &bytes.Buffer{})
			assert.ErrorIs(t, err, ErrUsage)
		})
	}
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(bufio.NewReader(strings.NewReader("hello world\n")), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Equal(t, "Name?\n> ", out.String())

	got, err = GetSimpleText(bufio.NewReader(strings.NewReader("lastline")), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "lastline", got)
}
