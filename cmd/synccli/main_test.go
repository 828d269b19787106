package main

import (
	"testing"

	"mirror/internal/domain/entity"
	"mirror/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDataTypes(t *testing.T) {
	all, err := parseDataTypes(nil)
	require.NoError(t, err)
	assert.Equal(t, entity.DataTypes(), all)

	some, err := parseDataTypes([]string{"calls", "messages"})
	require.NoError(t, err)
	assert.Equal(t, []entity.DataType{entity.DataTypeCalls, entity.DataTypeMessages}, some)

	_, err = parseDataTypes([]string{"photos"})
	assert.True(t, errors.Is(err, entity.ErrUnknownDataType))
}

func TestRootCmd_RegistersCommands(t *testing.T) {
	root := newRootCmd()

	for _, name := range []string{"create", "join", "recover", "leave", "remove", "info", "history", "plan", "qr", "stream", "stats", "clear", "put", "delete"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
		assert.NotEmpty(t, cmd.GroupID, name)
	}
}

func TestLoadConfig_MissingExplicitDir(t *testing.T) {
	_, err := loadConfig(t.TempDir())
	require.Error(t, err)
}
