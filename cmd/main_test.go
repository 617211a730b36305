package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportCommand_Flags(t *testing.T) {
	cmd := exportCommand(&globalOptions{})

	f := cmd.Flags().Lookup("format")
	require.NotNil(t, f)
	assert.Equal(t, "csv", f.DefValue)
	assert.Equal(t, "-", cmd.Flags().Lookup("output").DefValue)
	assert.NotNil(t, cmd.Flags().Lookup("database"))
}

func TestExportCommand_RequiresCollection(t *testing.T) {
	cmd := exportCommand(&globalOptions{envFile: "does-not-exist.env"})
	cmd.SetArgs([]string{})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()
	assert.ErrorContains(t, err, "collection")
}

func TestRunExport_MissingURI(t *testing.T) {
	t.Setenv("MONGODB_URI", "")
	err := runExport(context.Background(), &globalOptions{envFile: "does-not-exist.env"}, &exportOptions{collection: "c", format: "csv"}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "MONGODB_URI")
}

func TestRunExport_UnsupportedFormat(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("LOG_BACKEND", "logrus")
	err := runExport(context.Background(), &globalOptions{envFile: "does-not-exist.env"}, &exportOptions{collection: "c", format: "xml"}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "unsupported output format")
}
