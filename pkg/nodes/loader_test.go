package nodes

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoaderReadsTextFile(t *testing.T) {
	path := writeTempFile(t, "notes.txt", "Shipping is configured under settings.")
	node := &DocumentLoaderNode{}

	res, err := node.Execute(context.Background(), Request{
		Config: map[string]any{"uploaded_file": path},
	})
	require.NoError(t, err)

	assert.Equal(t, "Shipping is configured under settings.", res.Outputs["text"])
	meta := res.Outputs["metadata"].(map[string]any)
	assert.Equal(t, "notes.txt", meta["file_name"])
	assert.Equal(t, "txt", meta["file_type"])
}

func TestLoaderExplicitTypeOverridesExtension(t *testing.T) {
	path := writeTempFile(t, "readme.dat", "# Heading\n\nbody text")
	node := &DocumentLoaderNode{}

	res, err := node.Execute(context.Background(), Request{
		Config: map[string]any{"uploaded_file": path, "file_type": "md"},
	})
	require.NoError(t, err)
	assert.Contains(t, res.Outputs["text"], "body text")
}

func TestLoaderUnsupportedFormat(t *testing.T) {
	path := writeTempFile(t, "report.docx", "binary-ish")
	node := &DocumentLoaderNode{}

	_, err := node.Execute(context.Background(), Request{
		Config: map[string]any{"uploaded_file": path},
	})
	var formatErr *UnsupportedFormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, "docx", formatErr.Format)
}

func TestLoaderMissingFile(t *testing.T) {
	node := &DocumentLoaderNode{}
	_, err := node.Execute(context.Background(), Request{
		Config: map[string]any{"uploaded_file": "/does/not/exist.txt"},
	})
	require.Error(t, err)
}

func TestLoaderRequiresPath(t *testing.T) {
	node := &DocumentLoaderNode{}
	_, err := node.Execute(context.Background(), Request{})
	var evalErr *EvaluationError
	require.ErrorAs(t, err, &evalErr)
}
