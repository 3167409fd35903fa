package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/AnishMulay/sandsplit/internal/config"
	"github.com/AnishMulay/sandsplit/internal/sandsplit"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestToolServer(t *testing.T) *toolServer {
	t.Helper()
	return newConfiguredToolServer(t, config.Default())
}

func newConfiguredToolServer(t *testing.T, cfg *config.Config) *toolServer {
	t.Helper()
	tool, err := sandsplit.Build(sandsplit.Options{
		LogLevel:    "error",
		LogLocation: filepath.Join(t.TempDir(), "mcp.log"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { tool.Close() })
	return &toolServer{files: tool.Files, ls: tool.Log, cfg: cfg}
}

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestHandleSplitAndJoinFile(t *testing.T) {
	ts := newTestToolServer(t)
	dir := t.TempDir()
	outDir := t.TempDir()
	source := filepath.Join(dir, "report.pdf")
	require.NoError(t, os.WriteFile(source, []byte("0123456789abcdefghij12345"), 0644))

	res, err := handleSplitFile(context.Background(), callRequest("split_file", map[string]any{
		"path":   source,
		"size":   "1KB",
		"verify": true,
	}), ts)
	require.NoError(t, err)
	assert.False(t, res.IsError)
	text := resultText(t, res)
	assert.Contains(t, text, "into 1 chunks")
	assert.Contains(t, text, "In file checksum: ")

	res, err = handleJoinFile(context.Background(), callRequest("join_file", map[string]any{
		"path":   source + ".001",
		"output": outDir,
		"verify": true,
	}), ts)
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Contains(t, resultText(t, res), "Out file checksum: ")

	joined, err := os.ReadFile(filepath.Join(outDir, "report.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "0123456789abcdefghij12345", string(joined))
}

func TestHandleSplitFile_Errors(t *testing.T) {
	ts := newTestToolServer(t)
	dir := t.TempDir()

	tests := []struct {
		name string
		args map[string]any
	}{
		{name: "missing path", args: map[string]any{"size": "1MB"}},
		{name: "missing size", args: map[string]any{"path": filepath.Join(dir, "x")}},
		{name: "bad unit", args: map[string]any{"path": filepath.Join(dir, "x"), "size": "1TB"}},
		{name: "missing source", args: map[string]any{"path": filepath.Join(dir, "x"), "size": "1MB"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := handleSplitFile(context.Background(), callRequest("split_file", tt.args), ts)

			require.NoError(t, err)
			assert.True(t, res.IsError)
		})
	}
}

func TestHandleSplitAndJoinFile_ConfigDefaults(t *testing.T) {
	srcDir := t.TempDir()
	chunkDir := t.TempDir()
	joinDir := t.TempDir()
	source := filepath.Join(srcDir, "data.bin")
	require.NoError(t, os.WriteFile(source, make([]byte, 2500), 0644))

	cfg := config.Default()
	cfg.Split.Size = "1KB"
	cfg.Split.Output = chunkDir
	cfg.Join.Output = joinDir
	cfg.Verify = true
	ts := newConfiguredToolServer(t, cfg)

	res, err := handleSplitFile(context.Background(), callRequest("split_file", map[string]any{"path": source}), ts)
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(t, res))
	text := resultText(t, res)
	assert.Contains(t, text, "into 3 chunks")
	assert.Contains(t, text, "In file checksum: ")
	_, err = os.Stat(filepath.Join(chunkDir, "data.bin.003"))
	assert.NoError(t, err)

	res, err = handleJoinFile(context.Background(), callRequest("join_file", map[string]any{
		"path": filepath.Join(chunkDir, "data.bin.001"),
	}), ts)
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(t, res))
	assert.Contains(t, resultText(t, res), "Out file checksum: ")

	joined, err := os.ReadFile(filepath.Join(joinDir, "data.bin"))
	require.NoError(t, err)
	assert.Len(t, joined, 2500)
}

func TestHandleJoinFile_MissingFirstChunk(t *testing.T) {
	ts := newTestToolServer(t)

	res, err := handleJoinFile(context.Background(), callRequest("join_file", map[string]any{
		"path": filepath.Join(t.TempDir(), "gone.bin.001"),
	}), ts)

	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestHandleChecksumFile(t *testing.T) {
	ts := newTestToolServer(t)
	path := filepath.Join(t.TempDir(), "hello.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello world"), 0644))

	res, err := handleChecksumFile(context.Background(), callRequest("checksum_file", map[string]any{"path": path}), ts)
	require.NoError(t, err)
	assert.Contains(t, resultText(t, res), "md5 checksum of "+path+": 5eb63bbbe01eeed093cb22bb8f5acdc3")

	res, err = handleChecksumFile(context.Background(), callRequest("checksum_file", map[string]any{
		"path":      path,
		"algorithm": "sha1",
	}), ts)
	require.NoError(t, err)
	assert.True(t, res.IsError)
}
