package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/AnishMulay/sandsplit/internal/command"
	"github.com/AnishMulay/sandsplit/internal/config"
	"github.com/AnishMulay/sandsplit/internal/digest_service"
	"github.com/AnishMulay/sandsplit/internal/file_service"
	"github.com/AnishMulay/sandsplit/internal/log_service"
	"github.com/AnishMulay/sandsplit/internal/sandsplit"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type toolServer struct {
	files file_service.FileService
	ls    log_service.LogService
	// cfg supplies the defaults for arguments a call leaves out.
	cfg *config.Config
}

func addTools(s *server.MCPServer, ts *toolServer) {
	splitTool := mcp.NewTool("split_file",
		mcp.WithDescription("Split a file into numbered chunk files <file>.001, <file>.002, ..."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path of the file to split"),
		),
		mcp.WithString("size",
			mcp.Description("Chunk size as <integer><KB|MB|GB>, e.g. 100MB (default: split.size from the config)"),
		),
		mcp.WithString("output",
			mcp.Description("Directory for the chunks (default: next to the file)"),
		),
		mcp.WithBoolean("verify",
			mcp.Description("Compute the whole-file checksum before splitting"),
		),
	)
	s.AddTool(splitTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleSplitFile(ctx, request, ts)
	})

	joinTool := mcp.NewTool("join_file",
		mcp.WithDescription("Join a chunk set back into the original file"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path of the first chunk, e.g. archive.tar.001"),
		),
		mcp.WithString("output",
			mcp.Description("Directory for the joined file (default: next to the chunks)"),
		),
		mcp.WithBoolean("verify",
			mcp.Description("Compute the whole-file checksum after joining"),
		),
	)
	s.AddTool(joinTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleJoinFile(ctx, request, ts)
	})

	checksumTool := mcp.NewTool("checksum_file",
		mcp.WithDescription("Compute the whole-file checksum of a file"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path of the file"),
		),
		mcp.WithString("algorithm",
			mcp.Description("md5 (default) or sha256"),
		),
	)
	s.AddTool(checksumTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleChecksumFile(ctx, request, ts)
	})
}

func handleSplitFile(ctx context.Context, request mcp.CallToolRequest, ts *toolServer) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	cmd, err := command.Build(command.Request{
		SplitPath: path,
		Size:      request.GetString("size", ts.cfg.Split.Size),
		OutputDir: request.GetString("output", ts.cfg.Split.Output),
		Verify:    request.GetBool("verify", ts.cfg.Verify),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := ts.files.Split(*cmd.Split)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to split file: %v", err)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Split %s (%d bytes) into %d chunks:\n", result.Source, result.TotalSize, len(result.Chunks))
	for _, c := range result.Chunks {
		fmt.Fprintf(&b, "- %s: %d bytes\n", c.Path, c.Size)
	}
	if result.Digest != "" {
		fmt.Fprintf(&b, "In file checksum: %s\n", result.Digest)
	}
	return mcp.NewToolResultText(b.String()), nil
}

func handleJoinFile(ctx context.Context, request mcp.CallToolRequest, ts *toolServer) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	cmd, err := command.Build(command.Request{
		JoinPath:  path,
		OutputDir: request.GetString("output", ts.cfg.Join.Output),
		Verify:    request.GetBool("verify", ts.cfg.Verify),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := ts.files.Join(*cmd.Join)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to join file: %v", err)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Joined %d chunks into %s (%d bytes)\n", len(result.Chunks), result.Destination, result.TotalSize)
	if len(result.Ignored) > 0 {
		fmt.Fprintf(&b, "Warning: chunks %v come after a missing chunk and were not joined\n", result.Ignored)
	}
	if result.Digest != "" {
		fmt.Fprintf(&b, "Out file checksum: %s\n", result.Digest)
	}
	return mcp.NewToolResultText(b.String()), nil
}

func handleChecksumFile(ctx context.Context, request mcp.CallToolRequest, ts *toolServer) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ds, err := digest_service.NewHashDigestService(request.GetString("algorithm", ""), ts.ls)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	sum, err := ds.FileDigest(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to checksum file: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("%s checksum of %s: %s", ds.Algorithm(), path, sum)), nil
}

func main() {
	configPath := flag.String("config", "", "YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// stdout carries the MCP protocol, so logs must not go there.
	tool, err := sandsplit.Build(sandsplit.Options{
		Digest:      cfg.Digest,
		BufferSize:  cfg.BufferSize,
		LogLevel:    cfg.Log.Level,
		LogLocation: cfg.Log.Location,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		os.Exit(1)
	}
	defer tool.Close()

	s := server.NewMCPServer(
		"sandsplit",
		"1.0.0",
		server.WithToolCapabilities(false),
	)
	addTools(s, &toolServer{files: tool.Files, ls: tool.Log, cfg: cfg})

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
	}
}
