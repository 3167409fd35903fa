package command

import (
	"fmt"
	"io"

	"github.com/AnishMulay/sandsplit/internal/file_service"
	"github.com/AnishMulay/sandsplit/internal/size_parser"
	"github.com/pkg/errors"
)

type Kind int

const (
	Split Kind = iota + 1
	Join
)

func (k Kind) String() string {
	switch k {
	case Split:
		return "split"
	case Join:
		return "join"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Command is one split or one join. Exactly one of Split and Join is set,
// matching Kind.
type Command struct {
	Kind  Kind
	Split *file_service.SplitConfig
	Join  *file_service.JoinConfig
}

func NewSplit(cfg file_service.SplitConfig) Command {
	return Command{Kind: Split, Split: &cfg}
}

func NewJoin(cfg file_service.JoinConfig) Command {
	return Command{Kind: Join, Join: &cfg}
}

// Request is the raw selection made on a command line or tool call.
type Request struct {
	SplitPath string
	JoinPath  string
	Size      string
	OutputDir string
	Verify    bool
}

// Build validates r and turns it into a Command. Usage errors come back
// before any file is touched.
func Build(r Request) (Command, error) {
	switch {
	case r.SplitPath != "" && r.JoinPath != "":
		return Command{}, ErrConflictingCommands
	case r.SplitPath == "" && r.JoinPath == "":
		return Command{}, ErrNoCommand
	case r.JoinPath != "":
		return NewJoin(file_service.JoinConfig{
			FirstChunk: r.JoinPath,
			OutputDir:  r.OutputDir,
			Verify:     r.Verify,
		}), nil
	}

	if r.Size == "" {
		return Command{}, ErrMissingSize
	}
	size, err := size_parser.Parse(r.Size)
	if err != nil {
		return Command{}, err
	}

	return NewSplit(file_service.SplitConfig{
		Source:    r.SplitPath,
		OutputDir: r.OutputDir,
		ChunkSize: size,
		Verify:    r.Verify,
	}), nil
}

// IsUsageError reports whether err was caused by a bad request rather than
// by the split or join itself.
func IsUsageError(err error) bool {
	for _, target := range []error{
		ErrNoCommand,
		ErrConflictingCommands,
		ErrMissingSize,
		size_parser.ErrUnknownUnit,
		size_parser.ErrInvalidSize,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// Run executes cmd on fs and prints the checksum line, if one was
// computed, to out.
func Run(fs file_service.FileService, cmd Command, out io.Writer) error {
	switch cmd.Kind {
	case Split:
		if cmd.Split == nil {
			return errors.Wrap(ErrUnknownKind, "split command without config")
		}
		cfg := *cmd.Split
		if cfg.OnDigest == nil {
			cfg.OnDigest = func(digest string) {
				fmt.Fprintf(out, "In file checksum: %s\n", digest)
			}
		}
		_, err := fs.Split(cfg)
		return err

	case Join:
		if cmd.Join == nil {
			return errors.Wrap(ErrUnknownKind, "join command without config")
		}
		result, err := fs.Join(*cmd.Join)
		if err != nil {
			return err
		}
		if result.Digest != "" {
			fmt.Fprintf(out, "Out file checksum: %s\n", result.Digest)
		}
		return nil

	default:
		return errors.Wrapf(ErrUnknownKind, "%s", cmd.Kind)
	}
}
