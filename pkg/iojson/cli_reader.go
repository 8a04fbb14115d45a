package iojson

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// FileReader decodes a T from the file named by its --file flag, or from
// piped stdin when the flag is empty.
type FileReader[T any] struct {
	fileFlagValue string
	stdin         io.Reader
	isTerminal    func() bool
}

// Flag returns the --file flag bound to the reader.
func (fr *FileReader[T]) Flag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "file",
		Aliases:     []string{"f"},
		Usage:       "path to JSON file (use - to read from stdin)",
		Destination: &fr.fileFlagValue,
	}
}

// IsSet reports whether the --file flag was given.
func (fr *FileReader[T]) IsSet() bool {
	return fr.fileFlagValue != ""
}

// Read decodes the input. Reading "-" from an interactive terminal is an
// error, since nothing would ever arrive.
func (fr *FileReader[T]) Read() (T, error) {
	var input T

	var reader io.Reader
	switch fr.fileFlagValue {
	case "":
		return input, fmt.Errorf("no input provided; use -f <file> or -f - with piped JSON")
	case "-":
		if fr.terminal() {
			return input, fmt.Errorf("no input provided (stdin is a terminal); pipe JSON input")
		}
		reader = fr.in()
	default:
		f, err := os.Open(fr.fileFlagValue)
		if err != nil {
			return input, fmt.Errorf("open file: %w", err)
		}
		defer func() { _ = f.Close() }()
		reader = f
	}

	if err := json.NewDecoder(reader).Decode(&input); err != nil {
		return input, fmt.Errorf("decode JSON: %w", err)
	}
	return input, nil
}

func (fr *FileReader[T]) in() io.Reader {
	if fr.stdin != nil {
		return fr.stdin
	}
	return os.Stdin
}

func (fr *FileReader[T]) terminal() bool {
	if fr.isTerminal != nil {
		return fr.isTerminal()
	}
	return term.IsTerminal(int(os.Stdin.Fd()))
}
