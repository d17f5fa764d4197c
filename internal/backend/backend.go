// Package backend provides export backends for the elaborated store.
// This allows switching between hand-off formats without touching the
// engine.
package backend

import (
	"io"

	"github.com/slate-lang/slate/internal/prettyprinter"
	"github.com/slate-lang/slate/internal/translator"
)

// Backend writes a fully resolved elaboration result somewhere a
// downstream consumer (planner, operator) can pick it up.
type Backend interface {
	// Export writes the result and returns the first error encountered.
	Export(res *translator.Result) error

	// Name returns the backend name for display
	Name() string
}

// WriterBackend renders the store through the pretty-printer onto an
// io.Writer in one of the text formats.
type WriterBackend struct {
	Out    io.Writer
	Format string // "text", "json" or "yaml"
}

func (b *WriterBackend) Name() string { return b.Format }

func (b *WriterBackend) Export(res *translator.Result) error {
	switch b.Format {
	case "json":
		data, err := prettyprinter.JSON(res.Store)
		if err != nil {
			return err
		}
		data = append(data, '\n')
		_, err = b.Out.Write(data)
		return err
	case "yaml":
		data, err := prettyprinter.YAML(res.Store)
		if err != nil {
			return err
		}
		_, err = b.Out.Write(data)
		return err
	default:
		_, err := io.WriteString(b.Out, prettyprinter.Text(res.Store))
		return err
	}
}
