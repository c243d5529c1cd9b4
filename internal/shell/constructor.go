package shell

import (
	"bufio"
	"io"

	"go.uber.org/zap"

	"bookcatalog/internal/catalog"
)

// maxLineSize bounds a single input line, bufio's default of 64 KiB is too
// small for pasted titles
const maxLineSize = 16 << 20

// New creates a shell reading commands from in and writing results to out
func New(c *catalog.Catalog, in io.Reader, out io.Writer, logger *zap.Logger) *Shell {
	if logger == nil {
		logger = zap.NewNop()
	}
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineSize)

	return &Shell{
		catalog: c,
		in:      scanner,
		out:     out,
		logger:  logger,
	}
}
