package shell

import (
	"bufio"
	"io"

	"go.uber.org/zap"

	"bookcatalog/internal/catalog"
)

// Shell is the interactive text menu over a catalog
type Shell struct {
	catalog *catalog.Catalog
	in      *bufio.Scanner
	out     io.Writer
	logger  *zap.Logger
}

// Menu selections
const (
	choiceAdd          = "1"
	choiceRemove       = "2"
	choiceFind         = "3"
	choiceList         = "4"
	choiceChangeStatus = "5"
	choiceExit         = "6"
)
