package importer

import (
	"io"

	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

type Format string

const (
	FormatCSV Format = "csv"
)

// Parser turns an uploaded file into expense params. It also reports the
// charset the file was decoded from.
type Parser interface {
	Parse(r io.Reader) ([]ledger.Params, string, error)
}
