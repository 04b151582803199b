// Package importer turns supplier files into catalog price list entries.
package importer

import (
	"io"

	"github.com/MrJamesThe3rd/garage/internal/catalog"
)

type Format string

const (
	FormatCSV Format = "csv"
)

type Importer interface {
	Parse(r io.Reader) ([]catalog.PriceListEntry, error)
}
