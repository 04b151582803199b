package importer

import (
	"fmt"
	"io"

	"github.com/MrJamesThe3rd/garage/internal/catalog"
	"github.com/MrJamesThe3rd/garage/internal/importer/pricelist"
)

type Service struct {
	importers map[Format]Importer
}

func NewService() *Service {
	return &Service{
		importers: map[Format]Importer{
			FormatCSV: pricelist.NewParser(),
		},
	}
}

func (s *Service) Import(format Format, r io.Reader) ([]catalog.PriceListEntry, error) {
	if format == "" {
		format = FormatCSV
	}

	imp, ok := s.importers[format]
	if !ok {
		return nil, fmt.Errorf("unknown price list format: %s", format)
	}

	return imp.Parse(r)
}
