package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/MrJamesThe3rd/tally/internal/aggregate"
	"github.com/MrJamesThe3rd/tally/internal/expense"
	"github.com/MrJamesThe3rd/tally/internal/importer/ledgercsv"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

// Source provides the records to export.
type Source interface {
	Snapshot() ledger.Snapshot
}

// Service writes expenses in the same CSV format the importer reads.
type Service struct {
	source Source
}

func NewService(source Source) *Service {
	return &Service{source: source}
}

// Export writes the records matching filter to w and returns how many rows
// were written.
func (s *Service) Export(w io.Writer, filter aggregate.Filter) (int, error) {
	records := aggregate.FilterAndSort(s.source.Snapshot().Records(), filter)

	if err := WriteCSV(w, records); err != nil {
		return 0, err
	}

	return len(records), nil
}

// ExportFile writes the matching records to a new file in outputDir.
func (s *Service) ExportFile(outputDir string, filter aggregate.Filter, now time.Time) (string, int, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", 0, fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(outputDir, Filename(now))

	f, err := os.Create(path)
	if err != nil {
		return "", 0, fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	n, err := s.Export(f, filter)
	if err != nil {
		return "", 0, err
	}

	if err := f.Close(); err != nil {
		return "", 0, fmt.Errorf("closing file: %w", err)
	}

	return path, n, nil
}

// Filename returns the default export file name, e.g. expenses_20250820.csv.
func Filename(now time.Time) string {
	return fmt.Sprintf("expenses_%s.csv", now.Format("20060102"))
}

func WriteCSV(w io.Writer, records []expense.Expense) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(ledgercsv.Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, r := range records {
		row := []string{r.Date.String(), r.Amount.String(), r.Category.String(), r.Description}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing expense %s: %w", r.ID, err)
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}

	return nil
}
