package importer

import (
	"context"
	"fmt"
	"io"

	"github.com/MrJamesThe3rd/tally/internal/expense"
	"github.com/MrJamesThe3rd/tally/internal/importer/ledgercsv"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

//go:generate mockgen -source=service.go -destination=creator_mock.go -package=importer
type Creator interface {
	CreateBatch(ctx context.Context, params []ledger.Params) ([]expense.Expense, error)
}

type Service struct {
	creator Creator
	parsers map[Format]Parser
}

func NewService(creator Creator) *Service {
	return &Service{
		creator: creator,
		parsers: map[Format]Parser{
			FormatCSV: ledgercsv.New(),
		},
	}
}

type Result struct {
	Created []expense.Expense
	Charset string
}

// Import parses r and adds every row to the ledger in one batch. Nothing is
// added when any row is invalid.
func (s *Service) Import(ctx context.Context, format Format, r io.Reader) (*Result, error) {
	parser, ok := s.parsers[format]
	if !ok {
		return nil, fmt.Errorf("unknown format: %s", format)
	}

	params, charset, err := parser.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", format, err)
	}

	created, err := s.creator.CreateBatch(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("adding imported expenses: %w", err)
	}

	return &Result{Created: created, Charset: charset}, nil
}
