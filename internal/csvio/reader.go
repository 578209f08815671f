// Package csvio reads transaction rows from CSV and writes account snapshots
// back out as CSV. It is the only place where parse failures exist; the
// ledger itself never errors.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fastprodman/PaymentsHW/internal/services/ledger"
)

var (
	ErrMissingColumn = errors.New("missing required column")
	ErrUnknownTxType = errors.New("unknown transaction type")
	ErrMissingAmount = errors.New("amount required")
)

// Reader decodes transactions from a CSV stream with a
// `type,client,tx,amount` header. Columns are located by header name, every
// field is whitespace-trimmed, and dispute-kind rows may omit the amount
// column entirely or leave it empty.
type Reader struct {
	csv  *csv.Reader
	cols map[string]int
	row  int
}

func NewReader(r io.Reader) *Reader {
	cr := csv.NewReader(r)
	// Dispute-kind rows legitimately have fewer fields than the header.
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	return &Reader{csv: cr}
}

// Read returns the next transaction, or io.EOF when the stream is done. Any
// malformed row is a hard error carrying the 1-based row number.
func (r *Reader) Read() (ledger.Transaction, error) {
	if r.cols == nil {
		err := r.readHeader()
		if err != nil {
			return ledger.Transaction{}, err
		}
	}

	record, err := r.csv.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return ledger.Transaction{}, io.EOF
		}

		return ledger.Transaction{}, fmt.Errorf("read row %d: %w", r.row+1, err)
	}

	r.row++

	tx, err := r.parse(record)
	if err != nil {
		return ledger.Transaction{}, fmt.Errorf("parse row %d: %w", r.row, err)
	}

	return tx, nil
}

func (r *Reader) readHeader() error {
	header, err := r.csv.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return io.EOF
		}

		return fmt.Errorf("read header: %w", err)
	}

	r.row = 1

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}

	for _, required := range []string{"type", "client", "tx"} {
		_, ok := cols[required]
		if !ok {
			return fmt.Errorf("%w: %s", ErrMissingColumn, required)
		}
	}

	r.cols = cols

	return nil
}

func (r *Reader) parse(record []string) (ledger.Transaction, error) {
	field := func(name string) string {
		idx, ok := r.cols[name]
		if !ok || idx >= len(record) {
			return ""
		}

		return strings.TrimSpace(record[idx])
	}

	txType, err := parseTxType(field("type"))
	if err != nil {
		return ledger.Transaction{}, err
	}

	client, err := strconv.ParseUint(field("client"), 10, 16)
	if err != nil {
		return ledger.Transaction{}, fmt.Errorf("parse client: %w", err)
	}

	txID, err := strconv.ParseUint(field("tx"), 10, 32)
	if err != nil {
		return ledger.Transaction{}, fmt.Errorf("parse tx: %w", err)
	}

	tx := ledger.Transaction{
		Type:   txType,
		Client: ledger.ClientID(client),
		Tx:     ledger.TxID(txID),
	}

	// Amount is required for the monetary kinds and ignored for the rest.
	if txType == ledger.TxDeposit || txType == ledger.TxWithdrawal {
		raw := field("amount")
		if raw == "" {
			return ledger.Transaction{}, ErrMissingAmount
		}

		amount, err := decimal.NewFromString(raw)
		if err != nil {
			return ledger.Transaction{}, fmt.Errorf("parse amount: %w", err)
		}

		tx.Amount = amount
	}

	return tx, nil
}

func parseTxType(s string) (ledger.TxType, error) {
	switch strings.ToLower(s) {
	case "deposit":
		return ledger.TxDeposit, nil
	case "withdrawal":
		return ledger.TxWithdrawal, nil
	case "dispute":
		return ledger.TxDispute, nil
	case "resolve":
		return ledger.TxResolve, nil
	case "chargeback":
		return ledger.TxChargeback, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTxType, s)
	}
}
