package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/fastprodman/PaymentsHW/internal/services/ledger"
)

// outputPrecision is the fixed number of fractional digits in every monetary
// output field. Internal arithmetic stays at full precision; rounding happens
// only here, at presentation time.
const outputPrecision = 4

// Writer renders account snapshots as CSV with a
// `client,available,held,total,locked` header.
type Writer struct {
	csv *csv.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteAccounts writes one row per snapshot, sorted by client id so output
// is stable across runs. The ledger leaves snapshot order unspecified.
func (w *Writer) WriteAccounts(snapshots []ledger.AccountSnapshot) error {
	rows := make([]ledger.AccountSnapshot, len(snapshots))
	copy(rows, snapshots)
	sort.Slice(rows, func(i, j int) bool { return rows[i].Client < rows[j].Client })

	err := w.csv.Write([]string{"client", "available", "held", "total", "locked"})
	if err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, s := range rows {
		err := w.csv.Write([]string{
			strconv.FormatUint(uint64(s.Client), 10),
			s.Available.StringFixed(outputPrecision),
			s.Held.StringFixed(outputPrecision),
			s.Total.StringFixed(outputPrecision),
			strconv.FormatBool(s.Locked),
		})
		if err != nil {
			return fmt.Errorf("write client %d: %w", s.Client, err)
		}
	}

	w.csv.Flush()

	err = w.csv.Error()
	if err != nil {
		return fmt.Errorf("flush: %w", err)
	}

	return nil
}
