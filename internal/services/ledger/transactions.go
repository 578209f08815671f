package ledger

import "github.com/shopspring/decimal"

// ClientID identifies a client. IDs are supplied by the input stream and are
// never reused across accounts.
type ClientID uint16

// TxID identifies a transaction. Uniqueness only matters within one client's
// history; dispute-kind events look transactions up by client+tx.
type TxID uint32

type TxType string

const (
	TxDeposit    TxType = "deposit"
	TxWithdrawal TxType = "withdrawal"
	TxDispute    TxType = "dispute"
	TxResolve    TxType = "resolve"
	TxChargeback TxType = "chargeback"
)

// Transaction is one ledger event. Amount is set for deposit/withdrawal and
// is the zero decimal for the three dispute-lifecycle kinds. The engine never
// mutates a Transaction after construction; it only records it and reads it
// back by tx id.
type Transaction struct {
	Type   TxType
	Client ClientID
	Tx     TxID
	Amount decimal.Decimal
}

// monetary reports whether the transaction is one of the two kinds that carry
// funds and can therefore be disputed.
func (t Transaction) monetary() bool {
	return t.Type == TxDeposit || t.Type == TxWithdrawal
}

// AccountSnapshot is the exported final state of one account. Total is
// derived (available + held) at snapshot time, never stored.
type AccountSnapshot struct {
	Client    ClientID
	Available decimal.Decimal
	Held      decimal.Decimal
	Total     decimal.Decimal
	Locked    bool
}
