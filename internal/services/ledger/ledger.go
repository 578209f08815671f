// Package ledger implements the per-client transaction ledger: deposits,
// withdrawals, and the dispute lifecycle (dispute -> resolve | chargeback).
//
// The engine is deliberately single-threaded and infallible: transactions
// are applied strictly in input order, and anything that cannot legally be
// applied is dropped without an error. That best-effort policy fits an
// offline batch tool with trusted input; it is not an oversight.
package ledger

// Ledger routes transactions to per-client accounts, creating each account
// the first time its client id appears. Accounts are never deleted.
type Ledger struct {
	accounts map[ClientID]*Account
}

func New() *Ledger {
	return &Ledger{accounts: make(map[ClientID]*Account)}
}

// Process applies one transaction to the account it belongs to. It never
// fails: illegal transitions are absorbed by the account as silent no-ops.
func (l *Ledger) Process(tx Transaction) {
	account, ok := l.accounts[tx.Client]
	if !ok {
		account = newAccount(tx.Client)
		l.accounts[tx.Client] = account
	}

	account.process(tx)
}

// Snapshot exports the final state of every account ever created. Order is
// unspecified; callers sort for presentation.
func (l *Ledger) Snapshot() []AccountSnapshot {
	out := make([]AccountSnapshot, 0, len(l.accounts))
	for _, account := range l.accounts {
		out = append(out, account.snapshot())
	}

	return out
}
