package ledger

import "github.com/shopspring/decimal"

// Account holds one client's balances, lock flag, and the history of every
// transaction recorded against it. The history is indexed by tx id: the
// dispute lifecycle of a transaction is read off the shape of its per-tx
// event slice rather than kept in an explicit state field.
//
// Per-tx shapes and what they mean:
//
//	[monetary]                    open, can be disputed
//	[monetary, dispute]           under dispute, can be resolved or charged back
//	[monetary, dispute, ...]      can still be charged back (prefix match)
//	anything else                 dispute-kind events are no-ops against it
type Account struct {
	clientID  ClientID
	available decimal.Decimal
	held      decimal.Decimal
	locked    bool
	history   map[TxID][]Transaction
}

func newAccount(id ClientID) *Account {
	return &Account{
		clientID:  id,
		available: decimal.Zero,
		held:      decimal.Zero,
		history:   make(map[TxID][]Transaction),
	}
}

// process applies one transaction to the account.
//
// Illegal or ambiguous transitions are silent no-ops: the balances stay put
// but the event is still recorded, which is exactly what suppresses repeats
// (a second dispute for the same tx sees two prior events and no longer
// matches the single-entry shape). The one exception is a locked account,
// where nothing is applied and nothing is recorded.
func (a *Account) process(tx Transaction) {
	if a.locked {
		return
	}

	switch tx.Type {
	case TxDeposit:
		a.available = a.available.Add(tx.Amount)

	case TxWithdrawal:
		// Insufficient funds is silently ignored; the event is still
		// recorded below.
		if a.available.GreaterThanOrEqual(tx.Amount) {
			a.available = a.available.Sub(tx.Amount)
		}

	case TxDispute:
		prior := a.history[tx.Tx]
		if len(prior) == 1 && prior[0].monetary() {
			amount := prior[0].Amount

			a.available = a.available.Sub(amount)
			a.held = a.held.Add(amount)
		}

	case TxResolve:
		prior := a.history[tx.Tx]
		if len(prior) == 2 && prior[0].monetary() && prior[1].Type == TxDispute {
			amount := prior[0].Amount

			a.available = a.available.Add(amount)
			a.held = a.held.Sub(amount)
		}

	case TxChargeback:
		// Prefix match: trailing events after the dispute are tolerated,
		// so even a resolved tx can still be charged back. Odd, but it is
		// the documented behavior and downstream consumers rely on it.
		prior := a.history[tx.Tx]
		if len(prior) >= 2 && prior[0].monetary() && prior[1].Type == TxDispute {
			a.held = a.held.Sub(prior[0].Amount)
			a.locked = true
		}
	}

	a.history[tx.Tx] = append(a.history[tx.Tx], tx)
}

// snapshot returns the account's exported state. Total is computed here.
func (a *Account) snapshot() AccountSnapshot {
	return AccountSnapshot{
		Client:    a.clientID,
		Available: a.available,
		Held:      a.held,
		Total:     a.available.Add(a.held),
		Locked:    a.locked,
	}
}
