package evaluator

import "github.com/goodnatureofminers/blockinsight7000-query/internal/query/model"

// State is the evaluation context: the current transaction and the current
// address. Either may be nil until the evaluation reaches that entity kind.
// A State is never modified; traversal returns a new one.
type State struct {
	tx   *model.Transaction
	addr *model.Address
}

// NewState builds a State holding tx and addr.
func NewState(tx *model.Transaction, addr *model.Address) *State {
	return &State{tx: tx, addr: addr}
}

// Transaction returns the current transaction or nil.
func (s *State) Transaction() *model.Transaction { return s.tx }

// Address returns the current address or nil.
func (s *State) Address() *model.Address { return s.addr }

// WithTransaction returns a copy of s with tx as the current transaction.
func (s *State) WithTransaction(tx *model.Transaction) *State {
	return &State{tx: tx, addr: s.addr}
}

// WithAddress returns a copy of s with addr as the current address.
func (s *State) WithAddress(addr *model.Address) *State {
	return &State{tx: s.tx, addr: addr}
}
