package ledger

import (
	"sync"
)

// MemoryLedger is a process-local Service used in dev mode and tests. It
// honours the same balance and allowance rules as a real ledger node.
type MemoryLedger struct {
	mu         sync.Mutex
	balances   map[string]map[string]uint64
	allowances map[string]map[string]map[string]uint64
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		balances:   make(map[string]map[string]uint64),
		allowances: make(map[string]map[string]map[string]uint64),
	}
}

func (m *MemoryLedger) BalanceOf(token, holder string) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.balances[token][holder], nil
}

func (m *MemoryLedger) Allowance(token, owner, spender string) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.allowances[token][owner][spender], nil
}

func (m *MemoryLedger) Transfer(token, from, to string, amount uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.move(token, from, to, amount)
}

func (m *MemoryLedger) TransferFrom(token, spender, owner, to string, amount uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.allowances[token][owner][spender] < amount {
		return ErrInsufficientAllowance
	}

	if err := m.move(token, owner, to, amount); err != nil {
		return err
	}

	m.allowances[token][owner][spender] -= amount

	return nil
}

func (m *MemoryLedger) Approve(token, owner, spender string, amount uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.allowances[token] == nil {
		m.allowances[token] = make(map[string]map[string]uint64)
	}
	if m.allowances[token][owner] == nil {
		m.allowances[token][owner] = make(map[string]uint64)
	}
	m.allowances[token][owner][spender] = amount

	return nil
}

// Mint credits a holder out of nothing. Seeding only.
func (m *MemoryLedger) Mint(token, holder string, amount uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.balances[token] == nil {
		m.balances[token] = make(map[string]uint64)
	}
	m.balances[token][holder] += amount
}

func (m *MemoryLedger) move(token, from, to string, amount uint64) error {
	if m.balances[token][from] < amount {
		return ErrInsufficientFunds
	}

	if m.balances[token] == nil {
		m.balances[token] = make(map[string]uint64)
	}
	m.balances[token][from] -= amount
	m.balances[token][to] += amount

	return nil
}
