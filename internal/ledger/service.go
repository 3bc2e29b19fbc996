package ledger

import (
	"errors"
)

var (
	ErrInsufficientFunds     = errors.New("insufficient funds")
	ErrInsufficientAllowance = errors.New("insufficient allowance")
)

// Service is the capability surface the marketplace needs from the external
// fungible-token ledger. Unit and payment balances live there, never here;
// the marketplace only moves them with delegated authority.
type Service interface {
	BalanceOf(token, holder string) (uint64, error)
	Allowance(token, owner, spender string) (uint64, error)
	Transfer(token, from, to string, amount uint64) error
	TransferFrom(token, spender, owner, to string, amount uint64) error
	Approve(token, owner, spender string, amount uint64) error
}

type service struct {
	provider *Provider
}

func NewLedgerService(provider *Provider) Service {
	return service{provider}
}

func (s service) BalanceOf(token, holder string) (uint64, error) {
	return s.provider.GetBalance(token, holder)
}

func (s service) Allowance(token, owner, spender string) (uint64, error) {
	return s.provider.GetAllowance(token, owner, spender)
}

func (s service) Transfer(token, from, to string, amount uint64) error {
	return s.provider.Transfer(token, from, to, amount)
}

func (s service) TransferFrom(token, spender, owner, to string, amount uint64) error {
	return s.provider.TransferFrom(token, spender, owner, to, amount)
}

func (s service) Approve(token, owner, spender string, amount uint64) error {
	return s.provider.Approve(token, owner, spender, amount)
}
