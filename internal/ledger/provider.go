package ledger

import (
	"strings"
)

type Provider struct {
	rpcClient *rpcClient
}

type transferParams struct {
	Token   string `json:"token"`
	Spender string `json:"spender,omitempty"`
	From    string `json:"from"`
	To      string `json:"to"`
	Amount  uint64 `json:"amount"`
}

func NewProvider(rpcClient *rpcClient) *Provider {
	return &Provider{rpcClient: rpcClient}
}

func (p *Provider) GetBalance(token, holder string) (uint64, error) {
	response, err := p.call("GetBalance", map[string]string{"token": token, "holder": holder})
	if err != nil {
		return 0, err
	}

	return response.ResultAsUint64()
}

func (p *Provider) GetAllowance(token, owner, spender string) (uint64, error) {
	response, err := p.call("GetAllowance", map[string]string{"token": token, "owner": owner, "spender": spender})
	if err != nil {
		return 0, err
	}

	return response.ResultAsUint64()
}

func (p *Provider) Transfer(token, from, to string, amount uint64) error {
	_, err := p.call("Transfer", transferParams{Token: token, From: from, To: to, Amount: amount})

	return translateError(err)
}

func (p *Provider) TransferFrom(token, spender, owner, to string, amount uint64) error {
	_, err := p.call("TransferFrom", transferParams{Token: token, Spender: spender, From: owner, To: to, Amount: amount})

	return translateError(err)
}

func (p *Provider) Approve(token, owner, spender string, amount uint64) error {
	_, err := p.call("Approve", transferParams{Token: token, Spender: spender, From: owner, Amount: amount})

	return translateError(err)
}

func (p *Provider) call(method string, params interface{}) (*rpcResponse, error) {
	response, err := p.rpcClient.call(method, params)
	if err != nil {
		return nil, err
	}

	if response.Error != nil {
		return nil, *response.Error
	}

	return response, nil
}

// translateError maps ledger node failures onto the package sentinels so
// callers can errors.Is against them regardless of backend.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "insufficient funds") || strings.Contains(msg, "insufficient balance") {
		return ErrInsufficientFunds
	}
	if strings.Contains(msg, "allowance") {
		return ErrInsufficientAllowance
	}

	return err
}
