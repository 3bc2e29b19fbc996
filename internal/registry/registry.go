package registry

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/calebomondi/irec-smartcontract/internal/entity"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// Service is the certificate registry boundary. The marketplace core never
// mints or burns; ownership of the backing certificate moves exactly once,
// to the custodian, when the fungible supply is seeded.
type Service interface {
	GetCertificate(certId uint64) (*entity.Certificate, error)
	TransferOwnership(from, to string, certId uint64) error
}

type service struct {
	provider *Provider
	cache    *cache.Cache
}

func NewRegistryService(provider *Provider) Service {
	return service{provider, cache.New(5*time.Minute, 10*time.Minute)}
}

func (s service) GetCertificate(certId uint64) (*entity.Certificate, error) {
	if cached, found := s.cache.Get(entity.CreateCertificateSlug(certId)); found {
		cert := cached.(entity.Certificate)
		return &cert, nil
	}

	cert, err := s.provider.GetCertificate(certId)
	if err != nil {
		return nil, err
	}

	s.cache.Set(cert.Slug(), *cert, cache.DefaultExpiration)

	return cert, nil
}

func (s service) TransferOwnership(from, to string, certId uint64) error {
	zap.L().With(
		zap.Uint64("certId", certId),
		zap.String("from", from),
		zap.String("to", to),
	).Info("Registry: Transfer certificate ownership")

	if err := s.provider.TransferOwnership(from, to, certId); err != nil {
		return err
	}

	s.cache.Delete(entity.CreateCertificateSlug(certId))

	return nil
}

// staticService serves a fixed certificate. Dev mode only, where no
// registry node is reachable.
type staticService struct {
	mu   sync.Mutex
	cert entity.Certificate
}

func NewStaticService(cert entity.Certificate) Service {
	return &staticService{cert: cert}
}

func (s *staticService) GetCertificate(certId uint64) (*entity.Certificate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if certId != s.cert.Id {
		return nil, errors.New("certificate not found")
	}

	cert := s.cert
	return &cert, nil
}

func (s *staticService) TransferOwnership(from, to string, certId uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if certId != s.cert.Id {
		return errors.New("certificate not found")
	}
	if s.cert.Owner != from {
		return errors.New("not the certificate owner")
	}

	s.cert.Owner = to
	return nil
}

// Provider speaks the registry node's JSON-RPC surface. It shares the
// transport defaults of the ledger provider.
type Provider struct {
	call func(method string, params interface{}) (json.RawMessage, error)
}

func NewProvider(call func(method string, params interface{}) (json.RawMessage, error)) *Provider {
	return &Provider{call: call}
}

func (p *Provider) GetCertificate(certId uint64) (*entity.Certificate, error) {
	result, err := p.call("GetCertificate", map[string]uint64{"certId": certId})
	if err != nil {
		return nil, err
	}

	var cert entity.Certificate
	if err := json.Unmarshal(result, &cert); err != nil {
		return nil, err
	}

	return &cert, nil
}

func (p *Provider) TransferOwnership(from, to string, certId uint64) error {
	_, err := p.call("TransferOwnership", map[string]interface{}{
		"from":   from,
		"to":     to,
		"certId": certId,
	})

	return err
}
