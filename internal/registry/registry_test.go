package registry

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/calebomondi/irec-smartcontract/internal/entity"
)

func TestStaticServiceGetCertificate(t *testing.T) {
	svc := NewStaticService(entity.Certificate{Id: 1, Owner: "0xissuer", TotalUnits: 1000})

	cert, err := svc.GetCertificate(1)
	if err != nil {
		t.Fatalf("GetCertificate: %v", err)
	}
	if cert.Owner != "0xissuer" || cert.TotalUnits != 1000 {
		t.Errorf("cert = %+v, want {owner=0xissuer totalUnits=1000}", cert)
	}

	if _, err := svc.GetCertificate(2); err == nil {
		t.Error("expected error for unknown certificate")
	}
}

func TestStaticServiceTransferOwnership(t *testing.T) {
	svc := NewStaticService(entity.Certificate{Id: 1, Owner: "0xissuer"})

	if err := svc.TransferOwnership("0xissuer", "0xcustodian", 1); err != nil {
		t.Fatalf("TransferOwnership: %v", err)
	}

	cert, err := svc.GetCertificate(1)
	if err != nil {
		t.Fatalf("GetCertificate: %v", err)
	}
	if cert.Owner != "0xcustodian" {
		t.Errorf("owner = %s, want 0xcustodian", cert.Owner)
	}

	// the previous owner no longer holds it
	if err := svc.TransferOwnership("0xissuer", "0xelsewhere", 1); err == nil {
		t.Error("expected error transferring from the previous owner")
	}
}

func TestProviderGetCertificate(t *testing.T) {
	called := ""
	provider := NewProvider(func(method string, params interface{}) (json.RawMessage, error) {
		called = method
		return json.Marshal(entity.Certificate{Id: 7, Owner: "0xissuer", Uri: "ipfs://cert", TotalUnits: 500})
	})

	cert, err := provider.GetCertificate(7)
	if err != nil {
		t.Fatalf("GetCertificate: %v", err)
	}
	if called != "GetCertificate" {
		t.Errorf("method = %s, want GetCertificate", called)
	}
	if cert.Id != 7 || cert.Uri != "ipfs://cert" {
		t.Errorf("cert = %+v", cert)
	}
}

func TestServiceCachesCertificates(t *testing.T) {
	calls := 0
	provider := NewProvider(func(method string, params interface{}) (json.RawMessage, error) {
		calls++
		return json.Marshal(entity.Certificate{Id: 1, Owner: "0xissuer"})
	})

	svc := NewRegistryService(provider)

	for i := 0; i < 3; i++ {
		if _, err := svc.GetCertificate(1); err != nil {
			t.Fatalf("GetCertificate: %v", err)
		}
	}

	if calls != 1 {
		t.Errorf("provider calls = %d, want 1", calls)
	}
}

func TestServiceInvalidatesCacheOnTransfer(t *testing.T) {
	owner := "0xissuer"
	provider := NewProvider(func(method string, params interface{}) (json.RawMessage, error) {
		if method == "TransferOwnership" {
			owner = "0xcustodian"
			return json.RawMessage(`{}`), nil
		}
		return json.Marshal(entity.Certificate{Id: 1, Owner: owner})
	})

	svc := NewRegistryService(provider)

	if _, err := svc.GetCertificate(1); err != nil {
		t.Fatalf("GetCertificate: %v", err)
	}
	if err := svc.TransferOwnership("0xissuer", "0xcustodian", 1); err != nil {
		t.Fatalf("TransferOwnership: %v", err)
	}

	cert, err := svc.GetCertificate(1)
	if err != nil {
		t.Fatalf("GetCertificate: %v", err)
	}
	if cert.Owner != "0xcustodian" {
		t.Errorf("owner = %s, want 0xcustodian after transfer", cert.Owner)
	}
}

func TestProviderPropagatesErrors(t *testing.T) {
	nodeErr := errors.New("node unavailable")
	provider := NewProvider(func(method string, params interface{}) (json.RawMessage, error) {
		return nil, nodeErr
	})

	if _, err := provider.GetCertificate(1); !errors.Is(err, nodeErr) {
		t.Errorf("err = %v, want %v", err, nodeErr)
	}
	if err := provider.TransferOwnership("0xa", "0xb", 1); !errors.Is(err, nodeErr) {
		t.Errorf("err = %v, want %v", err, nodeErr)
	}
}
