package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/calebomondi/irec-smartcontract/internal/config"
	"github.com/calebomondi/irec-smartcontract/internal/marketplace"
	"github.com/calebomondi/irec-smartcontract/internal/registry"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const callerHeader = "X-Caller-Address"

type Server struct {
	reserve   *marketplace.ReserveSaleManager
	listings  *marketplace.ListingBook
	swap      *marketplace.SwapEngine
	ownership *marketplace.OwnershipLedger
	registry  registry.Service
}

func NewServer(
	reserve *marketplace.ReserveSaleManager,
	listings *marketplace.ListingBook,
	swap *marketplace.SwapEngine,
	ownership *marketplace.OwnershipLedger,
	registryService registry.Service,
) Server {
	return Server{reserve, listings, swap, ownership, registryService}
}

func (s Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", s.handleHomepage).Methods("GET")
	r.HandleFunc("/health", s.handleHealth).Methods("GET")
	r.HandleFunc("/sale/config", s.handleConfigureSale).Methods("POST")
	r.HandleFunc("/reserve/deposit", s.handleDepositReserve).Methods("POST")
	r.HandleFunc("/reserve/purchase", s.handlePurchaseFromReserve).Methods("POST")
	r.HandleFunc("/listings", s.handleListToken).Methods("POST")
	r.HandleFunc("/listings", s.handleGetListings).Methods("GET")
	r.HandleFunc("/listings/{listingId}", s.handleGetListing).Methods("GET")
	r.HandleFunc("/listings/{listingId}/purchase", s.handlePurchaseFromListing).Methods("POST")
	r.HandleFunc("/holders/{address}/percentage", s.handleGetPercentage).Methods("GET")
	r.HandleFunc("/transfers", s.handleGetTransfers).Methods("GET")
	r.HandleFunc("/certificate", s.handleGetCertificate).Methods("GET")
	r.NotFoundHandler = notFoundHandler()

	return r
}

func (s Server) handleHomepage(w http.ResponseWriter, r *http.Request) {
	_, _ = fmt.Fprintf(w, "iREC Fractional Marketplace")
}

func (s Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}

type configureSaleRequest struct {
	PricePerUnit uint64 `json:"pricePerUnit"`
}

func (s Server) handleConfigureSale(w http.ResponseWriter, r *http.Request) {
	var req configureSaleRequest
	if !decodeBody(w, r, &req) {
		return
	}

	saleConfig, err := s.reserve.ConfigureSale(caller(r), req.PricePerUnit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, saleConfig)
}

func (s Server) handleDepositReserve(w http.ResponseWriter, r *http.Request) {
	if err := s.reserve.DepositReserveTokens(caller(r)); err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, map[string]string{"status": "reserve funded"})
}

type purchaseRequest struct {
	Amount  uint64 `json:"amount"`
	Payment uint64 `json:"payment"`
}

func (s Server) handlePurchaseFromReserve(w http.ResponseWriter, r *http.Request) {
	var req purchaseRequest
	if !decodeBody(w, r, &req) {
		return
	}

	record, err := s.reserve.PurchaseFromReserve(caller(r), req.Amount, req.Payment)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, record)
}

type listTokenRequest struct {
	Amount       uint64 `json:"amount"`
	PricePerUnit uint64 `json:"pricePerUnit"`
}

func (s Server) handleListToken(w http.ResponseWriter, r *http.Request) {
	var req listTokenRequest
	if !decodeBody(w, r, &req) {
		return
	}

	listing, err := s.listings.ListToken(caller(r), req.Amount, req.PricePerUnit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, listing)
}

func (s Server) handleGetListings(w http.ResponseWriter, r *http.Request) {
	size, page := pagination(r)

	listings, total, err := s.listings.GetListings(size, page)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, map[string]interface{}{"listings": listings, "total": total})
}

func (s Server) handleGetListing(w http.ResponseWriter, r *http.Request) {
	listingId, err := getListingId(r)
	if err != nil {
		writeError(w, marketplace.ErrListingNotFound)
		return
	}

	listing, err := s.listings.GetTokenListing(listingId)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, listing)
}

func (s Server) handlePurchaseFromListing(w http.ResponseWriter, r *http.Request) {
	listingId, err := getListingId(r)
	if err != nil {
		writeError(w, marketplace.ErrListingNotFound)
		return
	}

	var req purchaseRequest
	if !decodeBody(w, r, &req) {
		return
	}

	record, err := s.swap.PurchaseFromListing(caller(r), listingId, req.Payment)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, record)
}

func (s Server) handleGetPercentage(w http.ResponseWriter, r *http.Request) {
	address, _ := mux.Vars(r)["address"]

	bps, err := s.ownership.GetOwnershipPercentage(address)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, map[string]interface{}{"holder": address, "basisPoints": bps})
}

func (s Server) handleGetTransfers(w http.ResponseWriter, r *http.Request) {
	size, page := pagination(r)

	records, total, err := s.ownership.GetOwnershipTransfers(size, page)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, map[string]interface{}{"transfers": records, "total": total})
}

func (s Server) handleGetCertificate(w http.ResponseWriter, r *http.Request) {
	cert, err := s.registry.GetCertificate(config.Get().CertificateId)
	if err != nil {
		zap.L().With(zap.Error(err)).Warn("Certificate not available")
		http.Error(w, "Certificate not available", http.StatusNotFound)
		return
	}

	writeJson(w, cert)
}

func caller(r *http.Request) string {
	return r.Header.Get(callerHeader)
}

func getListingId(r *http.Request) (uint64, error) {
	listingId, ok := mux.Vars(r)["listingId"]
	if !ok {
		return 0, errors.New("invalid parameters")
	}

	return strconv.ParseUint(listingId, 10, 64)
}

func pagination(r *http.Request) (int, int) {
	size, err := strconv.Atoi(r.URL.Query().Get("size"))
	if err != nil || size <= 0 {
		size = 100
	}
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page <= 0 {
		page = 1
	}

	return size, page
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return false
	}

	return true
}

func writeJson(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().With(zap.Error(err)).Error("Failed to write response")
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, marketplace.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, marketplace.ErrListingNotFound):
		status = http.StatusNotFound
	case errors.Is(err, marketplace.ErrListingInactive),
		errors.Is(err, marketplace.ErrSaleInactive):
		status = http.StatusConflict
	case errors.Is(err, marketplace.ErrIncorrectPayment):
		status = http.StatusPaymentRequired
	case errors.Is(err, marketplace.ErrInvalidAmount),
		errors.Is(err, marketplace.ErrInvalidPrice),
		errors.Is(err, marketplace.ErrInsufficientReserve),
		errors.Is(err, marketplace.ErrInsufficientBalance),
		errors.Is(err, marketplace.ErrInsufficientAuthorization):
		status = http.StatusBadRequest
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

func notFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(404)
		_, _ = fmt.Fprintf(w, "Page not found")
	})
}
