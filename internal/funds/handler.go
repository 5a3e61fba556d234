package funds

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/paginadofounder/backend/internal/telemetry/metrics"
	"github.com/paginadofounder/backend/pkg"
)

type newFundRequest struct {
	Parceiro         string  `json:"parceiro"`
	TipoInvestimento string  `json:"tipoInvestimento"`
	TamanhoCheque    string  `json:"tamanhoCheque"`
	Tese             string  `json:"tese"`
	Contato          string  `json:"contato"`
	Logo             *string `json:"logo"`
}

type updateFundRequest struct {
	ID               int     `json:"id"`
	Parceiro         string  `json:"parceiro"`
	TipoInvestimento string  `json:"tipoInvestimento"`
	TamanhoCheque    string  `json:"tamanhoCheque"`
	Tese             string  `json:"tese"`
	Contato          string  `json:"contato"`
	Logo             *string `json:"logo"`
}

type deleteFundRequest struct {
	ID int `json:"id"`
}

type fundsRepo interface {
	List(ctx context.Context) ([]Fund, error)
	Add(ctx context.Context, fund Fund) (*Fund, error)
	Update(ctx context.Context, fund Fund) error
	Delete(ctx context.Context, id int) error
}

type Handler struct {
	repo    fundsRepo
	metrics *metrics.Manager
}

func NewHandler(repo fundsRepo, metrics *metrics.Manager) *Handler {
	return &Handler{
		repo:    repo,
		metrics: metrics,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/api/funds", handler.handleList).Methods("GET").Name("list-funds")
	router.HandleFunc("/api/funds", handler.handleAdd).Methods("POST", "OPTIONS").Name("new-fund")
	router.HandleFunc("/api/funds", handler.handleUpdate).Methods("PUT", "OPTIONS").Name("update-fund")
	router.HandleFunc("/api/funds", handler.handleDelete).Methods("DELETE", "OPTIONS").Name("delete-fund")
}

func (handler *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	found, err := handler.repo.List(r.Context())
	if err != nil {
		log.Errorf("list funds: %s", err)
		pkg.WriteJSONError(w, "Failed to fetch funds", http.StatusInternalServerError)
		return
	}

	if len(found) == 0 {
		found = []Fund{}
	}

	foundJson, err := json.Marshal(found)
	if err != nil {
		log.Errorf("marshal funds: %s", err)
		pkg.WriteJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, foundJson)
}

func (handler *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	var newFundReq newFundRequest
	if err := json.NewDecoder(r.Body).Decode(&newFundReq); err != nil {
		log.Errorf("new fund, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	if newFundReq.Parceiro == "" {
		pkg.WriteJSONError(w, "error, parceiro empty", http.StatusBadRequest)
		return
	}

	added, err := handler.repo.Add(r.Context(), Fund{
		Parceiro:         newFundReq.Parceiro,
		TipoInvestimento: newFundReq.TipoInvestimento,
		TamanhoCheque:    newFundReq.TamanhoCheque,
		Tese:             newFundReq.Tese,
		Contato:          newFundReq.Contato,
		Logo:             newFundReq.Logo,
	})
	if err != nil {
		log.Errorf("add fund [%s]: %s", newFundReq.Parceiro, err)
		pkg.WriteJSONError(w, "Failed to add fund", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterContentWrites.WithLabelValues("fund", "create").Inc()
	log.Tracef("new fund %d: [%s] added", added.ID, added.Parceiro)

	addedJson, err := json.Marshal(added)
	if err != nil {
		log.Errorf("marshal added fund: %s", err)
		pkg.WriteJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedJson, http.StatusCreated)
}

func (handler *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "PUT, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	var updateReq updateFundRequest
	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		log.Errorf("update fund, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	fund := Fund{
		ID:               updateReq.ID,
		Parceiro:         updateReq.Parceiro,
		TipoInvestimento: updateReq.TipoInvestimento,
		TamanhoCheque:    updateReq.TamanhoCheque,
		Tese:             updateReq.Tese,
		Contato:          updateReq.Contato,
		Logo:             updateReq.Logo,
	}

	if err := handler.repo.Update(r.Context(), fund); err != nil {
		if errors.Is(err, ErrFundNotFound) {
			pkg.WriteJSONError(w, "Fund not found", http.StatusNotFound)
			return
		}
		log.Errorf("update fund %d: %s", updateReq.ID, err)
		pkg.WriteJSONError(w, "Failed to update fund", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterContentWrites.WithLabelValues("fund", "update").Inc()

	updatedJson, err := json.Marshal(fund)
	if err != nil {
		log.Errorf("marshal updated fund: %s", err)
		pkg.WriteJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, updatedJson)
}

func (handler *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "DELETE, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	var deleteReq deleteFundRequest
	if err := json.NewDecoder(r.Body).Decode(&deleteReq); err != nil {
		log.Errorf("delete fund, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Delete(r.Context(), deleteReq.ID); err != nil {
		if errors.Is(err, ErrFundNotFound) {
			pkg.WriteJSONError(w, "Fund not found", http.StatusNotFound)
			return
		}
		log.Errorf("delete fund %d: %s", deleteReq.ID, err)
		pkg.WriteJSONError(w, "Failed to delete fund", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterContentWrites.WithLabelValues("fund", "delete").Inc()
	pkg.WriteJSONResponseOK(w, `{"success":true}`)
}
