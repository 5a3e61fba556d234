package benefits

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

type newBenefitRequest struct {
	Parceiro   string  `json:"parceiro"`
	Descricao  string  `json:"descricao"`
	Beneficio  string  `json:"beneficio"`
	ComoAtivar string  `json:"comoAtivar"`
	Logo       *string `json:"logo"`
}

type updateBenefitRequest struct {
	ID         int     `json:"id"`
	Parceiro   string  `json:"parceiro"`
	Descricao  string  `json:"descricao"`
	Beneficio  string  `json:"beneficio"`
	ComoAtivar string  `json:"comoAtivar"`
	Logo       *string `json:"logo"`
}

type deleteBenefitRequest struct {
	ID int `json:"id"`
}

type benefitsRepo interface {
	List(ctx context.Context, category Category) ([]Benefit, error)
	Add(ctx context.Context, benefit Benefit) (*Benefit, error)
	Update(ctx context.Context, benefit Benefit) error
	Delete(ctx context.Context, id int, category Category) error
}

type Handler struct {
	repo    benefitsRepo
	metrics *metrics.Manager
}

func NewHandler(repo benefitsRepo, metrics *metrics.Manager) *Handler {
	return &Handler{
		repo:    repo,
		metrics: metrics,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/api/benefits/{category}", handler.handleList).Methods("GET").Name("list-benefits")
	router.HandleFunc("/api/benefits/{category}", handler.handleAdd).Methods("POST", "OPTIONS").Name("new-benefit")
	router.HandleFunc("/api/benefits/{category}", handler.handleUpdate).Methods("PUT", "OPTIONS").Name("update-benefit")
	router.HandleFunc("/api/benefits/{category}", handler.handleDelete).Methods("DELETE", "OPTIONS").Name("delete-benefit")
}

func categoryFromRequest(w http.ResponseWriter, r *http.Request) (Category, bool) {
	vars := mux.Vars(r)
	category, err := ParseCategory(vars["category"])
	if err != nil {
		pkg.WriteJSONError(w, "Invalid category", http.StatusBadRequest)
		return "", false
	}
	return category, true
}

func (handler *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	category, ok := categoryFromRequest(w, r)
	if !ok {
		return
	}

	found, err := handler.repo.List(r.Context(), category)
	if err != nil {
		log.Errorf("list benefits [%s]: %s", category, err)
		pkg.WriteJSONError(w, "Failed to fetch benefits", http.StatusInternalServerError)
		return
	}

	if len(found) == 0 {
		found = []Benefit{}
	}

	foundJson, err := json.Marshal(found)
	if err != nil {
		log.Errorf("marshal benefits: %s", err)
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

	category, ok := categoryFromRequest(w, r)
	if !ok {
		return
	}

	var newBenefitReq newBenefitRequest
	if err := json.NewDecoder(r.Body).Decode(&newBenefitReq); err != nil {
		log.Errorf("new benefit, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	if newBenefitReq.Parceiro == "" {
		pkg.WriteJSONError(w, "error, parceiro empty", http.StatusBadRequest)
		return
	}

	added, err := handler.repo.Add(r.Context(), Benefit{
		Category:   category.String(),
		Parceiro:   newBenefitReq.Parceiro,
		Descricao:  newBenefitReq.Descricao,
		Beneficio:  newBenefitReq.Beneficio,
		ComoAtivar: newBenefitReq.ComoAtivar,
		Logo:       newBenefitReq.Logo,
	})
	if err != nil {
		log.Errorf("add benefit [%s]: %s", newBenefitReq.Parceiro, err)
		pkg.WriteJSONError(w, "Failed to add benefit", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterContentWrites.WithLabelValues("benefit", "create").Inc()
	log.Tracef("new benefit %d: [%s] added to %s", added.ID, added.Parceiro, category)

	addedJson, err := json.Marshal(added)
	if err != nil {
		log.Errorf("marshal added benefit: %s", err)
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

	category, ok := categoryFromRequest(w, r)
	if !ok {
		return
	}

	var updateReq updateBenefitRequest
	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		log.Errorf("update benefit, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	benefit := Benefit{
		ID:         updateReq.ID,
		Category:   category.String(),
		Parceiro:   updateReq.Parceiro,
		Descricao:  updateReq.Descricao,
		Beneficio:  updateReq.Beneficio,
		ComoAtivar: updateReq.ComoAtivar,
		Logo:       updateReq.Logo,
	}

	if err := handler.repo.Update(r.Context(), benefit); err != nil {
		if errors.Is(err, ErrBenefitNotFound) {
			pkg.WriteJSONError(w, "Benefit not found", http.StatusNotFound)
			return
		}
		log.Errorf("update benefit %d: %s", updateReq.ID, err)
		pkg.WriteJSONError(w, "Failed to update benefit", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterContentWrites.WithLabelValues("benefit", "update").Inc()

	updatedJson, err := json.Marshal(benefit)
	if err != nil {
		log.Errorf("marshal updated benefit: %s", err)
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

	category, ok := categoryFromRequest(w, r)
	if !ok {
		return
	}

	var deleteReq deleteBenefitRequest
	if err := json.NewDecoder(r.Body).Decode(&deleteReq); err != nil {
		log.Errorf("delete benefit, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Delete(r.Context(), deleteReq.ID, category); err != nil {
		if errors.Is(err, ErrBenefitNotFound) {
			pkg.WriteJSONError(w, "Benefit not found", http.StatusNotFound)
			return
		}
		log.Errorf("delete benefit %d: %s", deleteReq.ID, err)
		pkg.WriteJSONError(w, "Failed to delete benefit", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterContentWrites.WithLabelValues("benefit", "delete").Inc()
	pkg.WriteJSONResponseOK(w, `{"success":true}`)
}
