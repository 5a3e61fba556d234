package materials

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

type newMaterialRequest struct {
	Nome string `json:"nome"`
	Ano  int    `json:"ano"`
	Link string `json:"link"`
}

type updateMaterialRequest struct {
	ID   int    `json:"id"`
	Nome string `json:"nome"`
	Ano  int    `json:"ano"`
	Link string `json:"link"`
}

type deleteMaterialRequest struct {
	ID int `json:"id"`
}

type materialsRepo interface {
	List(ctx context.Context) ([]Material, error)
	Add(ctx context.Context, material Material) (*Material, error)
	Update(ctx context.Context, material Material) error
	Delete(ctx context.Context, id int) error
}

type Handler struct {
	repo    materialsRepo
	metrics *metrics.Manager
}

func NewHandler(repo materialsRepo, metrics *metrics.Manager) *Handler {
	return &Handler{
		repo:    repo,
		metrics: metrics,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/api/materials", handler.handleList).Methods("GET").Name("list-materials")
	router.HandleFunc("/api/materials", handler.handleAdd).Methods("POST", "OPTIONS").Name("new-material")
	router.HandleFunc("/api/materials", handler.handleUpdate).Methods("PUT", "OPTIONS").Name("update-material")
	router.HandleFunc("/api/materials", handler.handleDelete).Methods("DELETE", "OPTIONS").Name("delete-material")
}

func (handler *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	found, err := handler.repo.List(r.Context())
	if err != nil {
		log.Errorf("list materials: %s", err)
		pkg.WriteJSONError(w, "Failed to fetch materials", http.StatusInternalServerError)
		return
	}

	if len(found) == 0 {
		found = []Material{}
	}

	foundJson, err := json.Marshal(found)
	if err != nil {
		log.Errorf("marshal materials: %s", err)
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

	var newMaterialReq newMaterialRequest
	if err := json.NewDecoder(r.Body).Decode(&newMaterialReq); err != nil {
		log.Errorf("new material, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	if newMaterialReq.Nome == "" {
		pkg.WriteJSONError(w, "error, nome empty", http.StatusBadRequest)
		return
	}

	added, err := handler.repo.Add(r.Context(), Material{
		Nome: newMaterialReq.Nome,
		Ano:  newMaterialReq.Ano,
		Link: newMaterialReq.Link,
	})
	if err != nil {
		log.Errorf("add material [%s]: %s", newMaterialReq.Nome, err)
		pkg.WriteJSONError(w, "Failed to add material", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterContentWrites.WithLabelValues("material", "create").Inc()
	log.Tracef("new material %d: [%s] added", added.ID, added.Nome)

	addedJson, err := json.Marshal(added)
	if err != nil {
		log.Errorf("marshal added material: %s", err)
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

	var updateReq updateMaterialRequest
	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		log.Errorf("update material, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	material := Material{
		ID:   updateReq.ID,
		Nome: updateReq.Nome,
		Ano:  updateReq.Ano,
		Link: updateReq.Link,
	}

	if err := handler.repo.Update(r.Context(), material); err != nil {
		if errors.Is(err, ErrMaterialNotFound) {
			pkg.WriteJSONError(w, "Material not found", http.StatusNotFound)
			return
		}
		log.Errorf("update material %d: %s", updateReq.ID, err)
		pkg.WriteJSONError(w, "Failed to update material", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterContentWrites.WithLabelValues("material", "update").Inc()

	updatedJson, err := json.Marshal(material)
	if err != nil {
		log.Errorf("marshal updated material: %s", err)
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

	var deleteReq deleteMaterialRequest
	if err := json.NewDecoder(r.Body).Decode(&deleteReq); err != nil {
		log.Errorf("delete material, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Delete(r.Context(), deleteReq.ID); err != nil {
		if errors.Is(err, ErrMaterialNotFound) {
			pkg.WriteJSONError(w, "Material not found", http.StatusNotFound)
			return
		}
		log.Errorf("delete material %d: %s", deleteReq.ID, err)
		pkg.WriteJSONError(w, "Failed to delete material", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterContentWrites.WithLabelValues("material", "delete").Inc()
	pkg.WriteJSONResponseOK(w, `{"success":true}`)
}
