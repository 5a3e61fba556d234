package mentors

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

type newMentorRequest struct {
	Nome           string   `json:"nome"`
	Cargo          string   `json:"cargo"`
	Empresa        string   `json:"empresa"`
	Contato        string   `json:"contato"`
	Foto           *string  `json:"foto"`
	Especialidades []string `json:"especialidades"`
}

type updateMentorRequest struct {
	ID             int      `json:"id"`
	Nome           string   `json:"nome"`
	Cargo          string   `json:"cargo"`
	Empresa        string   `json:"empresa"`
	Contato        string   `json:"contato"`
	Foto           *string  `json:"foto"`
	Especialidades []string `json:"especialidades"`
}

type deleteMentorRequest struct {
	ID int `json:"id"`
}

type mentorsRepo interface {
	List(ctx context.Context) ([]Mentor, error)
	Add(ctx context.Context, mentor Mentor) (*Mentor, error)
	Update(ctx context.Context, mentor Mentor) error
	Delete(ctx context.Context, id int) error
}

type Handler struct {
	repo    mentorsRepo
	metrics *metrics.Manager
}

func NewHandler(repo mentorsRepo, metrics *metrics.Manager) *Handler {
	return &Handler{
		repo:    repo,
		metrics: metrics,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/api/mentors", handler.handleList).Methods("GET").Name("list-mentors")
	router.HandleFunc("/api/mentors", handler.handleAdd).Methods("POST", "OPTIONS").Name("new-mentor")
	router.HandleFunc("/api/mentors", handler.handleUpdate).Methods("PUT", "OPTIONS").Name("update-mentor")
	router.HandleFunc("/api/mentors", handler.handleDelete).Methods("DELETE", "OPTIONS").Name("delete-mentor")
}

func (handler *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	found, err := handler.repo.List(r.Context())
	if err != nil {
		log.Errorf("list mentors: %s", err)
		pkg.WriteJSONError(w, "Failed to fetch mentors", http.StatusInternalServerError)
		return
	}

	if len(found) == 0 {
		found = []Mentor{}
	}

	foundJson, err := json.Marshal(found)
	if err != nil {
		log.Errorf("marshal mentors: %s", err)
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

	var newMentorReq newMentorRequest
	if err := json.NewDecoder(r.Body).Decode(&newMentorReq); err != nil {
		log.Errorf("new mentor, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	if newMentorReq.Nome == "" {
		pkg.WriteJSONError(w, "error, nome empty", http.StatusBadRequest)
		return
	}

	added, err := handler.repo.Add(r.Context(), Mentor{
		Nome:           newMentorReq.Nome,
		Cargo:          newMentorReq.Cargo,
		Empresa:        newMentorReq.Empresa,
		Contato:        newMentorReq.Contato,
		Foto:           newMentorReq.Foto,
		Especialidades: newMentorReq.Especialidades,
	})
	if err != nil {
		log.Errorf("add mentor [%s]: %s", newMentorReq.Nome, err)
		pkg.WriteJSONError(w, "Failed to add mentor", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterContentWrites.WithLabelValues("mentor", "create").Inc()
	log.Tracef("new mentor %d: [%s] added", added.ID, added.Nome)

	addedJson, err := json.Marshal(added)
	if err != nil {
		log.Errorf("marshal added mentor: %s", err)
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

	var updateReq updateMentorRequest
	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		log.Errorf("update mentor, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	mentor := Mentor{
		ID:             updateReq.ID,
		Nome:           updateReq.Nome,
		Cargo:          updateReq.Cargo,
		Empresa:        updateReq.Empresa,
		Contato:        updateReq.Contato,
		Foto:           updateReq.Foto,
		Especialidades: updateReq.Especialidades,
	}

	if err := handler.repo.Update(r.Context(), mentor); err != nil {
		if errors.Is(err, ErrMentorNotFound) {
			pkg.WriteJSONError(w, "Mentor not found", http.StatusNotFound)
			return
		}
		log.Errorf("update mentor %d: %s", updateReq.ID, err)
		pkg.WriteJSONError(w, "Failed to update mentor", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterContentWrites.WithLabelValues("mentor", "update").Inc()

	if mentor.Especialidades == nil {
		mentor.Especialidades = []string{}
	}

	updatedJson, err := json.Marshal(mentor)
	if err != nil {
		log.Errorf("marshal updated mentor: %s", err)
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

	var deleteReq deleteMentorRequest
	if err := json.NewDecoder(r.Body).Decode(&deleteReq); err != nil {
		log.Errorf("delete mentor, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Delete(r.Context(), deleteReq.ID); err != nil {
		if errors.Is(err, ErrMentorNotFound) {
			pkg.WriteJSONError(w, "Mentor not found", http.StatusNotFound)
			return
		}
		log.Errorf("delete mentor %d: %s", deleteReq.ID, err)
		pkg.WriteJSONError(w, "Failed to delete mentor", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterContentWrites.WithLabelValues("mentor", "delete").Inc()
	pkg.WriteJSONResponseOK(w, `{"success":true}`)
}
