package uploads

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/paginadofounder/backend/internal/telemetry/metrics"
	"github.com/paginadofounder/backend/internal/telemetry/tracing"
	"github.com/paginadofounder/backend/pkg"
)

// maxUploadedFileSize: 5 MB
const maxUploadedFileSize = 5 << 20

var allowedContentTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"application/pdf": true,
}

type Handler struct {
	api     *DiskApi
	metrics *metrics.Manager
}

func NewHandler(api *DiskApi, metrics *metrics.Manager) *Handler {
	return &Handler{
		api:     api,
		metrics: metrics,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/api/upload", handler.handleUpload).Methods("POST", "OPTIONS").Name("upload-file")
	router.HandleFunc("/uploads/{fileName}", handler.handleServeFile).Methods("GET").Name("serve-file")
}

func (handler *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "uploadsHandler.upload")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadedFileSize+1024)
	if err := r.ParseMultipartForm(maxUploadedFileSize); err != nil {
		log.Errorf("upload, parse multipart form: %s", err)
		pkg.WriteJSONError(w, "File too large", http.StatusRequestEntityTooLarge)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		log.Errorf("upload, get form file: %s", err)
		pkg.WriteJSONError(w, "No file provided", http.StatusBadRequest)
		return
	}
	defer file.Close()

	// the size and type checks run before anything touches the disk
	if fileHeader.Size > maxUploadedFileSize {
		pkg.WriteJSONError(w, "File too large", http.StatusRequestEntityTooLarge)
		return
	}

	fileType := fileHeader.Header.Get("Content-Type")
	if !allowedContentTypes[fileType] {
		log.Tracef("upload rejected, content type: %s", fileType)
		pkg.WriteJSONError(w, "Unsupported file type", http.StatusUnsupportedMediaType)
		return
	}

	filePath, err := handler.api.Save(ctx, SaveFileParams{
		Filename: fileHeader.Filename,
		File:     file,
	})
	if err != nil {
		log.Errorf("upload new file: %s", err)
		pkg.WriteJSONError(w, "Failed to save file", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterUploads.Inc()
	log.Tracef("new file uploaded: [%s] -> %s", fileHeader.Filename, filePath)

	pkg.WriteJSONResponseOK(w, fmt.Sprintf(`{"success":true,"filePath":%q}`, filePath))
}

func (handler *Handler) handleServeFile(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	filePath, err := handler.api.Resolve(vars["fileName"])
	if err != nil {
		pkg.WriteJSONError(w, "File not found", http.StatusNotFound)
		return
	}

	http.ServeFile(w, r, filePath)
}
