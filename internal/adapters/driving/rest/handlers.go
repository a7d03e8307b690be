package rest

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/custodia-labs/docsearch/internal/core/domain"
)

type handlers struct {
	ports     *Ports
	maxUpload int64
}

// documentResponse is the JSON form of a ledger record.
type documentResponse struct {
	Name       string `json:"name"`
	Format     string `json:"format"`
	ChunkCount int    `json:"chunk_count"`
	SizeBytes  int64  `json:"size_bytes"`
	CreatedAt  string `json:"created_at"`
}

func toDocumentResponse(d domain.Document) documentResponse {
	return documentResponse{
		Name:       d.Name,
		Format:     d.Format.String(),
		ChunkCount: d.ChunkCount,
		SizeBytes:  d.SizeBytes,
		CreatedAt:  d.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

// upload handles POST /upload with a multipart "file" field.
func (h *handlers) upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	file, header, err := r.FormFile("file")
	if err != nil {
		if isTooLarge(err) {
			writeError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("Upload failed: file exceeds %d bytes", h.maxUpload))
			return
		}
		writeError(w, http.StatusBadRequest, "Upload failed: multipart field \"file\" is required")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Upload failed: "+err.Error())
		return
	}

	result, err := h.ports.Ingest.Ingest(r.Context(), header.Filename, content)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			writeError(w, http.StatusConflict, "Upload failed: file name already exists")
			return
		}
		writeDomainError(w, "Upload", err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: result.Message})
}

// isTooLarge reports whether err came from the upload size limit. Some
// multipart paths flatten the error, hence the message check.
func isTooLarge(err error) bool {
	var tooLarge *http.MaxBytesError
	return errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large")
}

// query handles GET /query?document_name&query&top_k.
func (h *handlers) query(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	topK := 0
	if raw := strings.TrimSpace(q.Get("top_k")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "top_k must be an integer")
			return
		}
		if err := domain.ValidateTopK(n); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		topK = n
	}

	name := q.Get("document_name")
	resp, err := h.ports.Query.Query(r.Context(), domain.QueryRequest{
		DocumentName: name,
		Query:        q.Get("query"),
		TopK:         topK,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("Document '%s' not found", name))
			return
		}
		writeDomainError(w, "Query", err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// jsonQuery handles GET /json-query?document_name&field&operation.
func (h *handlers) jsonQuery(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	name := q.Get("document_name")

	result, err := h.ports.Aggregation.Aggregate(r.Context(), domain.AggregationRequest{
		DocumentName: name,
		Field:        q.Get("field"),
		Operation:    q.Get("operation"),
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidOperation):
			writeError(w, http.StatusBadRequest, "Invalid operation. Supported operations are: max, min, sum, avg")
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, fmt.Sprintf("Document '%s' not found", name))
		case errors.Is(err, domain.ErrNotJSONDocument):
			writeError(w, http.StatusBadRequest, "This operation is only supported for JSON documents")
		default:
			writeDomainError(w, "Operation", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// health handles GET /health.
func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	status := h.ports.Health.Check(r.Context())
	if !status.Healthy() {
		writeJSON(w, http.StatusInternalServerError, status)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// listDocuments handles GET /documents.
func (h *handlers) listDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.ports.Document.List(r.Context())
	if err != nil {
		writeDomainError(w, "List", err)
		return
	}

	out := make([]documentResponse, len(docs))
	for i, d := range docs {
		out[i] = toDocumentResponse(d)
	}
	writeJSON(w, http.StatusOK, map[string]any{"documents": out})
}

// getDocument handles GET /documents/{name}.
func (h *handlers) getDocument(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	doc, err := h.ports.Document.Get(r.Context(), name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("Document '%s' not found", name))
			return
		}
		writeDomainError(w, "Lookup", err)
		return
	}
	writeJSON(w, http.StatusOK, toDocumentResponse(*doc))
}

// deleteDocument handles DELETE /documents/{name}.
func (h *handlers) deleteDocument(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := h.ports.Document.Delete(r.Context(), name); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("Document '%s' not found", name))
			return
		}
		writeDomainError(w, "Delete", err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: fmt.Sprintf("%s deleted", name)})
}
