package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"familytree/internal/domain"
	"familytree/internal/service"
)

// maxBodyBytes caps every request body
const maxBodyBytes = 1 << 20

var validate = validator.New()

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// RelationshipResponse lists the people matching a relationship query
type RelationshipResponse struct {
	Name         string   `json:"name"`
	Relationship string   `json:"relationship"`
	Names        []string `json:"names"`
}

// AddChildRequest is the body of POST /api/children
type AddChildRequest struct {
	Mother string `json:"mother" validate:"required"`
	Name   string `json:"name" validate:"required"`
	Gender string `json:"gender" validate:"required"`
}

// MarryRequest is the body of POST /api/marriages
type MarryRequest struct {
	Person string `json:"person" validate:"required"`
	Name   string `json:"name" validate:"required"`
	Gender string `json:"gender" validate:"required"`
}

// FamilyHandler handles family API requests
type FamilyHandler struct {
	svc *service.FamilyService
}

// NewFamilyHandler creates a new family handler
func NewFamilyHandler(svc *service.FamilyService) *FamilyHandler {
	return &FamilyHandler{svc: svc}
}

// Routes registers every endpoint on a new mux
func (h *FamilyHandler) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/members", h.ListMembers)
	mux.HandleFunc("GET /api/members/{name}", h.GetMember)
	mux.HandleFunc("GET /api/members/{name}/relationships/{relationship}", h.GetRelationship)

	mux.HandleFunc("POST /api/children", h.AddChild)
	mux.HandleFunc("POST /api/marriages", h.Marry)
	mux.HandleFunc("POST /api/commands", h.RunCommands)

	mux.HandleFunc("GET /api/export/{format}", h.Export)

	return mux
}

// ListMembers returns every member in insertion order
func (h *FamilyHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.svc.Members(r.Context())
	if err != nil {
		log.Printf("Failed to list members: %v", err)
		h.writeError(w, "Failed to list members", err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, members, http.StatusOK)
}

// GetMember returns a single member
func (h *FamilyHandler) GetMember(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	person, err := h.svc.Person(r.Context(), name)
	if err != nil {
		h.writeDomainError(w, "Failed to get member", err)
		return
	}

	h.writeJSON(w, person, http.StatusOK)
}

// GetRelationship resolves a relationship for a member
func (h *FamilyHandler) GetRelationship(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	relationship := r.PathValue("relationship")

	names, err := h.svc.Relationship(r.Context(), name, relationship)
	if err != nil {
		h.writeDomainError(w, "Failed to resolve relationship", err)
		return
	}

	canonical, _ := domain.ParseRelationship(relationship)
	h.writeJSON(w, RelationshipResponse{
		Name:         name,
		Relationship: canonical.String(),
		Names:        names,
	}, http.StatusOK)
}

// AddChild adds a child to a mother
func (h *FamilyHandler) AddChild(w http.ResponseWriter, r *http.Request) {
	var req AddChildRequest
	if !h.decode(w, r, &req) {
		return
	}

	child, err := h.svc.AddChild(r.Context(), req.Mother, req.Name, req.Gender)
	if err != nil {
		h.writeDomainError(w, "Failed to add child", err)
		return
	}

	h.writeJSON(w, child, http.StatusCreated)
}

// Marry marries a new spouse into the family
func (h *FamilyHandler) Marry(w http.ResponseWriter, r *http.Request) {
	var req MarryRequest
	if !h.decode(w, r, &req) {
		return
	}

	spouse, err := h.svc.Marry(r.Context(), req.Person, req.Name, req.Gender)
	if err != nil {
		h.writeDomainError(w, "Failed to add spouse", err)
		return
	}

	h.writeJSON(w, spouse, http.StatusCreated)
}

// RunCommands executes a plain-text batch of command lines
func (h *FamilyHandler) RunCommands(w http.ResponseWriter, r *http.Request) {
	// The whole body is read first so an oversized batch changes nothing.
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.writeBodyError(w, err)
		return
	}

	var out bytes.Buffer
	stats, err := h.svc.RunBatch(r.Context(), bytes.NewReader(body), &out)
	if err != nil {
		log.Printf("Failed to run commands: %v", err)
		h.writeError(w, "Failed to run commands", err.Error(), http.StatusBadRequest)
		return
	}

	log.Printf("Ran %d commands (%d failed)", stats.Commands, stats.Failed)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(out.Bytes()); err != nil {
		log.Printf("Failed to write command output: %v", err)
	}
}

// Export writes the family history as yaml or json
func (h *FamilyHandler) Export(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(r.PathValue("format"))

	var out bytes.Buffer
	if err := h.svc.Export(r.Context(), format, &out); err != nil {
		h.writeError(w, "Failed to export", err.Error(), http.StatusBadRequest)
		return
	}

	switch format {
	case "json":
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", "attachment; filename=family.json")
	default:
		w.Header().Set("Content-Type", "application/x-yaml")
		w.Header().Set("Content-Disposition", "attachment; filename=family.yaml")
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(out.Bytes()); err != nil {
		log.Printf("Failed to write export: %v", err)
	}
}

// decode reads and validates a JSON body, writing a 400 on failure
func (h *FamilyHandler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		h.writeBodyError(w, err)
		return false
	}
	if err := validate.Struct(v); err != nil {
		h.writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// writeBodyError reports an unreadable body, using 413 when it was too large
func (h *FamilyHandler) writeBodyError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		h.writeError(w, "Request body too large", err.Error(), http.StatusRequestEntityTooLarge)
		return
	}
	h.writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
}

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrPersonNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInappropriateMotherGender):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrUnsupportedGender),
		errors.Is(err, domain.ErrUnsupportedRelationship):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (h *FamilyHandler) writeDomainError(w http.ResponseWriter, msg string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("%s: %v", msg, err)
	}
	h.writeError(w, msg, err.Error(), status)
}

func (h *FamilyHandler) writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Failed to encode JSON: %v", err)
	}
}

func (h *FamilyHandler) writeError(w http.ResponseWriter, error, details string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Error:   error,
		Details: details,
	}); err != nil {
		log.Printf("Failed to encode error response: %v", err)
	}
}
