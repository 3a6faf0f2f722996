package handler

import (
	"encoding/json"
	"net/http"
	"net/url"

	"doctor-directory/internal/delivery/dto"
	"doctor-directory/internal/delivery/http/middleware"
	"doctor-directory/internal/delivery/http/view"
	"doctor-directory/internal/usecase"
	"doctor-directory/pkg/response"
	"doctor-directory/pkg/validator"

	"github.com/sirupsen/logrus"
)

type DirectoryHandler struct {
	directoryUsecase usecase.DirectoryUsecase
	validator        *validator.CustomValidator
	renderer         *view.Renderer
	log              *logrus.Logger
}

func NewDirectoryHandler(
	directoryUsecase usecase.DirectoryUsecase,
	validator *validator.CustomValidator,
	renderer *view.Renderer,
	log *logrus.Logger,
) *DirectoryHandler {
	return &DirectoryHandler{
		directoryUsecase: directoryUsecase,
		validator:        validator,
		renderer:         renderer,
		log:              log,
	}
}

// Page renders the directory as HTML.
func (h *DirectoryHandler) Page(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.GetSessionIDFromContext(r.Context())
	if !ok {
		response.InternalServerError(w, "Session not established")
		return
	}

	query := parseDirectoryQuery(r)
	if err := h.validator.Validate(query); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	directory, err := h.directoryUsecase.GetDirectory(r.Context(), sessionID, query)
	if err != nil {
		response.InternalServerError(w, "Failed to get directory")
		return
	}

	body, err := h.renderer.RenderDirectory(directory, encodeDirectoryQuery(query))
	if err != nil {
		h.log.Warnf("Failed to render directory page: %+v", err)
		response.InternalServerError(w, "Failed to render directory")
		return
	}

	response.HTML(w, http.StatusOK, body)
}

// ToggleSpecialityForm handles the checkbox form post and redirects back to the page.
func (h *DirectoryHandler) ToggleSpecialityForm(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.GetSessionIDFromContext(r.Context())
	if !ok {
		response.InternalServerError(w, "Session not established")
		return
	}

	if err := r.ParseForm(); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid form body", nil)
		return
	}

	req := dto.ToggleSpecialityRequest{Speciality: r.PostFormValue("speciality")}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if _, err := h.directoryUsecase.ToggleSpeciality(r.Context(), sessionID, &req, nil); err != nil {
		response.InternalServerError(w, "Failed to toggle speciality")
		return
	}

	h.redirectToPage(w, r)
}

// ClearFiltersForm handles the "Clear All Filters" form post.
func (h *DirectoryHandler) ClearFiltersForm(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.GetSessionIDFromContext(r.Context())
	if !ok {
		response.InternalServerError(w, "Session not established")
		return
	}

	if _, err := h.directoryUsecase.ClearFilters(r.Context(), sessionID, nil); err != nil {
		response.InternalServerError(w, "Failed to clear filters")
		return
	}

	h.redirectToPage(w, r)
}

func (h *DirectoryHandler) GetDirectory(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.GetSessionIDFromContext(r.Context())
	if !ok {
		response.InternalServerError(w, "Session not established")
		return
	}

	query := parseDirectoryQuery(r)
	if err := h.validator.Validate(query); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	directory, err := h.directoryUsecase.GetDirectory(r.Context(), sessionID, query)
	if err != nil {
		response.InternalServerError(w, "Failed to get directory")
		return
	}

	response.Success(w, http.StatusOK, "Directory retrieved successfully", directory)
}

func (h *DirectoryHandler) ToggleSpeciality(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.GetSessionIDFromContext(r.Context())
	if !ok {
		response.InternalServerError(w, "Session not established")
		return
	}

	var req dto.ToggleSpecialityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	query := parseDirectoryQuery(r)
	if err := h.validator.Validate(query); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	directory, err := h.directoryUsecase.ToggleSpeciality(r.Context(), sessionID, &req, query)
	if err != nil {
		switch err {
		case usecase.ErrViewClosed:
			response.Error(w, http.StatusGone, "Directory session closed", nil)
		default:
			response.InternalServerError(w, "Failed to toggle speciality")
		}
		return
	}

	response.Success(w, http.StatusOK, "Speciality toggled successfully", directory)
}

func (h *DirectoryHandler) ClearFilters(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.GetSessionIDFromContext(r.Context())
	if !ok {
		response.InternalServerError(w, "Session not established")
		return
	}

	query := parseDirectoryQuery(r)
	if err := h.validator.Validate(query); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	directory, err := h.directoryUsecase.ClearFilters(r.Context(), sessionID, query)
	if err != nil {
		switch err {
		case usecase.ErrViewClosed:
			response.Error(w, http.StatusGone, "Directory session closed", nil)
		default:
			response.InternalServerError(w, "Failed to clear filters")
		}
		return
	}

	response.Success(w, http.StatusOK, "Filters cleared successfully", directory)
}

func (h *DirectoryHandler) redirectToPage(w http.ResponseWriter, r *http.Request) {
	target := "/"
	if encoded := encodeDirectoryQuery(parseDirectoryQuery(r)).Encode(); encoded != "" {
		target += "?" + encoded
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func parseDirectoryQuery(r *http.Request) *dto.DirectoryQuery {
	values := r.URL.Query()
	return &dto.DirectoryQuery{
		Sort:   values.Get("sort"),
		Search: values.Get("search"),
		Mode:   values.Get("mode"),
	}
}

// encodeDirectoryQuery keeps only the non-empty display parameters.
func encodeDirectoryQuery(query *dto.DirectoryQuery) url.Values {
	values := url.Values{}
	if query.Sort != "" {
		values.Set("sort", query.Sort)
	}
	if query.Search != "" {
		values.Set("search", query.Search)
	}
	if query.Mode != "" {
		values.Set("mode", query.Mode)
	}
	return values
}
