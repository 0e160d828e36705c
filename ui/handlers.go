package ui

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"dataview/domain/analysis"
	"dataview/internal/errors"
	"dataview/ports"
)

// APIResponse is the JSON envelope for every endpoint.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(APIResponse{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.CodeValidationError:
		status = http.StatusBadRequest
	case errors.CodeAuthError:
		status = http.StatusUnauthorized
	case errors.CodeNotFound:
		status = http.StatusNotFound
	case errors.CodeNetworkError, errors.CodeServerError:
		status = http.StatusBadGateway
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(APIResponse{Success: false, Error: err.Error()})
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (a *App) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.ValidationError("invalid login payload"))
		return
	}

	sess, err := a.store.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	// session established: warm the history cache
	a.history.Refresh(r.Context(), sess)
	writeJSON(w, http.StatusOK, sess.User)
}

func (a *App) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.ValidationError("invalid register payload"))
		return
	}

	sess, err := a.store.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		writeError(w, err)
		return
	}

	a.history.Refresh(r.Context(), sess)
	writeJSON(w, http.StatusOK, sess.User)
}

func (a *App) handleLogout(w http.ResponseWriter, r *http.Request) {
	a.store.Logout()
	a.history.Refresh(r.Context(), a.store.Current())
	writeJSON(w, http.StatusOK, map[string]bool{"loggedOut": true})
}

func (a *App) handleSession(w http.ResponseWriter, r *http.Request) {
	sess := a.store.Current()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"authenticated": sess.Authenticated(),
		"user":          sess.User,
	})
}

func (a *App) handleUpload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, errors.ValidationError("missing multipart field: file"))
		return
	}
	defer file.Close()

	result, err := a.pipeline.Upload(r.Context(), ports.UploadFile{
		Name:    header.Filename,
		Size:    header.Size,
		Content: file,
	}, a.store.Current())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a.decorateResult(result))
}

func (a *App) handleReset(w http.ResponseWriter, r *http.Request) {
	a.pipeline.Reset()
	writeJSON(w, http.StatusOK, map[string]string{"state": string(a.pipeline.State())})
}

func (a *App) handleResult(w http.ResponseWriter, r *http.Request) {
	result := a.pipeline.Result()
	if result == nil {
		writeError(w, errors.NotFound("active result"))
		return
	}
	writeJSON(w, http.StatusOK, a.decorateResult(result))
}

func (a *App) handleHistory(w http.ResponseWriter, r *http.Request) {
	entries := a.history.Refresh(r.Context(), a.store.Current())
	writeJSON(w, http.StatusOK, entries)
}

func (a *App) handleActivate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	entry := analysis.HistoryEntry{ID: id}
	for _, e := range a.history.Entries() {
		if e.ID == id {
			entry = e
			break
		}
	}

	result, err := a.history.Select(r.Context(), entry, a.store.Current())
	if err != nil {
		writeError(w, err)
		return
	}

	a.pipeline.SetActive(result)
	writeJSON(w, http.StatusOK, a.decorateResult(result))
}

func (a *App) handleViewCompleteness(w http.ResponseWriter, r *http.Request) {
	a.serveView(w, func(result *analysis.Result) interface{} {
		return analysis.Completeness(result.Columns)
	})
}

func (a *App) handleViewTypes(w http.ResponseWriter, r *http.Request) {
	a.serveView(w, func(result *analysis.Result) interface{} {
		return analysis.TypeDistribution(result.Columns)
	})
}

func (a *App) handleViewNumeric(w http.ResponseWriter, r *http.Request) {
	a.serveView(w, func(result *analysis.Result) interface{} {
		return analysis.NumericStats(result.Columns)
	})
}

func (a *App) handleViewUniqueness(w http.ResponseWriter, r *http.Request) {
	a.serveView(w, func(result *analysis.Result) interface{} {
		return analysis.Uniqueness(result.Columns)
	})
}

func (a *App) handleViewTable(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("filter")
	a.serveView(w, func(result *analysis.Result) interface{} {
		return analysis.ColumnTable(result.Columns, filter)
	})
}

func (a *App) handleViewPreview(w http.ResponseWriter, r *http.Request) {
	a.serveView(w, func(result *analysis.Result) interface{} {
		return analysis.Preview(result.Preview)
	})
}

func (a *App) serveView(w http.ResponseWriter, derive func(*analysis.Result) interface{}) {
	result := a.pipeline.Result()
	if result == nil {
		writeError(w, errors.NotFound("active result"))
		return
	}
	writeJSON(w, http.StatusOK, derive(result))
}

// decorateResult attaches browser-openable artifact URLs to a result.
func (a *App) decorateResult(result *analysis.Result) map[string]interface{} {
	return map[string]interface{}{
		"result":      result,
		"cleanedFile": a.resolver.ResolveArtifact(result.CleanedFile),
		"reportPdf":   a.resolver.ResolveArtifact(result.ReportPDF),
	}
}
