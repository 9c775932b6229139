package dashboard

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/KaramelBytes/courtside/internal/charts"
	"github.com/KaramelBytes/courtside/internal/dataset"
	"github.com/go-chi/chi/v5"
)

// DownloadName is the file name offered for the filtered table.
const DownloadName = "stats_filtered.csv"

type errorData struct {
	Message string
}

func (s *Server) renderError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.pages["error"].ExecuteTemplate(w, "base.html", errorData{Message: message}); err != nil {
		s.log.Error("Failed to execute error template", slog.Any("error", err))
	}
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	v, err := s.buildView(r.URL.Query())
	if err != nil {
		if errors.Is(err, dataset.ErrUnknownSelection) {
			s.renderError(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.log.Error("Failed to build view", slog.Any("error", err))
		s.renderError(w, "Something went wrong while filtering the data.", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := s.pages["dashboard"].ExecuteTemplate(&buf, "base.html", v); err != nil {
		s.log.Error("Failed to execute template", slog.Any("error", err))
		s.renderError(w, "Something went wrong while displaying the page.", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	sel, err := dataset.Resolve(s.choices, r.URL.Query().Get("season"), r.URL.Query().Get("team"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	b, err := dataset.CSVBytes(dataset.Filter(s.table, sel))
	if err != nil {
		s.log.Error("Failed to serialize download", slog.Any("error", err))
		http.Error(w, "could not serialize rows", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+DownloadName+`"`)
	_, _ = w.Write(b)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	kind, err := charts.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	sel, err := dataset.Resolve(s.choices, r.URL.Query().Get("season"), r.URL.Query().Get("team"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	c, err := charts.Build(kind, dataset.Filter(s.table, sel), sel)
	if err != nil {
		if errors.Is(err, charts.ErrUnavailable) {
			http.NotFound(w, r)
			return
		}
		s.log.Error("Failed to build chart", slog.String("kind", string(kind)), slog.Any("error", err))
		http.Error(w, "could not draw chart", http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := c.WriteSVG(&buf); err != nil {
		s.log.Error("Failed to render chart", slog.String("kind", string(kind)), slog.Any("error", err))
		http.Error(w, "could not draw chart", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleChoices(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.choices)
}

func (s *Server) handleViewJSON(w http.ResponseWriter, r *http.Request) {
	v, err := s.buildView(r.URL.Query())
	if err != nil {
		if errors.Is(err, dataset.ErrUnknownSelection) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.log.Error("Failed to build view", slog.Any("error", err))
		respondError(w, http.StatusInternalServerError, "failed to build view")
		return
	}
	respondJSON(w, http.StatusOK, v.toJSON())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"dataset":   s.table.Name,
		"load_id":   s.table.ID,
		"rows":      s.table.Nrow(),
	})
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Failed to encode response", slog.Any("error", err))
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	})
}
