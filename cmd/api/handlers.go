package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/krushit/krushit/engine/advisory"
	"github.com/krushit/krushit/engine/chat"
	"github.com/krushit/krushit/engine/diagnosis"
	"github.com/krushit/krushit/engine/scans"
	"github.com/krushit/krushit/pkg/resilience"
	"github.com/prometheus/client_golang/prometheus"
)

// maxUpload bounds the multipart body of POST /api/diagnose.
const maxUpload = 10 << 20

// UserHeader identifies the farmer a scan belongs to.
const UserHeader = "X-User-ID"

type diagnoser interface {
	Diagnose(ctx context.Context, image []byte, lang advisory.Language) (*diagnosis.Report, error)
}

type scanLister interface {
	ListByUser(ctx context.Context, user string, limit int) ([]scans.Scan, error)
}

type deps struct {
	diagnosis diagnoser
	recorder  *scans.Recorder
	chat      *chat.Service
	catalog   *advisory.Catalog
	history   scanLister
	breaker   *resilience.Breaker
	registry  *prometheus.Registry
	logger    *slog.Logger
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func requestLanguage(r *http.Request) advisory.Language {
	return advisory.LanguageOr(r.URL.Query().Get("language"), advisory.Fallback)
}

// --- Handlers ---

func handleHealth(b *resilience.Breaker) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		resp := map[string]string{"status": "ok"}
		if b != nil {
			resp["classifier"] = b.State().String()
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func handleDiagnose(svc diagnoser, rec *scans.Recorder, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxUpload)
		if err := r.ParseMultipartForm(maxUpload); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeError(w, http.StatusRequestEntityTooLarge, "image exceeds 10 MiB")
				return
			}
			writeError(w, http.StatusBadRequest, "expected multipart form with a file field")
			return
		}
		defer r.MultipartForm.RemoveAll()

		f, _, err := r.FormFile("file")
		if err != nil {
			writeError(w, http.StatusBadRequest, "file is required")
			return
		}
		defer f.Close()
		image, err := io.ReadAll(f)
		if err != nil {
			writeError(w, http.StatusBadRequest, "could not read file")
			return
		}

		report, err := svc.Diagnose(r.Context(), image, requestLanguage(r))
		switch {
		case errors.Is(err, diagnosis.ErrInvalidImage):
			writeError(w, http.StatusBadRequest, "file is empty or not an image")
			return
		case err != nil:
			logger.Error("diagnosis failed", "err", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}

		// Detached so a client disconnect does not drop the scan.
		rec.Record(context.WithoutCancel(r.Context()), strings.TrimSpace(r.Header.Get(UserHeader)), report)
		writeJSON(w, http.StatusOK, report)
	}
}

func handleChat(svc *chat.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req chat.Request
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if strings.TrimSpace(req.Message) == "" {
			writeError(w, http.StatusBadRequest, "message is required")
			return
		}
		resp := svc.Respond(r.Context(), req)
		logger.Debug("chat answered", "source", resp.Source, "language", req.Language)
		writeJSON(w, http.StatusOK, resp)
	}
}

// DiseaseSummary is one entry of GET /api/diseases.
type DiseaseSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func handleListDiseases(cat *advisory.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lang := requestLanguage(r)
		ids := cat.IDs()
		out := make([]DiseaseSummary, 0, len(ids))
		for _, id := range ids {
			rec, _ := cat.Lookup(id)
			name := rec.Name[lang]
			if name == "" {
				name = rec.Name[advisory.Fallback]
			}
			out = append(out, DiseaseSummary{ID: id, Name: name})
		}
		writeJSON(w, http.StatusOK, map[string]any{"language": lang, "diseases": out})
	}
}

// DiseaseResponse is the body of GET /api/diseases/{id}.
type DiseaseResponse struct {
	ID       string              `json:"id"`
	Language advisory.Language   `json:"language"`
	Advisory *advisory.Projected `json:"advisory"`
}

func handleGetDisease(cat *advisory.Catalog, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		rec, ok := cat.Lookup(id)
		if !ok {
			writeError(w, http.StatusNotFound, "unknown disease")
			return
		}
		lang := requestLanguage(r)
		p, err := advisory.Project(rec, lang)
		if err != nil {
			logger.Error("catalog projection failed", "id", id, "language", lang, "err", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		writeJSON(w, http.StatusOK, DiseaseResponse{ID: id, Language: lang, Advisory: &p})
	}
}

func handleListScans(store scanLister, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			writeError(w, http.StatusServiceUnavailable, "scan history is not configured")
			return
		}
		user := strings.TrimSpace(r.Header.Get(UserHeader))
		if user == "" {
			writeError(w, http.StatusBadRequest, UserHeader+" header is required")
			return
		}
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		if limit > 100 {
			limit = 100
		}
		list, err := store.ListByUser(r.Context(), user, limit)
		if err != nil {
			logger.Warn("scan history unavailable", "user", user, "err", err)
			writeError(w, http.StatusServiceUnavailable, "scan history unavailable")
			return
		}
		if list == nil {
			list = []scans.Scan{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"scans": list})
	}
}
