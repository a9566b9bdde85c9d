package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/mindmap/pkg/buildinfo"
	mmerrors "github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/pipeline"
	"github.com/matzehuels/mindmap/pkg/store"
)

// maxBodyBytes bounds a request body; text itself is limited to
// mmerrors.MaxTextLength characters.
const maxBodyBytes = 1 << 20

const exportTimeout = 10 * time.Second

type generateRequest struct {
	Text         string `json:"text" validate:"required,max=20000"`
	ResearchMode bool   `json:"research_mode"`
}

type generateResponse struct {
	Mermaid string `json:"mermaid"`
	APIUsed string `json:"api_used"`
	ID      string `json:"id"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"mock_mode": s.cfg.OfflineMode(),
	})
}

func (s *Server) handleDebug(w http.ResponseWriter, r *http.Request) {
	keys := s.cfg.KeyStatus()
	writeJSON(w, http.StatusOK, map[string]any{
		"mock_mode":                   s.cfg.OfflineMode(),
		"gemini_api_key":              keys["gemini"].String(),
		"mistral_api_key":             keys["mistral"].String(),
		"serper_api_key":              keys["serper"].String(),
		"gemini_api_key_placeholder":  keys["gemini"].Placeholder,
		"mistral_api_key_placeholder": keys["mistral"].Placeholder,
		"serper_api_key_placeholder":  keys["serper"].Placeholder,
	})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, mmerrors.Wrap(mmerrors.ErrCodeInvalidInput, err, "invalid JSON body"), "")
		return
	}
	if err := s.validateRequest(req); err != nil {
		writeError(w, err, "")
		return
	}

	opts := pipeline.Options{
		Text:         req.Text,
		ResearchMode: req.ResearchMode,
		Format:       pipeline.FormatMermaid,
		Logger:       s.logger.With("request_id", requestID(r)),
	}
	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		if mmerrors.HTTPStatus(err) >= http.StatusInternalServerError {
			opts.Logger.Error("generate map failed", "err", err)
		}
		writeError(w, err, "Failed to generate mind map")
		return
	}

	s.persist(r.Context(), res, opts)
	writeJSON(w, http.StatusOK, generateResponse{
		Mermaid: res.Diagram,
		APIUsed: res.BackendUsed,
		ID:      res.ID,
	})
}

// persist saves and exports a result. Failures are logged; the map has
// already been generated.
func (s *Server) persist(ctx context.Context, res *pipeline.Result, opts pipeline.Options) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), exportTimeout)
	defer cancel()

	if s.store != nil {
		if err := s.store.Save(ctx, store.NewRecord(res, opts)); err != nil {
			opts.Logger.Warn("failed to store map", "id", res.ID, "err", err)
		}
	}
	if s.exporter != nil {
		if err := s.exporter.Export(ctx, res.ID, res.Hierarchy); err != nil {
			opts.Logger.Warn("failed to export map", "id", res.ID, "err", err)
		}
	}
}

func (s *Server) handleGetMap(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleListMaps(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, mmerrors.New(mmerrors.ErrCodeInvalidInput, "limit must be a non-negative integer"), "")
			return
		}
		limit = n
	}
	recs, err := s.store.Recent(r.Context(), limit)
	if err != nil {
		writeError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"maps": recs})
}
