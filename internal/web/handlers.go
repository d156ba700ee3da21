package web

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/JonMunkholm/staffdir/internal/core"
	"github.com/JonMunkholm/staffdir/internal/logging"
)

// LivenessText is the body of GET /.
const LivenessText = "🚀 Backend is running!"

// exportRetryAfter is sent with 503 when every export slot is busy.
const exportRetryAfter = 5

// handleRoot answers liveness probes.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(LivenessText))
}

type healthResponse struct {
	Status string `json:"status"`
	core.Stats
	Exports core.ExportLimiterStatus `json:"exports"`
}

// handleHealth reports dataset and export slot state.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, healthResponse{
		Status:  "ok",
		Stats:   s.service.Stats(),
		Exports: s.service.ExportStatus(),
	})
}

// handleData returns one page of the filtered view.
//
// Query parameters: page, limit, and any of the filterable columns.
func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	criteria := core.ParseCriteria(q)
	page := core.ParsePageParam(q.Get("page"), q.Has("page"), core.DefaultPage)
	limit := core.ParsePageParam(q.Get("limit"), q.Has("limit"), s.service.DefaultLimit())

	result := s.service.Query(criteria, page, limit)
	w.Header().Set("X-Total-Pages", strconv.Itoa(core.TotalPages(result.Total, result.Limit)))
	writeJSON(w, r, result)
}

type columnsResponse struct {
	Columns    []string `json:"columns"`
	Filterable []string `json:"filterable"`
}

// handleColumns lists the dataset columns and which of them accept filters.
func (s *Server) handleColumns(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, columnsResponse{
		Columns:    s.service.Store().Columns(),
		Filterable: core.FilterColumns,
	})
}

// handleExportPDF streams the filtered view as a PDF attachment.
//
// Pages are flushed to the client as they are rendered. A failure before the
// first byte is reported as a JSON error; after that the connection is
// aborted so the client sees a truncated download rather than a bogus file.
func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	criteria := core.ParseCriteria(r.URL.Query())

	exp, err := s.service.BeginExport(r.Context())
	if err != nil {
		status := http.StatusServiceUnavailable
		if errors.Is(err, core.ErrTooManyExports) {
			w.Header().Set("Retry-After", strconv.Itoa(exportRetryAfter))
		} else if errors.Is(err, context.Canceled) {
			// Client left while queued.
			logging.FromContext(r.Context()).Info("export abandoned while waiting", "error", err)
			return
		}
		s.respondError(w, r, err, status)
		return
	}
	defer exp.Done()

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.Export.Timeout)
	defer cancel()
	logger := logging.WithFields(ctx, "export_id", exp.ID)

	view := s.service.View(criteria)

	h := w.Header()
	h.Set("Content-Type", "application/pdf")
	h.Set("Content-Disposition", "attachment; filename="+s.cfg.Export.Filename)
	h.Set("Cache-Control", "no-store")
	h.Set("X-Export-ID", exp.ID)

	out := newStreamWriter(w)
	stats, err := s.renderer.Render(ctx, out, view)
	if err != nil {
		if out.written == 0 {
			h.Del("Content-Disposition")
			h.Del("Cache-Control")
			s.respondError(w, r, err, http.StatusInternalServerError)
			return
		}
		logger.Error("export aborted mid-stream",
			"error", err,
			"rows", len(view),
			"bytes", out.written,
		)
		panic(http.ErrAbortHandler)
	}

	logger.Info("export completed",
		"rows", stats.Rows,
		"pages", stats.Pages,
		"bytes", stats.Bytes,
		"filtered", criteria.Active(),
		"duration_ms", time.Since(exp.StartedAt).Milliseconds(),
	)
}

// streamWriter counts bytes and pushes each flush through to the client.
type streamWriter struct {
	w       http.ResponseWriter
	rc      *http.ResponseController
	written int64
}

func newStreamWriter(w http.ResponseWriter) *streamWriter {
	return &streamWriter{w: w, rc: http.NewResponseController(w)}
}

func (sw *streamWriter) Write(p []byte) (int, error) {
	n, err := sw.w.Write(p)
	sw.written += int64(n)
	return n, err
}

// Flush sends buffered bytes to the client. Writers that cannot flush
// are tolerated; the bytes still go out when the handler returns.
func (sw *streamWriter) Flush() error {
	if err := sw.rc.Flush(); err != nil && !errors.Is(err, http.ErrNotSupported) {
		return err
	}
	return nil
}
