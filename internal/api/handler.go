package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/eugenenazirov/parcel-loader/internal/loader"
	"github.com/eugenenazirov/parcel-loader/internal/parcel"
	"github.com/eugenenazirov/parcel-loader/internal/parser"
	"github.com/eugenenazirov/parcel-loader/internal/processor"
	"github.com/eugenenazirov/parcel-loader/internal/report"
	"github.com/eugenenazirov/parcel-loader/internal/storage"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

const defaultMaxBodyBytes = 1 << 20

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF  = "application/pdf"
)

// Handler wires the loading pipeline and storage into HTTP handlers.
type Handler struct {
	storage         storage.Storage
	defaultStrategy loader.StrategyType
	logger          *zap.Logger
	maxBodyBytes    int64

	clock func() time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// WithMaxBodyBytes caps the size of request bodies.
func WithMaxBodyBytes(n int64) HandlerOption {
	return func(h *Handler) {
		if n > 0 {
			h.maxBodyBytes = n
		}
	}
}

// WithHandlerLogger sets the logger handed to strategies and the processor.
func WithHandlerLogger(logger *zap.Logger) HandlerOption {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// NewHandler constructs a Handler with the provided dependencies.
func NewHandler(store storage.Storage, defaultStrategy loader.StrategyType, opts ...HandlerOption) *Handler {
	h := &Handler{
		storage:         store,
		defaultStrategy: defaultStrategy,
		logger:          zap.NewNop(),
		maxBodyBytes:    defaultMaxBodyBytes,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := healthResponse{
		Status:    "ok",
		Timestamp: h.clock(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleStrategies(w http.ResponseWriter, r *http.Request) {
	_ = r
	types := loader.StrategyTypes()
	resp := strategiesResponse{
		Strategies: make([]strategyView, len(types)),
		Default:    h.defaultStrategy.Name(),
	}
	for i, t := range types {
		resp.Strategies[i] = newStrategyView(t)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleCreateLoad(w http.ResponseWriter, r *http.Request) {
	var req loadRequest
	body := http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Request too large",
				fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}

	source, err := req.source()
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	strategyType := h.defaultStrategy
	if strings.TrimSpace(req.Strategy) != "" {
		strategyType, err = loader.ParseStrategyType(req.Strategy)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Unknown strategy", err.Error(),
				"Use one of: 1, 2, one-per-machine, dense")
			return
		}
	}

	logger := h.logger.With(zap.String("request_id", requestIDFromContext(r.Context())))
	strategy, err := loader.NewStrategy(strategyType, logger)
	if err != nil {
		writeInternalError(w, err)
		return
	}
	proc, err := processor.New(source, strategy, logger)
	if err != nil {
		writeInternalError(w, err)
		return
	}

	start := time.Now()
	result, err := proc.Process()
	elapsed := time.Since(start)
	if err != nil {
		if errors.Is(err, parser.ErrUnreadable) {
			writeError(w, http.StatusBadRequest, "Invalid parcels", err.Error())
			return
		}
		logger.Error("loading failed", zap.Error(err))
		writeInternalError(w, err)
		return
	}

	rec, err := h.storage.Save(storage.Record{
		Strategy: strategyType,
		Source:   source.Describe(),
		Result:   result,
	})
	if err != nil {
		writeInternalError(w, err)
		return
	}

	resp := newLoadResponse(rec)
	resp.CalculationTimeMs = elapsed.Milliseconds()
	w.Header().Set("Location", "/api/loads/"+rec.ID)
	writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) handleListLoads(w http.ResponseWriter, r *http.Request) {
	_ = r
	records, err := h.storage.List()
	if err != nil {
		writeInternalError(w, err)
		return
	}

	resp := listLoadsResponse{Loads: make([]loadSummary, len(records))}
	for i, rec := range records {
		resp.Loads[i] = newLoadSummary(rec)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetLoad(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newLoadResponse(rec))
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.lookup(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, report.Text(rec.Result))
}

func (h *Handler) handleExportExcel(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, contentTypeXLSX, "xlsx", report.WriteExcel)
}

func (h *Handler) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, contentTypePDF, "pdf", report.WritePDF)
}

// export renders into memory first so a failure can still produce an error response.
func (h *Handler) export(w http.ResponseWriter, r *http.Request, contentType, ext string, render func(io.Writer, loader.Result) error) {
	rec, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := render(&buf, rec.Result); err != nil {
		h.logger.Error("export failed", zap.String("id", rec.ID), zap.String("format", ext), zap.Error(err))
		writeInternalError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"load-%s.%s\"", rec.ID, ext))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) (storage.Record, bool) {
	id := r.PathValue("id")
	rec, err := h.storage.Get(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Load not found", fmt.Sprintf("no load with id %q", id),
				"List stored loads with GET /api/loads")
			return storage.Record{}, false
		}
		writeInternalError(w, err)
		return storage.Record{}, false
	}
	return rec, true
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

type loadRequest struct {
	Strategy string     `json:"strategy"`
	Parcels  string     `json:"parcels"`
	Blocks   [][]string `json:"blocks"`
}

func (req loadRequest) source() (parser.Source, error) {
	hasText := strings.TrimSpace(req.Parcels) != ""
	switch {
	case hasText && len(req.Blocks) > 0:
		return nil, errors.New("provide either parcels or blocks, not both")
	case hasText:
		return parser.NewReaderSource("request parcels", strings.NewReader(req.Parcels)), nil
	case len(req.Blocks) > 0:
		return parser.NewStaticSource(req.Blocks), nil
	default:
		return nil, errors.New("parcels or blocks must be provided")
	}
}

type strategyView struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func newStrategyView(t loader.StrategyType) strategyView {
	return strategyView{ID: t.ID(), Name: t.Name(), Description: t.String()}
}

type strategiesResponse struct {
	Strategies []strategyView `json:"strategies"`
	Default    string         `json:"default"`
}

type parcelView struct {
	Symbol string   `json:"symbol"`
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Lines  []string `json:"lines"`
}

func newParcelViews(parcels []parcel.Parcel) []parcelView {
	out := make([]parcelView, len(parcels))
	for i, p := range parcels {
		out[i] = parcelView{
			Symbol: string(p.Symbol()),
			Width:  p.Width(),
			Height: p.Height(),
			Lines:  p.Lines(),
		}
	}
	return out
}

type rejectionView struct {
	Block   int      `json:"block"`
	Lines   []string `json:"lines"`
	Reasons []string `json:"reasons"`
}

type loadSummary struct {
	ID        string         `json:"id"`
	Strategy  strategyView   `json:"strategy"`
	Source    string         `json:"source"`
	CreatedAt time.Time      `json:"createdAt"`
	Summary   report.Summary `json:"summary"`
}

func newLoadSummary(rec storage.Record) loadSummary {
	return loadSummary{
		ID:        rec.ID,
		Strategy:  newStrategyView(rec.Strategy),
		Source:    rec.Source,
		CreatedAt: rec.CreatedAt,
		Summary:   report.Summarize(rec.Result),
	}
}

type loadResponse struct {
	loadSummary
	Machines          []report.MachineInfo `json:"machines"`
	Oversized         []parcelView         `json:"oversized"`
	Invalid           []parcelView         `json:"invalid"`
	Rejected          []rejectionView      `json:"rejected"`
	CalculationTimeMs int64                `json:"calculationTimeMs,omitempty"`
}

func newLoadResponse(rec storage.Record) loadResponse {
	resp := loadResponse{
		loadSummary: newLoadSummary(rec),
		Machines:    report.Machines(rec.Result),
		Oversized:   newParcelViews(rec.Result.Oversized),
		Invalid:     newParcelViews(rec.Result.Invalid),
		Rejected:    make([]rejectionView, len(rec.Result.Rejected)),
	}
	for i, rej := range rec.Result.Rejected {
		resp.Rejected[i] = rejectionView{Block: rej.Block, Lines: rej.Lines, Reasons: rej.Reasons}
	}
	return resp
}

type listLoadsResponse struct {
	Loads []loadSummary `json:"loads"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type errorResponse struct {
	Error      string `json:"error"`
	Details    string `json:"details,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string, suggestion ...string) {
	resp := errorResponse{
		Error:   message,
		Details: details,
	}
	if len(suggestion) > 0 {
		resp.Suggestion = suggestion[0]
	}
	writeJSON(w, status, resp)
}

func writeInternalError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusInternalServerError, "Internal error", err.Error())
}
