package httpapi

import (
	"bufio"
	"errors"
	"fmt"
	"hash/fnv"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"log/slog"

	"github.com/gin-gonic/gin"

	"bytesize/internal/config"
	"bytesize/pkg/bytesize"
	"bytesize/pkg/textalign"
)

const (
	maxPrecision = 17
	maxWidth     = 256
)

var errInvalidRequest = errors.New("invalid request")

// Handler serves the /v1 render and parse endpoints.
type Handler struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewHandler constructs the HTTP handler.
func NewHandler(cfg *config.Config, logger *slog.Logger) *Handler {
	return &Handler{
		cfg:    cfg,
		logger: logger.With("component", "handler"),
	}
}

// Register attaches routes to gin engine.
func (h *Handler) Register(r *gin.Engine) {
	r.GET("/healthz", h.handleHealth)
	v1 := r.Group("/v1")
	v1.GET("/render", h.handleRender)
	v1.GET("/parse", h.handleParse)
	v1.POST("/parse", h.handleParseBatch)
}

type renderResponse struct {
	Bytes     bytesize.ByteSize `json:"bytes"`
	Text      string            `json:"text"`
	Format    bytesize.Format   `json:"format"`
	Precision int               `json:"precision"`
}

type parseResponse struct {
	Bytes bytesize.ByteSize `json:"bytes"`
	Text  string            `json:"text"`
}

type lineResult struct {
	Line  int                `json:"line"`
	Input string             `json:"input"`
	Bytes *bytesize.ByteSize `json:"bytes,omitempty"`
	Text  string             `json:"text,omitempty"`
	Error string             `json:"error,omitempty"`
	Kind  string             `json:"kind,omitempty"`
}

type batchResponse struct {
	Results   []lineResult      `json:"results"`
	Valid     int               `json:"valid"`
	Invalid   int               `json:"invalid"`
	Total     bytesize.ByteSize `json:"total"`
	TotalText string            `json:"total_text"`
	Saturated bool              `json:"saturated,omitempty"`
}

func (h *Handler) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) handleRender(c *gin.Context) {
	start := time.Now()
	raw, ok := c.GetQuery("bytes")
	if !ok {
		h.respondError(c, http.StatusBadRequest, fmt.Errorf("%w: bytes is required", errInvalidRequest))
		return
	}
	size, err := bytesize.Parse(raw)
	if err != nil {
		h.respondError(c, http.StatusBadRequest, err)
		return
	}
	opts, err := h.displayOptions(c)
	if err != nil {
		h.respondError(c, http.StatusBadRequest, err)
		return
	}

	etag := opts.etag(size)
	c.Header("ETag", etag)
	c.Header("Cache-Control", "public, max-age=86400")
	if matchETag(c.GetHeader("If-None-Match"), etag) {
		c.Status(http.StatusNotModified)
		return
	}

	text := opts.display(size).String()
	c.JSON(http.StatusOK, renderResponse{
		Bytes:     size,
		Text:      text,
		Format:    opts.format,
		Precision: opts.precision,
	})
	h.logAccess(c, "rendered", time.Since(start), "bytes", size.Uint64(), "text", text)
}

func (h *Handler) handleParse(c *gin.Context) {
	start := time.Now()
	raw, ok := c.GetQuery("text")
	if !ok {
		h.respondError(c, http.StatusBadRequest, fmt.Errorf("%w: text is required", errInvalidRequest))
		return
	}
	size, err := bytesize.Parse(raw)
	if err != nil {
		h.respondError(c, http.StatusBadRequest, err)
		return
	}
	opts, err := h.displayOptions(c)
	if err != nil {
		h.respondError(c, http.StatusBadRequest, err)
		return
	}
	c.JSON(http.StatusOK, parseResponse{Bytes: size, Text: opts.display(size).String()})
	h.logAccess(c, "parsed", time.Since(start), "input", raw, "bytes", size.Uint64())
}

// handleParseBatch parses one size per line of the request body. Blank lines
// are skipped; failures are reported per line and do not fail the request.
func (h *Handler) handleParseBatch(c *gin.Context) {
	start := time.Now()
	opts, err := h.displayOptions(c)
	if err != nil {
		h.respondError(c, http.StatusBadRequest, err)
		return
	}

	resp := batchResponse{Results: []lineResult{}}
	scanner := bufio.NewScanner(c.Request.Body)
	for line := 1; scanner.Scan(); line++ {
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		result := lineResult{Line: line, Input: input}
		size, err := bytesize.Parse(input)
		if err != nil {
			result.Error = err.Error()
			result.Kind = errorKind(err)
			resp.Invalid++
		} else {
			result.Bytes = &size
			result.Text = opts.display(size).String()
			resp.Valid++
			var fits bool
			if resp.Total, fits = resp.Total.AddChecked(size); !fits {
				resp.Saturated = true
			}
		}
		resp.Results = append(resp.Results, result)
	}
	if err := scanner.Err(); err != nil {
		h.respondError(c, http.StatusBadRequest, fmt.Errorf("%w: read body: %v", errInvalidRequest, err))
		return
	}
	resp.TotalText = opts.display(resp.Total).String()
	c.JSON(http.StatusOK, resp)
	h.logAccess(c, "parsed batch", time.Since(start), "valid", resp.Valid, "invalid", resp.Invalid)
}

type displayOptions struct {
	format    bytesize.Format
	precision int
	align     textalign.Spec
}

func (o displayOptions) display(size bytesize.ByteSize) bytesize.Display {
	return size.Display().As(o.format).Precision(o.precision).Align(o.align)
}

// etag identifies a render result; equal inputs always render equal text.
func (o displayOptions) etag(size bytesize.ByteSize) string {
	hash := fnv.New64a()
	fmt.Fprintf(hash, "%d|%d|%d|%d|%d|%d", size.Uint64(), o.format, o.precision, o.align.Width, o.align.Align, o.align.Fill)
	return fmt.Sprintf("\"%x\"", hash.Sum64())
}

// displayOptions reads format, precision, width, align and fill from the
// query, falling back to the configured display defaults.
func (h *Handler) displayOptions(c *gin.Context) (displayOptions, error) {
	opts := displayOptions{
		format:    h.cfg.Display.Format,
		precision: h.cfg.Display.Precision,
	}
	if raw := c.Query("format"); raw != "" {
		f, err := bytesize.ParseFormat(raw)
		if err != nil {
			return opts, fmt.Errorf("%w: %v", errInvalidRequest, err)
		}
		opts.format = f
	}
	if raw := c.Query("precision"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil || p < 0 || p > maxPrecision {
			return opts, fmt.Errorf("%w: precision must be within 0-%d, got %q", errInvalidRequest, maxPrecision, raw)
		}
		opts.precision = p
	}
	if raw := c.Query("width"); raw != "" {
		w, err := strconv.Atoi(raw)
		if err != nil || w < 0 || w > maxWidth {
			return opts, fmt.Errorf("%w: width must be within 0-%d, got %q", errInvalidRequest, maxWidth, raw)
		}
		opts.align.Width = w
	}
	align, err := textalign.ParseAlignment(c.Query("align"))
	if err != nil {
		return opts, fmt.Errorf("%w: %v", errInvalidRequest, err)
	}
	opts.align.Align = align
	if raw := c.Query("fill"); raw != "" {
		r, n := utf8.DecodeRuneInString(raw)
		if r == utf8.RuneError || n != len(raw) {
			return opts, fmt.Errorf("%w: fill must be a single character, got %q", errInvalidRequest, raw)
		}
		opts.align.Fill = r
	}
	return opts, nil
}

// errorKind maps an error to the machine-readable kind reported to clients.
func errorKind(err error) string {
	switch {
	case errors.Is(err, bytesize.ErrEmptyInput):
		return "empty_input"
	case errors.Is(err, bytesize.ErrInvalidNumber):
		return "invalid_number"
	case errors.Is(err, bytesize.ErrInvalidUnit):
		return "invalid_unit"
	case errors.Is(err, bytesize.ErrOverflow):
		return "overflow"
	case errors.Is(err, errInvalidRequest):
		return "invalid_request"
	default:
		return "internal"
	}
}

func (h *Handler) respondError(c *gin.Context, code int, err error) {
	h.logger.Warn("request error",
		slog.Any("error", err),
		slog.Int("status", code),
		slog.String("path", c.Request.URL.Path))
	c.AbortWithStatusJSON(code, gin.H{"error": err.Error(), "kind": errorKind(err)})
}

func matchETag(header string, etag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		if strings.TrimSpace(candidate) == etag {
			return true
		}
	}
	return false
}

func (h *Handler) logAccess(c *gin.Context, msg string, dur time.Duration, extra ...any) {
	attrs := []any{
		"remote_ip", c.ClientIP(),
		"path", c.Request.URL.Path,
		"duration_ms", dur.Milliseconds(),
	}
	h.logger.Info(msg, append(attrs, extra...)...)
}
