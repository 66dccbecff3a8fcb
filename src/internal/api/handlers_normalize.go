package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/maksimkurb/ipnorm/src/internal/endpoint"
	"github.com/maksimkurb/ipnorm/src/internal/filter"
	"github.com/maksimkurb/ipnorm/src/internal/lists"
	"github.com/maksimkurb/ipnorm/src/internal/output"
)

// Normalize parses a text/plain body line by line.
// POST /api/v1/normalize?exclude=10.0.0.0/8&format=text&template={{ip}}:{{port}}
func (h *Handler) Normalize(w http.ResponseWriter, r *http.Request) {
	limit := h.cfg.API.MaxBodyBytes
	body := http.MaxBytesReader(w, r.Body, limit)

	lines, err := lists.ReadLines(body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			WritePayloadTooLarge(w, limit)
			return
		}
		WriteInvalidRequest(w, fmt.Sprintf("Failed to read request body: %v", err))
		return
	}

	query := r.URL.Query()
	exclude, err := filter.New(append(append([]string(nil), h.cfg.ExcludedNetworks()...), query["exclude"]...))
	if err != nil {
		WriteInvalidRequest(w, fmt.Sprintf("Invalid exclude filter: %v", err))
		return
	}

	resp := NormalizeResponse{Rejections: []Rejection{}}
	observer := lists.ObserverFunc(func(_ string, lineNo int, raw string, o endpoint.Outcome) {
		if o.OK() {
			return
		}
		if len(resp.Rejections) >= maxRejections {
			resp.RejectionsTruncated = true
			return
		}
		resp.Rejections = append(resp.Rejections, Rejection{Line: lineNo, Raw: raw, Reason: o.Reason})
	})

	result, err := lists.NormalizeLines(lines, observer)
	if errors.Is(err, lists.ErrEmptyInput) {
		WriteEmptyInput(w)
		return
	} else if err != nil {
		WriteInternalError(w, err.Error())
		return
	}

	result, resp.Excluded = result.Exclude(exclude)

	if query.Get("format") == "text" {
		tmpl := query.Get("template")
		if tmpl == "" {
			tmpl = h.cfg.General.OutputTemplate
		}
		data, err := output.Render(result, tmpl)
		if err != nil {
			WriteInvalidRequest(w, err.Error())
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	resp.Stats = result.Stats
	resp.Endpoints = make([]EndpointInfo, len(result.Endpoints))
	for i, ep := range result.Endpoints {
		resp.Endpoints[i] = toEndpointInfo(ep)
	}
	writeJSONData(w, resp)
}

// Parse explains how a single line is parsed.
// POST /api/v1/parse
func (h *Handler) Parse(w http.ResponseWriter, r *http.Request) {
	var req ParseRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteInvalidRequest(w, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	o := endpoint.Parse(req.Line)
	resp := ParseResponse{
		OK:     o.OK(),
		Format: o.Format,
		Reason: o.Reason,
	}
	if o.OK() {
		info := toEndpointInfo(o.Endpoint)
		resp.Endpoint = &info
	}
	writeJSONData(w, resp)
}
