package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/Mohsinsiddi/w3mint/internal/mint"
	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	maxFields      = 16
	maxTokenWindow = 50
)

// handleContractData serves GET /api/contract-data/{a,b,c}: one JSON object
// keyed by the requested field names.
func (s *Server) handleContractData(w http.ResponseWriter, r *http.Request) {
	var fields []string
	for _, f := range strings.Split(chi.URLParam(r, "fields"), ",") {
		if f = strings.TrimSpace(f); f != "" {
			fields = append(fields, f)
		}
	}
	switch {
	case len(fields) == 0:
		writeError(w, http.StatusBadRequest, errors.New("no fields requested"))
		return
	case len(fields) > maxFields:
		writeError(w, http.StatusBadRequest, fmt.Errorf("at most %d fields per request", maxFields))
		return
	}

	res := s.reader.Read(r.Context(), fields...)
	if res.Err != nil {
		s.log.Warn("contract-data read failed",
			"fields", fields, "err", res.Err, "request_id", middleware.GetReqID(r.Context()))
		writeError(w, http.StatusBadGateway, res.Err)
		return
	}

	out := make(map[string]any, len(res.Values))
	for name, v := range res.Values {
		out[name] = mint.JSONValue(v)
	}
	writeJSON(w, http.StatusOK, out)
}

// handleAllowlist serves GET /api/allowlist/{address}.
func (s *Server) handleAllowlist(w http.ResponseWriter, r *http.Request) {
	addr := chi.URLParam(r, "address")
	if !common.IsHexAddress(addr) {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid address %q", addr))
		return
	}
	verified := s.allowlist != nil && s.allowlist.Contains(addr)
	writeJSON(w, http.StatusOK, map[string]any{
		"address":  common.HexToAddress(addr).Hex(),
		"verified": verified,
	})
}

// handleTokens serves GET /api/tokens?start=&end=&reverse=. Both ends are
// inclusive; the default window is the first gallery-size tokens.
func (s *Server) handleTokens(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rng := mint.Range{Start: 1, End: s.gallery}

	var err error
	if v := q.Get("start"); v != "" {
		if rng.Start, err = strconv.ParseUint(v, 10, 64); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid start %q", v))
			return
		}
		if q.Get("end") == "" {
			rng.End = rng.Start + s.gallery - 1
		}
	}
	if v := q.Get("end"); v != "" {
		if rng.End, err = strconv.ParseUint(v, 10, 64); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid end %q", v))
			return
		}
	}
	if v := q.Get("reverse"); v != "" {
		if rng.Reverse, err = strconv.ParseBool(v); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid reverse %q", v))
			return
		}
	}
	if rng.Start <= rng.End && rng.End-rng.Start >= maxTokenWindow {
		writeError(w, http.StatusBadRequest, fmt.Errorf("window larger than %d tokens", maxTokenWindow))
		return
	}

	tokens, err := s.tokens.Fetch(r.Context(), rng)
	switch {
	case errors.Is(err, mint.ErrInvalidRange):
		writeError(w, http.StatusBadRequest, err)
		return
	case err != nil:
		s.log.Warn("token fetch failed", "range", rng, "err", err, "request_id", middleware.GetReqID(r.Context()))
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, tokens)
}
