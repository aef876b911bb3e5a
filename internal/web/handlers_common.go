package web

// This file contains shared utilities used across handlers.

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/JonMunkholm/elections/internal/core"
)

// dataset returns the current dataset, loading it if needed. On failure it
// writes a 503 and returns false; callers must not serve partial data.
func (s *Server) dataset(w http.ResponseWriter, r *http.Request) (*core.Dataset, bool) {
	ds, err := s.service.Dataset(r.Context())
	if err != nil {
		s.respondError(w, r, err, http.StatusServiceUnavailable)
		return nil, false
	}
	return ds, true
}

// parseElectionParam parses an election ID query parameter, falling back to
// defaultVal when the parameter is absent.
func parseElectionParam(r *http.Request, name string, defaultVal core.ElectionID) (core.ElectionID, error) {
	val := strings.TrimSpace(r.URL.Query().Get(name))
	if val == "" {
		return defaultVal, nil
	}
	e, err := core.ParseElectionID(val)
	if err != nil {
		return 0, fmt.Errorf("parameter %s: %w", name, err)
	}
	return e, nil
}

// parsePartyParams collects party keys from repeated and comma-separated
// "party" parameters, dropping blanks and repeats.
func parsePartyParams(r *http.Request) []string {
	var keys []string
	seen := make(map[string]bool)
	for _, val := range r.URL.Query()["party"] {
		for _, key := range strings.Split(val, ",") {
			key = strings.TrimSpace(key)
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			keys = append(keys, key)
		}
	}
	return keys
}
