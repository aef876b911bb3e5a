package web

import (
	"fmt"
	"net/http"
	"time"

	"github.com/JonMunkholm/elections/internal/core"
)

// StatusResponse describes the dataset currently being served.
type StatusResponse struct {
	LoadID     string            `json:"load_id"`
	LoadedAt   time.Time         `json:"loaded_at"`
	DurationMS int64             `json:"duration_ms"`
	Elections  []core.ElectionID `json:"elections"`
	Rows       int               `json:"rows"`
	Parties    int               `json:"parties"`
	Notable    int               `json:"notable"`
}

// ElectionSummary is one election's totals.
type ElectionSummary struct {
	Election core.ElectionID `json:"election"`
	Stations int             `json:"stations"`
	Parties  int             `json:"parties"`
	Turnout  core.Turnout    `json:"turnout"`
	Leaders  []string        `json:"leaders"`
}

// PartiesResponse lists party keys.
type PartiesResponse struct {
	Parties []string `json:"parties"`
}

// handleHealth reports liveness. It never touches the dataset.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, map[string]string{"status": "ok"})
}

// handleStatus returns the load metadata of the current dataset.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.dataset(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, StatusResponse{
		LoadID:     ds.LoadID,
		LoadedAt:   ds.LoadedAt,
		DurationMS: ds.Duration.Milliseconds(),
		Elections:  ds.Elections,
		Rows:       ds.Unified.Len(),
		Parties:    len(ds.AllParties),
		Notable:    len(ds.Notable),
	})
}

// handleElections returns each election's turnout totals and leading parties.
func (s *Server) handleElections(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.dataset(w, r)
	if !ok {
		return
	}

	out := make([]ElectionSummary, len(ds.Elections))
	for i, e := range ds.Elections {
		out[i] = ElectionSummary{
			Election: e,
			Stations: ds.Aggregate.Stations(e),
			Parties:  len(ds.Unified.Ballot(e)),
			Turnout:  ds.Aggregate.Turnout(e),
			Leaders:  core.TopParties(ds.Aggregate, e, 3),
		}
	}
	writeJSON(w, r, out)
}

// handleParties returns every party key in the dataset.
func (s *Server) handleParties(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.dataset(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, PartiesResponse{Parties: ds.AllParties})
}

// handleNotable returns the notable party set offered by the selector.
func (s *Server) handleNotable(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.dataset(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, PartiesResponse{Parties: ds.Notable})
}

// handleSeries returns vote and share series for the requested parties.
// Query: from, to (election IDs, default to the loaded span) and party
// (repeatable or comma-separated). Unknown parties are reported in
// "rejected" rather than failing the request.
func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.dataset(w, r)
	if !ok {
		return
	}

	parties := parsePartyParams(r)
	if limit := s.cfg.Query.MaxParties; len(parties) > limit {
		err := fmt.Errorf("%d parties requested, at most %d allowed: %w", len(parties), limit, core.ErrInvalidSelection)
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	span := ds.Aggregate.Span()
	from, err := parseElectionParam(r, "from", span.Lo)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}
	to, err := parseElectionParam(r, "to", span.Hi)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	set, err := core.Slice(ds.Aggregate, core.Range{Lo: from, Hi: to}, parties)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, r, set)
}
