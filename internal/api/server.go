// Package api provides the read-only HTTP API for observing a running
// universe. All endpoints are GET.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/bstar/fight-fortress-sub001/internal/fighter"
	"github.com/bstar/fight-fortress-sub001/internal/persistence"
	"github.com/bstar/fight-fortress-sub001/internal/universe"
)

// Server serves universe state over HTTP.
type Server struct {
	Universe *universe.Universe
	Runner   *universe.Runner
	DB       *persistence.DB
	Port     int
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/divisions", s.handleDivisions)
	mux.HandleFunc("/api/v1/division/", s.handleDivisionDetail)
	mux.HandleFunc("/api/v1/fighters", s.handleFighters)
	mux.HandleFunc("/api/v1/fighter/", s.handleFighterDetail)
	mux.HandleFunc("/api/v1/bodies", s.handleBodies)
	mux.HandleFunc("/api/v1/events", s.handleEvents)
	mux.HandleFunc("/api/v1/hall", s.handleHall)
	mux.HandleFunc("/api/v1/history", s.handleHistory)

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr)

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.Universe.RLock()
	defer s.Universe.RUnlock()

	champions := 0
	for _, d := range s.Universe.Divisions {
		if d.ChampionID != nil {
			champions++
		}
	}

	status := map[string]any{
		"week":      s.Universe.Date.Week,
		"year":      s.Universe.Date.Year,
		"abs_week":  s.Universe.AbsWeek,
		"active":    len(s.Universe.Active),
		"retired":   len(s.Universe.Retired),
		"champions": champions,
		"inductees": len(s.Universe.Hall.Inductees),
	}
	if s.Runner != nil {
		status["speed"] = s.Runner.Speed()
		status["running"] = s.Runner.Running()
	}
	writeJSON(w, status)
}

func (s *Server) handleDivisions(w http.ResponseWriter, r *http.Request) {
	s.Universe.RLock()
	defer s.Universe.RUnlock()

	type divisionSummary struct {
		Name       string `json:"name"`
		Champion   string `json:"champion,omitempty"`
		Mandatory  string `json:"mandatory,omitempty"`
		Contenders int    `json:"contenders"`
		Roster     int    `json:"roster"`
	}

	var result []divisionSummary
	for _, name := range universe.DivisionNames {
		d := s.Universe.Divisions[name]
		entry := divisionSummary{
			Name:       name,
			Contenders: len(d.Contenders),
			Roster:     len(s.Universe.DivisionRoster(name)),
		}
		if d.ChampionID != nil {
			if f := s.Universe.Fighter(*d.ChampionID); f != nil {
				entry.Champion = f.Name
			}
		}
		if d.MandatoryID != nil {
			if f := s.Universe.Fighter(*d.MandatoryID); f != nil {
				entry.Mandatory = f.Name
			}
		}
		result = append(result, entry)
	}
	writeJSON(w, result)
}

// handleDivisionDetail returns one division's champion and ranked table:
// GET /api/v1/division/Welterweight
func (s *Server) handleDivisionDetail(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/api/v1/division/")

	s.Universe.RLock()
	defer s.Universe.RUnlock()

	d, ok := s.Universe.Divisions[name]
	if !ok {
		http.Error(w, "unknown division", http.StatusNotFound)
		return
	}

	type rankedEntry struct {
		Rank   int    `json:"rank"`
		ID     string `json:"id"`
		Name   string `json:"name"`
		Record string `json:"record"`
		Phase  string `json:"phase"`
	}

	var contenders []rankedEntry
	for i, id := range d.Contenders {
		f := s.Universe.Fighter(id)
		if f == nil {
			continue
		}
		contenders = append(contenders, rankedEntry{
			Rank:   i + 1,
			ID:     f.ID.String(),
			Name:   f.Name,
			Record: recordString(f),
			Phase:  f.Phase.String(),
		})
	}

	detail := map[string]any{
		"name":       d.Name,
		"contenders": contenders,
	}
	if d.ChampionID != nil {
		if f := s.Universe.Fighter(*d.ChampionID); f != nil {
			detail["champion"] = rankedEntry{
				ID:     f.ID.String(),
				Name:   f.Name,
				Record: recordString(f),
				Phase:  f.Phase.String(),
			}
		}
	}
	writeJSON(w, detail)
}

func (s *Server) handleFighters(w http.ResponseWriter, r *http.Request) {
	division := r.URL.Query().Get("division")
	phase := r.URL.Query().Get("phase")

	s.Universe.RLock()
	defer s.Universe.RUnlock()

	type fighterSummary struct {
		ID       string  `json:"id"`
		Name     string  `json:"name"`
		Division string  `json:"division"`
		Age      int     `json:"age"`
		Phase    string  `json:"phase"`
		Record   string  `json:"record"`
		Overall  float64 `json:"overall"`
		Rank     *int    `json:"rank,omitempty"`
	}

	var result []fighterSummary
	for _, f := range s.Universe.ActiveRoster() {
		if division != "" && f.Division != division {
			continue
		}
		if phase != "" && !strings.EqualFold(f.Phase.String(), phase) {
			continue
		}
		result = append(result, fighterSummary{
			ID:       f.ID.String(),
			Name:     f.Name,
			Division: f.Division,
			Age:      f.Age,
			Phase:    f.Phase.String(),
			Record:   recordString(f),
			Overall:  f.Attributes.Overall(),
			Rank:     f.Ranking.CurrentRank,
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Overall > result[j].Overall })
	writeJSON(w, result)
}

// handleFighterDetail returns the full record: GET /api/v1/fighter/:id
func (s *Server) handleFighterDetail(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimPrefix(r.URL.Path, "/api/v1/fighter/")
	id, err := fighter.ParseID(raw)
	if err != nil {
		http.Error(w, "bad fighter id", http.StatusBadRequest)
		return
	}
	s.Universe.RLock()
	defer s.Universe.RUnlock()

	f := s.Universe.Fighter(id)
	if f == nil {
		http.Error(w, "fighter not found", http.StatusNotFound)
		return
	}
	writeJSON(w, f)
}

func (s *Server) handleBodies(w http.ResponseWriter, r *http.Request) {
	s.Universe.RLock()
	defer s.Universe.RUnlock()

	type bodyView struct {
		Code     string              `json:"code"`
		Name     string              `json:"name"`
		Rankings map[string][]string `json:"rankings"`
		Clocks   map[string]int      `json:"weeks_since_defense"`
	}

	var result []bodyView
	for _, b := range s.Universe.Bodies {
		view := bodyView{
			Code:     b.Profile.Code,
			Name:     b.Profile.Name,
			Rankings: make(map[string][]string),
			Clocks:   b.WeeksSinceDefense,
		}
		for division, ids := range b.Rankings {
			names := make([]string, 0, len(ids))
			for _, id := range ids {
				if f := s.Universe.Fighter(id); f != nil {
					names = append(names, f.Name)
				}
			}
			view.Rankings[division] = names
		}
		result = append(result, view)
	}
	writeJSON(w, result)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	if s.DB != nil {
		stored, err := s.DB.RecentEvents(limit)
		if err == nil {
			writeJSON(w, stored)
			return
		}
		slog.Warn("recent events query failed, serving in-memory log", "error", err)
	}

	type eventView struct {
		Kind    string `json:"kind"`
		Message string `json:"message"`
	}

	s.Universe.RLock()
	defer s.Universe.RUnlock()

	events := s.Universe.Events
	start := 0
	if len(events) > limit {
		start = len(events) - limit
	}
	result := make([]eventView, 0, limit)
	for _, e := range events[start:] {
		result = append(result, eventView{Kind: string(e.Kind()), Message: e.Message()})
	}
	writeJSON(w, result)
}

func (s *Server) handleHall(w http.ResponseWriter, r *http.Request) {
	s.Universe.RLock()
	defer s.Universe.RUnlock()
	writeJSON(w, s.Universe.Hall)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	s.Universe.RLock()
	defer s.Universe.RUnlock()
	writeJSON(w, s.Universe.History)
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}

func recordString(f *fighter.Fighter) string {
	return fmt.Sprintf("%d-%d-%d (%d KO)", f.Record.Wins, f.Record.Losses, f.Record.Draws, f.Record.KOs)
}
