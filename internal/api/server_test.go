package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/bstar/fight-fortress-sub001/internal/config"
	"github.com/bstar/fight-fortress-sub001/internal/fighter"
	"github.com/bstar/fight-fortress-sub001/internal/universe"
)

func testServer(t *testing.T) (*Server, *fighter.Fighter) {
	t.Helper()
	u := universe.New(config.DefaultTuning(), 1, 400, 80)

	champ := &fighter.Fighter{
		ID:         uuid.New(),
		Name:       "Test Champion",
		Division:   "Welterweight",
		Age:        29,
		Phase:      fighter.PhaseChampion,
		Record:     fighter.Record{Wins: 24, Losses: 1, KOs: 18},
		Attributes: fighter.NewAttributeSet(88),
	}
	challenger := &fighter.Fighter{
		ID:         uuid.New(),
		Name:       "Test Challenger",
		Division:   "Welterweight",
		Age:        26,
		Phase:      fighter.PhaseContender,
		Record:     fighter.Record{Wins: 18, Losses: 2, KOs: 9},
		Attributes: fighter.NewAttributeSet(80),
	}
	for _, f := range []*fighter.Fighter{champ, challenger} {
		u.AddFighter(f)
	}
	champID := champ.ID
	u.Divisions["Welterweight"].ChampionID = &champID
	u.Divisions["Welterweight"].Contenders = []fighter.ID{challenger.ID}

	return &Server{Universe: u, Port: 0}, champ
}

func getJSON(t *testing.T, handler http.HandlerFunc, target string, out any) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	handler(rec, req)
	if rec.Code == http.StatusOK && out != nil {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("decode %s: %v", target, err)
		}
	}
	return rec
}

func TestHandleStatus(t *testing.T) {
	s, _ := testServer(t)
	s.Universe.Date = fighter.Date{Week: 9, Year: 2}
	s.Universe.AbsWeek = 61

	var status map[string]any
	rec := getJSON(t, s.handleStatus, "/api/v1/status", &status)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type %q", ct)
	}
	if status["week"].(float64) != 9 || status["year"].(float64) != 2 {
		t.Fatalf("status calendar %v/%v", status["week"], status["year"])
	}
	if status["active"].(float64) != 2 || status["champions"].(float64) != 1 {
		t.Fatalf("status counts %v active, %v champions", status["active"], status["champions"])
	}
}

func TestHandleDivisions(t *testing.T) {
	s, _ := testServer(t)

	var divisions []struct {
		Name     string `json:"name"`
		Champion string `json:"champion"`
		Roster   int    `json:"roster"`
	}
	getJSON(t, s.handleDivisions, "/api/v1/divisions", &divisions)

	if len(divisions) != len(universe.DivisionNames) {
		t.Fatalf("%d divisions listed", len(divisions))
	}
	found := false
	for _, d := range divisions {
		if d.Name == "Welterweight" {
			found = true
			if d.Champion != "Test Champion" {
				t.Fatalf("champion %q", d.Champion)
			}
			if d.Roster != 2 {
				t.Fatalf("roster %d, want 2", d.Roster)
			}
		}
	}
	if !found {
		t.Fatalf("Welterweight missing from the listing")
	}
}

func TestHandleDivisionDetail(t *testing.T) {
	s, _ := testServer(t)

	var detail struct {
		Name     string `json:"name"`
		Champion struct {
			Name   string `json:"name"`
			Record string `json:"record"`
		} `json:"champion"`
		Contenders []struct {
			Rank int    `json:"rank"`
			Name string `json:"name"`
		} `json:"contenders"`
	}
	rec := getJSON(t, s.handleDivisionDetail, "/api/v1/division/Welterweight", &detail)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if detail.Champion.Name != "Test Champion" {
		t.Fatalf("champion %q", detail.Champion.Name)
	}
	if detail.Champion.Record != "24-1-0 (18 KO)" {
		t.Fatalf("record %q", detail.Champion.Record)
	}
	if len(detail.Contenders) != 1 || detail.Contenders[0].Rank != 1 {
		t.Fatalf("contender table %+v", detail.Contenders)
	}

	if rec := getJSON(t, s.handleDivisionDetail, "/api/v1/division/Cruiserweight", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown division returned %d", rec.Code)
	}
}

func TestHandleFighters(t *testing.T) {
	s, _ := testServer(t)

	var fighters []struct {
		Name    string  `json:"name"`
		Overall float64 `json:"overall"`
	}
	getJSON(t, s.handleFighters, "/api/v1/fighters?division=Welterweight", &fighters)
	if len(fighters) != 2 {
		t.Fatalf("%d fighters, want 2", len(fighters))
	}
	if fighters[0].Overall < fighters[1].Overall {
		t.Fatalf("fighters not sorted by overall")
	}

	getJSON(t, s.handleFighters, "/api/v1/fighters?phase=champion", &fighters)
	if len(fighters) != 1 || fighters[0].Name != "Test Champion" {
		t.Fatalf("phase filter returned %+v", fighters)
	}

	getJSON(t, s.handleFighters, "/api/v1/fighters?division=Flyweight", &fighters)
	if len(fighters) != 0 {
		t.Fatalf("empty division returned %d fighters", len(fighters))
	}
}

func TestHandleFighterDetail(t *testing.T) {
	s, champ := testServer(t)

	var detail struct {
		Name string `json:"name"`
	}
	rec := getJSON(t, s.handleFighterDetail, "/api/v1/fighter/"+champ.ID.String(), &detail)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if detail.Name != champ.Name {
		t.Fatalf("name %q", detail.Name)
	}

	if rec := getJSON(t, s.handleFighterDetail, "/api/v1/fighter/not-a-uuid", nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad id returned %d", rec.Code)
	}
	if rec := getJSON(t, s.handleFighterDetail, "/api/v1/fighter/"+uuid.NewString(), nil); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown id returned %d", rec.Code)
	}
}

func TestHandleBodies(t *testing.T) {
	s, champ := testServer(t)
	wba := s.Universe.Body("WBA")
	wba.Rankings["Welterweight"] = []fighter.ID{champ.ID}
	wba.WeeksSinceDefense["Welterweight"] = 12

	var bodies []struct {
		Code     string              `json:"code"`
		Rankings map[string][]string `json:"rankings"`
		Clocks   map[string]int      `json:"weeks_since_defense"`
	}
	getJSON(t, s.handleBodies, "/api/v1/bodies", &bodies)

	if len(bodies) != 4 {
		t.Fatalf("%d bodies, want 4", len(bodies))
	}
	for _, b := range bodies {
		if b.Code != "WBA" {
			continue
		}
		if len(b.Rankings["Welterweight"]) != 1 || b.Rankings["Welterweight"][0] != champ.Name {
			t.Fatalf("WBA rankings %+v", b.Rankings)
		}
		if b.Clocks["Welterweight"] != 12 {
			t.Fatalf("WBA clock %d", b.Clocks["Welterweight"])
		}
		return
	}
	t.Fatalf("WBA missing from the listing")
}

func TestHandleEventsFallsBackToMemory(t *testing.T) {
	s, _ := testServer(t)
	for i := 0; i < 60; i++ {
		s.Universe.Events = append(s.Universe.Events, universe.NewProspectEvent{
			Name: "Prospect", Age: 19, Division: "Flyweight",
		})
	}

	var events []struct {
		Kind    string `json:"kind"`
		Message string `json:"message"`
	}
	getJSON(t, s.handleEvents, "/api/v1/events", &events)
	if len(events) != 50 {
		t.Fatalf("%d events, want the default limit of 50", len(events))
	}

	getJSON(t, s.handleEvents, "/api/v1/events?limit=5", &events)
	if len(events) != 5 {
		t.Fatalf("limit ignored: %d events", len(events))
	}
	if events[0].Kind == "" || events[0].Message == "" {
		t.Fatalf("event view empty: %+v", events[0])
	}
}

func TestHandlersServeWhileUniverseTicks(t *testing.T) {
	s, _ := testServer(t)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 40; i++ {
			s.Universe.ProcessWeek()
		}
	}()

	handlers := map[string]http.HandlerFunc{
		"/api/v1/status":                s.handleStatus,
		"/api/v1/divisions":             s.handleDivisions,
		"/api/v1/division/Welterweight": s.handleDivisionDetail,
		"/api/v1/fighters":              s.handleFighters,
		"/api/v1/bodies":                s.handleBodies,
		"/api/v1/events":                s.handleEvents,
		"/api/v1/hall":                  s.handleHall,
		"/api/v1/history":               s.handleHistory,
	}
	for i := 0; i < 25; i++ {
		for target, h := range handlers {
			if rec := getJSON(t, h, target, nil); rec.Code != http.StatusOK {
				t.Fatalf("%s returned %d mid-tick", target, rec.Code)
			}
		}
	}
	<-done
}
