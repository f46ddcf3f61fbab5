package persistence

import (
	"path/filepath"
	"testing"

	"github.com/bstar/fight-fortress-sub001/internal/config"
	"github.com/bstar/fight-fortress-sub001/internal/fighter"
	"github.com/bstar/fight-fortress-sub001/internal/universe"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "sim.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func populatedUniverse(t *testing.T) *universe.Universe {
	t.Helper()
	u := universe.New(config.DefaultTuning(), 1, 400, 80)
	gen, err := fighter.NewGenerator(1, universe.DivisionNames)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}

	for i := 0; i < 20; i++ {
		f := gen.Generate(u.Date, 20+i%10)
		f.Record = fighter.Record{Wins: i, Losses: i % 3, KOs: i / 2}
		u.AddFighter(f)
	}

	u.Date = fighter.Date{Week: 30, Year: 4}
	u.AbsWeek = 186
	return u
}

func TestSaveLoadRoundTrip(t *testing.T) {
	db := openTestDB(t)
	u1 := populatedUniverse(t)

	// Retire one fighter, crown one champion, dirty one body's clocks.
	var retiree, champ *fighter.Fighter
	for _, f := range u1.ActiveRoster() {
		if retiree == nil {
			retiree = f
			continue
		}
		if champ == nil && f.Division != retiree.Division {
			champ = f
		}
	}
	retiree.Phase = fighter.PhaseRetired
	d := u1.Date
	retiree.RetiredDate = &d
	delete(u1.Active, retiree.ID)
	u1.Retired[retiree.ID] = retiree

	champ.Phase = fighter.PhaseChampion
	champID := champ.ID
	u1.Divisions[champ.Division].ChampionID = &champID

	wba := u1.Body("WBA")
	wba.WeeksSinceDefense[champ.Division] = 7
	wba.MandatoryCalled[champ.Division] = true
	wba.Rankings[champ.Division] = []fighter.ID{retiree.ID}

	u1.Hall.Inductees = append(u1.Hall.Inductees, universe.Induction{
		FighterID:   retiree.ID,
		Name:        retiree.Name,
		Date:        u1.Date,
		Score:       91.5,
		FirstBallot: true,
	})
	u1.History = append(u1.History, universe.RetirementRecord{
		FighterID:   retiree.ID,
		Name:        retiree.Name,
		Date:        u1.Date,
		FinalRecord: retiree.Record,
	})

	if err := db.SaveUniverse(u1); err != nil {
		t.Fatalf("SaveUniverse: %v", err)
	}

	u2 := universe.New(config.DefaultTuning(), 1, 400, 80)
	if err := db.LoadUniverse(u2); err != nil {
		t.Fatalf("LoadUniverse: %v", err)
	}

	if len(u2.Active) != len(u1.Active) || len(u2.Retired) != 1 {
		t.Fatalf("roster %d/%d, want %d/1", len(u2.Active), len(u2.Retired), len(u1.Active))
	}
	if u2.Date != u1.Date || u2.AbsWeek != u1.AbsWeek {
		t.Fatalf("calendar %+v abs %d, want %+v abs %d", u2.Date, u2.AbsWeek, u1.Date, u1.AbsWeek)
	}

	loadedChamp := u2.Active[champ.ID]
	if loadedChamp == nil {
		t.Fatalf("champion missing after load")
	}
	if loadedChamp.Name != champ.Name || loadedChamp.Record != champ.Record || loadedChamp.Phase != fighter.PhaseChampion {
		t.Fatalf("champion fields lost in the round trip")
	}
	div := u2.Divisions[champ.Division]
	if div.ChampionID == nil || *div.ChampionID != champ.ID {
		t.Fatalf("division championship lost")
	}

	loadedWBA := u2.Body("WBA")
	if loadedWBA.WeeksSinceDefense[champ.Division] != 7 {
		t.Fatalf("defense clock = %d, want 7", loadedWBA.WeeksSinceDefense[champ.Division])
	}
	if !loadedWBA.MandatoryCalled[champ.Division] {
		t.Fatalf("mandatory call marker lost")
	}
	if loadedWBA.Profile.Code != "WBA" {
		t.Fatalf("body profile not preserved from construction")
	}
	if len(loadedWBA.Rankings[champ.Division]) != 1 {
		t.Fatalf("body rankings lost")
	}

	if !u2.Hall.Contains(retiree.ID) {
		t.Fatalf("hall induction lost")
	}
	if len(u2.History) != 1 || u2.History[0].FinalRecord != retiree.Record {
		t.Fatalf("retirement history lost")
	}

	loadedRetiree := u2.Retired[retiree.ID]
	if loadedRetiree == nil || loadedRetiree.RetiredDate == nil || *loadedRetiree.RetiredDate != u1.Date {
		t.Fatalf("retiree state lost")
	}
}

func TestHasUniverse(t *testing.T) {
	db := openTestDB(t)
	if db.HasUniverse() {
		t.Fatalf("fresh database claims a saved universe")
	}
	if err := db.SaveUniverse(populatedUniverse(t)); err != nil {
		t.Fatalf("SaveUniverse: %v", err)
	}
	if !db.HasUniverse() {
		t.Fatalf("saved universe not detected")
	}
}

func TestSaveUniverseIsFullReplace(t *testing.T) {
	db := openTestDB(t)
	u := populatedUniverse(t)
	if err := db.SaveUniverse(u); err != nil {
		t.Fatalf("SaveUniverse: %v", err)
	}
	if err := db.SaveUniverse(u); err != nil {
		t.Fatalf("second SaveUniverse: %v", err)
	}

	u2 := universe.New(config.DefaultTuning(), 1, 400, 80)
	if err := db.LoadUniverse(u2); err != nil {
		t.Fatalf("LoadUniverse: %v", err)
	}
	if len(u2.Active) != len(u.Active) {
		t.Fatalf("double save duplicated fighters: %d vs %d", len(u2.Active), len(u.Active))
	}
}

func TestEventLogAppendsNewestFirst(t *testing.T) {
	db := openTestDB(t)

	week1 := []universe.Event{
		universe.NewProspectEvent{Name: "Early Prospect", Age: 18, Division: "Flyweight"},
	}
	week2 := []universe.Event{
		universe.NewProspectEvent{Name: "Late Prospect", Age: 19, Division: "Heavyweight"},
		universe.UpsetEvent{WinnerName: "Late Prospect", LoserName: "Somebody", Division: "Heavyweight"},
	}
	if err := db.SaveEvents(fighter.Date{Week: 1, Year: 1}, week1); err != nil {
		t.Fatalf("SaveEvents: %v", err)
	}
	if err := db.SaveEvents(fighter.Date{Week: 2, Year: 1}, week2); err != nil {
		t.Fatalf("SaveEvents: %v", err)
	}

	events, err := db.RecentEvents(10)
	if err != nil {
		t.Fatalf("RecentEvents: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("%d events stored, want 3", len(events))
	}
	if events[0].Week != 2 || events[2].Week != 1 {
		t.Fatalf("events not ordered newest first: %+v", events)
	}
	if events[2].Kind != string(universe.KindNewProspect) {
		t.Fatalf("event kind = %q", events[2].Kind)
	}
	if events[2].Message == "" {
		t.Fatalf("event message empty")
	}

	limited, err := db.RecentEvents(2)
	if err != nil {
		t.Fatalf("RecentEvents: %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("limit ignored: %d events", len(limited))
	}
}

func TestMetaRoundTrip(t *testing.T) {
	db := openTestDB(t)
	if _, err := db.GetMeta("nothing"); err == nil {
		t.Fatalf("missing key did not error")
	}
	if err := db.SaveMeta("speed", "4"); err != nil {
		t.Fatalf("SaveMeta: %v", err)
	}
	if err := db.SaveMeta("speed", "8"); err != nil {
		t.Fatalf("SaveMeta overwrite: %v", err)
	}
	v, err := db.GetMeta("speed")
	if err != nil {
		t.Fatalf("GetMeta: %v", err)
	}
	if v != "8" {
		t.Fatalf("meta = %q, want 8", v)
	}
}
