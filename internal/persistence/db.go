// Package persistence provides SQLite-based universe state storage.
package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/bstar/fight-fortress-sub001/internal/fighter"
	"github.com/bstar/fight-fortress-sub001/internal/universe"
)

// DB wraps a SQLite connection for universe state persistence.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS fighters (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		division TEXT NOT NULL,
		phase INTEGER NOT NULL,
		retired INTEGER NOT NULL,
		fighter_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS divisions (
		name TEXT PRIMARY KEY,
		champion_id TEXT NOT NULL,
		mandatory_id TEXT NOT NULL,
		contenders_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS bodies (
		code TEXT PRIMARY KEY,
		state_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS hall (
		fighter_id TEXT PRIMARY KEY,
		induction_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS history (
		fighter_id TEXT PRIMARY KEY,
		record_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		week INTEGER NOT NULL,
		year INTEGER NOT NULL,
		kind TEXT NOT NULL,
		message TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS sim_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_fighters_division ON fighters(division);
	CREATE INDEX IF NOT EXISTS idx_fighters_retired ON fighters(retired);
	CREATE INDEX IF NOT EXISTS idx_events_year_week ON events(year, week);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveFighters writes the full roster, active and retired, to the database
// (full replace).
func (db *DB) SaveFighters(active, retired []*fighter.Fighter) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM fighters"); err != nil {
		return err
	}

	stmt, err := tx.Preparex(`INSERT INTO fighters
		(id, name, division, phase, retired, fighter_json)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	insert := func(list []*fighter.Fighter, retiredFlag int) error {
		for _, f := range list {
			blob, err := json.Marshal(f)
			if err != nil {
				return fmt.Errorf("marshal fighter %s: %w", f.ID, err)
			}
			if _, err := stmt.Exec(f.ID.String(), f.Name, f.Division, int(f.Phase), retiredFlag, string(blob)); err != nil {
				return fmt.Errorf("insert fighter %s: %w", f.ID, err)
			}
		}
		return nil
	}
	if err := insert(active, 0); err != nil {
		return err
	}
	if err := insert(retired, 1); err != nil {
		return err
	}

	return tx.Commit()
}

// SaveDivisions writes the division tables (full replace).
func (db *DB) SaveDivisions(divisions map[string]*universe.Division) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM divisions"); err != nil {
		return err
	}

	for _, d := range divisions {
		champ, mandatory := "", ""
		if d.ChampionID != nil {
			champ = d.ChampionID.String()
		}
		if d.MandatoryID != nil {
			mandatory = d.MandatoryID.String()
		}
		contenders, _ := json.Marshal(d.Contenders)
		_, err := tx.Exec(
			"INSERT INTO divisions (name, champion_id, mandatory_id, contenders_json) VALUES (?, ?, ?, ?)",
			d.Name, champ, mandatory, string(contenders),
		)
		if err != nil {
			return fmt.Errorf("insert division %s: %w", d.Name, err)
		}
	}

	return tx.Commit()
}

// SaveBodies writes each sanctioning body's live state keyed by its code.
func (db *DB) SaveBodies(bodies []*universe.SanctioningBody) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM bodies"); err != nil {
		return err
	}

	for _, b := range bodies {
		blob, err := json.Marshal(b)
		if err != nil {
			return fmt.Errorf("marshal body %s: %w", b.Profile.Code, err)
		}
		if _, err := tx.Exec("INSERT INTO bodies (code, state_json) VALUES (?, ?)", b.Profile.Code, string(blob)); err != nil {
			return fmt.Errorf("insert body %s: %w", b.Profile.Code, err)
		}
	}

	return tx.Commit()
}

// SaveHall writes the Hall-of-Fame inductions (full replace).
func (db *DB) SaveHall(hall *universe.HallOfFame) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM hall"); err != nil {
		return err
	}

	for _, ind := range hall.Inductees {
		blob, _ := json.Marshal(ind)
		if _, err := tx.Exec("INSERT INTO hall (fighter_id, induction_json) VALUES (?, ?)", ind.FighterID.String(), string(blob)); err != nil {
			return fmt.Errorf("insert induction %s: %w", ind.FighterID, err)
		}
	}

	return tx.Commit()
}

// SaveHistory writes the retirement records (full replace).
func (db *DB) SaveHistory(history []universe.RetirementRecord) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM history"); err != nil {
		return err
	}

	for _, rec := range history {
		blob, _ := json.Marshal(rec)
		if _, err := tx.Exec("INSERT INTO history (fighter_id, record_json) VALUES (?, ?)", rec.FighterID.String(), string(blob)); err != nil {
			return fmt.Errorf("insert history %s: %w", rec.FighterID, err)
		}
	}

	return tx.Commit()
}

// SaveEvents appends one week's events to the log.
func (db *DB) SaveEvents(date fighter.Date, events []universe.Event) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, e := range events {
		_, err := tx.Exec(
			"INSERT INTO events (week, year, kind, message) VALUES (?, ?, ?, ?)",
			date.Week, date.Year, string(e.Kind()), e.Message(),
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// SaveMeta stores a key-value pair in simulation metadata.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO sim_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM sim_meta WHERE key = ?", key)
	return value, err
}

// SaveUniverse performs a full save of universe state. The universe read
// lock is held for the duration so a concurrent tick cannot tear the
// snapshot.
func (db *DB) SaveUniverse(u *universe.Universe) error {
	u.RLock()
	defer u.RUnlock()

	slog.Info("saving universe", "active", len(u.Active), "retired", len(u.Retired), "week", u.Date.Week, "year", u.Date.Year)

	active := make([]*fighter.Fighter, 0, len(u.Active))
	for _, f := range u.Active {
		active = append(active, f)
	}
	retired := make([]*fighter.Fighter, 0, len(u.Retired))
	for _, f := range u.Retired {
		retired = append(retired, f)
	}

	if err := db.SaveFighters(active, retired); err != nil {
		return fmt.Errorf("save fighters: %w", err)
	}
	if err := db.SaveDivisions(u.Divisions); err != nil {
		return fmt.Errorf("save divisions: %w", err)
	}
	if err := db.SaveBodies(u.Bodies); err != nil {
		return fmt.Errorf("save bodies: %w", err)
	}
	if err := db.SaveHall(u.Hall); err != nil {
		return fmt.Errorf("save hall: %w", err)
	}
	if err := db.SaveHistory(u.History); err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	if err := db.SaveMeta("week", strconv.Itoa(u.Date.Week)); err != nil {
		return fmt.Errorf("save meta: %w", err)
	}
	if err := db.SaveMeta("year", strconv.Itoa(u.Date.Year)); err != nil {
		return fmt.Errorf("save meta: %w", err)
	}
	if err := db.SaveMeta("abs_week", strconv.Itoa(u.AbsWeek)); err != nil {
		return fmt.Errorf("save meta: %w", err)
	}

	slog.Info("universe saved")
	return nil
}

// HasUniverse reports whether a saved universe exists in this database.
func (db *DB) HasUniverse() bool {
	_, err := db.GetMeta("abs_week")
	return err == nil
}

// LoadUniverse overlays saved state onto a freshly constructed universe.
// The universe must already carry its tuning and sanctioning body profiles;
// only the mutable state comes from the database.
func (db *DB) LoadUniverse(u *universe.Universe) error {
	type fighterRow struct {
		Retired     int    `db:"retired"`
		FighterJSON string `db:"fighter_json"`
	}
	var rows []fighterRow
	if err := db.conn.Select(&rows, "SELECT retired, fighter_json FROM fighters"); err != nil {
		return fmt.Errorf("load fighters: %w", err)
	}
	for _, row := range rows {
		var f fighter.Fighter
		if err := json.Unmarshal([]byte(row.FighterJSON), &f); err != nil {
			return fmt.Errorf("unmarshal fighter: %w", err)
		}
		if row.Retired == 1 {
			u.Retired[f.ID] = &f
		} else {
			u.Active[f.ID] = &f
		}
	}

	type divisionRow struct {
		Name           string `db:"name"`
		ChampionID     string `db:"champion_id"`
		MandatoryID    string `db:"mandatory_id"`
		ContendersJSON string `db:"contenders_json"`
	}
	var divRows []divisionRow
	if err := db.conn.Select(&divRows, "SELECT name, champion_id, mandatory_id, contenders_json FROM divisions"); err != nil {
		return fmt.Errorf("load divisions: %w", err)
	}
	for _, row := range divRows {
		d, ok := u.Divisions[row.Name]
		if !ok {
			continue
		}
		if id, err := fighter.ParseID(row.ChampionID); err == nil {
			d.ChampionID = &id
		}
		if id, err := fighter.ParseID(row.MandatoryID); err == nil {
			d.MandatoryID = &id
		}
		if err := json.Unmarshal([]byte(row.ContendersJSON), &d.Contenders); err != nil {
			return fmt.Errorf("unmarshal contenders %s: %w", row.Name, err)
		}
	}

	type bodyRow struct {
		Code      string `db:"code"`
		StateJSON string `db:"state_json"`
	}
	var bodyRows []bodyRow
	if err := db.conn.Select(&bodyRows, "SELECT code, state_json FROM bodies"); err != nil {
		return fmt.Errorf("load bodies: %w", err)
	}
	for _, row := range bodyRows {
		for _, b := range u.Bodies {
			if b.Profile.Code != row.Code {
				continue
			}
			if err := json.Unmarshal([]byte(row.StateJSON), b); err != nil {
				return fmt.Errorf("unmarshal body %s: %w", row.Code, err)
			}
		}
	}

	var hallBlobs []string
	if err := db.conn.Select(&hallBlobs, "SELECT induction_json FROM hall"); err != nil {
		return fmt.Errorf("load hall: %w", err)
	}
	for _, blob := range hallBlobs {
		var ind universe.Induction
		if err := json.Unmarshal([]byte(blob), &ind); err != nil {
			return fmt.Errorf("unmarshal induction: %w", err)
		}
		u.Hall.Inductees = append(u.Hall.Inductees, ind)
	}

	var historyBlobs []string
	if err := db.conn.Select(&historyBlobs, "SELECT record_json FROM history"); err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	for _, blob := range historyBlobs {
		var rec universe.RetirementRecord
		if err := json.Unmarshal([]byte(blob), &rec); err != nil {
			return fmt.Errorf("unmarshal history record: %w", err)
		}
		u.History = append(u.History, rec)
	}

	week, err := db.metaInt("week")
	if err != nil {
		return err
	}
	year, err := db.metaInt("year")
	if err != nil {
		return err
	}
	absWeek, err := db.metaInt("abs_week")
	if err != nil {
		return err
	}
	u.Date = fighter.Date{Week: week, Year: year}
	u.AbsWeek = absWeek

	slog.Info("universe loaded", "active", len(u.Active), "retired", len(u.Retired), "week", week, "year", year)
	return nil
}

func (db *DB) metaInt(key string) (int, error) {
	raw, err := db.GetMeta(key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("meta %s missing", key)
		}
		return 0, fmt.Errorf("meta %s: %w", key, err)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("meta %s: %w", key, err)
	}
	return v, nil
}

// StoredEvent is one persisted event row.
type StoredEvent struct {
	Week    int    `db:"week" json:"week"`
	Year    int    `db:"year" json:"year"`
	Kind    string `db:"kind" json:"kind"`
	Message string `db:"message" json:"message"`
}

// RecentEvents returns the most recent N events, newest first.
func (db *DB) RecentEvents(limit int) ([]StoredEvent, error) {
	var events []StoredEvent
	err := db.conn.Select(&events,
		"SELECT week, year, kind, message FROM events ORDER BY id DESC LIMIT ?",
		limit,
	)
	return events, err
}
