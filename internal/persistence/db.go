// Package persistence provides SQLite-backed save files: the narrative
// totals, the full decision history, the token ledger, unlocked tags, and
// session counters. The core only dictates what is persisted; this package
// is the mechanism.
package persistence

import (
	"fmt"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/veyrin/outpost/internal/ledger"
	"github.com/veyrin/outpost/internal/narrative"
)

// DB wraps a SQLite connection for save-file storage.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a save file at the given path.
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
	CREATE TABLE IF NOT EXISTS decisions (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		ts INTEGER NOT NULL,
		imperial_points INTEGER NOT NULL,
		insurgent_points INTEGER NOT NULL,
		category TEXT NOT NULL,
		pressure INTEGER NOT NULL,
		context TEXT NOT NULL,
		chain_parent TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS tokens (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		decision_id TEXT NOT NULL,
		day_created INTEGER NOT NULL,
		trigger_day INTEGER NOT NULL,
		scenario_id TEXT NOT NULL,
		loyalty_delta INTEGER NOT NULL,
		suspicion_delta INTEGER NOT NULL,
		family_impact INTEGER NOT NULL,
		note TEXT NOT NULL DEFAULT '',
		triggered INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS story_tags (
		tag TEXT PRIMARY KEY
	);

	CREATE TABLE IF NOT EXISTS session_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_tokens_trigger ON tokens(trigger_day, triggered);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveState writes the narrative state and token ledger (full replace) plus
// the session counters in one transaction.
func (db *DB) SaveState(st *narrative.State, tokens []ledger.Token, day, suspicion int, seed int64, draws uint64) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"decisions", "tokens", "story_tags"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return err
		}
	}

	for _, rec := range st.History {
		_, err := tx.Exec(
			`INSERT INTO decisions (id, ts, imperial_points, insurgent_points, category, pressure, context, chain_parent)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.ID, rec.Timestamp.UnixMilli(), rec.ImperialPoints, rec.InsurgentPoints,
			string(rec.Category), int(rec.Pressure), rec.Context, rec.ChainParent,
		)
		if err != nil {
			return fmt.Errorf("save decision %s: %w", rec.ID, err)
		}
	}

	for _, tok := range tokens {
		_, err := tx.Exec(
			`INSERT INTO tokens (id, decision_id, day_created, trigger_day, scenario_id, loyalty_delta, suspicion_delta, family_impact, note, triggered)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			tok.ID, tok.DecisionID, tok.DayCreated, tok.TriggerDay,
			tok.Payload.ScenarioID, tok.Payload.LoyaltyDelta, tok.Payload.SuspicionDelta,
			boolInt(tok.Payload.FamilyImpact), tok.Payload.Note, boolInt(tok.Triggered),
		)
		if err != nil {
			return fmt.Errorf("save token %s: %w", tok.ID, err)
		}
	}

	for tag := range st.UnlockedTags {
		if _, err := tx.Exec(`INSERT INTO story_tags (tag) VALUES (?)`, tag); err != nil {
			return err
		}
	}

	meta := map[string]string{
		"day":                strconv.Itoa(day),
		"suspicion":          strconv.Itoa(suspicion),
		"seed":               strconv.FormatInt(seed, 10),
		"draws":              strconv.FormatUint(draws, 10),
		"imperial_loyalty":   strconv.Itoa(st.ImperialLoyalty),
		"insurgent_sympathy": strconv.Itoa(st.InsurgentSympathy),
		"branch":             string(st.CurrentBranch),
		"progression":        strconv.Itoa(st.ProgressionLevel),
		"locked_ending":      string(st.LockedEnding),
		"open_chain_id":      st.OpenChainID,
		"open_chain_length":  strconv.Itoa(st.OpenChainLength),
	}
	for k, v := range meta {
		_, err := tx.Exec(
			`INSERT INTO session_meta (key, value) VALUES (?, ?)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
			k, v,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// HasState reports whether the save file holds a session.
func (db *DB) HasState() bool {
	var count int
	if err := db.conn.Get(&count, `SELECT COUNT(*) FROM session_meta`); err != nil {
		return false
	}
	return count > 0
}

// LoadState reconstructs the narrative state and token ledger.
func (db *DB) LoadState() (*narrative.State, []ledger.Token, error) {
	st := narrative.NewState()

	rows, err := db.conn.Queryx(`SELECT id, ts, imperial_points, insurgent_points, category, pressure, context, chain_parent FROM decisions ORDER BY seq`)
	if err != nil {
		return nil, nil, fmt.Errorf("load decisions: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			rec      narrative.DecisionRecord
			ts       int64
			category string
			pressure int
		)
		if err := rows.Scan(&rec.ID, &ts, &rec.ImperialPoints, &rec.InsurgentPoints, &category, &pressure, &rec.Context, &rec.ChainParent); err != nil {
			return nil, nil, err
		}
		rec.Timestamp = time.UnixMilli(ts)
		rec.Category = narrative.Category(category)
		rec.Pressure = narrative.Pressure(pressure)
		st.History = append(st.History, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	var tags []string
	if err := db.conn.Select(&tags, `SELECT tag FROM story_tags`); err != nil {
		return nil, nil, fmt.Errorf("load tags: %w", err)
	}
	for _, t := range tags {
		st.UnlockedTags[t] = true
	}

	tokRows, err := db.conn.Queryx(`SELECT id, decision_id, day_created, trigger_day, scenario_id, loyalty_delta, suspicion_delta, family_impact, note, triggered FROM tokens ORDER BY seq`)
	if err != nil {
		return nil, nil, fmt.Errorf("load tokens: %w", err)
	}
	defer tokRows.Close()
	var tokens []ledger.Token
	for tokRows.Next() {
		var (
			tok             ledger.Token
			family, trigged int
		)
		if err := tokRows.Scan(&tok.ID, &tok.DecisionID, &tok.DayCreated, &tok.TriggerDay,
			&tok.Payload.ScenarioID, &tok.Payload.LoyaltyDelta, &tok.Payload.SuspicionDelta,
			&family, &tok.Payload.Note, &trigged); err != nil {
			return nil, nil, err
		}
		tok.Payload.FamilyImpact = family != 0
		tok.Triggered = trigged != 0
		tokens = append(tokens, tok)
	}
	if err := tokRows.Err(); err != nil {
		return nil, nil, err
	}

	st.ImperialLoyalty = db.metaInt("imperial_loyalty", 0)
	st.InsurgentSympathy = db.metaInt("insurgent_sympathy", 0)
	st.ProgressionLevel = db.metaInt("progression", 0)
	st.OpenChainLength = db.metaInt("open_chain_length", 0)
	if v, err := db.GetMeta("branch"); err == nil && v != "" {
		st.CurrentBranch = narrative.Branch(v)
	}
	if v, err := db.GetMeta("locked_ending"); err == nil {
		st.LockedEnding = narrative.EndingType(v)
	}
	if v, err := db.GetMeta("open_chain_id"); err == nil {
		st.OpenChainID = v
	}

	return st, tokens, nil
}

// GetMeta returns a session metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, `SELECT value FROM session_meta WHERE key = ?`, key)
	return value, err
}

// MetaInt returns an integer metadata value, or the fallback when missing
// or malformed.
func (db *DB) metaInt(key string, fallback int) int {
	v, err := db.GetMeta(key)
	if err != nil {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// Day returns the persisted day counter (1 when absent).
func (db *DB) Day() int { return db.metaInt("day", 1) }

// Suspicion returns the persisted suspicion meter.
func (db *DB) Suspicion() int { return db.metaInt("suspicion", 0) }

// Seed returns the persisted random seed.
func (db *DB) Seed() (int64, error) {
	v, err := db.GetMeta("seed")
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(v, 10, 64)
}

// Draws returns the persisted random stream position.
func (db *DB) Draws() uint64 {
	v, err := db.GetMeta("draws")
	if err != nil {
		return 0
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// Wipe clears all saved state for an explicit new game.
func (db *DB) Wipe() error {
	for _, table := range []string{"decisions", "tokens", "story_tags", "session_meta"} {
		if _, err := db.conn.Exec("DELETE FROM " + table); err != nil {
			return err
		}
	}
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
