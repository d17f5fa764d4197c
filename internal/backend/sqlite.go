package backend

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/slate-lang/slate/internal/store"
	"github.com/slate-lang/slate/internal/translator"
)

// SQLiteBackend persists the flattened store into a sqlite database: one
// row per bound reference, plus the compiled actions and the accumulated
// global constraint. A planner process can consume the file without linking
// against the engine.
type SQLiteBackend struct {
	Path string
}

func (b *SQLiteBackend) Name() string { return "sqlite" }

const schemaDDL = `
CREATE TABLE IF NOT EXISTS store (
	ref   TEXT PRIMARY KEY,
	kind  TEXT NOT NULL,
	value TEXT
);
CREATE TABLE IF NOT EXISTS actions (
	ref       TEXT PRIMARY KEY,
	cost      INTEGER NOT NULL,
	params    TEXT NOT NULL,
	condition TEXT NOT NULL,
	effects   TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS globals (
	id      INTEGER PRIMARY KEY CHECK (id = 1),
	formula TEXT NOT NULL
);
`

func (b *SQLiteBackend) Export(res *translator.Result) error {
	db, err := sql.Open("sqlite", b.Path)
	if err != nil {
		return fmt.Errorf("open %s: %w", b.Path, err)
	}
	defer db.Close()

	if _, err := db.Exec(schemaDDL); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	insValue, err := tx.Prepare(`INSERT OR REPLACE INTO store (ref, kind, value) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer insValue.Close()
	insAction, err := tx.Prepare(`INSERT OR REPLACE INTO actions (ref, cost, params, condition, effects) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer insAction.Close()

	for _, r := range res.Store.Refs() {
		v, _ := res.Store.Find(r)
		if a, ok := v.(*store.Action); ok {
			params, err := json.Marshal(paramRows(a))
			if err != nil {
				return err
			}
			effects, err := json.Marshal(effectRows(a))
			if err != nil {
				return err
			}
			if _, err := insAction.Exec(r.String(), a.Cost, string(params),
				a.Precondition.String(), string(effects)); err != nil {
				return err
			}
		}
		if _, err := insValue.Exec(r.String(), string(v.Kind()), v.Inspect()); err != nil {
			return err
		}
	}

	if res.Global != nil {
		if _, err := tx.Exec(`INSERT OR REPLACE INTO globals (id, formula) VALUES (1, ?)`,
			res.Global.String()); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func paramRows(a *store.Action) []map[string]string {
	out := make([]map[string]string, len(a.Params))
	for i, p := range a.Params {
		out[i] = map[string]string{"name": p.Name, "type": p.Type}
	}
	return out
}

func effectRows(a *store.Action) []map[string]string {
	out := make([]map[string]string, len(a.Effects))
	for i, e := range a.Effects {
		out[i] = map[string]string{"ref": e.Ref.String(), "value": e.Val.Inspect()}
	}
	return out
}
