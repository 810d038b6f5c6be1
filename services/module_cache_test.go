package services

import (
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	"iris-api/config"
)

func moduleRow(id int64, name, code string, months int64) []driver.Value {
	now := time.Now()
	return []driver.Value{id, name, code, true, months, id, now, now, nil}
}

var moduleColumns = []string{
	"module_id", "module_name", "code", "is_core",
	"expiration_months", "module_order", "create_at", "update_at", "delete_at",
}

func TestGetModuleByCodeUsesCache(t *testing.T) {
	modulePattern := regexp.MustCompile(`SELECT .* FROM .certification_modules.`)

	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: modulePattern,
			columns: moduleColumns,
			rows:    [][]driver.Value{moduleRow(1, "Biosafety", "BIOSAFETY", 12)},
		},
	}

	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	prevDB := config.DB
	config.DB = gormDB
	defer func() { config.DB = prevDB }()
	ClearModuleCache()
	defer ClearModuleCache()

	module, err := GetModuleByCode("biosafety")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if module.ModuleID != 1 || module.ExpirationMonths != 12 {
		t.Fatalf("unexpected module: %+v", module)
	}

	// Second lookup within the TTL must be served from the cache: the
	// script has no further steps, so a query would fail the test.
	if _, err := GetModuleByCode("BIOSAFETY"); err != nil {
		t.Fatalf("cached lookup failed: %v", err)
	}
	if _, err := GetModules(); err != nil {
		t.Fatalf("cached list failed: %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestGetModuleByCodeForcesOneRefreshForUnknownCode(t *testing.T) {
	modulePattern := regexp.MustCompile(`SELECT .* FROM .certification_modules.`)
	rows := [][]driver.Value{moduleRow(1, "Biosafety", "BIOSAFETY", 12)}

	steps := []*queryStep{
		{kind: kindQuery, pattern: modulePattern, columns: moduleColumns, rows: rows},
		{kind: kindQuery, pattern: modulePattern, columns: moduleColumns, rows: rows},
	}

	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	prevDB := config.DB
	config.DB = gormDB
	defer func() { config.DB = prevDB }()
	ClearModuleCache()
	defer ClearModuleCache()

	if _, err := GetModuleByCode("NOPE"); err == nil {
		t.Fatal("expected error for unknown module code")
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestClearModuleCacheForcesReload(t *testing.T) {
	modulePattern := regexp.MustCompile(`SELECT .* FROM .certification_modules.`)
	rows := [][]driver.Value{moduleRow(1, "Biosafety", "BIOSAFETY", 12)}

	steps := []*queryStep{
		{kind: kindQuery, pattern: modulePattern, columns: moduleColumns, rows: rows},
		{kind: kindQuery, pattern: modulePattern, columns: moduleColumns, rows: rows},
	}

	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	prevDB := config.DB
	config.DB = gormDB
	defer func() { config.DB = prevDB }()
	ClearModuleCache()
	defer ClearModuleCache()

	if _, err := GetModules(); err != nil {
		t.Fatalf("first load failed: %v", err)
	}

	ClearModuleCache()

	if _, err := GetModules(); err != nil {
		t.Fatalf("reload failed: %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}
