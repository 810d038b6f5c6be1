package services

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"iris-api/config"
	"iris-api/models"
)

var (
	moduleCacheMu sync.RWMutex
	moduleCache   *moduleCacheEntry
	moduleTTL     = 5 * time.Minute
)

type moduleCacheEntry struct {
	modules   []models.CertificationModule
	byCode    map[string]models.CertificationModule
	fetchedAt time.Time
}

func loadModules(force bool) (*moduleCacheEntry, error) {
	moduleCacheMu.RLock()
	cached := moduleCache
	moduleCacheMu.RUnlock()

	if cached != nil && !force && time.Since(cached.fetchedAt) < moduleTTL {
		return cached, nil
	}

	moduleCacheMu.Lock()
	defer moduleCacheMu.Unlock()

	if moduleCache != nil && !force && time.Since(moduleCache.fetchedAt) < moduleTTL {
		return moduleCache, nil
	}

	var rows []models.CertificationModule
	if err := config.DB.Where("delete_at IS NULL").Order("module_order").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load certification modules: %w", err)
	}

	byCode := make(map[string]models.CertificationModule, len(rows))
	for _, module := range rows {
		if module.Code == "" {
			continue
		}
		byCode[strings.ToUpper(strings.TrimSpace(module.Code))] = module
	}

	entry := &moduleCacheEntry{
		modules:   rows,
		byCode:    byCode,
		fetchedAt: time.Now(),
	}
	moduleCache = entry
	return entry, nil
}

// ClearModuleCache invalidates the in-memory module cache. Call after any
// admin write to certification modules.
func ClearModuleCache() {
	moduleCacheMu.Lock()
	defer moduleCacheMu.Unlock()
	moduleCache = nil
}

// GetModules returns all certification modules with caching support.
func GetModules() ([]models.CertificationModule, error) {
	entry, err := loadModules(false)
	if err != nil {
		return nil, err
	}
	return entry.modules, nil
}

// GetModuleByCode returns the certification module matching the given code.
func GetModuleByCode(code string) (*models.CertificationModule, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(code))
	if trimmed == "" {
		return nil, errors.New("module code is required")
	}

	entry, err := loadModules(false)
	if err != nil {
		return nil, err
	}

	if module, ok := entry.byCode[trimmed]; ok {
		return &module, nil
	}

	// Force refresh cache once before giving up
	entry, err = loadModules(true)
	if err != nil {
		return nil, err
	}

	if module, ok := entry.byCode[trimmed]; ok {
		return &module, nil
	}

	return nil, fmt.Errorf("certification module '%s' not found", trimmed)
}

// GetModuleIDByCode resolves the module_id for the given module code.
func GetModuleIDByCode(code string) (int, error) {
	module, err := GetModuleByCode(code)
	if err != nil {
		return 0, err
	}
	return module.ModuleID, nil
}
