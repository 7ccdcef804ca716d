package filestore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Config locates the data directory holding the JSON collections.
type Config struct {
	DataDir string `toml:"data_dir"`
}

// Provider bundles the file-backed stores, mirroring how the rest of the app
// reaches storage through a single handle.
type Provider struct {
	ruleStore    *RuleStoreImpl
	ruleSetStore *RuleSetStoreImpl
	historyStore *HistoryStoreImpl
}

// MustSetup prepares the data directory and returns the provider accessor.
// Each collection lives in its own file and is read-modify-written per
// operation; concurrent writers race last-write-wins.
func MustSetup(cfg Config) func() *Provider {
	if cfg.DataDir == "" {
		cfg.DataDir = "./data"
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		panic(fmt.Errorf("filestore: create data dir: %w", err))
	}

	provider := &Provider{
		ruleStore:    &RuleStoreImpl{file: newJSONFile(filepath.Join(cfg.DataDir, "rules.json"))},
		ruleSetStore: &RuleSetStoreImpl{file: newJSONFile(filepath.Join(cfg.DataDir, "rule_sets.json"))},
		historyStore: &HistoryStoreImpl{file: newJSONFile(filepath.Join(cfg.DataDir, "history.json"))},
	}

	return func() *Provider {
		return provider
	}
}

func (p *Provider) RuleStore() *RuleStoreImpl {
	return p.ruleStore
}

func (p *Provider) RuleSetStore() *RuleSetStoreImpl {
	return p.ruleSetStore
}

func (p *Provider) HistoryStore() *HistoryStoreImpl {
	return p.historyStore
}

// jsonFile serializes access to one JSON collection file within this process.
type jsonFile struct {
	path string
	mu   sync.Mutex
}

func newJSONFile(path string) *jsonFile {
	return &jsonFile{path: path}
}

func loadCollection[T any](f *jsonFile) ([]T, error) {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("filestore: read %s: %w", f.path, err)
	}
	if len(raw) == 0 {
		return nil, nil
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("filestore: decode %s: %w", f.path, err)
	}
	return items, nil
}

func saveCollection[T any](f *jsonFile, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("filestore: encode %s: %w", f.path, err)
	}
	if err := os.WriteFile(f.path, raw, 0o644); err != nil {
		return fmt.Errorf("filestore: write %s: %w", f.path, err)
	}
	return nil
}
