package adguard

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/mark-gargan/adguard-rewrite-sync/internal/domain"
)

// FileShim is a testing implementation that keeps rewrite rules in a local
// JSON file instead of a live appliance.
type FileShim struct {
	filePath string
	mu       sync.Mutex
}

// Ensure FileShim implements RewriteStore.
var _ RewriteStore = (*FileShim)(nil)

// NewFileShim creates a new file-based shim for testing.
func NewFileShim(filePath string) *FileShim {
	return &FileShim{filePath: filePath}
}

// List reads the current rules from the file.
func (f *FileShim) List(ctx context.Context) ([]domain.RewriteRule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.load()
}

// Add appends a rule to the file.
func (f *FileShim) Add(ctx context.Context, rule domain.RewriteRule) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	rules, err := f.load()
	if err != nil {
		return err
	}
	rules = append(rules, rule)
	if err := f.save(rules); err != nil {
		return err
	}

	log.WithField("path", f.filePath).Debugf("[FileShim] added %s -> %s", rule.Domain, rule.Answer)
	return nil
}

// Delete removes rules matching both domain and answer, mirroring the
// appliance's matching behavior.
func (f *FileShim) Delete(ctx context.Context, rule domain.RewriteRule) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	rules, err := f.load()
	if err != nil {
		return err
	}
	kept := rules[:0]
	for _, r := range rules {
		if r.Domain == rule.Domain && r.Answer == rule.Answer {
			continue
		}
		kept = append(kept, r)
	}
	if err := f.save(kept); err != nil {
		return err
	}

	log.WithField("path", f.filePath).Debugf("[FileShim] deleted %s -> %s", rule.Domain, rule.Answer)
	return nil
}

// load reads the rule list, treating a missing file as empty.
func (f *FileShim) load() ([]domain.RewriteRule, error) {
	data, err := os.ReadFile(f.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading rewrite file: %w", err)
	}

	var rules []domain.RewriteRule
	if err := json.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("parsing rewrite file: %w", err)
	}
	return rules, nil
}

func (f *FileShim) save(rules []domain.RewriteRule) error {
	// Marshal with indentation for readability
	data, err := json.MarshalIndent(rules, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling rewrite rules: %w", err)
	}
	if err := os.WriteFile(f.filePath, data, 0644); err != nil {
		return fmt.Errorf("writing rewrite file: %w", err)
	}
	return nil
}
