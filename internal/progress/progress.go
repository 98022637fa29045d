// Package progress records best times, completion flags and the tutorial
// flag on top of a small key/value capability.
package progress

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/vovakirdan/tiletwist/internal/stages"
)

// KV is the persistence capability the tracker needs.
// Get reports ok=false for absent keys.
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

const tutorialKey = "hasSeenTutorial"

// BestTimeKey is the key holding a stage's best time in milliseconds.
func BestTimeKey(s stages.Stage) string {
	return fmt.Sprintf("pb-%s-%s", s.Mode, s.ID)
}

// CompletedKey is the key holding a stage's completion flag.
func CompletedKey(s stages.Stage) string {
	return "completed-" + s.ID
}

// Tracker reads and writes player progress.
type Tracker struct {
	kv KV
}

// NewTracker wraps a KV store.
func NewTracker(kv KV) *Tracker {
	return &Tracker{kv: kv}
}

// SolveResult describes a recorded solve.
type SolveResult struct {
	Elapsed  time.Duration
	Previous time.Duration // 0 when there was no earlier best
	NewBest  bool
}

// RecordSolve marks the stage completed and keeps the lower of the stored
// best time and elapsed.
func (t *Tracker) RecordSolve(s stages.Stage, elapsed time.Duration) (SolveResult, error) {
	res := SolveResult{Elapsed: elapsed}

	prev, ok, err := t.BestTime(s)
	if err != nil {
		return res, err
	}
	if ok {
		res.Previous = prev
	}
	if !ok || elapsed < prev {
		res.NewBest = true
		if err := t.kv.Set(BestTimeKey(s), strconv.FormatInt(elapsed.Milliseconds(), 10)); err != nil {
			return res, fmt.Errorf("progress: cannot save best time: %w", err)
		}
	}

	if err := t.kv.Set(CompletedKey(s), "true"); err != nil {
		return res, fmt.Errorf("progress: cannot mark completed: %w", err)
	}
	return res, nil
}

// BestTime returns the stored best time for the stage.
func (t *Tracker) BestTime(s stages.Stage) (time.Duration, bool, error) {
	v, ok, err := t.kv.Get(BestTimeKey(s))
	if err != nil {
		return 0, false, fmt.Errorf("progress: cannot read best time: %w", err)
	}
	if !ok {
		return 0, false, nil
	}
	ms, err := strconv.ParseInt(v, 10, 64)
	if err != nil || ms < 0 {
		// A malformed record counts as no record.
		return 0, false, nil
	}
	return time.Duration(ms) * time.Millisecond, true, nil
}

// Completed reports whether the stage has ever been solved.
func (t *Tracker) Completed(s stages.Stage) (bool, error) {
	v, ok, err := t.kv.Get(CompletedKey(s))
	if err != nil {
		return false, fmt.Errorf("progress: cannot read completion: %w", err)
	}
	return ok && v == "true", nil
}

// ModeSummary is the completion progress across a set of stages.
type ModeSummary struct {
	Completed int
	Total     int
}

// Percent returns completion as 0..100.
func (m ModeSummary) Percent() int {
	if m.Total == 0 {
		return 0
	}
	return m.Completed * 100 / m.Total
}

// ModeProgress counts completed stages.
func (t *Tracker) ModeProgress(list []stages.Stage) (ModeSummary, error) {
	sum := ModeSummary{Total: len(list)}
	for _, s := range list {
		done, err := t.Completed(s)
		if err != nil {
			return sum, err
		}
		if done {
			sum.Completed++
		}
	}
	return sum, nil
}

// TutorialSeen reports whether the how-to-play overlay was dismissed before.
func (t *Tracker) TutorialSeen() bool {
	v, ok, err := t.kv.Get(tutorialKey)
	return err == nil && ok && v == "true"
}

// MarkTutorialSeen persists the dismissal.
func (t *Tracker) MarkTutorialSeen() error {
	if err := t.kv.Set(tutorialKey, "true"); err != nil {
		return fmt.Errorf("progress: cannot save tutorial flag: %w", err)
	}
	return nil
}

// MemoryKV is an in-process KV for tests and database-less play.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryKV creates an empty store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]string)}
}

// Get implements KV.
func (m *MemoryKV) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

// Set implements KV.
func (m *MemoryKV) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

// prefixKV namespaces every key, e.g. per SSH user.
type prefixKV struct {
	kv     KV
	prefix string
}

// WithPrefix returns a view of kv in which every key starts with prefix+"/".
func WithPrefix(kv KV, prefix string) KV {
	if prefix == "" {
		return kv
	}
	return prefixKV{kv: kv, prefix: prefix + "/"}
}

func (p prefixKV) Get(key string) (string, bool, error) {
	return p.kv.Get(p.prefix + key)
}

func (p prefixKV) Set(key, value string) error {
	return p.kv.Set(p.prefix+key, value)
}
