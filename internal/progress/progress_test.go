package progress

import (
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/tiletwist/internal/config"
	"github.com/vovakirdan/tiletwist/internal/stages"
)

func testStage(id string, mode config.Mode) stages.Stage {
	return stages.New(id, "Test "+id, mode, "pattern:rings", config.Default())
}

func TestRecordSolveKeepsLowest(t *testing.T) {
	tr := NewTracker(NewMemoryKV())
	s := testStage("e01", config.ModeEasy)

	steps := []struct {
		elapsed  time.Duration
		wantBest bool
		wantPrev time.Duration
	}{
		{12 * time.Second, true, 0},
		{15 * time.Second, false, 12 * time.Second},
		{9500 * time.Millisecond, true, 12 * time.Second},
		{9500 * time.Millisecond, false, 9500 * time.Millisecond},
	}
	for i, st := range steps {
		res, err := tr.RecordSolve(s, st.elapsed)
		if err != nil {
			t.Fatalf("step %d: RecordSolve() failed: %v", i, err)
		}
		if res.NewBest != st.wantBest || res.Previous != st.wantPrev {
			t.Errorf("step %d: got %+v", i, res)
		}
	}

	best, ok, err := tr.BestTime(s)
	if err != nil || !ok || best != 9500*time.Millisecond {
		t.Errorf("BestTime() = %v, %v, %v", best, ok, err)
	}
}

func TestKeysFollowStageIdentity(t *testing.T) {
	kv := NewMemoryKV()
	tr := NewTracker(kv)
	s := testStage("h02", config.ModeHard)

	if _, err := tr.RecordSolve(s, 3*time.Second); err != nil {
		t.Fatal(err)
	}
	if v, ok, _ := kv.Get("pb-hard-h02"); !ok || v != "3000" {
		t.Errorf("pb-hard-h02 = %q, %v", v, ok)
	}
	if v, ok, _ := kv.Get("completed-h02"); !ok || v != "true" {
		t.Errorf("completed-h02 = %q, %v", v, ok)
	}
}

func TestModeProgress(t *testing.T) {
	tr := NewTracker(NewMemoryKV())
	list := []stages.Stage{
		testStage("a", config.ModeEasy),
		testStage("b", config.ModeEasy),
		testStage("c", config.ModeEasy),
	}
	if _, err := tr.RecordSolve(list[1], time.Second); err != nil {
		t.Fatal(err)
	}

	sum, err := tr.ModeProgress(list)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Completed != 1 || sum.Total != 3 || sum.Percent() != 33 {
		t.Errorf("ModeProgress() = %+v (%d%%)", sum, sum.Percent())
	}
	if (ModeSummary{}).Percent() != 0 {
		t.Error("empty summary should be 0%")
	}
}

func TestTutorialFlag(t *testing.T) {
	tr := NewTracker(NewMemoryKV())
	if tr.TutorialSeen() {
		t.Fatal("fresh store should not have seen the tutorial")
	}
	if err := tr.MarkTutorialSeen(); err != nil {
		t.Fatal(err)
	}
	if !tr.TutorialSeen() {
		t.Error("TutorialSeen() = false after marking")
	}
}

func TestMalformedBestTimeIgnored(t *testing.T) {
	kv := NewMemoryKV()
	s := testStage("e03", config.ModeEasy)
	kv.Set(BestTimeKey(s), "soon")

	if _, ok, err := NewTracker(kv).BestTime(s); ok || err != nil {
		t.Errorf("BestTime() with junk = %v, %v", ok, err)
	}
}

type failingKV struct{}

var errDisk = errors.New("disk on fire")

func (failingKV) Get(string) (string, bool, error) { return "", false, errDisk }
func (failingKV) Set(string, string) error         { return errDisk }

func TestErrorsPropagate(t *testing.T) {
	tr := NewTracker(failingKV{})
	s := testStage("e01", config.ModeEasy)

	if _, err := tr.RecordSolve(s, time.Second); !errors.Is(err, errDisk) {
		t.Errorf("RecordSolve() error = %v", err)
	}
	if _, err := tr.Completed(s); !errors.Is(err, errDisk) {
		t.Errorf("Completed() error = %v", err)
	}
	if tr.TutorialSeen() {
		t.Error("TutorialSeen() should be false when the store fails")
	}
}

func TestWithPrefixIsolatesUsers(t *testing.T) {
	kv := NewMemoryKV()
	alice := NewTracker(WithPrefix(kv, "alice"))
	bob := NewTracker(WithPrefix(kv, "bob"))
	s := testStage("e01", config.ModeEasy)

	if _, err := alice.RecordSolve(s, 5*time.Second); err != nil {
		t.Fatal(err)
	}
	if done, _ := bob.Completed(s); done {
		t.Error("bob sees alice's completion")
	}
	if v, ok, _ := kv.Get("alice/completed-e01"); !ok || v != "true" {
		t.Errorf("alice/completed-e01 = %q, %v", v, ok)
	}
	if WithPrefix(kv, "") != KV(kv) {
		t.Error("empty prefix should return the store itself")
	}
}
