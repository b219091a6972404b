package session

import (
	"sync"
	"testing"
	"time"
)

type saveRecorder struct {
	mu    sync.Mutex
	saves []savedTitle
}

type savedTitle struct {
	workspaceID string
	title       string
}

func (r *saveRecorder) save(workspaceID, title string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves = append(r.saves, savedTitle{workspaceID: workspaceID, title: title})
	return nil
}

func (r *saveRecorder) all() []savedTitle {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]savedTitle, len(r.saves))
	copy(out, r.saves)
	return out
}

func TestDebouncer_CoalescesRapidEdits(t *testing.T) {
	t.Parallel()

	rec := &saveRecorder{}
	d := NewTitleDebouncer(50*time.Millisecond, rec.save)

	// Sessiz pencere içinde üç ardışık düzenleme
	d.Edit("w1", "A")
	time.Sleep(10 * time.Millisecond)
	d.Edit("w1", "Ac")
	time.Sleep(10 * time.Millisecond)
	d.Edit("w1", "Acme")

	time.Sleep(150 * time.Millisecond)

	saves := rec.all()
	if len(saves) != 1 {
		t.Fatalf("expected exactly 1 save, got %d: %+v", len(saves), saves)
	}
	if saves[0].title != "Acme" {
		t.Fatalf("expected final title %q, got %q", "Acme", saves[0].title)
	}
}

func TestDebouncer_SeparateWorkspacesIndependent(t *testing.T) {
	t.Parallel()

	rec := &saveRecorder{}
	d := NewTitleDebouncer(30*time.Millisecond, rec.save)

	d.Edit("w1", "one")
	d.Edit("w2", "two")

	time.Sleep(120 * time.Millisecond)

	saves := rec.all()
	if len(saves) != 2 {
		t.Fatalf("expected 2 saves, got %d: %+v", len(saves), saves)
	}

	got := map[string]string{}
	for _, s := range saves {
		got[s.workspaceID] = s.title
	}
	if got["w1"] != "one" || got["w2"] != "two" {
		t.Fatalf("unexpected saves: %+v", got)
	}
}

func TestDebouncer_FlushPersistsImmediately(t *testing.T) {
	t.Parallel()

	rec := &saveRecorder{}
	d := NewTitleDebouncer(time.Hour, rec.save)

	d.Edit("w1", "pending")
	d.Flush("w1")

	saves := rec.all()
	if len(saves) != 1 || saves[0].title != "pending" {
		t.Fatalf("expected a single immediate save, got %+v", saves)
	}

	// Flush sonrasında zamanlayıcı tekrar çalışmamalı
	time.Sleep(50 * time.Millisecond)
	if len(rec.all()) != 1 {
		t.Fatalf("expected no extra saves after flush, got %+v", rec.all())
	}
}

func TestDebouncer_FlushWithoutPendingIsNoop(t *testing.T) {
	t.Parallel()

	rec := &saveRecorder{}
	d := NewTitleDebouncer(time.Hour, rec.save)

	d.Flush("missing")

	if len(rec.all()) != 0 {
		t.Fatalf("expected no saves, got %+v", rec.all())
	}
}

func TestDebouncer_ClosePersistsAllAndRejectsNewEdits(t *testing.T) {
	t.Parallel()

	rec := &saveRecorder{}
	d := NewTitleDebouncer(time.Hour, rec.save)

	d.Edit("w1", "one")
	d.Edit("w2", "two")
	d.Close()

	if len(rec.all()) != 2 {
		t.Fatalf("expected 2 saves on close, got %+v", rec.all())
	}

	d.Edit("w3", "late")
	time.Sleep(20 * time.Millisecond)
	if len(rec.all()) != 2 {
		t.Fatalf("expected edit after close to be rejected, got %+v", rec.all())
	}
}
