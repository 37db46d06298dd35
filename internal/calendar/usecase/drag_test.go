package usecase

import (
	"errors"
	"testing"

	"studioflow-backend/internal/calendar/domain"
)

func multiDayEvent() domain.Occurrence {
	occ := eventOcc("e1", "Shoot week", "2024-06-10T09:00:00")
	occ.EndDate = "2024-06-12T17:00:00"
	return occ
}

func TestDragLifecycle(t *testing.T) {
	d := NewDragSession()
	if d.State != DragIdle {
		t.Fatalf("new session state = %s, want idle", d.State)
	}

	if err := d.Start(multiDayEvent()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if d.State != DragDragging {
		t.Fatalf("state after Start = %s, want dragging", d.State)
	}

	if err := d.Over("2024-06-15"); err != nil {
		t.Fatalf("Over: %v", err)
	}

	preview, err := d.Drop()
	if err != nil {
		t.Fatalf("Drop: %v", err)
	}
	if preview == nil {
		t.Fatal("Drop with a different hover day should produce a preview")
	}
	if d.State != DragPending {
		t.Fatalf("state after Drop = %s, want pending_confirmation", d.State)
	}

	committed, err := d.BeginCommit()
	if err != nil {
		t.Fatalf("BeginCommit: %v", err)
	}
	if d.State != DragCommit {
		t.Fatalf("state after BeginCommit = %s, want committing", d.State)
	}
	if committed != preview {
		t.Error("BeginCommit should hand back the pending preview")
	}

	d.Reset()
	if d.State != DragIdle || d.Origin != nil || d.Preview != nil {
		t.Errorf("Reset left residue: %+v", d)
	}
}

func TestDragPreviewPreservesDuration(t *testing.T) {
	d := NewDragSession()
	if err := d.Start(multiDayEvent()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := d.Over("2024-06-15"); err != nil {
		t.Fatalf("Over: %v", err)
	}

	preview, err := d.Drop()
	if err != nil {
		t.Fatalf("Drop: %v", err)
	}

	if got := preview.NewStart.Format("2006-01-02 15:04"); got != "2024-06-15 09:00" {
		t.Errorf("NewStart = %s, want 2024-06-15 09:00", got)
	}
	if preview.NewEnd == nil {
		t.Fatal("multi-day event preview should carry a new end")
	}
	if got := preview.NewEnd.Format("2006-01-02 15:04"); got != "2024-06-17 17:00" {
		t.Errorf("NewEnd = %s, want 2024-06-17 17:00 (same 2-day span)", got)
	}
}

func TestDragPreviewShiftsBackward(t *testing.T) {
	d := NewDragSession()
	if err := d.Start(multiDayEvent()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := d.Over("2024-06-03"); err != nil {
		t.Fatalf("Over: %v", err)
	}

	preview, err := d.Drop()
	if err != nil {
		t.Fatalf("Drop: %v", err)
	}
	if got := preview.NewStart.Format("2006-01-02 15:04"); got != "2024-06-03 09:00" {
		t.Errorf("NewStart = %s, want 2024-06-03 09:00", got)
	}
	if got := preview.NewEnd.Format("2006-01-02 15:04"); got != "2024-06-05 17:00" {
		t.Errorf("NewEnd = %s, want 2024-06-05 17:00", got)
	}
}

func TestDragTaskPreviewReplacesDueDate(t *testing.T) {
	d := NewDragSession()
	if err := d.Start(taskOcc("t1", "Draft brief", "2024-06-11")); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := d.Over("2024-06-20"); err != nil {
		t.Fatalf("Over: %v", err)
	}

	preview, err := d.Drop()
	if err != nil {
		t.Fatalf("Drop: %v", err)
	}
	if preview.Source != domain.SourceTasks {
		t.Errorf("Source = %s, want tasks", preview.Source)
	}
	if got := preview.NewStart.Format("2006-01-02 15:04"); got != "2024-06-20 00:00" {
		t.Errorf("NewStart = %s, want midnight of the target day", got)
	}
	if preview.NewEnd != nil {
		t.Error("task preview should not carry an end date")
	}
}

func TestDropWithoutHoverIsNoOp(t *testing.T) {
	d := NewDragSession()
	if err := d.Start(multiDayEvent()); err != nil {
		t.Fatalf("Start: %v", err)
	}

	preview, err := d.Drop()
	if err != nil {
		t.Fatalf("Drop: %v", err)
	}
	if preview != nil {
		t.Errorf("drop without hover should produce no preview, got %+v", preview)
	}
	if d.State != DragIdle {
		t.Errorf("state = %s, want idle", d.State)
	}
}

func TestDropOnOriginDayIsNoOp(t *testing.T) {
	d := NewDragSession()
	if err := d.Start(multiDayEvent()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := d.Over("2024-06-10"); err != nil {
		t.Fatalf("Over: %v", err)
	}

	preview, err := d.Drop()
	if err != nil {
		t.Fatalf("Drop: %v", err)
	}
	if preview != nil {
		t.Errorf("drop on origin day should produce no preview, got %+v", preview)
	}
	if d.State != DragIdle {
		t.Errorf("state = %s, want idle", d.State)
	}
}

func TestOverRejectsInvalidDay(t *testing.T) {
	d := NewDragSession()
	if err := d.Start(multiDayEvent()); err != nil {
		t.Fatalf("Start: %v", err)
	}

	if err := d.Over("garbage"); !errors.Is(err, ErrInvalidTargetDay) {
		t.Errorf("Over(garbage) = %v, want ErrInvalidTargetDay", err)
	}
	if d.HoverDay != "" {
		t.Errorf("invalid hover must not stick, got %q", d.HoverDay)
	}
}

func TestOverWithoutDragErrors(t *testing.T) {
	d := NewDragSession()
	if err := d.Over("2024-06-15"); !errors.Is(err, ErrNoActiveDrag) {
		t.Errorf("Over without drag = %v, want ErrNoActiveDrag", err)
	}
	if _, err := d.Drop(); !errors.Is(err, ErrNoActiveDrag) {
		t.Errorf("Drop without drag = %v, want ErrNoActiveDrag", err)
	}
}

func TestCancelDiscardsSession(t *testing.T) {
	d := NewDragSession()
	if err := d.Start(multiDayEvent()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := d.Over("2024-06-15"); err != nil {
		t.Fatalf("Over: %v", err)
	}
	if _, err := d.Drop(); err != nil {
		t.Fatalf("Drop: %v", err)
	}

	d.Cancel()
	if d.State != DragIdle || d.Preview != nil {
		t.Errorf("Cancel left residue: %+v", d)
	}
	if _, err := d.BeginCommit(); !errors.Is(err, ErrDragNotPending) {
		t.Errorf("BeginCommit after cancel = %v, want ErrDragNotPending", err)
	}
}

func TestStartReplacesUnconfirmedDrag(t *testing.T) {
	d := NewDragSession()
	if err := d.Start(multiDayEvent()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := d.Over("2024-06-15"); err != nil {
		t.Fatalf("Over: %v", err)
	}
	if _, err := d.Drop(); err != nil {
		t.Fatalf("Drop: %v", err)
	}

	other := taskOcc("t1", "Draft brief", "2024-06-11")
	if err := d.Start(other); err != nil {
		t.Fatalf("Start over pending drag: %v", err)
	}
	if d.State != DragDragging || d.Origin.ID != "t1" || d.Preview != nil {
		t.Errorf("restart left residue: %+v", d)
	}
}

func TestDropUnparseableOriginResets(t *testing.T) {
	d := NewDragSession()
	if err := d.Start(eventOcc("e1", "Broken", "garbage")); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := d.Over("2024-06-15"); err != nil {
		t.Fatalf("Over: %v", err)
	}

	if _, err := d.Drop(); !errors.Is(err, ErrUnparseableDates) {
		t.Errorf("Drop = %v, want ErrUnparseableDates", err)
	}
	if d.State != DragIdle {
		t.Errorf("state = %s, want idle after failed drop", d.State)
	}
}
