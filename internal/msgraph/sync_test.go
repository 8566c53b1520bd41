package msgraph_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/Tiliavir/trivial-time-tracker/internal/codec"
	"github.com/Tiliavir/trivial-time-tracker/internal/msgraph"
	"github.com/Tiliavir/trivial-time-tracker/internal/storage"
)

func makeEvent(id, subject, start, end string) msgraph.CalendarEvent {
	return msgraph.CalendarEvent{
		ID:          id,
		Subject:     subject,
		Sensitivity: "normal",
		ShowAs:      "busy",
		Start:       msgraph.EventDateTime{DateTime: start, TimeZone: "UTC"},
		End:         msgraph.EventDateTime{DateTime: end, TimeZone: "UTC"},
	}
}

func utcFormat() codec.Format {
	f := codec.NewFormat(codec.Minute)
	f.Location = time.UTC
	return f
}

func TestMapEventToActivity(t *testing.T) {
	event := makeEvent("ext-id-1", "Sprint Planning", "2026-02-27T09:00:00", "2026-02-27T10:30:00")
	a, err := msgraph.MapEventToActivity(event, utcFormat(), "UTC", "Meetings")
	if err != nil {
		t.Fatalf("MapEventToActivity: %v", err)
	}
	if a.Project != "Meetings" {
		t.Errorf("Project = %q, want %q", a.Project, "Meetings")
	}
	if a.Description != "Sprint Planning" {
		t.Errorf("Description = %q, want %q", a.Description, "Sprint Planning")
	}
	if !a.Start.Equal(time.Date(2026, 2, 27, 9, 0, 0, 0, time.UTC)) {
		t.Errorf("Start = %v", a.Start)
	}
	if a.End == nil || a.End.Sub(a.Start) != 90*time.Minute {
		t.Errorf("End = %v, want 90 minutes after start", a.End)
	}
}

func TestMapEventToActivity_WithLocationAndZone(t *testing.T) {
	event := makeEvent("ext-id-2", "Stand\nup", "2026-02-27T10:00:00.0000000", "2026-02-27T10:15:00.0000000")
	event.Location.DisplayName = "Zoom"

	f := utcFormat()
	a, err := msgraph.MapEventToActivity(event, f, "Europe/Berlin", "Meetings")
	if err != nil {
		t.Fatalf("MapEventToActivity: %v", err)
	}
	if a.Description != "Stand up @ Zoom" {
		t.Errorf("Description = %q, want %q", a.Description, "Stand up @ Zoom")
	}
	if got := f.Serialize(a); got != "2026-02-27 09:00 - 2026-02-27 09:15 | Meetings | Stand up @ Zoom\n" {
		t.Errorf("Serialize = %q", got)
	}
}

func TestSyncEvents_Import(t *testing.T) {
	f := utcFormat()
	events := []msgraph.CalendarEvent{
		makeEvent("ext-1", "Architecture Board", "2026-02-27T09:00:00", "2026-02-27T10:30:00"),
	}
	var out bytes.Buffer

	lines, result := msgraph.SyncEvents(nil, events, f, msgraph.SyncOptions{Project: "Meetings", Out: &out})
	if result.Imported != 1 || result.Skipped != 0 {
		t.Errorf("result = %+v, want 1 imported", result)
	}
	if len(lines) != 1 || !lines[0].Changed() {
		t.Fatalf("lines = %d, want 1 changed line", len(lines))
	}
	if !bytes.Contains(out.Bytes(), []byte("Imported: Architecture Board (1h 30m)")) {
		t.Errorf("progress output = %q", out.String())
	}
}

func TestSyncEvents_Idempotent(t *testing.T) {
	f := utcFormat()
	events := []msgraph.CalendarEvent{
		makeEvent("ext-1", "Architecture Board", "2026-02-27T09:00:00", "2026-02-27T10:30:00"),
	}
	opts := msgraph.SyncOptions{Project: "Meetings"}

	lines, r1 := msgraph.SyncEvents(nil, events, f, opts)
	if r1.Imported != 1 {
		t.Errorf("first sync: Imported = %d, want 1", r1.Imported)
	}

	// Reload as if from disk.
	reloaded := []storage.Line{storage.NewLine(f, f.Serialize(lines[0].Activity), 1)}
	lines, r2 := msgraph.SyncEvents(reloaded, events, f, opts)
	if r2.Imported != 0 || r2.Skipped != 1 {
		t.Errorf("second sync: result = %+v, want 1 skipped", r2)
	}
	if len(lines) != 1 || lines[0].Changed() {
		t.Errorf("second sync must leave the line untouched")
	}
}

func TestSyncEvents_Update(t *testing.T) {
	f := utcFormat()
	existing := []storage.Line{
		storage.NewLine(f, "2026-02-27 09:00 - 2026-02-27 10:00 | Meetings | Architecture Board", 1),
	}
	event := makeEvent("ext-1", "Architecture Board (updated)", "2026-02-27T09:00:00", "2026-02-27T10:30:00")

	lines, r := msgraph.SyncEvents(existing, []msgraph.CalendarEvent{event}, f, msgraph.SyncOptions{Project: "Meetings"})
	if r.Updated != 1 {
		t.Errorf("Updated = %d, want 1", r.Updated)
	}
	if len(lines) != 1 {
		t.Fatalf("lines = %d, want 1", len(lines))
	}
	if !lines[0].Changed() || lines[0].Activity.Description != "Architecture Board (updated)" {
		t.Errorf("line = %+v, want updated description", lines[0].Activity)
	}
}

func TestSyncEvents_SkipFiltered(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*msgraph.CalendarEvent)
	}{
		{"cancelled", func(e *msgraph.CalendarEvent) { e.IsCancelled = true }},
		{"all-day", func(e *msgraph.CalendarEvent) { e.IsAllDay = true }},
		{"private", func(e *msgraph.CalendarEvent) { e.Sensitivity = "private" }},
		{"free", func(e *msgraph.CalendarEvent) { e.ShowAs = "free" }},
		{"no end", func(e *msgraph.CalendarEvent) { e.End.DateTime = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := makeEvent("c1", tt.name, "2026-02-27T09:00:00", "2026-02-27T10:00:00")
			tt.modify(&e)
			lines, r := msgraph.SyncEvents(nil, []msgraph.CalendarEvent{e}, utcFormat(), msgraph.SyncOptions{Project: "Meetings"})
			if r.Imported != 0 || len(lines) != 0 {
				t.Errorf("expected nothing imported for %s event, got %+v", tt.name, r)
			}
		})
	}
}

func TestSyncEvents_DryRun(t *testing.T) {
	events := []msgraph.CalendarEvent{
		makeEvent("ext-dry", "Dry Run Event", "2026-02-27T09:00:00", "2026-02-27T10:00:00"),
	}

	lines, result := msgraph.SyncEvents(nil, events, utcFormat(), msgraph.SyncOptions{Project: "Meetings", DryRun: true})
	if result.Imported != 1 {
		t.Errorf("dry-run Imported = %d, want 1", result.Imported)
	}
	if len(lines) != 0 {
		t.Errorf("dry-run added %d lines, want 0", len(lines))
	}
}

func TestSyncEvents_BadTime(t *testing.T) {
	e := makeEvent("bad", "Broken", "yesterday", "2026-02-27T10:00:00")
	_, r := msgraph.SyncEvents(nil, []msgraph.CalendarEvent{e}, utcFormat(), msgraph.SyncOptions{Project: "Meetings"})
	if r.Errors != 1 {
		t.Errorf("Errors = %d, want 1", r.Errors)
	}
}

func TestSyncEvents_PreservesManualEntries(t *testing.T) {
	f := utcFormat()
	manual := "2026-02-27 09:00 - 2026-02-27 10:00 |Work|  manual entry"
	existing := []storage.Line{
		storage.NewLine(f, manual, 1),
		storage.NewLine(f, "# not an activity", 2),
	}
	events := []msgraph.CalendarEvent{
		makeEvent("ext-1", "Meeting", "2026-02-27T11:00:00", "2026-02-27T12:00:00"),
	}

	lines, _ := msgraph.SyncEvents(existing, events, f, msgraph.SyncOptions{Project: "Meetings"})
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3 (manual + comment + imported)", len(lines))
	}
	if lines[0].Changed() || lines[0].Raw() != manual {
		t.Errorf("manual entry changed to %q", lines[0].Raw())
	}
	if lines[1].Changed() {
		t.Error("unparsable line must stay unchanged")
	}
}
