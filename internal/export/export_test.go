package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sadopc/studyflow/internal/model"
)

func sampleSessions() []model.TimerSession {
	return []model.TimerSession{
		{
			Timestamp:       time.Date(2024, 1, 3, 14, 0, 0, 0, time.Local),
			DurationMinutes: 90,
			Subject:         "s1",
			TaskID:          "t1",
			Completed:       true,
		},
		{
			Timestamp:       time.Date(2024, 1, 3, 16, 0, 0, 0, time.Local),
			DurationMinutes: 25,
			Completed:       true,
		},
	}
}

func sampleSubjects() []model.Subject {
	return []model.Subject{{ID: "s1", Name: "Mathematics", Color: "#6C63FF"}}
}

func TestSessionsToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.csv")
	if err := SessionsToCSV(sampleSessions(), sampleSubjects(), path); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "Timestamp" {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	// Subject id resolved to its display name.
	if rows[1][1] != "Mathematics" {
		t.Fatalf("expected resolved subject name, got %q", rows[1][1])
	}
	if rows[1][3] != "90" || rows[1][4] != "01:30" {
		t.Fatalf("unexpected duration columns: %v", rows[1])
	}
	// Unknown subject passes through as-is (empty here).
	if rows[2][1] != "" {
		t.Fatalf("expected empty subject, got %q", rows[2][1])
	}
}

func TestSessionsToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.json")
	if err := SessionsToJSON(sampleSessions(), sampleSubjects(), path); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var report jsonExport
	if err := json.Unmarshal(data, &report); err != nil {
		t.Fatal(err)
	}
	if report.Count != 2 || len(report.Sessions) != 2 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if report.Sessions[0].Subject != "Mathematics" || report.Sessions[0].Minutes != 90 {
		t.Fatalf("unexpected first session: %+v", report.Sessions[0])
	}
	if report.ExportedAt == "" {
		t.Fatal("exported_at missing")
	}
}

func TestSessionsToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := SessionsToCSV(nil, nil, path); err != nil {
		t.Fatal(err)
	}
	f, _ := os.Open(path)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected header only, got %d rows", len(rows))
	}
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "00:00"},
		{25, "00:25"},
		{60, "01:00"},
		{135, "02:15"},
	}
	for _, tt := range tests {
		if got := formatMinutes(tt.minutes); got != tt.want {
			t.Fatalf("formatMinutes(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}
