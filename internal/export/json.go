package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/studyflow/internal/model"
)

type jsonExport struct {
	ExportedAt string        `json:"exported_at"`
	Count      int           `json:"count"`
	Sessions   []jsonSession `json:"sessions"`
}

type jsonSession struct {
	Timestamp string `json:"timestamp"`
	Subject   string `json:"subject,omitempty"`
	TaskID    string `json:"task_id,omitempty"`
	Minutes   int    `json:"minutes"`
	Duration  string `json:"duration"`
}

// SessionsToJSON writes the sessions to a JSON report at path.
func SessionsToJSON(sessions []model.TimerSession, subjects []model.Subject, path string) error {
	report := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(sessions),
	}

	names := subjectNames(subjects)
	for _, s := range sessions {
		subject := s.Subject
		if name, ok := names[s.Subject]; ok {
			subject = name
		}
		report.Sessions = append(report.Sessions, jsonSession{
			Timestamp: s.Timestamp.Local().Format(time.RFC3339),
			Subject:   subject,
			TaskID:    s.TaskID,
			Minutes:   s.DurationMinutes,
			Duration:  formatMinutes(s.DurationMinutes),
		})
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
