// Package export renders study-session reports for sharing.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/studyflow/internal/model"
)

// SessionsToCSV writes the sessions to a CSV file at path, resolving
// subject ids to display names where possible.
func SessionsToCSV(sessions []model.TimerSession, subjects []model.Subject, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	names := subjectNames(subjects)

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"Timestamp", "Subject", "Task", "Minutes", "Duration"}); err != nil {
		return err
	}

	for _, s := range sessions {
		subject := s.Subject
		if name, ok := names[s.Subject]; ok {
			subject = name
		}
		row := []string{
			s.Timestamp.Local().Format(time.RFC3339),
			subject,
			s.TaskID,
			fmt.Sprintf("%d", s.DurationMinutes),
			formatMinutes(s.DurationMinutes),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func subjectNames(subjects []model.Subject) map[string]string {
	names := make(map[string]string, len(subjects))
	for _, s := range subjects {
		names[s.ID] = s.Name
	}
	return names
}

func formatMinutes(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
