package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/sadopc/studyflow/internal/app"
	"github.com/sadopc/studyflow/internal/store"
)

func main() {
	dbPath, err := store.DefaultDBPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	s, err := store.New(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening database: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	a := app.New(s, nil, logger)
	defer a.Close()

	a.Load()
	a.Reconcile()

	snap := a.Snapshot()
	gp := snap.Stats.GoalProgress

	fmt.Printf("today       %d/%d min\n", gp.DailyStudyTime, snap.Settings.DailyGoalMinutes)
	fmt.Printf("this week   %d/%d min, %d/%d tasks\n",
		gp.WeeklyStudyTime, snap.Settings.WeeklyGoalMinutes,
		gp.WeeklyTasksCompleted, snap.Settings.WeeklyTaskGoal)
	fmt.Printf("streak      %d day(s), longest %d\n", snap.Streak.Current, snap.Streak.Longest)
	fmt.Printf("sessions    %d total, %d min studied\n", snap.Stats.SessionsCompleted, snap.Stats.TotalStudyTime)
	if n := len(snap.Achievements.Unlocked); n > 0 {
		fmt.Printf("unlocked    %d achievement(s)\n", n)
	}
}
