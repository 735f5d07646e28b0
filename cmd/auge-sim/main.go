package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/caupolican/auge/internal/auge"
)

func main() {
	dbPath := flag.String("db", "", "path to SQLite snapshot (required)")
	atStr := flag.String("at", "", "evaluate state at this time (RFC3339 or YYYY-MM-DD, default: now)")
	muscle := flag.String("muscle", "", "show only this muscle group")
	asJSON := flag.Bool("json", false, "emit JSON instead of a text report")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	if *dbPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: auge-sim -db snapshot.sqlite [-at 2025-06-15] [-muscle chest] [-json]\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	now := time.Now()
	if *atStr != "" {
		var err error
		now, err = time.Parse(time.RFC3339, *atStr)
		if err != nil {
			now, err = time.Parse("2006-01-02", *atStr)
			if err != nil {
				log.Error("invalid -at value", "value", *atStr)
				os.Exit(1)
			}
		}
	}

	snap, err := openSnapshot(*dbPath)
	if err != nil {
		log.Error("failed to open snapshot", "error", err)
		os.Exit(1)
	}
	defer snap.Close()

	in, err := snap.inputs()
	if err != nil {
		log.Error("failed to read snapshot", "error", err)
		os.Exit(1)
	}

	if *muscle != "" {
		group := auge.ResolveMuscleGroup(*muscle)
		if group == auge.GroupUnknown {
			log.Error("unknown muscle group", "muscle", *muscle)
			os.Exit(1)
		}
		state := auge.MuscleBattery(string(group), in, now)
		if *asJSON {
			json.NewEncoder(os.Stdout).Encode(state)
			return
		}
		printMuscle(state)
		return
	}

	global := auge.GlobalBatteries(auge.GlobalInputs{
		History:       in.History,
		ExerciseDB:    in.ExerciseDB,
		SleepLogs:     in.SleepLogs,
		WellbeingLogs: in.WellbeingLogs,
		NutritionLogs: in.NutritionLogs,
		Settings:      in.Settings,
	}, now)
	fatigue := auge.CalculateSystemicFatigue(in.History, in.SleepLogs, in.WellbeingLogs, in.ExerciseDB, in.Settings, now)
	readiness := auge.CalculateDailyReadiness(in.SleepLogs, in.WellbeingLogs, in.Settings, fatigue.Total, now)

	muscles := make([]auge.MuscleBatteryState, 0, len(auge.AllMuscleGroups))
	for _, g := range auge.AllMuscleGroups {
		muscles = append(muscles, auge.MuscleBattery(string(g), in, now))
	}

	if *asJSON {
		json.NewEncoder(os.Stdout).Encode(map[string]any{
			"at":        now.Format(time.RFC3339),
			"global":    global,
			"systemic":  fatigue,
			"readiness": readiness,
			"muscles":   muscles,
		})
		return
	}

	fmt.Printf("AUGE state at %s\n\n", now.Format("2006-01-02 15:04"))
	fmt.Printf("  CNS      %3d%%\n", global.CNS)
	fmt.Printf("  Muscular %3d%%\n", global.Muscular)
	fmt.Printf("  Spinal   %3d%%\n\n", global.Spinal)
	fmt.Printf("  Readiness: %s (x%.2f)\n", readiness.Status, readiness.StressMultiplier)
	fmt.Printf("  %s\n\n", global.Verdict)

	fmt.Println("  Muscle groups:")
	for _, m := range muscles {
		printMuscle(m)
	}

	if len(global.AuditLogs.CNS)+len(global.AuditLogs.Muscular)+len(global.AuditLogs.Spinal) > 0 {
		fmt.Println("\n  Audit:")
		for _, line := range global.AuditLogs.CNS {
			fmt.Printf("    cns      %s\n", line)
		}
		for _, line := range global.AuditLogs.Muscular {
			fmt.Printf("    muscular %s\n", line)
		}
		for _, line := range global.AuditLogs.Spinal {
			fmt.Printf("    spinal   %s\n", line)
		}
	}
}

func printMuscle(m auge.MuscleBatteryState) {
	eta := ""
	if m.EstimatedHoursToRecovery > 0 {
		eta = fmt.Sprintf("  (~%dh to recover)", m.EstimatedHoursToRecovery)
	}
	fmt.Printf("    %-14s %3d%%  %-10s%s\n", m.Muscle, m.RecoveryScore, m.Status, eta)
}
