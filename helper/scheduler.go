package helper

import (
	"context"
	"encoding/json"
	"estate_market/config"
	"estate_market/database"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/robfig/cron/v3"
)

const StatsSnapshotKey = "estate:stats:snapshot"

var (
	sessionScheduler gocron.Scheduler
	statsCron        *cron.Cron
)

func sweepEditorSessions() {
	idle := config.ConfigDuration("EDITOR_IDLE_TIMEOUT", 30*time.Minute)
	if n := Sessions.Sweep(idle); n > 0 {
		log.Printf("[CRON] closed %d idle editor sessions", n)
	}
}

func StartSessionSweeper() {
	s, err := gocron.NewScheduler()
	if err != nil {
		log.Fatal(err)
	}
	sessionScheduler = s

	_, err = s.NewJob(
		gocron.DurationJob(config.ConfigDuration("EDITOR_SWEEP_INTERVAL", time.Minute)),
		gocron.NewTask(sweepEditorSessions),
	)
	if err != nil {
		log.Fatal(err)
	}

	s.Start()
	log.Println("Editor session sweeper started")
}

func StopSessionSweeper() {
	if sessionScheduler != nil {
		if err := sessionScheduler.Shutdown(); err != nil {
			log.Printf("session sweeper shutdown: %v", err)
		}
	}
}

// snapshotStats caches the admin statistics in Redis so the dashboard does
// not recount on every request.
func snapshotStats() {
	if database.Redis == nil {
		return
	}
	stats, err := GetSystemStats(database.DB, Realtime.Count())
	if err != nil {
		log.Printf("[CRON] stats snapshot failed: %v", err)
		return
	}
	payload, err := json.Marshal(stats)
	if err != nil {
		return
	}
	ttl := config.ConfigDuration("STATS_SNAPSHOT_TTL", 10*time.Minute)
	if err := database.Redis.Set(context.Background(), StatsSnapshotKey, payload, ttl).Err(); err != nil {
		log.Printf("[CRON] stats snapshot write failed: %v", err)
	}
}

func StartStatsScheduler() {
	statsCron = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	_, err := statsCron.AddFunc(config.ConfigDefault("STATS_SNAPSHOT_CRON", "*/5 * * * *"), snapshotStats)
	if err != nil {
		log.Printf("failed to start stats scheduler: %v", err)
		return
	}

	statsCron.Start()
	log.Println("Stats snapshot scheduler started")
}

func StopStatsScheduler() {
	if statsCron != nil {
		statsCron.Stop()
	}
}
