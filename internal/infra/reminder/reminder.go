// Package reminder runs the background notification jobs: an hourly nudge
// for users who have not studied yet today, and an evening summary for
// users who have.
package reminder

import (
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/studyflow-app/studyflow/internal/app/engagement"
	"github.com/studyflow-app/studyflow/internal/domain"
)

// Store is the slice of the session store the reminder jobs need.
type Store interface {
	KnownUserIDs() ([]string, error)
	SessionCountOn(userID string, day time.Time) (int, error)
}

// Config controls when reminder jobs fire. Hours are in UTC.
type Config struct {
	StartHour   int // earliest hour a study nudge may fire
	EndHour     int // latest hour a study nudge may fire
	SummaryHour int // hour the daily summary fires
}

// DefaultConfig nudges between 09:00 and 20:00 and summarizes at 21:00.
func DefaultConfig() Config {
	return Config{StartHour: 9, EndHour: 20, SummaryHour: 21}
}

// Scheduler owns the gocron instance and the jobs registered on it.
type Scheduler struct {
	scheduler *gocron.Scheduler
	store     Store
	notifier  *engagement.NotificationService
	cfg       Config
	now       func() time.Time
}

func New(store Store, notifier *engagement.NotificationService, cfg Config) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		store:     store,
		notifier:  notifier,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Start registers the jobs and runs the scheduler in the background.
func (s *Scheduler) Start() {
	s.scheduler.Every(1).Hour().Do(s.studyNudge)
	s.scheduler.Every(1).Day().At(fmt.Sprintf("%02d:00", s.cfg.SummaryHour)).Do(s.dailySummary)
	s.scheduler.StartAsync()
}

func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// studyNudge reminds users who have not logged a session yet today.
func (s *Scheduler) studyNudge() {
	now := s.now()
	hour := now.Hour()
	if hour < s.cfg.StartHour || hour > s.cfg.EndHour {
		return
	}

	users, err := s.store.KnownUserIDs()
	if err != nil {
		log.Printf("reminder: list users: %v", err)
		return
	}
	for _, userID := range users {
		count, err := s.store.SessionCountOn(userID, now)
		if err != nil {
			log.Printf("reminder: session count for %s: %v", userID, err)
			continue
		}
		if count > 0 {
			continue
		}
		s.notifier.Notify(userID, domain.NotifyReminder,
			"Time to study", "You haven't logged a study session today. Even 15 minutes keeps your streak alive.")
	}
}

// dailySummary tells users who studied today how many sessions they logged.
func (s *Scheduler) dailySummary() {
	now := s.now()
	users, err := s.store.KnownUserIDs()
	if err != nil {
		log.Printf("reminder: list users: %v", err)
		return
	}
	for _, userID := range users {
		count, err := s.store.SessionCountOn(userID, now)
		if err != nil {
			log.Printf("reminder: session count for %s: %v", userID, err)
			continue
		}
		if count == 0 {
			continue
		}
		s.notifier.Notify(userID, domain.NotifyDailySummary,
			"Daily summary", fmt.Sprintf("You logged %d study session(s) today. Keep it up!", count))
	}
}
