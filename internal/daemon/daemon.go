package daemon

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/studyflow-app/studyflow/internal/api"
	"github.com/studyflow-app/studyflow/internal/app/engagement"
	"github.com/studyflow-app/studyflow/internal/app/finance"
	"github.com/studyflow-app/studyflow/internal/app/habits"
	"github.com/studyflow-app/studyflow/internal/app/insight"
	"github.com/studyflow-app/studyflow/internal/app/pomodoro"
	"github.com/studyflow-app/studyflow/internal/domain"
	"github.com/studyflow-app/studyflow/internal/health"
	"github.com/studyflow-app/studyflow/internal/infra/catalog"
	_ "github.com/studyflow-app/studyflow/internal/infra/metrics" // Register Prometheus metrics
	"github.com/studyflow-app/studyflow/internal/infra/openai"
	"github.com/studyflow-app/studyflow/internal/infra/reminder"
	"github.com/studyflow-app/studyflow/internal/infra/sqlite"
)

// Daemon is the core StudyFlow runtime. It wires together all services.
type Daemon struct {
	Config Config
	DB     *sqlite.DB
	Server *api.Server
	cancel context.CancelFunc

	Engagement   *engagement.Service
	Notification *engagement.NotificationService
	Finance      *finance.Service
	Habits       *habits.Service
	Pomodoro     *pomodoro.Service
	Insight      *insight.Service
	Health       *health.Checker
	Reminders    *reminder.Scheduler
}

// New creates and initializes a Daemon with all services wired.
func New() (*Daemon, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return NewWithConfig(cfg)
}

// NewWithConfig creates a Daemon with the given configuration.
func NewWithConfig(cfg Config) (*Daemon, error) {
	dataDir := cfg.Data.Dir
	if dataDir == "" {
		dataDir = studyflowHome()
	}

	db, err := sqlite.Open(dataDir)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Seed the achievement catalog: built-ins first, then the optional
	// user catalog file on top.
	defs := catalog.Builtin()
	if cfg.Data.CatalogFile != "" {
		extra, err := catalog.LoadFile(cfg.Data.CatalogFile)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("load catalog file: %w", err)
		}
		defs = append(defs, extra...)
	}
	if err := catalog.Seed(db, defs); err != nil {
		db.Close()
		return nil, fmt.Errorf("seed catalog: %w", err)
	}

	d := &Daemon{Config: cfg, DB: db}

	d.Notification = engagement.NewNotificationServiceWithPolicy(db, notificationPolicy(cfg))
	d.Engagement = engagement.NewService(db, d.Notification)
	d.Finance = finance.NewService(db)
	d.Habits = habits.NewService(db)
	d.Pomodoro = pomodoro.NewService(db, d.Engagement)

	var chat insight.ChatClient
	if cfg.AI.APIKey != "" {
		chat = openai.NewClient(openai.Config{
			APIKey:  cfg.AI.APIKey,
			BaseURL: cfg.AI.BaseURL,
			Model:   cfg.AI.Model,
		})
	} else {
		log.Printf("[daemon] no AI backend configured, insights use fallback messages")
	}
	d.Insight = insight.NewService(chat)

	d.Health = health.NewChecker(db, dataDir)

	if cfg.Reminders.Enabled {
		d.Reminders = reminder.New(db, d.Notification, reminder.Config{
			StartHour:   cfg.Reminders.StartHour,
			EndHour:     cfg.Reminders.EndHour,
			SummaryHour: cfg.Reminders.SummaryHour,
		})
	}

	srv := api.NewServer(d.Engagement, d.Notification, d.Finance, d.Habits, d.Pomodoro, d.Insight)
	srv.SetHealthChecker(d.Health)
	srv.EnableMetrics()
	d.Server = srv

	return d, nil
}

func notificationPolicy(cfg Config) domain.NotificationPolicy {
	policy := domain.DefaultNotificationPolicy()
	if cfg.Notifications.MaxPerDay > 0 {
		policy.MaxPerDay = cfg.Notifications.MaxPerDay
	}
	if cfg.Notifications.QuietStart != "" {
		policy.QuietStart = cfg.Notifications.QuietStart
	}
	if cfg.Notifications.QuietEnd != "" {
		policy.QuietEnd = cfg.Notifications.QuietEnd
	}
	return policy
}

// Serve starts the HTTP server and blocks until shutdown.
func (d *Daemon) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	go d.Health.Run(ctx)

	if d.Reminders != nil {
		d.Reminders.Start()
	}

	addr := fmt.Sprintf("%s:%d", d.Config.API.Host, d.Config.API.Port)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      d.Server.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  2 * time.Minute,
	}

	// Graceful shutdown on signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
		case <-ctx.Done():
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if d.Reminders != nil {
			d.Reminders.Stop()
		}
		_ = httpServer.Shutdown(shutdownCtx)
		_ = d.DB.Close()
	}()

	fmt.Printf("StudyFlow serving on http://%s\n", addr)
	fmt.Printf("  Metrics: http://%s/metrics\n", addr)

	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close shuts down all daemon resources.
func (d *Daemon) Close() {
	if d.cancel != nil {
		d.cancel()
	}
	if d.Reminders != nil {
		d.Reminders.Stop()
	}
	if d.DB != nil {
		_ = d.DB.Close()
	}
}
