package sqlite

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/studyflow-app/studyflow/internal/domain"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	dir := t.TempDir()
	db, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpen_CreatesFileAndMigrates(t *testing.T) {
	dir := t.TempDir()
	db, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(filepath.Join(dir, "studyflow.db")); err != nil {
		t.Errorf("database file not created: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Errorf("Ping() error: %v", err)
	}

	// Migrations are idempotent.
	db2, err := Open(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	db2.Close()
}

// ─── Session Tests ──────────────────────────────────────────────────────────

func sampleSession(id, userID string, d time.Time) domain.StudySession {
	return domain.StudySession{
		ID:              id,
		UserID:          userID,
		Subject:         "Math",
		Area:            domain.AreaMath,
		DurationMinutes: 30,
		XPEarned:        60,
		Notes:           "practice problems",
		Date:            domain.Day(d),
		CreatedAt:       d,
	}
}

func TestSessions_InsertListGetDelete(t *testing.T) {
	db := newTestDB(t)
	d := time.Date(2024, 1, 10, 14, 0, 0, 0, time.UTC)

	if err := db.InsertSession(sampleSession("s1", "u1", d)); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := db.InsertSession(sampleSession("s2", "u1", d.AddDate(0, 0, 1))); err != nil {
		t.Fatalf("insert: %v", err)
	}

	sessions, err := db.ListSessions("u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("list = %d sessions, want 2", len(sessions))
	}
	// Newest first.
	if sessions[0].ID != "s2" {
		t.Errorf("first listed = %s, want s2", sessions[0].ID)
	}

	got, err := db.GetSession("u1", "s1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Subject != "Math" || got.XPEarned != 60 || got.Notes != "practice problems" {
		t.Errorf("round-trip mismatch: %+v", got)
	}
	if !got.Date.Equal(domain.Day(d)) {
		t.Errorf("Date = %v, want %v", got.Date, domain.Day(d))
	}

	if err := db.DeleteSession("u1", "s1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := db.GetSession("u1", "s1"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("get after delete = %v, want ErrSessionNotFound", err)
	}
	if err := db.DeleteSession("u1", "s1"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("double delete = %v, want ErrSessionNotFound", err)
	}
}

func TestSessions_ScopedByUser(t *testing.T) {
	db := newTestDB(t)
	d := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)

	_ = db.InsertSession(sampleSession("s1", "u1", d))
	_ = db.InsertSession(sampleSession("s2", "u2", d))

	if _, err := db.GetSession("u1", "s2"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("cross-user get = %v, want ErrSessionNotFound", err)
	}
	if err := db.DeleteSession("u1", "s2"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("cross-user delete = %v, want ErrSessionNotFound", err)
	}
}

// ─── Streak Tests ───────────────────────────────────────────────────────────

func TestStreak_ZeroValueForNewUser(t *testing.T) {
	db := newTestDB(t)

	s, err := db.GetStreak("nobody")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if s.CurrentDays != 0 || s.LongestDays != 0 || !s.LastDate.IsZero() {
		t.Errorf("new user streak = %+v, want zero value", s)
	}
}

func TestStreak_SaveOverwrites(t *testing.T) {
	db := newTestDB(t)
	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	if err := db.SaveStreak("u1", domain.Streak{CurrentDays: 1, LongestDays: 1, LastDate: day}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := db.SaveStreak("u1", domain.Streak{CurrentDays: 2, LongestDays: 2, LastDate: day.AddDate(0, 0, 1)}); err != nil {
		t.Fatalf("save again: %v", err)
	}

	s, err := db.GetStreak("u1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if s.CurrentDays != 2 || s.LongestDays != 2 {
		t.Errorf("streak = %+v, want 2/2", s)
	}
	if !s.LastDate.Equal(day.AddDate(0, 0, 1)) {
		t.Errorf("LastDate = %v, want %v", s.LastDate, day.AddDate(0, 0, 1))
	}
}

// ─── Achievement Tests ──────────────────────────────────────────────────────

func TestAchievements_UpsertAndUnlockOnce(t *testing.T) {
	db := newTestDB(t)

	def := domain.AchievementDef{
		ID: "streak_7", Name: "Week Warrior", RewardXP: 200,
		Requirement: domain.ReqStreak, RequirementValue: 7,
	}
	if err := db.UpsertAchievementDef(def); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	def.RewardXP = 250
	if err := db.UpsertAchievementDef(def); err != nil {
		t.Fatalf("re-upsert: %v", err)
	}

	defs, err := db.ListAchievementDefs()
	if err != nil {
		t.Fatalf("list defs: %v", err)
	}
	if len(defs) != 1 {
		t.Fatalf("defs = %d, want 1 after re-upsert", len(defs))
	}
	if defs[0].RewardXP != 250 {
		t.Errorf("RewardXP = %d, want updated 250", defs[0].RewardXP)
	}

	at := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	isNew, err := db.UnlockAchievement("u1", "streak_7", at)
	if err != nil {
		t.Fatalf("unlock: %v", err)
	}
	if !isNew {
		t.Error("first unlock reported as duplicate")
	}

	isNew, err = db.UnlockAchievement("u1", "streak_7", at.Add(time.Hour))
	if err != nil {
		t.Fatalf("second unlock: %v", err)
	}
	if isNew {
		t.Error("duplicate unlock reported as new")
	}

	ids, err := db.UnlockedIDs("u1")
	if err != nil {
		t.Fatalf("unlocked ids: %v", err)
	}
	if !ids["streak_7"] {
		t.Error("streak_7 missing from unlocked set")
	}

	unlocked, err := db.ListUnlocked("u1")
	if err != nil {
		t.Fatalf("list unlocked: %v", err)
	}
	if len(unlocked) != 1 {
		t.Errorf("unlocked rows = %d, want 1", len(unlocked))
	}
}

func TestAchievements_SubjectAreaRoundTrip(t *testing.T) {
	db := newTestDB(t)

	def := domain.AchievementDef{
		ID: "mathematician", Requirement: domain.ReqSubjectArea,
		RequirementValue: 10, TargetArea: domain.AreaMath,
	}
	if err := db.UpsertAchievementDef(def); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	defs, err := db.ListAchievementDefs()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if defs[0].TargetArea != domain.AreaMath {
		t.Errorf("TargetArea = %q, want math", defs[0].TargetArea)
	}
}

// ─── Notification Tests ─────────────────────────────────────────────────────

func TestNotifications_CountToday(t *testing.T) {
	db := newTestDB(t)
	base := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 2; i++ {
		_, err := db.InsertNotification(domain.Notification{
			UserID: "u1", Type: domain.NotifyLevelUp, Title: "Level up",
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
	// Different day and different user must not count.
	_, _ = db.InsertNotification(domain.Notification{
		UserID: "u1", Type: domain.NotifyLevelUp, Title: "Level up", CreatedAt: base.AddDate(0, 0, -1),
	})
	_, _ = db.InsertNotification(domain.Notification{
		UserID: "u2", Type: domain.NotifyLevelUp, Title: "Level up", CreatedAt: base,
	})

	count, err := db.NotificationCountToday("u1", base.Add(5*time.Hour))
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

// ─── Habit / Goal Tests ─────────────────────────────────────────────────────

func TestHabits_RoundTrip(t *testing.T) {
	db := newTestDB(t)
	now := time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)

	h := domain.Habit{ID: "h1", UserID: "u1", Title: "Morning review", Category: "study", CreatedAt: now}
	if err := db.InsertHabit(h); err != nil {
		t.Fatalf("insert: %v", err)
	}

	streak := domain.Streak{CurrentDays: 4, LongestDays: 6, LastDate: domain.Day(now)}
	if err := db.SaveHabitStreak("u1", "h1", streak); err != nil {
		t.Fatalf("save streak: %v", err)
	}

	got, err := db.GetHabit("u1", "h1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Streak.CurrentDays != 4 || got.Streak.LongestDays != 6 {
		t.Errorf("habit streak = %+v, want 4/6", got.Streak)
	}

	if err := db.DeleteHabit("u1", "h1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := db.GetHabit("u1", "h1"); !errors.Is(err, domain.ErrHabitNotFound) {
		t.Errorf("get after delete = %v, want ErrHabitNotFound", err)
	}
}

func TestGoals_ProgressPersists(t *testing.T) {
	db := newTestDB(t)
	now := time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)

	g := domain.Goal{
		ID: "g1", UserID: "u1", Title: "Read 12 books",
		TargetValue: 12, Status: domain.GoalActive, CreatedAt: now,
	}
	if err := db.InsertGoal(g); err != nil {
		t.Fatalf("insert: %v", err)
	}

	g.CurrentValue = 12
	g.Status = domain.GoalCompleted
	g.CompletedAt = now.AddDate(0, 6, 0)
	if err := db.UpdateGoalProgress(g); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := db.GetGoal("u1", "g1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != domain.GoalCompleted || got.CurrentValue != 12 {
		t.Errorf("goal = %+v, want completed at 12", got)
	}
	if got.CompletedAt.IsZero() {
		t.Error("CompletedAt not persisted")
	}
}

// ─── Finance Tests ──────────────────────────────────────────────────────────

func TestFinance_AccountsAndLedger(t *testing.T) {
	db := newTestDB(t)
	now := time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)

	a := domain.Account{ID: "a1", UserID: "u1", Name: "Wallet", Type: domain.AccountChecking, CreatedAt: now}
	if err := db.InsertAccount(a); err != nil {
		t.Fatalf("insert account: %v", err)
	}
	if err := db.SetAccountBalance("u1", "a1", 15000); err != nil {
		t.Fatalf("set balance: %v", err)
	}

	got, err := db.GetAccount("u1", "a1")
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	if got.BalanceCents != 15000 {
		t.Errorf("balance = %d, want 15000", got.BalanceCents)
	}

	entry := domain.LedgerEntry{
		UserID: "u1", TxID: "tx1", Timestamp: now, Type: domain.TxIncome,
		EntryType: domain.EntryCredit, Account: "a1", AmountCents: 15000,
		Category: "salary", Balance: 15000,
	}
	if _, err := db.InsertLedgerEntry(entry); err != nil {
		t.Fatalf("insert entry: %v", err)
	}

	entries, err := db.LedgerEntries("u1", 10)
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	if entries[0].EntryType != domain.EntryCredit || entries[0].AmountCents != 15000 {
		t.Errorf("entry round-trip mismatch: %+v", entries[0])
	}
}

// ─── Pomodoro Tests ─────────────────────────────────────────────────────────

func TestPomodoro_CountsPerDay(t *testing.T) {
	db := newTestDB(t)
	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	p := domain.PomodoroSession{
		ID: "p1", UserID: "u1", Task: "algebra", FocusMinutes: 25,
		BreakMinutes: 5, Cycles: 4, Date: day, CreatedAt: day.Add(10 * time.Hour),
	}
	if err := db.InsertPomodoro(p); err != nil {
		t.Fatalf("insert: %v", err)
	}

	count, err := db.PomodoroCountOn("u1", day.Add(15*time.Hour))
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("count on day = %d, want 1", count)
	}

	count, err = db.PomodoroCountOn("u1", day.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("count next day: %v", err)
	}
	if count != 0 {
		t.Errorf("count next day = %d, want 0", count)
	}
}

func TestKnownUserIDs(t *testing.T) {
	db := newTestDB(t)
	d := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)

	_ = db.InsertSession(sampleSession("s1", "u1", d))
	_ = db.InsertSession(sampleSession("s2", "u1", d.AddDate(0, 0, 1)))
	_ = db.InsertSession(sampleSession("s3", "u2", d))

	users, err := db.KnownUserIDs()
	if err != nil {
		t.Fatalf("known users: %v", err)
	}
	if len(users) != 2 {
		t.Errorf("users = %v, want 2 distinct", users)
	}
}
