package engagement_test

import (
	"errors"
	"testing"
	"time"

	"github.com/studyflow-app/studyflow/internal/app/engagement"
	"github.com/studyflow-app/studyflow/internal/domain"
	"github.com/studyflow-app/studyflow/internal/infra/catalog"
	"github.com/studyflow-app/studyflow/internal/infra/sqlite"
)

// testDB creates a temporary SQLite database for testing.
func testDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dir := t.TempDir()
	db, err := sqlite.Open(dir)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ═══════════════════════════════════════════════════════════════════════════
// Streak Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestUpdateStreak_FirstSession(t *testing.T) {
	got := engagement.UpdateStreak(domain.Streak{}, day(2024, 1, 10))

	if got.CurrentDays != 1 {
		t.Errorf("CurrentDays = %d, want 1", got.CurrentDays)
	}
	if got.LongestDays != 1 {
		t.Errorf("LongestDays = %d, want 1", got.LongestDays)
	}
	if !got.LastDate.Equal(day(2024, 1, 10)) {
		t.Errorf("LastDate = %v, want 2024-01-10", got.LastDate)
	}
}

func TestUpdateStreak_SameDayIdempotent(t *testing.T) {
	s := engagement.UpdateStreak(domain.Streak{}, day(2024, 1, 10))
	s = engagement.UpdateStreak(s, day(2024, 1, 10).Add(5*time.Hour))
	s = engagement.UpdateStreak(s, day(2024, 1, 10).Add(23*time.Hour))

	if s.CurrentDays != 1 {
		t.Errorf("CurrentDays = %d, want 1 after same-day repeats", s.CurrentDays)
	}
}

func TestUpdateStreak_ConsecutiveDays(t *testing.T) {
	var s domain.Streak
	for i := 0; i < 5; i++ {
		s = engagement.UpdateStreak(s, day(2024, 1, 10+i))
	}

	if s.CurrentDays != 5 {
		t.Errorf("CurrentDays = %d, want 5", s.CurrentDays)
	}
	if s.LongestDays != 5 {
		t.Errorf("LongestDays = %d, want 5", s.LongestDays)
	}
}

func TestUpdateStreak_GapResets(t *testing.T) {
	var s domain.Streak
	s = engagement.UpdateStreak(s, day(2024, 1, 10))
	s = engagement.UpdateStreak(s, day(2024, 1, 11))
	s = engagement.UpdateStreak(s, day(2024, 1, 12))
	s = engagement.UpdateStreak(s, day(2024, 1, 15)) // 3-day gap

	if s.CurrentDays != 1 {
		t.Errorf("CurrentDays = %d, want 1 after gap", s.CurrentDays)
	}
	if s.LongestDays != 3 {
		t.Errorf("LongestDays = %d, want 3 preserved", s.LongestDays)
	}
	if !s.LastDate.Equal(day(2024, 1, 15)) {
		t.Errorf("LastDate = %v, want 2024-01-15", s.LastDate)
	}
}

func TestUpdateStreak_BackdatedNoop(t *testing.T) {
	var s domain.Streak
	s = engagement.UpdateStreak(s, day(2024, 1, 10))
	s = engagement.UpdateStreak(s, day(2024, 1, 11))
	before := s

	s = engagement.UpdateStreak(s, day(2024, 1, 5))
	if s != before {
		t.Errorf("backdated day changed streak: got %+v, want %+v", s, before)
	}
}

func TestUpdateStreak_LongestNeverDecreases(t *testing.T) {
	var s domain.Streak
	for i := 0; i < 7; i++ {
		s = engagement.UpdateStreak(s, day(2024, 1, 1+i))
	}
	s = engagement.UpdateStreak(s, day(2024, 2, 1)) // reset
	s = engagement.UpdateStreak(s, day(2024, 2, 2))

	if s.CurrentDays != 2 {
		t.Errorf("CurrentDays = %d, want 2", s.CurrentDays)
	}
	if s.LongestDays != 7 {
		t.Errorf("LongestDays = %d, want 7", s.LongestDays)
	}
}

func TestRebuildStreak_FromUnorderedLog(t *testing.T) {
	sessions := []domain.StudySession{
		{Date: day(2024, 1, 12)},
		{Date: day(2024, 1, 10)},
		{Date: day(2024, 1, 11)},
		{Date: day(2024, 1, 11)}, // duplicate day
		{Date: day(2024, 1, 5)},
	}

	s := engagement.RebuildStreak(sessions)
	if s.CurrentDays != 3 {
		t.Errorf("CurrentDays = %d, want 3 (10th-12th)", s.CurrentDays)
	}
	if s.LongestDays != 3 {
		t.Errorf("LongestDays = %d, want 3", s.LongestDays)
	}
}

func TestRebuildStreak_EmptyLog(t *testing.T) {
	s := engagement.RebuildStreak(nil)
	if s.CurrentDays != 0 || s.LongestDays != 0 || !s.LastDate.IsZero() {
		t.Errorf("empty log should produce zero streak, got %+v", s)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Level Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestLevelForXP(t *testing.T) {
	tests := []struct {
		xp       int
		level    int
		xpToNext int
	}{
		{0, 1, 100},
		{50, 1, 50},
		{99, 1, 1},
		{100, 2, 100},
		{250, 3, 50},
		{999, 10, 1},
		{1000, 11, 100},
	}

	for _, tt := range tests {
		got := engagement.LevelForXP(tt.xp)
		if got.Level != tt.level {
			t.Errorf("LevelForXP(%d).Level = %d, want %d", tt.xp, got.Level, tt.level)
		}
		if got.XPToNext != tt.xpToNext {
			t.Errorf("LevelForXP(%d).XPToNext = %d, want %d", tt.xp, got.XPToNext, tt.xpToNext)
		}
	}
}

func TestXPForDuration(t *testing.T) {
	if got := engagement.XPForDuration(30); got != 60 {
		t.Errorf("XPForDuration(30) = %d, want 60", got)
	}
	if got := engagement.XPForDuration(-5); got != 0 {
		t.Errorf("XPForDuration(-5) = %d, want 0", got)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Achievement Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestEvaluate_StudyTimeThreshold(t *testing.T) {
	defs := []domain.AchievementDef{
		{ID: "ten_hours", Requirement: domain.ReqStudyTime, RequirementValue: 600},
	}

	stats := domain.UserStats{TotalMinutes: 650}
	newly := engagement.Evaluate(stats, defs, nil)
	if len(newly) != 1 || newly[0].ID != "ten_hours" {
		t.Fatalf("Evaluate with 650 min = %v, want [ten_hours]", newly)
	}

	stats.TotalMinutes = 599
	if newly := engagement.Evaluate(stats, defs, nil); len(newly) != 0 {
		t.Errorf("Evaluate with 599 min = %v, want none", newly)
	}
}

func TestEvaluate_AlreadyUnlockedSkipped(t *testing.T) {
	defs := []domain.AchievementDef{
		{ID: "streak_7", Requirement: domain.ReqStreak, RequirementValue: 7},
	}
	stats := domain.UserStats{CurrentStreak: 10}

	newly := engagement.Evaluate(stats, defs, map[string]bool{"streak_7": true})
	if len(newly) != 0 {
		t.Errorf("Evaluate returned already-unlocked defs: %v", newly)
	}
}

func TestEvaluate_SubjectAreaTarget(t *testing.T) {
	defs := []domain.AchievementDef{
		{ID: "mathematician", Requirement: domain.ReqSubjectArea, RequirementValue: 10, TargetArea: domain.AreaMath},
		{ID: "broken", Requirement: domain.ReqSubjectArea, RequirementValue: 1}, // no target area
	}
	stats := domain.UserStats{SessionsByArea: map[domain.Area]int{
		domain.AreaMath:       12,
		domain.AreaHumanities: 50,
	}}

	newly := engagement.Evaluate(stats, defs, nil)
	if len(newly) != 1 || newly[0].ID != "mathematician" {
		t.Fatalf("Evaluate = %v, want [mathematician] only", newly)
	}
}

func TestEvaluate_AllAreasNeedsEveryCoreArea(t *testing.T) {
	defs := []domain.AchievementDef{
		{ID: "exam_ready", Requirement: domain.ReqAllAreas, RequirementValue: 3},
	}

	counts := map[domain.Area]int{
		domain.AreaLanguages:       3,
		domain.AreaHumanities:      5,
		domain.AreaNaturalSciences: 3,
	}
	stats := domain.UserStats{SessionsByArea: counts}
	if newly := engagement.Evaluate(stats, defs, nil); len(newly) != 0 {
		t.Errorf("Evaluate without math sessions = %v, want none", newly)
	}

	counts[domain.AreaMath] = 3
	if newly := engagement.Evaluate(stats, defs, nil); len(newly) != 1 {
		t.Errorf("Evaluate with all core areas = %v, want [exam_ready]", newly)
	}
}

func TestEvaluate_UnknownKindSkipped(t *testing.T) {
	defs := []domain.AchievementDef{
		{ID: "mystery", Requirement: "perfect_score", RequirementValue: 1},
	}
	stats := domain.UserStats{TotalMinutes: 10000, CurrentStreak: 100}

	if newly := engagement.Evaluate(stats, defs, nil); len(newly) != 0 {
		t.Errorf("unknown requirement kind unlocked: %v", newly)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Orchestrator Tests
// ═══════════════════════════════════════════════════════════════════════════

func testService(t *testing.T) (*engagement.Service, *sqlite.DB) {
	t.Helper()
	db := testDB(t)
	if err := catalog.Seed(db, catalog.Builtin()); err != nil {
		t.Fatalf("seed catalog: %v", err)
	}
	return engagement.NewService(db, engagement.NewNotificationService(db)), db
}

func TestLogSession_NewUser(t *testing.T) {
	svc, _ := testService(t)

	result, err := svc.LogSession("u1", "Math", 30, "", day(2024, 1, 10))
	if err != nil {
		t.Fatalf("LogSession: %v", err)
	}

	if result.Session.XPEarned != 60 {
		t.Errorf("XPEarned = %d, want 60", result.Session.XPEarned)
	}
	if result.Session.Area != domain.AreaMath {
		t.Errorf("Area = %q, want math", result.Session.Area)
	}
	if result.Streak.CurrentDays != 1 || result.Streak.LongestDays != 1 {
		t.Errorf("Streak = %+v, want 1/1", result.Streak)
	}
	if result.Level.Level != 1 || result.Level.XPToNext != 40 {
		t.Errorf("Level = %+v, want level 1, 40 to next", result.Level)
	}
	// 30 min qualifies the first study-time achievement.
	if len(result.NewlyUnlocked) != 1 || result.NewlyUnlocked[0].ID != "first_steps" {
		t.Errorf("NewlyUnlocked = %v, want [first_steps]", result.NewlyUnlocked)
	}
}

func TestLogSession_Validation(t *testing.T) {
	svc, _ := testService(t)

	if _, err := svc.LogSession("u1", "", 30, "", time.Time{}); !errors.Is(err, domain.ErrEmptySubject) {
		t.Errorf("empty subject error = %v, want ErrEmptySubject", err)
	}
	if _, err := svc.LogSession("u1", "Math", 0, "", time.Time{}); !errors.Is(err, domain.ErrInvalidDuration) {
		t.Errorf("zero duration error = %v, want ErrInvalidDuration", err)
	}
	if _, err := svc.LogSession("", "Math", 30, "", time.Time{}); !errors.Is(err, domain.ErrEmptyUserID) {
		t.Errorf("empty user error = %v, want ErrEmptyUserID", err)
	}

	sessions, err := svc.Sessions("u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(sessions) != 0 {
		t.Errorf("invalid sessions were persisted: %d rows", len(sessions))
	}
}

func TestLogSession_StreakAcrossDays(t *testing.T) {
	svc, _ := testService(t)

	days := []time.Time{
		day(2024, 1, 10), day(2024, 1, 11), day(2024, 1, 12),
	}
	var result domain.SessionResult
	var err error
	for _, d := range days {
		result, err = svc.LogSession("u1", "Physics", 20, "", d)
		if err != nil {
			t.Fatalf("log %v: %v", d, err)
		}
	}

	if result.Streak.CurrentDays != 3 {
		t.Errorf("CurrentDays = %d, want 3", result.Streak.CurrentDays)
	}

	// A second session on the last day leaves the streak alone.
	result, err = svc.LogSession("u1", "Chemistry", 20, "", day(2024, 1, 12))
	if err != nil {
		t.Fatalf("log same day: %v", err)
	}
	if result.Streak.CurrentDays != 3 {
		t.Errorf("CurrentDays after same-day = %d, want 3", result.Streak.CurrentDays)
	}
}

func TestLogSession_LevelFromFullLog(t *testing.T) {
	svc, _ := testService(t)

	// Two 60-minute sessions: 240 XP total, level 3.
	if _, err := svc.LogSession("u1", "Math", 60, "", day(2024, 1, 10)); err != nil {
		t.Fatalf("log: %v", err)
	}
	result, err := svc.LogSession("u1", "Math", 60, "", day(2024, 1, 11))
	if err != nil {
		t.Fatalf("log: %v", err)
	}

	if result.Level.TotalXP != 240 {
		t.Errorf("TotalXP = %d, want 240", result.Level.TotalXP)
	}
	if result.Level.Level != 3 {
		t.Errorf("Level = %d, want 3", result.Level.Level)
	}
}

func TestLogSession_UnlockExactlyOnce(t *testing.T) {
	svc, _ := testService(t)

	first, err := svc.LogSession("u1", "Math", 45, "", day(2024, 1, 10))
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	if len(first.NewlyUnlocked) == 0 {
		t.Fatal("expected first_steps unlock on first qualifying session")
	}

	second, err := svc.LogSession("u1", "Math", 45, "", day(2024, 1, 10))
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	for _, def := range second.NewlyUnlocked {
		if def.ID == first.NewlyUnlocked[0].ID {
			t.Errorf("achievement %s unlocked twice", def.ID)
		}
	}
}

func TestDeleteSession_RebuildsStreak(t *testing.T) {
	svc, _ := testService(t)

	var last domain.SessionResult
	for i := 0; i < 3; i++ {
		r, err := svc.LogSession("u1", "Math", 20, "", day(2024, 1, 10+i))
		if err != nil {
			t.Fatalf("log: %v", err)
		}
		last = r
	}
	if last.Streak.CurrentDays != 3 {
		t.Fatalf("CurrentDays = %d, want 3", last.Streak.CurrentDays)
	}

	// Delete the middle day; the remaining log is 10th and 12th.
	sessions, err := svc.Sessions("u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var middleID string
	for _, s := range sessions {
		if s.Date.Equal(day(2024, 1, 11)) {
			middleID = s.ID
		}
	}
	if err := svc.DeleteSession("u1", middleID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	streak, err := svc.Streak("u1")
	if err != nil {
		t.Fatalf("get streak: %v", err)
	}
	if streak.CurrentDays != 1 {
		t.Errorf("rebuilt CurrentDays = %d, want 1", streak.CurrentDays)
	}
	// The replay only sees the surviving days, so the old 3-day longest is
	// gone too: 10th and 12th are not consecutive.
	if streak.LongestDays != 1 {
		t.Errorf("rebuilt LongestDays = %d, want 1", streak.LongestDays)
	}
}

func TestDeleteSession_NotFound(t *testing.T) {
	svc, _ := testService(t)

	err := svc.DeleteSession("u1", "no-such-id")
	if !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("error = %v, want ErrSessionNotFound", err)
	}
}

func TestStats_Aggregation(t *testing.T) {
	svc, _ := testService(t)

	seed := []struct {
		subject string
		minutes int
		date    time.Time
	}{
		{"Math", 30, day(2024, 1, 10)},
		{"Physics", 45, day(2024, 1, 11)},
		{"History", 25, day(2024, 1, 11)},
	}
	for _, s := range seed {
		if _, err := svc.LogSession("u1", s.subject, s.minutes, "", s.date); err != nil {
			t.Fatalf("log %s: %v", s.subject, err)
		}
	}

	stats, err := svc.Stats("u1")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}

	if stats.TotalMinutes != 100 {
		t.Errorf("TotalMinutes = %d, want 100", stats.TotalMinutes)
	}
	if stats.TotalXP != 200 {
		t.Errorf("TotalXP = %d, want 200", stats.TotalXP)
	}
	if stats.Level != 3 {
		t.Errorf("Level = %d, want 3", stats.Level)
	}
	if stats.SessionsByArea[domain.AreaMath] != 1 {
		t.Errorf("math sessions = %d, want 1", stats.SessionsByArea[domain.AreaMath])
	}
	if stats.SessionsByArea[domain.AreaNaturalSciences] != 1 {
		t.Errorf("natural_sciences sessions = %d, want 1", stats.SessionsByArea[domain.AreaNaturalSciences])
	}
	if stats.SessionsByArea[domain.AreaHumanities] != 1 {
		t.Errorf("humanities sessions = %d, want 1", stats.SessionsByArea[domain.AreaHumanities])
	}
	if stats.CurrentStreak != 2 {
		t.Errorf("CurrentStreak = %d, want 2", stats.CurrentStreak)
	}
}

func TestLogSession_UsersIsolated(t *testing.T) {
	svc, _ := testService(t)

	if _, err := svc.LogSession("u1", "Math", 30, "", day(2024, 1, 10)); err != nil {
		t.Fatalf("log u1: %v", err)
	}
	if _, err := svc.LogSession("u2", "History", 50, "", day(2024, 1, 10)); err != nil {
		t.Fatalf("log u2: %v", err)
	}

	s1, _ := svc.Stats("u1")
	s2, _ := svc.Stats("u2")
	if s1.TotalMinutes != 30 {
		t.Errorf("u1 TotalMinutes = %d, want 30", s1.TotalMinutes)
	}
	if s2.TotalMinutes != 50 {
		t.Errorf("u2 TotalMinutes = %d, want 50", s2.TotalMinutes)
	}
}
