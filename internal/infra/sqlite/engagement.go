package sqlite

import (
	"database/sql"
	"time"

	"github.com/studyflow-app/studyflow/internal/domain"
)

// ─── Streaks ────────────────────────────────────────────────────────────────

// GetStreak returns the user's streak record; a user with no record yet gets
// the zero value, not an error.
func (d *DB) GetStreak(userID string) (domain.Streak, error) {
	var streak domain.Streak
	var lastDate string

	err := d.db.QueryRow(
		`SELECT current_days, longest_days, last_date FROM study_streaks WHERE user_id = ?`, userID,
	).Scan(&streak.CurrentDays, &streak.LongestDays, &lastDate)
	if err == sql.ErrNoRows {
		return domain.Streak{}, nil
	}
	if err != nil {
		return domain.Streak{}, err
	}

	streak.LastDate = parseDay(lastDate)
	return streak, nil
}

// SaveStreak upserts the user's streak record. Last write wins.
func (d *DB) SaveStreak(userID string, s domain.Streak) error {
	_, err := d.db.Exec(
		`INSERT INTO study_streaks (user_id, current_days, longest_days, last_date)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
			current_days=excluded.current_days,
			longest_days=excluded.longest_days,
			last_date=excluded.last_date`,
		userID, s.CurrentDays, s.LongestDays, dayString(s.LastDate),
	)
	return err
}

// ─── Achievement Catalog ────────────────────────────────────────────────────

// UpsertAchievementDef inserts or updates one catalog definition.
func (d *DB) UpsertAchievementDef(def domain.AchievementDef) error {
	_, err := d.db.Exec(
		`INSERT INTO achievements (id, name, description, icon, reward_xp, requirement_type, requirement_value, target_area)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			name=excluded.name,
			description=excluded.description,
			icon=excluded.icon,
			reward_xp=excluded.reward_xp,
			requirement_type=excluded.requirement_type,
			requirement_value=excluded.requirement_value,
			target_area=excluded.target_area`,
		def.ID, def.Name, def.Description, def.Icon, def.RewardXP,
		string(def.Requirement), def.RequirementValue, string(def.TargetArea),
	)
	return err
}

// ListAchievementDefs returns the full catalog.
func (d *DB) ListAchievementDefs() ([]domain.AchievementDef, error) {
	rows, err := d.db.Query(
		`SELECT id, name, description, icon, reward_xp, requirement_type, requirement_value, target_area
		 FROM achievements ORDER BY id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var defs []domain.AchievementDef
	for rows.Next() {
		var def domain.AchievementDef
		var req, area string
		if err := rows.Scan(&def.ID, &def.Name, &def.Description, &def.Icon,
			&def.RewardXP, &req, &def.RequirementValue, &area); err != nil {
			return nil, err
		}
		def.Requirement = domain.RequirementKind(req)
		def.TargetArea = domain.Area(area)
		defs = append(defs, def)
	}
	return defs, rows.Err()
}

// ─── Unlock Records ─────────────────────────────────────────────────────────

// UnlockAchievement records an unlock. Returns false if the pair already
// existed — unlocking is exactly-once via the composite primary key.
func (d *DB) UnlockAchievement(userID, achievementID string, at time.Time) (bool, error) {
	result, err := d.db.Exec(
		`INSERT OR IGNORE INTO user_achievements (user_id, achievement_id, unlocked_at) VALUES (?, ?, ?)`,
		userID, achievementID, at.Unix(),
	)
	if err != nil {
		return false, err
	}
	n, _ := result.RowsAffected()
	return n > 0, nil
}

// ListUnlocked returns all unlock records for a user, newest first.
func (d *DB) ListUnlocked(userID string) ([]domain.UnlockedAchievement, error) {
	rows, err := d.db.Query(
		`SELECT user_id, achievement_id, unlocked_at FROM user_achievements
		 WHERE user_id = ? ORDER BY unlocked_at DESC`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var unlocks []domain.UnlockedAchievement
	for rows.Next() {
		var u domain.UnlockedAchievement
		var at int64
		if err := rows.Scan(&u.UserID, &u.AchievementID, &at); err != nil {
			return nil, err
		}
		u.UnlockedAt = time.Unix(at, 0)
		unlocks = append(unlocks, u)
	}
	return unlocks, rows.Err()
}

// UnlockedIDs returns the set of achievement ids a user holds.
func (d *DB) UnlockedIDs(userID string) (map[string]bool, error) {
	rows, err := d.db.Query(
		`SELECT achievement_id FROM user_achievements WHERE user_id = ?`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = true
	}
	return ids, rows.Err()
}

// ─── Notifications ──────────────────────────────────────────────────────────

// InsertNotification queues a notification and returns its id.
func (d *DB) InsertNotification(n domain.Notification) (int64, error) {
	result, err := d.db.Exec(
		`INSERT INTO notifications (user_id, type, title, body, created_at, shown)
		 VALUES (?, ?, ?, ?, ?, 0)`,
		n.UserID, string(n.Type), n.Title, n.Body, n.CreatedAt.Unix(),
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// ListPendingNotifications returns unshown notifications, oldest first.
func (d *DB) ListPendingNotifications(userID string, limit int) ([]domain.Notification, error) {
	rows, err := d.db.Query(
		`SELECT id, user_id, type, title, body, created_at, shown FROM notifications
		 WHERE user_id = ? AND shown = 0 ORDER BY created_at ASC LIMIT ?`, userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifs []domain.Notification
	for rows.Next() {
		var n domain.Notification
		var typ string
		var createdAt int64
		if err := rows.Scan(&n.ID, &n.UserID, &typ, &n.Title, &n.Body, &createdAt, &n.Shown); err != nil {
			return nil, err
		}
		n.Type = domain.NotificationType(typ)
		n.CreatedAt = time.Unix(createdAt, 0)
		notifs = append(notifs, n)
	}
	return notifs, rows.Err()
}

// MarkNotificationShown marks a notification as shown.
func (d *DB) MarkNotificationShown(id int64) error {
	_, err := d.db.Exec(`UPDATE notifications SET shown = 1 WHERE id = ?`, id)
	return err
}

// NotificationCountToday counts notifications created on the same UTC day
// as now, shown or not.
func (d *DB) NotificationCountToday(userID string, now time.Time) (int, error) {
	dayStart := domain.Day(now)
	dayEnd := dayStart.AddDate(0, 0, 1)

	var count int
	err := d.db.QueryRow(
		`SELECT COUNT(*) FROM notifications WHERE user_id = ? AND created_at >= ? AND created_at < ?`,
		userID, dayStart.Unix(), dayEnd.Unix(),
	).Scan(&count)
	return count, err
}
