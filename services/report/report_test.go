package report

import (
	"path/filepath"
	"testing"
	"time"

	activityModel "activity-tracker/models/activity"
	statusModel "activity-tracker/models/activity_status"
	updateModel "activity-tracker/models/activity_update"
	userModel "activity-tracker/models/user"

	"activity-tracker/database/seeders"
	"activity-tracker/services/clock"
	"activity-tracker/services/query"
	"activity-tracker/types/apperrors"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "report_test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&userModel.User{},
		&statusModel.ActivityStatus{},
		&activityModel.Activity{},
		&updateModel.ActivityUpdate{},
	))
	require.NoError(t, seeders.SeedActivityStatuses(db))
	return db
}

func statusID(t *testing.T, db *gorm.DB, name string) uint {
	t.Helper()

	var status statusModel.ActivityStatus
	require.NoError(t, db.Where("name = ?", name).First(&status).Error)
	return status.ID
}

func seedUser(t *testing.T, db *gorm.DB, name, email string) userModel.User {
	t.Helper()

	u := userModel.User{Name: name, Email: email}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func seedActivity(t *testing.T, db *gorm.DB, title string, creator userModel.User) activityModel.Activity {
	t.Helper()

	act := activityModel.Activity{
		Title:     title,
		StatusID:  statusID(t, db, statusModel.StatusPending),
		IsActive:  true,
		CreatedBy: creator.ID,
	}
	require.NoError(t, db.Create(&act).Error)
	return act
}

func seedUpdate(t *testing.T, db *gorm.DB, act activityModel.Activity, author userModel.User, sid uint, at time.Time) updateModel.ActivityUpdate {
	t.Helper()

	upd := updateModel.ActivityUpdate{
		ActivityID: act.ID,
		UserID:     author.ID,
		StatusID:   sid,
		CreatedAt:  at,
		UpdatedAt:  at,
	}
	require.NoError(t, db.Create(&upd).Error)
	return upd
}

func timePtr(v time.Time) *time.Time { return &v }

// seedHistory writes 50 updates across 5 activities, 3 users and 10
// consecutive days starting at base: update i lands on day i%10, on
// activity i%5, by user i%3, done when i is even and pending otherwise.
func seedHistory(t *testing.T, db *gorm.DB, base time.Time) ([]activityModel.Activity, []userModel.User) {
	t.Helper()

	users := []userModel.User{
		seedUser(t, db, "Alice", "alice@example.com"),
		seedUser(t, db, "Bob", "bob@example.com"),
		seedUser(t, db, "Carol", "carol@example.com"),
	}
	activities := make([]activityModel.Activity, 0, 5)
	for _, title := range []string{"Alpha", "Beta", "Gamma", "Delta", "Epsilon"} {
		activities = append(activities, seedActivity(t, db, title, users[0]))
	}

	doneID := statusID(t, db, statusModel.StatusDone)
	pendingID := statusID(t, db, statusModel.StatusPending)
	for i := 0; i < 50; i++ {
		sid := doneID
		if i%2 == 1 {
			sid = pendingID
		}
		at := base.AddDate(0, 0, i%10).Add(time.Duration(i) * time.Minute)
		seedUpdate(t, db, activities[i%5], users[i%3], sid, at)
	}
	return activities, users
}

func TestCountUpdatesByStatus(t *testing.T) {
	db := newTestDB(t)
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.Local)
	r := New(db, clock.Fixed{T: base})
	seedHistory(t, db, base)

	f := query.UpdateFilter{
		StartDate: timePtr(base),
		EndDate:   timePtr(base.AddDate(0, 0, 9)),
	}
	counts, err := r.CountUpdatesByStatus(f)
	require.NoError(t, err)
	require.EqualValues(t, 25, counts[statusID(t, db, statusModel.StatusDone)])
	require.EqualValues(t, 25, counts[statusID(t, db, statusModel.StatusPending)])
}

func TestCountUpdatesByStatusEmptyWindow(t *testing.T) {
	db := newTestDB(t)
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.Local)
	r := New(db, clock.Fixed{T: base})
	seedHistory(t, db, base)

	f := query.UpdateFilter{
		StartDate: timePtr(base.AddDate(0, 1, 0)),
		EndDate:   timePtr(base.AddDate(0, 1, 5)),
	}
	counts, err := r.CountUpdatesByStatus(f)
	require.NoError(t, err)
	require.Empty(t, counts)
}

func TestDailyBreakdownOverThreeDayWindow(t *testing.T) {
	db := newTestDB(t)
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.Local)
	r := New(db, clock.Fixed{T: base})
	seedHistory(t, db, base)

	f := query.UpdateFilter{
		StartDate: timePtr(base),
		EndDate:   timePtr(base.AddDate(0, 0, 2)),
	}
	entries, err := r.DailyBreakdown(f)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	var total, done, pending int64
	for i, entry := range entries {
		require.Equal(t, clock.DateString(base.AddDate(0, 0, i)), entry.Date)
		// 50 updates over day keys 0..9 puts five on each day.
		require.EqualValues(t, 5, entry.Total)
		require.Equal(t, entry.Total, entry.Done+entry.Pending)
		total += entry.Total
		done += entry.Done
		pending += entry.Pending
	}
	require.EqualValues(t, 15, total)
	require.EqualValues(t, 15, done+pending)
}

func TestDailyBreakdownSkipsEmptyDays(t *testing.T) {
	db := newTestDB(t)
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.Local)
	r := New(db, clock.Fixed{T: base})

	alice := seedUser(t, db, "Alice", "alice@example.com")
	act := seedActivity(t, db, "Sparse", alice)
	doneID := statusID(t, db, statusModel.StatusDone)
	seedUpdate(t, db, act, alice, doneID, base)
	seedUpdate(t, db, act, alice, doneID, base.AddDate(0, 0, 4))

	f := query.UpdateFilter{
		StartDate: timePtr(base),
		EndDate:   timePtr(base.AddDate(0, 0, 6)),
	}
	entries, err := r.DailyBreakdown(f)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, clock.DateString(base), entries[0].Date)
	require.Equal(t, clock.DateString(base.AddDate(0, 0, 4)), entries[1].Date)
}

func TestDashboardSnapshot(t *testing.T) {
	db := newTestDB(t)
	today := time.Date(2026, 3, 10, 15, 0, 0, 0, time.Local)
	r := New(db, clock.Fixed{T: today})

	base := today.AddDate(0, 0, -9)
	activities, _ := seedHistory(t, db, base)

	snap, err := r.DashboardSnapshot()
	require.NoError(t, err)
	require.EqualValues(t, 5, snap.TotalActivities)
	require.EqualValues(t, 50, snap.TotalUpdates)
	// Day key 9 of the seeded history is today; i%10==9 happens 5 times.
	require.EqualValues(t, 5, snap.UpdatesToday)

	// Pointers were seeded as pending and never moved.
	pendingID := statusID(t, db, statusModel.StatusPending)
	require.EqualValues(t, len(activities), snap.CountsByStatus[pendingID])

	require.Len(t, snap.Statuses, 4)
	require.Equal(t, statusModel.StatusPending, snap.Statuses[0].Name)
	require.Equal(t, "PENDING", snap.Statuses[0].Label)

	require.Len(t, snap.RecentUpdates, 8)
	for i := 1; i < len(snap.RecentUpdates); i++ {
		prev, cur := snap.RecentUpdates[i-1], snap.RecentUpdates[i]
		require.False(t, prev.CreatedAt.Before(cur.CreatedAt))
	}
}

func TestDashboardSnapshotEmptyDatabase(t *testing.T) {
	db := newTestDB(t)
	r := New(db, clock.Fixed{T: time.Now()})

	snap, err := r.DashboardSnapshot()
	require.NoError(t, err)
	require.Zero(t, snap.TotalActivities)
	require.Zero(t, snap.TotalUpdates)
	require.Zero(t, snap.UpdatesToday)
	require.Empty(t, snap.CountsByStatus)
	require.Len(t, snap.Statuses, 4)
	require.NotNil(t, snap.RecentUpdates)
	require.Empty(t, snap.RecentUpdates)
}

func TestGenerateActivityHistory(t *testing.T) {
	db := newTestDB(t)
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.Local)
	r := New(db, clock.Fixed{T: base})
	activities, _ := seedHistory(t, db, base)

	f := query.UpdateFilter{
		StartDate: timePtr(base),
		EndDate:   timePtr(base.AddDate(0, 0, 9)),
	}
	data, err := r.Generate(f, ReportActivityHistory)
	require.NoError(t, err)

	entries, ok := data.([]ActivityHistoryEntry)
	require.True(t, ok)
	require.Len(t, entries, len(activities))

	var total int
	for _, entry := range entries {
		require.NotEmpty(t, entry.Activity.Title)
		require.Len(t, entry.Updates, 10)
		require.EqualValues(t, 10, entry.DoneCount+entry.PendingCount)
		total += len(entry.Updates)
	}
	require.Equal(t, 50, total)
}

func TestGenerateUserActivity(t *testing.T) {
	db := newTestDB(t)
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.Local)
	r := New(db, clock.Fixed{T: base})
	_, users := seedHistory(t, db, base)

	f := query.UpdateFilter{
		StartDate: timePtr(base),
		EndDate:   timePtr(base.AddDate(0, 0, 9)),
	}
	data, err := r.Generate(f, ReportUserActivity)
	require.NoError(t, err)

	entries, ok := data.([]UserActivityEntry)
	require.True(t, ok)
	require.Len(t, entries, len(users))

	var total int64
	for _, entry := range entries {
		require.NotEmpty(t, entry.User.Name)
		require.EqualValues(t, len(entry.Updates), entry.TotalUpdates)
		total += entry.TotalUpdates
	}
	require.EqualValues(t, 50, total)
}

func TestGenerateSummary(t *testing.T) {
	db := newTestDB(t)
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.Local)
	r := New(db, clock.Fixed{T: base})
	seedHistory(t, db, base)

	f := query.UpdateFilter{
		StartDate: timePtr(base),
		EndDate:   timePtr(base.AddDate(0, 0, 9)),
	}
	data, err := r.Generate(f, ReportSummary)
	require.NoError(t, err)

	summary, ok := data.(SummaryReport)
	require.True(t, ok)
	require.EqualValues(t, 50, summary.TotalUpdates)
	require.EqualValues(t, 25, summary.DoneCount)
	require.EqualValues(t, 25, summary.PendingCount)
	require.EqualValues(t, 5, summary.ActivitiesUpdated)
	require.EqualValues(t, 3, summary.UsersActive)
	require.Len(t, summary.DailyBreakdown, 10)

	var daily int64
	for _, entry := range summary.DailyBreakdown {
		daily += entry.Total
	}
	require.EqualValues(t, 50, daily)
}

func TestGenerateUnknownReportType(t *testing.T) {
	db := newTestDB(t)
	r := New(db, clock.Fixed{T: time.Now()})

	_, err := r.Generate(query.UpdateFilter{}, ReportType("weekly"))
	ve := apperrors.AsValidation(err)
	require.NotNil(t, ve)
	require.Contains(t, ve.Fields, "report_type")
}

func TestGenerateEmptyWindowYieldsZeroSummary(t *testing.T) {
	db := newTestDB(t)
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.Local)
	r := New(db, clock.Fixed{T: base})

	f := query.UpdateFilter{
		StartDate: timePtr(base),
		EndDate:   timePtr(base.AddDate(0, 0, 2)),
	}
	data, err := r.Generate(f, ReportSummary)
	require.NoError(t, err)

	summary, ok := data.(SummaryReport)
	require.True(t, ok)
	require.Zero(t, summary.TotalUpdates)
	require.Zero(t, summary.ActivitiesUpdated)
	require.Zero(t, summary.UsersActive)
	require.Empty(t, summary.DailyBreakdown)
}
