package tracker_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/trivial-time-tracker/internal/codec"
	"github.com/Tiliavir/trivial-time-tracker/internal/query"
	"github.com/Tiliavir/trivial-time-tracker/internal/tracker"
)

var now = time.Date(2021, 2, 17, 12, 30, 45, 0, time.UTC)

func newTracker(t *testing.T, content string) *tracker.Tracker {
	t.Helper()
	path := filepath.Join(t.TempDir(), "activities.log")
	if content != "" {
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	f := codec.NewFormat(codec.Minute)
	f.Location = time.UTC
	tr := tracker.New(path, f)
	tr.Now = func() time.Time { return now }
	return tr
}

func fileContent(t *testing.T, tr *tracker.Tracker) string {
	t.Helper()
	data, err := os.ReadFile(tr.Path)
	require.NoError(t, err)
	return string(data)
}

func strPtr(s string) *string { return &s }

func TestStartCreatesFile(t *testing.T) {
	tr := newTracker(t, "")

	a, stopped, err := tr.Start("p", "d", time.Time{})
	require.NoError(t, err)
	assert.Empty(t, stopped)
	assert.Equal(t, time.Date(2021, 2, 17, 12, 30, 0, 0, time.UTC), a.Start)
	assert.Equal(t, "2021-02-17 12:30 | p | d\n", fileContent(t, tr))
}

func TestStartStopsRunningActivities(t *testing.T) {
	tr := newTracker(t, "malformed line\n"+
		"2021-02-17 08:00 | a | one\n"+
		"2021-02-17 09:00   |  b  | two\n")

	at := time.Date(2021, 2, 17, 10, 0, 0, 0, time.UTC)
	_, stopped, err := tr.Start("c", "three", at)
	require.NoError(t, err)
	assert.Len(t, stopped, 2)
	assert.Equal(t, "malformed line\n"+
		"2021-02-17 08:00 - 2021-02-17 10:00 | a | one\n"+
		"2021-02-17 09:00 - 2021-02-17 10:00 | b | two\n"+
		"2021-02-17 10:00 | c | three\n", fileContent(t, tr))
}

func TestStopRequiresFile(t *testing.T) {
	tr := newTracker(t, "")
	_, err := tr.Stop(time.Time{})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestStopKeepsStoppedLinesVerbatim(t *testing.T) {
	tr := newTracker(t, "2021-02-17 08:00 - 2021-02-17 09:00 |a|done\n"+
		"2021-02-17 09:00 | b | running\n")

	stopped, err := tr.Stop(time.Time{})
	require.NoError(t, err)
	require.Len(t, stopped, 1)
	assert.Equal(t, "2021-02-17 08:00 - 2021-02-17 09:00 |a|done\n"+
		"2021-02-17 09:00 - 2021-02-17 12:30 | b | running\n", fileContent(t, tr))
}

func TestChangeOnlyMarksDifferingLines(t *testing.T) {
	content := "2021-02-17 09:00   |   b   |   running\n"
	tr := newTracker(t, content)

	changed, err := tr.Change(tracker.ChangeOptions{Project: strPtr("b")})
	require.NoError(t, err)
	assert.Empty(t, changed)
	assert.Equal(t, content, fileContent(t, tr))

	changed, err = tr.Change(tracker.ChangeOptions{
		Description: strPtr("new | text"),
		Start:       time.Date(2021, 2, 17, 9, 15, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, changed, 1)
	assert.Equal(t, "2021-02-17 09:15 | b | new \\| text\n", fileContent(t, tr))
}

func TestCancel(t *testing.T) {
	tr := newTracker(t, "garbage\n"+
		"2021-02-17 08:00 - 2021-02-17 09:00 | a | done\n"+
		"2021-02-17 09:00 | b | running\n")

	canceled, err := tr.Cancel()
	require.NoError(t, err)
	require.Len(t, canceled, 1)
	assert.Equal(t, "b", canceled[0].Project)
	assert.Equal(t, "garbage\n2021-02-17 08:00 - 2021-02-17 09:00 | a | done\n", fileContent(t, tr))
}

func TestContinue(t *testing.T) {
	tr := newTracker(t, "2021-02-17 08:00 - 2021-02-17 09:00 | a | one\n"+
		"2021-02-17 09:00 - 2021-02-17 10:00 | b | two\n")

	a, _, err := tr.Continue(1, nil, nil, time.Date(2021, 2, 17, 11, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "a", a.Project)
	assert.Equal(t, "one", a.Description)

	a, stopped, err := tr.Continue(0, nil, strPtr("other"), time.Date(2021, 2, 17, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "a", a.Project)
	assert.Equal(t, "other", a.Description)
	require.Len(t, stopped, 1)
	assert.Equal(t, "a", stopped[0].Project)

	_, _, err = tr.Continue(10, nil, nil, time.Time{})
	assert.Error(t, err)
}

func TestContinueEmptyLog(t *testing.T) {
	tr := newTracker(t, "garbage\n")
	_, _, err := tr.Continue(0, nil, nil, time.Time{})
	assert.ErrorIs(t, err, tracker.ErrNothingToContinue)
}

func TestListAndProjects(t *testing.T) {
	tr := newTracker(t, "2021-02-17 09:00 - 2021-02-17 10:00 | web | b\n"+
		"2021-02-16 08:00 - 2021-02-16 09:00 | api | a\n"+
		"2021-02-17 11:00 | web | c\n")

	list, err := tr.List(query.Filter{Date: now}, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "b", list[0].Description)

	projects, err := tr.Projects(false)
	require.NoError(t, err)
	assert.Equal(t, []string{"api", "web"}, projects)

	projects, err = tr.Projects(true)
	require.NoError(t, err)
	assert.Equal(t, []string{"web"}, projects)

	pairs, err := tr.Last(2)
	require.NoError(t, err)
	assert.Equal(t, []query.Pair{{Description: "b", Project: "web"}, {Description: "c", Project: "web"}}, pairs)
}

func TestStatus(t *testing.T) {
	// 2021-02-17 is a Wednesday.
	tr := newTracker(t, "2021-01-31 09:00 - 2021-01-31 10:00 | p | last month\n"+
		"2021-02-08 09:00 - 2021-02-08 10:00 | p | last week\n"+
		"2021-02-15 09:00 - 2021-02-15 11:00 | p | this week\n"+
		"2021-02-17 09:00 - 2021-02-17 10:00 | p | today\n"+
		"2021-02-17 12:00 | q | running\n")

	st, err := tr.Status("", 0)
	require.NoError(t, err)
	require.NotNil(t, st.Current)
	assert.Equal(t, "q", st.Current.Project)
	assert.Equal(t, 30*time.Minute+45*time.Second, st.Elapsed)
	assert.Equal(t, time.Hour+st.Elapsed, st.Today)
	assert.Equal(t, 3*time.Hour+st.Elapsed, st.CurrentWeek)
	assert.Equal(t, 4*time.Hour+st.Elapsed, st.CurrentMonth)

	st, err = tr.Status("p", 0)
	require.NoError(t, err)
	assert.Nil(t, st.Current)
	assert.Equal(t, time.Hour, st.Today)
}

func TestReport(t *testing.T) {
	tr := newTracker(t, "2021-02-17 08:00 - 2021-02-17 09:00 | b | x\n"+
		"2021-02-17 09:00 - 2021-02-17 09:30 | a | y\n"+
		"2021-02-17 10:00 - 2021-02-17 10:15 | b | x\n"+
		"2021-02-17 11:00 - 2021-02-17 11:20 | b | z\n")

	r, err := tr.Report(query.Filter{}, 0)
	require.NoError(t, err)
	require.Len(t, r.Projects, 2)
	assert.Equal(t, "a", r.Projects[0].Project)
	assert.Equal(t, 30*time.Minute, r.Projects[0].Total)
	assert.Equal(t, "b", r.Projects[1].Project)
	assert.Equal(t, 95*time.Minute, r.Projects[1].Total)
	assert.Equal(t, []tracker.DescriptionReport{
		{Description: "x", Total: 75 * time.Minute},
		{Description: "z", Total: 20 * time.Minute},
	}, r.Projects[1].Descriptions)
	assert.Equal(t, 125*time.Minute, r.Total)

	rounded, err := tr.Report(query.Filter{Project: "b"}, time.Hour)
	require.NoError(t, err)
	require.Len(t, rounded.Projects, 1)
	assert.Equal(t, time.Hour, rounded.Total)
}

func TestCheck(t *testing.T) {
	tr := newTracker(t, "2021-02-17 08:00 | a\nnot valid\nasb - 2021- | project\n")

	bad, err := tr.Check()
	require.NoError(t, err)
	require.Len(t, bad, 2)
	assert.Equal(t, 2, bad[0].Number)
	assert.ErrorIs(t, bad[0].Err, codec.ErrGeneralParse)
	assert.Equal(t, 3, bad[1].Number)
	assert.ErrorIs(t, bad[1].Err, codec.ErrDateTimeParse)
}

func TestSanity(t *testing.T) {
	tr := newTracker(t, "2021-02-17 10:00 - 2021-02-17 09:00 | a | negative\n"+
		"2021-02-17 11:00 - 2021-02-17 12:30 | b | overlapping\n"+
		"2021-02-17 12:00 - 2021-02-17 13:00 | c | fine\n")

	issues, err := tr.Sanity()
	require.NoError(t, err)
	require.Len(t, issues, 2)
	assert.Equal(t, 1, issues[0].Line)
	assert.Equal(t, tracker.ProblemNegativeDuration, issues[0].Problem)
	assert.Equal(t, 2, issues[1].Line)
	assert.Equal(t, tracker.ProblemOverlap, issues[1].Problem)
}
