package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jylee2/exercise-tracker/internal"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleLog() []internal.Exercise {
	return []internal.Exercise{
		{Description: "run", Duration: 30, Date: day(2020, time.January, 1)},
		{Description: "swim", Duration: 45, Date: day(2020, time.June, 15)},
		{Description: "bike", Duration: 60, Date: day(2020, time.December, 31)},
	}
}

func TestFilterLogInclusiveRange(t *testing.T) {
	filtered := FilterLog(sampleLog(), day(2020, time.January, 1), day(2020, time.June, 30))
	assert.Len(t, filtered, 2)
	assert.Equal(t, "run", filtered[0].Description)
	assert.Equal(t, "swim", filtered[1].Description)
}

func TestFilterLogBoundsAreInclusive(t *testing.T) {
	filtered := FilterLog(sampleLog(), day(2020, time.June, 15), day(2020, time.December, 31))
	assert.Len(t, filtered, 2)
	assert.Equal(t, "swim", filtered[0].Description)
	assert.Equal(t, "bike", filtered[1].Description)
}

func TestFilterLogPreservesOrder(t *testing.T) {
	filtered := FilterLog(sampleLog(), day(2019, time.January, 1), day(2021, time.January, 1))
	assert.Len(t, filtered, 3)
	assert.Equal(t, "run", filtered[0].Description)
	assert.Equal(t, "bike", filtered[2].Description)
}

func TestWindowLogLimitTakesFirstEntries(t *testing.T) {
	q := &LogQuery{UserID: "x", From: "2020-01-01", To: "2020-12-31", Limit: "1"}
	entries, err := WindowLog(sampleLog(), q, time.Now())
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "run", entries[0].Description)
}

func TestWindowLogDefaultsMissingBounds(t *testing.T) {
	now := day(2020, time.July, 1)

	// Only "to": from defaults to the epoch.
	entries, err := WindowLog(sampleLog(), &LogQuery{UserID: "x", To: "2020-06-30"}, now)
	assert.NoError(t, err)
	assert.Len(t, entries, 2)

	// Only "from": to defaults to the current moment.
	entries, err = WindowLog(sampleLog(), &LogQuery{UserID: "x", From: "2020-06-01"}, now)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "swim", entries[0].Description)
}

func TestWindowLogNoQueryReturnsAll(t *testing.T) {
	entries, err := WindowLog(sampleLog(), &LogQuery{UserID: "x"}, time.Now())
	assert.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestWindowLogRejectsBadLimit(t *testing.T) {
	_, err := WindowLog(sampleLog(), &LogQuery{UserID: "x", Limit: "abc"}, time.Now())
	assert.Error(t, err)
	_, err = WindowLog(sampleLog(), &LogQuery{UserID: "x", Limit: "-1"}, time.Now())
	assert.Error(t, err)
}

func TestParseDateNormalizesToMidnightUTC(t *testing.T) {
	parsed, err := ParseDate("2020-12-29")
	assert.NoError(t, err)
	assert.Equal(t, day(2020, time.December, 29), parsed)

	// Time-of-day in the input is discarded.
	parsed, err = ParseDate("2020-12-29T15:04:05Z")
	assert.NoError(t, err)
	assert.Equal(t, day(2020, time.December, 29), parsed)

	_, err = ParseDate("not-a-date")
	assert.Error(t, err)
}

func TestBuildExercise(t *testing.T) {
	now := time.Date(2020, time.December, 29, 18, 30, 0, 0, time.UTC)

	req := &ExerciseRequest{UserID: "x", Description: "run", Duration: "30", Date: "2020-12-29"}
	entry, err := BuildExercise(req, now)
	assert.NoError(t, err)
	assert.Equal(t, "run", entry.Description)
	assert.Equal(t, 30, entry.Duration)
	assert.Equal(t, day(2020, time.December, 29), entry.Date)
}

func TestBuildExerciseDefaultsDateToToday(t *testing.T) {
	now := time.Date(2021, time.March, 5, 23, 59, 0, 0, time.UTC)

	req := &ExerciseRequest{UserID: "x", Description: "walk", Duration: "15"}
	entry, err := BuildExercise(req, now)
	assert.NoError(t, err)
	assert.Equal(t, day(2021, time.March, 5), entry.Date)
}

func TestBuildExerciseRejectsNonNumericDuration(t *testing.T) {
	req := &ExerciseRequest{UserID: "x", Description: "run", Duration: "thirty"}
	_, err := BuildExercise(req, time.Now())
	assert.Error(t, err)
}

func TestValidateExerciseRequest(t *testing.T) {
	assert.Error(t, ValidateExerciseRequest(&ExerciseRequest{Description: "run", Duration: "30"}))
	assert.Error(t, ValidateExerciseRequest(&ExerciseRequest{UserID: "x", Duration: "30"}))
	assert.NoError(t, ValidateExerciseRequest(&ExerciseRequest{UserID: "x", Description: "run", Duration: "30"}))
}
