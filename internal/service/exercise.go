package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jylee2/exercise-tracker/internal"
	"github.com/jylee2/exercise-tracker/internal/storage"
)

// Date inputs are calendar dates; any time-of-day component is discarded.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"Jan 2 2006",
	"January 2, 2006",
}

type ExerciseRequest struct {
	UserID      string `form:"userId" json:"userId" validate:"required"`
	Description string `form:"description" json:"description" validate:"required"`
	Duration    string `form:"duration" json:"duration" validate:"required"`
	Date        string `form:"date" json:"date" validate:"omitempty"`
}

type LogQuery struct {
	UserID string `form:"userId" validate:"required"`
	From   string `form:"from" validate:"omitempty"`
	To     string `form:"to" validate:"omitempty"`
	Limit  string `form:"limit" validate:"omitempty"`
}

func ValidateExerciseRequest(req *ExerciseRequest) error {
	return validate.Struct(req)
}

func ValidateLogQuery(q *LogQuery) error {
	return validate.Struct(q)
}

// ParseDate parses a calendar date and normalizes it to midnight UTC.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return TruncateToDay(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

func TruncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// BuildExercise turns a validated request into an entry, defaulting the date
// to the current day when none is supplied.
func BuildExercise(req *ExerciseRequest, now time.Time) (*internal.Exercise, error) {
	duration, err := strconv.Atoi(req.Duration)
	if err != nil {
		return nil, fmt.Errorf("duration must be an integer: %w", err)
	}

	date := TruncateToDay(now)
	if req.Date != "" {
		if date, err = ParseDate(req.Date); err != nil {
			return nil, err
		}
	}

	return &internal.Exercise{
		Description: req.Description,
		Duration:    duration,
		Date:        date,
	}, nil
}

func AppendExercise(ctx context.Context, users storage.UserRepository, userID string, entry *internal.Exercise) (*internal.User, error) {
	return users.AppendExercise(ctx, userID, entry)
}

// FilterLog returns the entries whose date, taken as epoch milliseconds at
// midnight UTC, falls within [from, to]. The filter is stable: log order is
// preserved.
func FilterLog(log []internal.Exercise, from, to time.Time) []internal.Exercise {
	fromMillis := from.UnixMilli()
	toMillis := to.UnixMilli()

	filtered := make([]internal.Exercise, 0, len(log))
	for _, e := range log {
		millis := e.Date.UnixMilli()
		if millis >= fromMillis && millis <= toMillis {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// WindowLog applies the optional from/to range and head-limit of a log query.
// A missing bound defaults to the epoch on the left and the current moment on
// the right. The limit keeps the first N entries of the filtered sequence, not
// the most recent N.
func WindowLog(log []internal.Exercise, q *LogQuery, now time.Time) ([]internal.Exercise, error) {
	entries := log

	if q.From != "" || q.To != "" {
		from := time.UnixMilli(0).UTC()
		to := now
		var err error
		if q.From != "" {
			if from, err = ParseDate(q.From); err != nil {
				return nil, fmt.Errorf("invalid 'from': %w", err)
			}
		}
		if q.To != "" {
			if to, err = ParseDate(q.To); err != nil {
				return nil, fmt.Errorf("invalid 'to': %w", err)
			}
		}
		entries = FilterLog(entries, from, to)
	}

	if q.Limit != "" {
		limit, err := strconv.Atoi(q.Limit)
		if err != nil || limit < 0 {
			return nil, fmt.Errorf("limit must be a non-negative integer, got %q", q.Limit)
		}
		if limit < len(entries) {
			entries = entries[:limit]
		}
	}

	return entries, nil
}
