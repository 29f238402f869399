package response

import "github.com/jylee2/exercise-tracker/internal"

// DateLayout matches the day-of-week rendering the existing client expects,
// e.g. "Tue Dec 29 2020".
const DateLayout = "Mon Jan 02 2006"

type UserSummary struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
}

type ExerciseEntry struct {
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

type ExerciseAdded struct {
	ID          string `json:"_id"`
	Username    string `json:"username"`
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

type UserLog struct {
	ID       string          `json:"_id"`
	Username string          `json:"username"`
	Log      []ExerciseEntry `json:"log"`
	Count    int             `json:"count"`
}

func NewUserSummary(u *internal.User) UserSummary {
	return UserSummary{ID: u.ID.Hex(), Username: u.Username}
}

func NewUserSummaries(users []internal.User) []UserSummary {
	summaries := make([]UserSummary, 0, len(users))
	for i := range users {
		summaries = append(summaries, NewUserSummary(&users[i]))
	}
	return summaries
}

func NewExerciseEntry(e *internal.Exercise) ExerciseEntry {
	return ExerciseEntry{
		Description: e.Description,
		Duration:    e.Duration,
		Date:        e.Date.Format(DateLayout),
	}
}

func NewExerciseAdded(u *internal.User, e *internal.Exercise) ExerciseAdded {
	return ExerciseAdded{
		ID:          u.ID.Hex(),
		Username:    u.Username,
		Description: e.Description,
		Duration:    e.Duration,
		Date:        e.Date.Format(DateLayout),
	}
}

// NewUserLog shapes the log response. Count is derived from the entries
// actually returned, never persisted.
func NewUserLog(u *internal.User, entries []internal.Exercise) UserLog {
	log := make([]ExerciseEntry, 0, len(entries))
	for i := range entries {
		log = append(log, NewExerciseEntry(&entries[i]))
	}
	return UserLog{
		ID:       u.ID.Hex(),
		Username: u.Username,
		Log:      log,
		Count:    len(log),
	}
}

// UsernameTaken is the legacy conflict payload; its wording is part of the
// wire contract.
func UsernameTaken() *internal.AppError {
	return internal.NewAppError(409, "Username already taken")
}

func BadRequest(msg string) *internal.AppError {
	return internal.NewAppError(400, msg)
}

func NotFound(msg string) *internal.AppError {
	return internal.NewAppError(404, msg)
}

func InternalError(msg string) *internal.AppError {
	return internal.NewAppError(500, msg)
}

func NewAppError(status int, msg string) *internal.AppError {
	return internal.NewAppError(status, msg)
}
