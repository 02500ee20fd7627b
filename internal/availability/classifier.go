// Package availability decides whether a user just transitioned from busy to
// free, by scanning their schedule sources against a trailing time window.
package availability

import (
	"context"
	"time"

	"github.com/quedadaNotification/internal/schedule"
)

// ScheduleSource is the slice of the document store the classifier reads.
type ScheduleSource interface {
	PersonalEventEndedIn(ctx context.Context, userID string, win schedule.Window) (bool, error)
	Terms(ctx context.Context, userID string) ([]string, error)
	Subjects(ctx context.Context, userID, termID string) ([]string, error)
	ExamEndedIn(ctx context.Context, userID, termID, subjectID string, win schedule.Window) (bool, error)
	Classes(ctx context.Context, userID, termID, subjectID string) ([]schedule.RecurringWeeklySlot, error)
}

// Classifier is stateless: freedom is re-derived fresh each tick from the
// store, so a member freed in one window is not re-flagged in the next unless
// a new item ends there.
type Classifier struct {
	src ScheduleSource
	loc *time.Location
}

func NewClassifier(src ScheduleSource, loc *time.Location) *Classifier {
	return &Classifier{src: src, loc: loc}
}

// JustBecameFree reports whether any of the user's time-bound activities
// ended inside the window. Checks personal events first, then exams, then
// recurring classes, short-circuiting on the first match. Assignments carry
// due times, not busy periods, and are not consulted.
func (c *Classifier) JustBecameFree(ctx context.Context, userID string, win schedule.Window) (bool, error) {
	ended, err := c.src.PersonalEventEndedIn(ctx, userID, win)
	if err != nil {
		return false, err
	}
	if ended {
		return true, nil
	}

	terms, err := c.src.Terms(ctx, userID)
	if err != nil {
		return false, err
	}

	for _, term := range terms {
		subjects, err := c.src.Subjects(ctx, userID, term)
		if err != nil {
			return false, err
		}
		for _, subject := range subjects {
			ended, err := c.src.ExamEndedIn(ctx, userID, term, subject, win)
			if err != nil {
				return false, err
			}
			if ended {
				return true, nil
			}
		}
	}

	for _, term := range terms {
		subjects, err := c.src.Subjects(ctx, userID, term)
		if err != nil {
			return false, err
		}
		for _, subject := range subjects {
			slots, err := c.src.Classes(ctx, userID, term, subject)
			if err != nil {
				return false, err
			}
			for _, slot := range slots {
				if slot.EndsWithin(win, c.loc) {
					return true, nil
				}
			}
		}
	}

	return false, nil
}
