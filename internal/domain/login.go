package domain

import "time"

// LoginOutcome reports how a login-bonus attempt was resolved.
type LoginOutcome int

const (
	// LoginFuture means the event timestamp was too far ahead of the clock;
	// nothing was mutated.
	LoginFuture LoginOutcome = iota
	// LoginFirst means this was the user's first login ever.
	LoginFirst
	// LoginGranted means a new calendar day's bonus was granted.
	LoginGranted
	// LoginAlready means the user already logged in today; nothing was mutated.
	LoginAlready
)

// futureSkewSec is the tolerated clock skew for inbound event timestamps.
const futureSkewSec = 10

// ApplyLoginBonus evaluates a login-bonus attempt at eventAt (unix seconds)
// against now, mutating u only when a bonus is actually granted.
//
// Streak rules work on calendar-day boundaries in now's location: a streak
// continues if the previous login was yesterday or later, and resets to zero
// (then increments, so the user reads 1) if more than one full day elapsed.
func ApplyLoginBonus(u *UserData, eventAt int64, now time.Time) LoginOutcome {
	if eventAt >= now.Unix()+futureSkewSec {
		return LoginFuture
	}

	if u.Login == nil {
		u.Login = &LoginBonus{
			LastLoginTime:    eventAt,
			ConsecutiveCount: 1,
			TotalCount:       1,
		}
		return LoginFirst
	}

	lb := u.Login
	lastLogin := time.Unix(lb.LastLoginTime, 0).In(now.Location())
	currentDay := StartOfDay(now)
	yesterday := currentDay.AddDate(0, 0, -1)

	if !lastLogin.Before(currentDay) {
		return LoginAlready
	}
	if lastLogin.Before(yesterday) {
		lb.ConsecutiveCount = 0
	}
	lb.TotalCount++
	lb.ConsecutiveCount++
	lb.LastLoginTime = eventAt
	return LoginGranted
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Greeting returns the time-of-day greeting used across replies.
func Greeting(t time.Time) string {
	switch h := t.Hour(); {
	case h >= 4 && h < 11:
		return "おはようございます！"
	case h >= 11 && h < 17:
		return "こんにちは！"
	default:
		return "こんばんは！"
	}
}
