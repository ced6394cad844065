package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

var ErrUnparsableTime = errors.New("unparsable time")

// noteSeparator splits the reminder argument into a datetime part and an
// optional note carried back when the reminder fires.
const noteSeparator = "!!!"

// SplitRemindArgs splits "remind" arguments at the first "!!!" into the
// datetime text and the note content, both trimmed.
func SplitRemindArgs(args string) (dateText, content string) {
	if pos := strings.Index(args, noteSeparator); pos >= 0 {
		return strings.TrimSpace(args[:pos]), strings.TrimSpace(args[pos+len(noteSeparator):])
	}
	return strings.TrimSpace(args), ""
}

// remindLayouts are tried literally before falling back to the natural
// language parser. Date-less layouts resolve against now's calendar day.
var remindLayouts = []string{
	"2006/01/02 15:04:05",
	"2006/01/02 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02",
	"2006-01-02",
	"15:04:05",
	"15:04",
}

// ParseRemindAt parses a requested reminder instant. It first tries the
// literal layouts above, then the natural-language parser, then the same
// parser with a "next " prefix. Time-only inputs that land in the past roll
// forward one day. The returned instant is not guaranteed to be in the
// future; callers reject non-future results themselves.
func ParseRemindAt(text string, now time.Time) (time.Time, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, ErrUnparsableTime
	}

	for _, layout := range remindLayouts {
		t, err := time.ParseInLocation(layout, text, now.Location())
		if err != nil {
			continue
		}
		if t.Year() == 0 {
			// Date-less layout: anchor to today, rolling forward if past.
			t = time.Date(now.Year(), now.Month(), now.Day(),
				t.Hour(), t.Minute(), t.Second(), 0, now.Location())
			if !t.After(now) {
				t = t.AddDate(0, 0, 1)
			}
		}
		return t, nil
	}

	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)

	if r, err := w.Parse(text, now); err == nil && r != nil {
		return r.Time, nil
	}
	if r, err := w.Parse("next "+text, now); err == nil && r != nil {
		return r.Time, nil
	}
	return time.Time{}, ErrUnparsableTime
}
