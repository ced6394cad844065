package domain

// SystemKey is the reserved identity key for the singleton system record.
const SystemKey = "_"

// CurrencyData caches the last successful CoinGecko refresh.
// UpdateAt == 0 means the cache was never populated; conversion commands
// must refuse to run in that state instead of computing with zero rates.
type CurrencyData struct {
	Btc2USD  float64 `json:"btc2usd"`
	Btc2JPY  float64 `json:"btc2jpy"`
	USD2JPY  float64 `json:"usd2jpy"`
	UpdateAt int64   `json:"updateAt"`
}

// Populated reports whether the cache holds usable rates.
func (c CurrencyData) Populated() bool { return c.UpdateAt != 0 }

// HimawariCache memoizes the most recent generated satellite image URL,
// keyed by the source basetime, so identical requests skip regeneration.
type HimawariCache struct {
	LastDate int64  `json:"lastHimawariDate"`
	LastURL  string `json:"lastHimawariUrl"`
}

// Reminder is a pending scheduled notification. It captures enough of the
// originating event to compose a correctly threaded reply later.
type Reminder struct {
	RemindAt    int64      `json:"remindAt"` // epoch milliseconds
	EventID     string     `json:"eventId"`
	EventPubkey string     `json:"eventPubkey"`
	EventKind   int        `json:"eventKind"`
	EventTags   [][]string `json:"eventTags"` // e-tags of the original event
	Content     string     `json:"content"`
}

// SystemData is the singleton record stored under SystemKey.
type SystemData struct {
	Currency      CurrencyData  `json:"currencyData"`
	Himawari      HimawariCache `json:"himawariCache"`
	Reminders     []Reminder    `json:"reminderList"`
	ResponseTimer int64         `json:"responseTimer"`
	StatusTimer   int64         `json:"statusTimer"`
}

// LoginBonus tracks a user's login streak.
type LoginBonus struct {
	LastLoginTime    int64 `json:"lastLoginTime"`
	ConsecutiveCount int   `json:"consecutiveLoginCount"`
	TotalCount       int   `json:"totalLoginCount"`
}

// UserData is the per-sender record, created lazily on first touch.
type UserData struct {
	Counter     int         `json:"counter"`
	FailedTimer int64       `json:"failedTimer"`
	InfoTimer   int64       `json:"infoTimer"`
	Login       *LoginBonus `json:"loginBonus,omitempty"`
}

// NewSystemData returns a default-valued system record.
func NewSystemData() *SystemData { return &SystemData{} }

// NewUserData returns a default-valued user record.
func NewUserData() *UserData { return &UserData{} }

// RemindersFor returns the pending reminders owned by pubkey, in insertion order.
func (s *SystemData) RemindersFor(pubkey string) []Reminder {
	var out []Reminder
	for _, r := range s.Reminders {
		if r.EventPubkey == pubkey {
			out = append(out, r)
		}
	}
	return out
}

// DeleteReminders removes every reminder owned by pubkey that targets eventID.
// It returns the number of removed records.
func (s *SystemData) DeleteReminders(pubkey, eventID string) int {
	kept := s.Reminders[:0]
	removed := 0
	for _, r := range s.Reminders {
		if r.EventPubkey == pubkey && r.EventID == eventID {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	s.Reminders = kept
	return removed
}

// PopDueReminders removes and returns all reminders with RemindAt <= nowMillis.
// Due entries come back in insertion order. Because removal and return happen
// in the same pass, a due reminder is delivered exactly once even if the sweep
// runs again immediately.
func (s *SystemData) PopDueReminders(nowMillis int64) []Reminder {
	var due []Reminder
	kept := s.Reminders[:0]
	for _, r := range s.Reminders {
		if r.RemindAt <= nowMillis {
			due = append(due, r)
			continue
		}
		kept = append(kept, r)
	}
	s.Reminders = kept
	return due
}
