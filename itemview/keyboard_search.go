package itemview

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
)

const defaultSearchTimeout = 1000 * time.Millisecond

// KeyboardSearchManager turns typed text into jumps to matching items.
// Keys typed within the timeout of each other extend the same search.
type KeyboardSearchManager struct {
	buffer    string
	lastMatch string
	lastInput time.Time
	hasInput  bool

	timeout time.Duration
	now     func() time.Time
	log     zerolog.Logger
}

func NewKeyboardSearchManager() *KeyboardSearchManager {
	return &KeyboardSearchManager{
		timeout: defaultSearchTimeout,
		now:     time.Now,
		log:     zerolog.Nop(),
	}
}

func (k *KeyboardSearchManager) SetTimeout(d time.Duration) {
	if d <= 0 {
		d = defaultSearchTimeout
	}
	k.timeout = d
}

func (k *KeyboardSearchManager) Timeout() time.Duration {
	return k.timeout
}

// SetClock replaces the time source, nil restores time.Now.
func (k *KeyboardSearchManager) SetClock(now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	k.now = now
}

func (k *KeyboardSearchManager) SetLogger(l zerolog.Logger) {
	k.log = l
}

// Buffer returns the text typed so far in the running search.
func (k *KeyboardSearchManager) Buffer() string {
	return k.buffer
}

// IsSearching reports whether typed text is pending.
func (k *KeyboardSearchManager) IsSearching() bool {
	return k.buffer != ""
}

// CancelSearch drops the typed text. The next key starts a new search.
func (k *KeyboardSearchManager) CancelSearch() {
	k.buffer = ""
}

// AddKeys appends text to the search and returns the item it leads to, or -1.
//
// The whole buffer is matched starting at the current item. When that fails
// and the buffer is a single repeated character, the search cycles through the
// items matching that character starting after the current item, so pressing
// the same key again moves on to the next match.
func (k *KeyboardSearchManager) AddKeys(text string, current int, model Model) int {
	if text == "" {
		return -1
	}

	now := k.now()
	newSearch := !k.hasInput || k.buffer == "" || now.Sub(k.lastInput) > k.timeout
	if newSearch {
		k.buffer = ""
		k.lastMatch = ""
		if text == " " {
			return -1
		}
	}

	k.buffer += text
	k.lastInput = now
	k.hasInput = true

	if model == nil || model.Count() == 0 {
		return -1
	}
	count := model.Count()
	if current < 0 || current >= count {
		current = 0
	}

	index := model.IndexForKeyboardSearch(k.buffer, current)
	if index >= 0 {
		k.lastMatch = k.buffer
		k.log.Debug().Str("text", k.buffer).Int("index", index).Msg("keyboard search match")
		return index
	}

	if newSearch || !isRepeatedRune(k.buffer) {
		k.log.Debug().Str("text", k.buffer).Msg("keyboard search miss")
		return -1
	}

	term := k.lastMatch
	if term == "" || !strings.HasPrefix(k.buffer, term) {
		r, _ := utf8.DecodeRuneInString(k.buffer)
		term = string(r)
	}
	index = model.IndexForKeyboardSearch(term, (current+1)%count)
	if index >= 0 {
		k.lastMatch = term
		k.log.Debug().Str("text", term).Int("index", index).Msg("keyboard search repeat")
	}
	return index
}

func isRepeatedRune(s string) bool {
	first, size := utf8.DecodeRuneInString(s)
	if size == len(s) {
		return false
	}
	for _, r := range s[size:] {
		if r != first {
			return false
		}
	}
	return true
}
