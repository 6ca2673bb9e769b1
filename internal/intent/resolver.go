// Package intent maps inbound platform events to catalog intents.
package intent

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/ulandresort/ulandbot/internal/catalog"
)

// Event is an inbound user action. Implementations are Postback and
// TextMessage.
type Event interface {
	isEvent()
}

// Postback is a button tap; Payload is the data the bot attached when it
// rendered the button.
type Postback struct {
	Payload string
}

type TextMessage struct {
	Body     string
	SenderID string
}

func (Postback) isEvent()    {}
func (TextMessage) isEvent() {}

// Resolution is the result of resolving one event. Raw keeps the original
// payload or text so the fallback reply can echo it.
type Resolution struct {
	Intent catalog.Intent
	Raw    string
}

// Recognized reports whether the event matched a synonym or carried a
// non-empty postback payload.
func (r Resolution) Recognized() bool {
	return r.Intent != catalog.Unrecognized
}

// SynonymSet maps normalized phrases to one intent.
type SynonymSet struct {
	Intent catalog.Intent
	Words  []string
}

// synonyms is tried top to bottom; the first set containing the normalized
// text wins. Entries must already be normalized.
var synonyms = []SynonymSet{
	{catalog.MainMenu, []string{"0", "เมนู", "menu", "help", "สวัสดี", "hello", "hi"}},
	{catalog.RoomPrice, []string{"1", "1.", "ราคา", "ราคาห้องพัก", "ห้องพัก", "ประเภทและราคาห้องพัก", "rooms"}},
	{catalog.Location, []string{"2", "2.", "แผนที่", "ที่ตั้ง", "แผนที่รีสอร์ท", "location", "map"}},
	{catalog.Coffee, []string{"3", "3.", "กาแฟ", "คาเฟ่", "uland coffee", "coffee"}},
	{catalog.WiFi, []string{"4", "4.", "wifi", "wi-fi", "ไวไฟ", "รหัสไวไฟ", "รหัส wifi"}},
	{catalog.Contact, []string{"5", "5.", "ติดต่อ", "ติดต่อสอบถาม", "เบอร์โทร", "contact"}},
	{catalog.BookRoom, []string{"6", "6.", "จอง", "จองห้อง", "จองห้องพัก", "book"}},
}

// Resolver is stateless and safe for concurrent use.
type Resolver struct {
	sets []SynonymSet
}

func NewResolver() *Resolver {
	return &Resolver{sets: synonyms}
}

// Resolve maps ev to an intent. Postback payloads are taken verbatim; text is
// normalized and matched exactly against the synonym sets.
func (r *Resolver) Resolve(ev Event) Resolution {
	switch e := ev.(type) {
	case Postback:
		return Resolution{Intent: catalog.Intent(e.Payload), Raw: e.Payload}
	case TextMessage:
		key := Normalize(e.Body)
		for _, set := range r.sets {
			for _, w := range set.Words {
				if w == key {
					return Resolution{Intent: set.Intent, Raw: e.Body}
				}
			}
		}
		return Resolution{Intent: catalog.Unrecognized, Raw: e.Body}
	default:
		return Resolution{Intent: catalog.Unrecognized}
	}
}

// Synonyms returns the resolver table in priority order.
func (r *Resolver) Synonyms() []SynonymSet {
	out := make([]SynonymSet, len(r.sets))
	for i, s := range r.sets {
		out[i] = SynonymSet{Intent: s.Intent, Words: append([]string(nil), s.Words...)}
	}
	return out
}

// Validate reports every synonym intent that c has no template for. An
// error wraps catalog.ErrMissingEntry and means the process should not start.
func (r *Resolver) Validate(c *catalog.Catalog) error {
	var errs []error
	for _, set := range r.sets {
		if _, ok := c.Lookup(set.Intent); !ok {
			errs = append(errs, fmt.Errorf("%w: synonyms %q resolve to intent %q", catalog.ErrMissingEntry, set.Words, set.Intent))
		}
	}
	return errors.Join(errs...)
}

// Normalize composes, trims and case-folds s. Thai text typed on different
// keyboards can arrive decomposed, hence the NFC pass.
func Normalize(s string) string {
	s = norm.NFC.String(s)
	s = strings.TrimSpace(s)
	return cases.Fold().String(s)
}
