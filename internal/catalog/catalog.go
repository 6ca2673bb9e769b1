package catalog

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"
)

// Version identifies the content revision. Bump it whenever copy, prices or
// intents change so deployments can be told apart in the logs.
const Version = "2024.11-r2"

// Intent names one recognized user request. Postback payloads rendered by the
// bot are intents, so the payload space is the intent space.
type Intent string

const (
	MainMenu     Intent = "main_menu"
	RoomPrice    Intent = "room_price"
	Rooms        Intent = "rooms"
	RoomDetailSJ Intent = "room_detail_sj"
	RoomDetailTS Intent = "room_detail_ts"
	RoomDetailKS Intent = "room_detail_ks"
	RoomDetail   Intent = "room_detail" // payload of cards rendered before the zones were split
	BookRoom     Intent = "book_room"
	Location     Intent = "location"
	Coffee       Intent = "coffee"
	WiFi         Intent = "wifi"
	Contact      Intent = "contact"

	// Unrecognized is never a catalog key. Composing it yields the fallback.
	Unrecognized Intent = ""
)

// DisplayNamePlaceholder marks where the sender's display name goes in a
// personalized template.
const DisplayNamePlaceholder = "{display_name}"

// LINE accepts at most five messages per reply or push request.
const maxMessagesPerRequest = 5

// MaxTextLength is the longest text message LINE accepts, in characters.
const MaxTextLength = 5000

const fallbackPrefix = "ไม่รู้จักเมนู: "

var ErrMissingEntry = errors.New("catalog: missing entry")

// Message is one outbound message. Implementations are Text, Image and Card.
type Message interface {
	isMessage()
}

type Text struct {
	Body string
}

type Image struct {
	FullURL    string
	PreviewURL string
}

// Card is a carousel with one bubble per room, in catalog order.
type Card struct {
	Alt         string
	Rooms       []RoomOffering
	DetailLabel string
	BookLabel   string
}

func (Text) isMessage()  {}
func (Image) isMessage() {}
func (Card) isMessage()  {}

type RoomOffering struct {
	Title         string
	PricePerNight string
	HeroImageURL  string
	DetailIntent  Intent
	BookIntent    Intent
}

// Template is the canned content for one intent. Reply goes out with the
// reply token; Deferred is pushed to the sender afterwards.
type Template struct {
	Reply        []Message
	Deferred     []Message
	Personalized bool
}

// Options carries the deployment-specific values baked into the content.
// Zero fields take the defaults from content.go.
type Options struct {
	BaseURL      string
	WiFiSSID     string
	WiFiPassword string
	Phone        string
	CoffeePhone  string
	MapURL       string
}

// Catalog is read-only after New and safe for concurrent use.
type Catalog struct {
	baseURL   string
	rooms     []RoomOffering
	templates map[Intent]Template
}

// New builds the catalog and validates it. A validation error means the
// content is inconsistent and the process should not start.
func New(opts Options) (*Catalog, error) {
	opts = opts.withDefaults()
	c := &Catalog{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
	}
	c.rooms = c.buildRooms()
	c.templates = c.buildTemplates(opts)

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Lookup returns the template for in. The caller supplies the default when
// ok is false.
func (c *Catalog) Lookup(in Intent) (Template, bool) {
	t, ok := c.templates[in]
	return t, ok
}

// Rooms returns the room offerings in display order.
func (c *Catalog) Rooms() []RoomOffering {
	return slices.Clone(c.rooms)
}

// Intents returns every catalog key, sorted.
func (c *Catalog) Intents() []Intent {
	keys := make([]Intent, 0, len(c.templates))
	for k := range c.templates {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// AssetURL returns the public URL of an image served under /static/images.
func (c *Catalog) AssetURL(name string) string {
	return c.baseURL + "/static/images/" + strings.TrimLeft(name, "/")
}

// Fallback is the reply for anything the catalog does not know. Long input
// is cut so the echo still fits in one LINE text message.
func (c *Catalog) Fallback(raw string) []Message {
	budget := MaxTextLength - utf8.RuneCountInString(fallbackPrefix)
	if utf8.RuneCountInString(raw) > budget {
		raw = string([]rune(raw)[:budget-1]) + "…"
	}
	return []Message{Text{Body: fallbackPrefix + raw}}
}

// Validate checks the catalog for dangling intents and payloads LINE would
// reject.
func (c *Catalog) Validate() error {
	var errs []error

	for _, r := range c.rooms {
		for _, in := range []Intent{r.DetailIntent, r.BookIntent} {
			if _, ok := c.templates[in]; !ok {
				errs = append(errs, fmt.Errorf("%w: room %q references intent %q", ErrMissingEntry, r.Title, in))
			}
		}
	}

	for in, t := range c.templates {
		if in == Unrecognized {
			errs = append(errs, fmt.Errorf("catalog: the unrecognized intent cannot have a template"))
		}
		if len(t.Reply) == 0 {
			errs = append(errs, fmt.Errorf("catalog: intent %q has an empty reply", in))
		}
		if len(t.Reply) > maxMessagesPerRequest {
			errs = append(errs, fmt.Errorf("catalog: intent %q replies with %d messages, max %d", in, len(t.Reply), maxMessagesPerRequest))
		}
		if len(t.Deferred) > maxMessagesPerRequest {
			errs = append(errs, fmt.Errorf("catalog: intent %q defers %d messages, max %d", in, len(t.Deferred), maxMessagesPerRequest))
		}
		if hasPlaceholder(t.Reply) != t.Personalized {
			errs = append(errs, fmt.Errorf("catalog: intent %q placeholder and Personalized flag disagree", in))
		}
		for _, m := range slices.Concat(t.Reply, t.Deferred) {
			if text, ok := m.(Text); ok && utf8.RuneCountInString(text.Body) > MaxTextLength {
				errs = append(errs, fmt.Errorf("catalog: intent %q has a text of %d characters, max %d", in, utf8.RuneCountInString(text.Body), MaxTextLength))
			}
			if card, ok := m.(Card); ok {
				for _, r := range card.Rooms {
					if _, ok := c.templates[r.DetailIntent]; !ok {
						errs = append(errs, fmt.Errorf("%w: card in %q references intent %q", ErrMissingEntry, in, r.DetailIntent))
					}
					if _, ok := c.templates[r.BookIntent]; !ok {
						errs = append(errs, fmt.Errorf("%w: card in %q references intent %q", ErrMissingEntry, in, r.BookIntent))
					}
				}
			}
		}
	}

	return errors.Join(errs...)
}

func hasPlaceholder(msgs []Message) bool {
	for _, m := range msgs {
		if t, ok := m.(Text); ok && strings.Contains(t.Body, DisplayNamePlaceholder) {
			return true
		}
	}
	return false
}
