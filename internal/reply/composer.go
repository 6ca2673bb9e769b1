package reply

import (
	"strings"

	"github.com/ulandresort/ulandbot/internal/catalog"
)

// defaultDisplayName is used when the profile lookup failed or the sender
// hides their name.
const defaultDisplayName = "ลูกค้า"

// SenderContext carries the per-event values a template may need.
type SenderContext struct {
	UserID      string
	DisplayName string
	// Raw is the original payload or text, echoed by the fallback reply.
	Raw string
}

// Reply is what the dispatcher sends for one event. Messages go out with the
// reply token; Deferred is pushed to the sender afterwards, in order.
type Reply struct {
	Messages []catalog.Message
	Deferred []catalog.Message
}

// Composer turns intents into messages. It never touches the network.
type Composer struct {
	catalog *catalog.Catalog
}

func NewComposer(c *catalog.Catalog) *Composer {
	return &Composer{catalog: c}
}

// Compose builds the reply for in. Intents without a template get the
// catalog fallback, so the result is never empty.
func (c *Composer) Compose(in catalog.Intent, sc SenderContext) Reply {
	tmpl, ok := c.catalog.Lookup(in)
	if !ok {
		return Reply{Messages: c.catalog.Fallback(sc.Raw)}
	}

	out := Reply{
		Messages: copyMessages(tmpl.Reply),
		Deferred: copyMessages(tmpl.Deferred),
	}
	if tmpl.Personalized {
		name := strings.TrimSpace(sc.DisplayName)
		if name == "" {
			name = defaultDisplayName
		}
		for i, m := range out.Messages {
			if t, ok := m.(catalog.Text); ok {
				out.Messages[i] = catalog.Text{Body: strings.ReplaceAll(t.Body, catalog.DisplayNamePlaceholder, name)}
			}
		}
	}
	return out
}

// NeedsProfile reports whether Compose uses SenderContext.DisplayName for in.
func (c *Composer) NeedsProfile(in catalog.Intent) bool {
	tmpl, ok := c.catalog.Lookup(in)
	return ok && tmpl.Personalized
}

func copyMessages(msgs []catalog.Message) []catalog.Message {
	if len(msgs) == 0 {
		return nil
	}
	out := make([]catalog.Message, len(msgs))
	for i, m := range msgs {
		if card, ok := m.(catalog.Card); ok {
			card.Rooms = append([]catalog.RoomOffering(nil), card.Rooms...)
			m = card
		}
		out[i] = m
	}
	return out
}
