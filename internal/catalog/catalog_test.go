package catalog

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := New(Options{BaseURL: "https://bot.example.com/"})
	require.NoError(t, err)
	return c
}

func TestNewValidates(t *testing.T) {
	c := newTestCatalog(t)
	assert.NoError(t, c.Validate())
}

func TestRoomIntentsResolveToTemplates(t *testing.T) {
	c := newTestCatalog(t)

	rooms := c.Rooms()
	require.Len(t, rooms, 3)
	for _, r := range rooms {
		_, ok := c.Lookup(r.DetailIntent)
		assert.True(t, ok, "detail intent %q of %q", r.DetailIntent, r.Title)
		_, ok = c.Lookup(r.BookIntent)
		assert.True(t, ok, "book intent %q of %q", r.BookIntent, r.Title)
	}
}

func TestRoomOrder(t *testing.T) {
	c := newTestCatalog(t)

	var got []Intent
	for _, r := range c.Rooms() {
		got = append(got, r.DetailIntent)
	}
	assert.Equal(t, []Intent{RoomDetailSJ, RoomDetailTS, RoomDetailKS}, got)
}

func TestRoomsReturnsCopy(t *testing.T) {
	c := newTestCatalog(t)

	rooms := c.Rooms()
	rooms[0].Title = "mutated"
	assert.NotEqual(t, "mutated", c.Rooms()[0].Title)
}

func TestAssetURL(t *testing.T) {
	c := newTestCatalog(t)

	assert.Equal(t, "https://bot.example.com/static/images/coffee.jpg", c.AssetURL("coffee.jpg"))
	assert.Equal(t, "https://bot.example.com/static/images/coffee.jpg", c.AssetURL("/coffee.jpg"))
}

func TestLookupUnknown(t *testing.T) {
	c := newTestCatalog(t)

	_, ok := c.Lookup("does_not_exist")
	assert.False(t, ok)
	_, ok = c.Lookup(Unrecognized)
	assert.False(t, ok)
}

func TestLegacyAliases(t *testing.T) {
	c := newTestCatalog(t)

	rooms, _ := c.Lookup(Rooms)
	price, _ := c.Lookup(RoomPrice)
	assert.Equal(t, price, rooms)

	legacy, _ := c.Lookup(RoomDetail)
	ts, _ := c.Lookup(RoomDetailTS)
	assert.Equal(t, ts, legacy)
}

func TestOnlyContactIsPersonalized(t *testing.T) {
	c := newTestCatalog(t)

	for _, in := range c.Intents() {
		tmpl, _ := c.Lookup(in)
		assert.Equal(t, in == Contact, tmpl.Personalized, "intent %q", in)
	}
}

func TestWiFiFromOptions(t *testing.T) {
	c, err := New(Options{BaseURL: "http://localhost:8080", WiFiSSID: "Guest", WiFiPassword: "s3cret"})
	require.NoError(t, err)

	tmpl, ok := c.Lookup(WiFi)
	require.True(t, ok)
	require.Len(t, tmpl.Reply, 1)
	body := tmpl.Reply[0].(Text).Body
	assert.Contains(t, body, "Guest")
	assert.Contains(t, body, "s3cret")
}

func TestValidateReportsDanglingRoomIntent(t *testing.T) {
	c := newTestCatalog(t)
	c.rooms = append(c.rooms, RoomOffering{Title: "ghost", DetailIntent: "room_detail_ghost", BookIntent: BookRoom})

	err := c.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingEntry))
	assert.Contains(t, err.Error(), "room_detail_ghost")
}

func TestValidateReportsOversizedReply(t *testing.T) {
	c := newTestCatalog(t)
	msgs := make([]Message, 6)
	for i := range msgs {
		msgs[i] = Text{Body: "x"}
	}
	c.templates["flood"] = Template{Reply: msgs}

	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"flood"`)
}

func TestValidateReportsPlaceholderMismatch(t *testing.T) {
	c := newTestCatalog(t)
	c.templates["greet"] = Template{Reply: []Message{Text{Body: "hi " + DisplayNamePlaceholder}}}

	err := c.Validate()
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "Personalized"))
}

func TestFallbackEchoesRaw(t *testing.T) {
	c := newTestCatalog(t)

	assert.Equal(t, []Message{Text{Body: "ไม่รู้จักเมนู: xyz"}}, c.Fallback("xyz"))
}

func TestFallbackFitsOneTextMessage(t *testing.T) {
	c := newTestCatalog(t)

	for _, n := range []int{MaxTextLength - 15, MaxTextLength - 14, MaxTextLength, 3 * MaxTextLength} {
		raw := strings.Repeat("ก", n)
		msgs := c.Fallback(raw)
		require.Len(t, msgs, 1)
		body := msgs[0].(Text).Body
		assert.LessOrEqual(t, utf8.RuneCountInString(body), MaxTextLength, "input of %d characters", n)
		assert.True(t, strings.HasPrefix(body, "ไม่รู้จักเมนู: ก"))
	}

	short := strings.Repeat("ก", MaxTextLength-utf8.RuneCountInString(fallbackPrefix))
	assert.Equal(t, []Message{Text{Body: fallbackPrefix + short}}, c.Fallback(short))

	long := c.Fallback(short + "ก")[0].(Text).Body
	assert.Equal(t, MaxTextLength, utf8.RuneCountInString(long))
	assert.True(t, strings.HasSuffix(long, "…"))
}

func TestValidateReportsOverlongText(t *testing.T) {
	c := newTestCatalog(t)
	c.templates["essay"] = Template{Reply: []Message{Text{Body: strings.Repeat("a", MaxTextLength+1)}}}

	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"essay"`)
}
