package line

import (
	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"

	"github.com/ulandresort/ulandbot/internal/catalog"
)

// Render converts catalog messages to Messaging API messages, keeping order.
func Render(msgs []catalog.Message) []messaging_api.MessageInterface {
	out := make([]messaging_api.MessageInterface, 0, len(msgs))
	for _, m := range msgs {
		switch m := m.(type) {
		case catalog.Text:
			out = append(out, &messaging_api.TextMessage{Text: m.Body})
		case catalog.Image:
			out = append(out, &messaging_api.ImageMessage{
				OriginalContentUrl: m.FullURL,
				PreviewImageUrl:    m.PreviewURL,
			})
		case catalog.Card:
			out = append(out, &messaging_api.FlexMessage{
				AltText:  m.Alt,
				Contents: roomCarousel(m),
			})
		}
	}
	return out
}

// roomCarousel lays out one bubble per room: hero photo, title and price,
// then the detail and booking buttons.
// Reference: https://developers.line.biz/en/docs/messaging-api/flex-message-layout/
func roomCarousel(card catalog.Card) *messaging_api.FlexCarousel {
	bubbles := make([]messaging_api.FlexBubble, 0, len(card.Rooms))
	for _, r := range card.Rooms {
		bubbles = append(bubbles, messaging_api.FlexBubble{
			Hero: &messaging_api.FlexImage{
				Url:         r.HeroImageURL,
				Size:        "full",
				AspectRatio: "20:13",
				AspectMode:  messaging_api.FlexImageASPECT_MODE_COVER,
			},
			Body: &messaging_api.FlexBox{
				Layout: messaging_api.FlexBoxLAYOUT_VERTICAL,
				Contents: []messaging_api.FlexComponentInterface{
					&messaging_api.FlexText{Text: r.Title, Weight: messaging_api.FlexTextWEIGHT_BOLD, Size: "lg"},
					&messaging_api.FlexText{Text: r.PricePerNight, Color: "#666666"},
				},
			},
			Footer: &messaging_api.FlexBox{
				Layout: messaging_api.FlexBoxLAYOUT_HORIZONTAL,
				Contents: []messaging_api.FlexComponentInterface{
					&messaging_api.FlexButton{
						Action: &messaging_api.PostbackAction{
							Label:       card.DetailLabel,
							Data:        string(r.DetailIntent),
							DisplayText: card.DetailLabel,
						},
					},
					&messaging_api.FlexButton{
						Style: messaging_api.FlexButtonSTYLE_PRIMARY,
						Action: &messaging_api.PostbackAction{
							Label:       card.BookLabel,
							Data:        string(r.BookIntent),
							DisplayText: card.BookLabel,
						},
					},
				},
			},
		})
	}
	return &messaging_api.FlexCarousel{Contents: bubbles}
}
