// Package line adapts relay target messages to the LINE Messaging API.
package line

import (
	"fmt"

	"github.com/line/line-bot-sdk-go/v7/linebot"

	"github.com/carbothq/carbot/internal/relay"
)

// toSendingMessage converts one target message into its SDK wire type. An
// unknown kind is a programming error, surfaced rather than dropped.
func toSendingMessage(msg relay.TargetMessage) (linebot.SendingMessage, error) {
	switch msg.Kind {
	case relay.TargetText:
		return linebot.NewTextMessage(msg.Text), nil
	case relay.TargetImage:
		return linebot.NewImageMessage(msg.URL, msg.PreviewURL), nil
	case relay.TargetAudio:
		// The source platform exposes no duration metadata.
		return linebot.NewAudioMessage(msg.URL, 0), nil
	case relay.TargetVideo:
		return linebot.NewVideoMessage(msg.URL, msg.URL), nil
	case relay.TargetCard:
		return toFlexMessage(msg.Card), nil
	default:
		return nil, fmt.Errorf("unknown target message kind %d", msg.Kind)
	}
}

func toFlexMessage(card *relay.Card) *linebot.FlexMessage {
	return linebot.NewFlexMessage(card.AltText, &linebot.BubbleContainer{
		Type:   linebot.FlexContainerTypeBubble,
		Footer: toBoxComponent(*card.Footer),
	})
}

// toBoxComponent walks the flex tree once, bottom-up, into SDK components.
func toBoxComponent(box relay.Box) *linebot.BoxComponent {
	contents := make([]linebot.FlexComponent, 0, len(box.Contents))
	for _, node := range box.Contents {
		contents = append(contents, toFlexComponent(node))
	}
	return &linebot.BoxComponent{
		Type:     linebot.FlexComponentTypeBox,
		Layout:   linebot.FlexBoxLayoutType(box.Layout),
		Spacing:  linebot.FlexComponentSpacingType(box.Spacing),
		Contents: contents,
	}
}

func toFlexComponent(node relay.Node) linebot.FlexComponent {
	switch n := node.(type) {
	case relay.Box:
		return toBoxComponent(n)
	case relay.Text:
		return &linebot.TextComponent{
			Type:   linebot.FlexComponentTypeText,
			Text:   n.Text,
			Color:  n.Color,
			Weight: linebot.FlexTextWeightType(n.Weight),
			Size:   linebot.FlexTextSizeType(n.Size),
			Flex:   n.Flex,
			Wrap:   n.Wrap,
		}
	case relay.Image:
		return &linebot.ImageComponent{
			Type: linebot.FlexComponentTypeImage,
			URL:  n.URL,
			Size: linebot.FlexImageSizeType(n.Size),
			Flex: n.Flex,
		}
	case relay.Icon:
		return &linebot.IconComponent{
			Type: linebot.FlexComponentTypeIcon,
			URL:  n.URL,
			Size: linebot.FlexIconSizeType(n.Size),
		}
	default:
		return &linebot.FillerComponent{Type: linebot.FlexComponentTypeFiller}
	}
}
