package entity

import "time"

type ChatSession struct {
	ID           string    `json:"id"`
	Channel      Channel   `json:"channel"`
	CreatedAt    time.Time `json:"created_at"`
	LastActivity time.Time `json:"last_activity"`
	Turns        int       `json:"turns"`
}

type Channel uint8

const (
	ChannelUnknown   Channel = 0
	ChannelHTTP      Channel = 1
	ChannelWebSocket Channel = 2
	ChannelVoice     Channel = 3
)

var ChannelMap = map[Channel]string{
	ChannelHTTP:      "http",
	ChannelWebSocket: "websocket",
	ChannelVoice:     "voice",
}

func (c Channel) String() string {
	if name, ok := ChannelMap[c]; ok {
		return name
	}
	return "unknown"
}

func (c Channel) Value() uint8 {
	return uint8(c)
}

func (c Channel) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}
