package models

// Telegram Bot API payload types, limited to the fields the bot reads.

// TelegramUpdate is one entry from a getUpdates response.
type TelegramUpdate struct {
	UpdateID int64            `json:"update_id"`
	Message  *TelegramMessage `json:"message"`
}

// TelegramMessage is an inbound chat message.
type TelegramMessage struct {
	MessageID int64        `json:"message_id"`
	Chat      TelegramChat `json:"chat"`
	Text      string       `json:"text"`
}

// TelegramChat identifies where a message came from and where replies go.
type TelegramChat struct {
	ID int64 `json:"id"`
}

// TelegramUpdatesResponse is the envelope returned by getUpdates.
type TelegramUpdatesResponse struct {
	OK          bool             `json:"ok"`
	Result      []TelegramUpdate `json:"result"`
	Description string           `json:"description"`
}
