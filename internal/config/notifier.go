package config

type Notifier struct {
	// Channels selects active delivery sinks: log, whatsapp, telegram.
	Channels []string `env:"NOTIFIER" envSeparator:"," envDefault:"log"`

	WhatsAppBridgeURL string `env:"WHATSAPP_BRIDGE_URL" envDefault:"http://localhost:3001"`
	WhatsAppToken     string `env:"WHATSAPP_TOKEN" json:"-"`

	BotToken  string `env:"BOT_TOKEN" json:"-"`
	BotChatID int64  `env:"BOT_CHAT_ID"`
}
