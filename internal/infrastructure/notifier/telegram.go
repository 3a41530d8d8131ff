package notifier

import (
	"context"
	"fmt"
	"html"
	"strconv"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"deal_hunter/internal/domain/entity"
)

// TelegramChannel mirrors deals into a Telegram channel or group.
type TelegramChannel struct {
	bot    *telego.Bot
	chatID int64
}

func NewTelegramChannel(token string, chatID int64) (*TelegramChannel, error) {
	bot, err := telego.NewBot(token)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	return &TelegramChannel{
		bot:    bot,
		chatID: chatID,
	}, nil
}

func (t *TelegramChannel) Name() string {
	return "telegram"
}

func (t *TelegramChannel) SendDeal(ctx context.Context, deal entity.Deal) error {
	text := fmt.Sprintf(
		"🔥 <b>OFERTA ENCONTRADA!</b>\n\n"+
			"🛒 <b>%s</b>\n"+
			"💰 De: <s>R$ %s</s>\n"+
			"🔥 <b>Por: R$ %s</b>\n"+
			"📉 Desconto: %d%%\n",
		html.EscapeString(deal.Title),
		FormatPrice(deal.OriginalPrice),
		FormatPrice(deal.Price),
		deal.DiscountPct,
	)

	if deal.HasRating() {
		text += "⭐ " + strconv.FormatFloat(deal.RatingValue(), 'f', -1, 64) + "\n"
	}

	text += fmt.Sprintf("\n🔗 <a href=\"%s\">Ver oferta</a>", deal.Link)

	msg := tu.Message(
		tu.ID(t.chatID),
		text,
	).WithParseMode(telego.ModeHTML)

	if _, err := t.bot.SendMessage(ctx, msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	return nil
}
