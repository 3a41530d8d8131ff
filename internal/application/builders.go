package application

import (
	"context"
	"fmt"
	"net/http"

	"deal_hunter/internal/config"
	"deal_hunter/internal/domain/entity"
	"deal_hunter/internal/infrastructure/affiliate"
	"deal_hunter/internal/infrastructure/notifier"
	"deal_hunter/pkg/httpx"
	"deal_hunter/pkg/logx"
)

// buildResolver assembles the per-source link strategies from whatever
// partner credentials are configured. Missing credentials just leave a
// source on pass-through.
func buildResolver(ctx context.Context, cfg config.Affiliate, client *http.Client) *affiliate.Resolver {
	resolver := affiliate.NewResolver()

	if cfg.MercadoLivreID != "" {
		direct := affiliate.DirectTagger{Param: "p", Tag: cfg.MercadoLivreID}

		var strategy affiliate.Strategy = direct

		if cfg.MLSessionFile != "" {
			linker := affiliate.NewMLSessionLinker(client, cfg.MLSessionFile, cfg.MLResolveTimeout)
			if err := linker.RefreshSession(); err != nil {
				logger(ctx).Warn("session bundle unavailable, falling back to direct tagging", logx.Error(err))
			}

			strategy = affiliate.FallbackTagger{Primary: linker, Fallback: direct}
		}

		resolver.WithStrategy(entity.SourceMercadoLivre, strategy)
		resolver.WithStrategy(entity.SourceMercadoLivreCoupon, strategy)
	}

	if cfg.AmazonTag != "" {
		resolver.WithStrategy(entity.SourceAmazon, affiliate.DirectTagger{Param: "tag", Tag: cfg.AmazonTag})
	}

	if cfg.ShopeeAppID != "" && cfg.ShopeeSecret != "" {
		resolver.WithStrategy(entity.SourceShopee, affiliate.NewShopeeLinker(client, cfg.ShopeeAppID, cfg.ShopeeSecret))
	}

	return resolver
}

func buildSinks(cfg config.Notifier) ([]notifier.Sink, error) {
	var sinks []notifier.Sink

	for _, channel := range cfg.Channels {
		switch channel {
		case "log":
			sinks = append(sinks, notifier.LogSink{})
		case "whatsapp":
			sinks = append(sinks, notifier.NewWhatsAppBridge(bridgeClient(cfg), cfg.WhatsAppBridgeURL))
		case "telegram":
			channel, err := notifier.NewTelegramChannel(cfg.BotToken, cfg.BotChatID)
			if err != nil {
				return nil, fmt.Errorf("notifier.NewTelegramChannel: %w", err)
			}
			sinks = append(sinks, channel)
		default:
			return nil, fmt.Errorf("unknown notifier channel %q", channel)
		}
	}

	if len(sinks) == 0 {
		sinks = append(sinks, notifier.LogSink{})
	}

	return sinks, nil
}

// bridgeClient logs every bridge exchange and, when a token is configured,
// attaches it as a bearer header.
func bridgeClient(cfg config.Notifier) *http.Client {
	var transport http.RoundTripper = httpx.NewLoggingRoundTripper(
		http.DefaultTransport,
		httpx.WithSensitiveDataMasker(logx.NewSensitiveDataMasker()),
		httpx.WithLogFieldMaxLen(logFieldMaxLen),
	)

	if cfg.WhatsAppToken != "" {
		transport = httpx.NewAuthBearerRoundTripper(transport, notifier.StaticToken(cfg.WhatsAppToken))
	}

	return &http.Client{
		Timeout:   outboundTimeout,
		Transport: transport,
	}
}
