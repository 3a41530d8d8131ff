package server

import (
	"fmt"
	"io"
	"net/http"

	"deal_hunter/pkg/errcodes"
	"deal_hunter/pkg/httpx/reply"
	"deal_hunter/pkg/httpx/req"
	"deal_hunter/pkg/rest"
)

// WebhookServer answers the messaging platform's subscription handshake.
// The platform calls GET with hub.* query params and expects the raw
// challenge echoed back when the verify token matches.
type WebhookServer struct {
	verifyToken string
}

func NewWebhookServer(verifyToken string) WebhookServer {
	return WebhookServer{verifyToken: verifyToken}
}

func (s WebhookServer) getWebhook(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()
	query := r.URL.Query()

	mode := query.Get("hub.mode")
	token := query.Get("hub.verify_token")
	challenge := query.Get("hub.challenge")

	if mode != "subscribe" || token != s.verifyToken {
		reply.JSON(ctx, w, http.StatusForbidden, rest.Error{
			Code:    rest.ErrorCode(errcodes.Forbidden.String()),
			Message: "Verification failed",
		})

		return nil
	}

	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, challenge)

	return nil
}

// postWebhook принимает статусы доставки от платформы. Они не обрабатываются,
// но платформа требует 200 на каждый корректный вызов.
func (s WebhookServer) postWebhook(w http.ResponseWriter, r *http.Request) error {
	var event rest.WebhookEvent

	if err := req.Read(r, &event); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	reply.OK(w)

	return nil
}
