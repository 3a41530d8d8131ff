package server

// Server объединяет специфичные HTTP сервера: read-side для сделок и
// webhook для верификации платформы.
type Server struct {
	DealServer
	WebhookServer
}

func NewServer(
	dealServer DealServer,
	webhookServer WebhookServer,
) Server {
	return Server{
		DealServer:    dealServer,
		WebhookServer: webhookServer,
	}
}
