package config

import "time"

type Affiliate struct {
	AmazonTag      string `env:"AMAZON_TAG"`
	MercadoLivreID string `env:"MERCADO_LIVRE_ID"`

	MLSessionFile    string        `env:"ML_SESSION_FILE"`
	MLResolveTimeout time.Duration `env:"ML_RESOLVE_TIMEOUT" envDefault:"30s"`

	ShopeeAppID  string `env:"SHOPEE_APP_ID"`
	ShopeeSecret string `env:"SHOPEE_SECRET" json:"-"`
}
