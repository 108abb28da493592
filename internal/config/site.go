package config

type Site struct {
	// WhatsAppNumber is the team number in international format without '+'.
	WhatsAppNumber   string `env:"POOLPOWER_WHATSAPP_NUMBER,required,notEmpty"`
	Brand            string `env:"POOLPOWER_BRAND" envDefault:"PoolPower"`
	MessagingBaseURL string `env:"MESSAGING_BASE_URL" envDefault:"https://wa.me"`
	// PublicBaseURL prefixes form actions in the static export so that the
	// exported page posts to a running server.
	PublicBaseURL string `env:"PUBLIC_BASE_URL"`
	OutputDir     string `env:"SITE_OUTPUT_DIR" envDefault:"docs"`
}
