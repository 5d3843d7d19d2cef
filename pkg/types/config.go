package types

type Config struct {
	Environment     string `envconfig:"ENVIRONMENT" default:"development"`
	ServerPort      uint   `envconfig:"SERVER_PORT" default:"8080"`
	DatabaseURL     string `envconfig:"DATABASE_URL"`
	ReadTimeoutSec  uint   `envconfig:"READ_TIMEOUT_SEC" default:"10"`
	WriteTimeoutSec uint   `envconfig:"WRITE_TIMEOUT_SEC" default:"15"`

	// Directory holding the JSON content files (config.json, programs.json, ...)
	DataDir string `envconfig:"DATA_DIR" default:"data"`

	// Cookie encryption keys (base64 encoded)
	// openssl rand -base64 32
	// to generate values
	CookieHashKey    string `envconfig:"COOKIE_HASH_KEY"`  // 32 or 64 bytes
	CookieBlockKey   string `envconfig:"COOKIE_BLOCK_KEY"` // 16, 24, or 32 bytes
	SessionMaxAgeSec int    `envconfig:"SESSION_MAX_AGE_SEC" default:"604800"` // 7 days

	// Mail (best-effort notifications; disabled when username is empty)
	MailServer   string `envconfig:"MAIL_SERVER" default:"smtp.gmail.com"`
	MailPort     int    `envconfig:"MAIL_PORT" default:"587"`
	MailUsername string `envconfig:"MAIL_USERNAME"`
	MailPassword string `envconfig:"MAIL_PASSWORD"`

	// SMS (OTP dispatch via SNS)
	SMSCountryPrefix string `envconfig:"SMS_COUNTRY_PREFIX" default:"+91"`

	// Stripe (payment capture on donations; simulated when empty)
	StripeSecretKey string `envconfig:"STRIPE_SECRET_KEY"`

	// Receipt archive (best-effort copies of donation receipts; disabled when empty)
	ReceiptBucket string `envconfig:"RECEIPT_BUCKET"`
}
