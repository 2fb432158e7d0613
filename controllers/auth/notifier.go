package authControllers

import (
	"log"
	"os"
)

// Notifier delivers one-time codes to customers. SMS delivery is an opaque
// sink; when no provider is configured the code is logged to the console,
// a deliberate non-fatal degradation for local setups.
type Notifier interface {
	Send(phone, message string) error
}

type ConsoleNotifier struct{}

func (ConsoleNotifier) Send(phone, message string) error {
	log.Printf("🔐 SMS to %s: %s", phone, message)
	return nil
}

// NewNotifierFromEnv returns the console notifier; SMS provider credentials
// being absent must not break the OTP flow.
func NewNotifierFromEnv() Notifier {
	if os.Getenv("SMS_PROVIDER_SID") == "" {
		log.Println("⚠️ No SMS provider configured, OTP codes will be logged to console")
	}
	return ConsoleNotifier{}
}
