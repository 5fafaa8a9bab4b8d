package notify

import (
	"context"
	"log"
)

// LogNotifier печатает коды в лог вместо отправки почты — dev-режим без SMTP.
type LogNotifier struct{}

func NewLogNotifier() LogNotifier { return LogNotifier{} }

func (LogNotifier) SendSignupCode(_ context.Context, to, _, code string) error {
	log.Printf("[notify] signup code for %s: %s", to, code)
	return nil
}

func (LogNotifier) SendResetCode(_ context.Context, to, _, code string) error {
	log.Printf("[notify] reset code for %s: %s", to, code)
	return nil
}

func (LogNotifier) SendConfirmCode(_ context.Context, to, _, code string) error {
	log.Printf("[notify] confirm code for %s: %s", to, code)
	return nil
}
