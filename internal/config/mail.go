package config

import (
	"os"
	"sync"
)

type MailConfig struct {
	SendGridAPIKey string
	FromName       string
	FromEmail      string
}

var (
	mailConfig *MailConfig
	mailOnce   sync.Once
)

func LoadMailConfig() *MailConfig {
	mailOnce.Do(func() {
		mailConfig = &MailConfig{
			SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
			FromName:       os.Getenv("MAIL_FROM_NAME"),
			FromEmail:      os.Getenv("MAIL_FROM_EMAIL"),
		}
	})
	return mailConfig
}
