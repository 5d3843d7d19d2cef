// Package sms delivers one-off text messages through Amazon SNS.
package sms

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

type SNSSender struct {
	client        *sns.Client
	countryPrefix string
}

func NewSNSSender(client *sns.Client, countryPrefix string) *SNSSender {
	return &SNSSender{client: client, countryPrefix: countryPrefix}
}

func (s *SNSSender) Send(ctx context.Context, phone, message string) error {
	number := NormalizePhone(phone, s.countryPrefix)
	if number == "" {
		return fmt.Errorf("no phone number to deliver to")
	}

	_, err := s.client.Publish(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(number),
		Message:     aws.String(message),
	})
	if err != nil {
		return fmt.Errorf("publish sms to %s: %w", number, err)
	}

	return nil
}

// NormalizePhone produces an E.164-style number, prefixing the configured
// country code when the stored number is a bare local number.
func NormalizePhone(phone, countryPrefix string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' || r == '+' {
			return r
		}
		return -1
	}, strings.TrimSpace(phone))

	if cleaned == "" {
		return ""
	}
	if strings.HasPrefix(cleaned, "+") {
		return cleaned
	}

	return countryPrefix + cleaned
}
