package utils

import (
	"testing"

	"educa/config"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSendEmailWithoutKeyOnlyLogs(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	cfg := &config.Config{EmailSender: "noreply@example.com"}

	err := sendEmail(cfg, zap.New(core), "student@example.com", "Student", "Hello", "<p>hi</p>")

	assert.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("email not sent, SENDGRID_API_KEY unset").Len())
}
