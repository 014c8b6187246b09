package email

import (
	"context"
	"fmt"
	"net/smtp"

	"go.uber.org/zap"
)

// SMTPNotifier mails a report when a bookmark permanently fails, i.e.
// it exhausted its retry attempts and will be skipped on future runs.
type SMTPNotifier struct {
	host   string
	port   int
	from   string
	to     string
	logger *zap.Logger
}

func NewSMTPNotifier(host string, port int, from, to string, logger *zap.Logger) *SMTPNotifier {
	return &SMTPNotifier{host: host, port: port, from: from, to: to, logger: logger}
}

func (n *SMTPNotifier) NotifyFailure(_ context.Context, bookmarkTitle, url, errorMsg string) error {
	addr := fmt.Sprintf("%s:%d", n.host, n.port)

	subject := fmt.Sprintf("RainDigest - Bookmark Processing Failed [%s]", bookmarkTitle)
	body := fmt.Sprintf(
		"Hello,\r\n\r\n"+
			"A bookmarked video could not be summarized after all retry attempts and will be skipped from now on.\r\n\r\n"+
			"Bookmark: %s\r\n"+
			"URL: %s\r\n"+
			"Error: %s\r\n\r\n"+
			"Remove the bookmark's history record to retry it.\r\n\r\n"+
			"-- RainDigest",
		bookmarkTitle, url, errorMsg,
	)

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		n.from, n.to, subject, body,
	)

	err := smtp.SendMail(addr, nil, n.from, []string{n.to}, []byte(msg))
	if err != nil {
		n.logger.Error("failed to send failure notification email",
			zap.String("bookmark", bookmarkTitle),
			zap.Error(err),
		)
		return fmt.Errorf("send email: %w", err)
	}

	n.logger.Info("failure notification email sent",
		zap.String("bookmark", bookmarkTitle),
	)
	return nil
}
