package report

import (
	"context"

	"github.com/platinummonkey/quill/pkg/auth"
	"github.com/platinummonkey/quill/pkg/observability"
	"github.com/platinummonkey/quill/pkg/posts"
)

// Mailer delivers a generated report to the requesting user. Actual SMTP
// transport is an external collaborator; the service only depends on this
// boundary.
type Mailer interface {
	SendPostReport(ctx context.Context, user *auth.User, post *posts.Post, rep Report) error
}

// LogMailer writes deliveries to the structured log instead of sending
// mail. Used in development and as the default when no mail transport is
// configured.
type LogMailer struct {
	logger *observability.Logger
}

// NewLogMailer creates a log-backed mailer
func NewLogMailer(logger *observability.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// SendPostReport implements Mailer
func (m *LogMailer) SendPostReport(_ context.Context, user *auth.User, post *posts.Post, rep Report) error {
	m.logger.WithFields(map[string]interface{}{
		"to":         user.Email,
		"post_id":    post.ID,
		"word_count": rep.WordCount,
		"subject":    "Post report",
	}).Info("post report delivered")
	return nil
}
