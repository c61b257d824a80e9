package driving

import (
	"context"

	"github.com/custodia-labs/siteqa/internal/core/domain"
)

// AnswerService answers questions against the indexed site content
type AnswerService interface {
	// Ask retrieves the chunks most relevant to the question and generates
	// an answer grounded in them
	Ask(ctx context.Context, question string, topK int) (*domain.Answer, error)
}
