package domain

import "context"

//go:generate mockgen -destination mocks/mock_ai_client.go -package mocks github.com/reachsuite/emailbuilder/internal/domain AIClient

// AIGenerateRequest is sent to the content generation endpoint
type AIGenerateRequest struct {
	Channel string            `json:"channel"`
	Prompt  string            `json:"prompt"`
	Action  string            `json:"action"`
	Context AIGenerateContext `json:"context"`
}

type AIGenerateContext struct {
	TemplateName    string `json:"templateName"`
	ExistingSubject string `json:"existingSubject"`
}

// NewEmailDraftRequest builds a draft request for the email channel
func NewEmailDraftRequest(prompt, templateName, existingSubject string) *AIGenerateRequest {
	return &AIGenerateRequest{
		Channel: "email",
		Prompt:  prompt,
		Action:  "draft",
		Context: AIGenerateContext{
			TemplateName:    templateName,
			ExistingSubject: existingSubject,
		},
	}
}

// AIClient generates email copy from a prompt
type AIClient interface {
	Generate(ctx context.Context, req *AIGenerateRequest) (string, error)
}
