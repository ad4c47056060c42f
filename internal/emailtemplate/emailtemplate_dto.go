package emailtemplate

import "time"

type CreateTemplateRequest struct {
	Name     string            `json:"name" binding:"required,min=1,max=100"`
	Subject  string            `json:"subject" binding:"required,min=1,max=255"`
	Body     string            `json:"body" binding:"required"`
	Event    string            `json:"event" binding:"required"`
	Metadata *TemplateMetadata `json:"metadata"`
}

type UpdateTemplateRequest struct {
	Name     *string           `json:"name" binding:"omitempty,min=1,max=100"`
	Subject  *string           `json:"subject" binding:"omitempty,min=1,max=255"`
	Body     *string           `json:"body"`
	Event    *string           `json:"event"`
	Metadata *TemplateMetadata `json:"metadata"`
}

type TemplateResponse struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Subject   string           `json:"subject"`
	Body      string           `json:"body"`
	Event     string           `json:"event"`
	Metadata  TemplateMetadata `json:"metadata"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}
