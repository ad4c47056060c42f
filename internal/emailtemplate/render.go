package emailtemplate

import (
	"bytes"
	"text/template"

	emailtemplateerrors "github.com/servicein2it/leave-in2it-sub000/internal/emailtemplate/errors"

	"github.com/servicein2it/leave-in2it-sub000/internal/shared/apperror"
)

// RenderedMail is a fully substituted message, ready for the mailer.
type RenderedMail struct {
	Subject string
	Body    string
	CC      []string
}

// Render substitutes data into the template's subject and body. A render
// failure is a template problem (bad placeholder, broken syntax), not a
// send failure, so it maps to ErrTemplateRender.
func Render(t *EmailTemplate, data map[string]interface{}) (RenderedMail, error) {
	subject, err := renderText("subject", t.Subject, data)
	if err != nil {
		return RenderedMail{}, apperror.Wrap(err,
			emailtemplateerrors.ErrTemplateRender.Code,
			emailtemplateerrors.ErrTemplateRender.Message,
			emailtemplateerrors.ErrTemplateRender.HTTPStatus,
		)
	}

	body, err := renderText("body", t.Body, data)
	if err != nil {
		return RenderedMail{}, apperror.Wrap(err,
			emailtemplateerrors.ErrTemplateRender.Code,
			emailtemplateerrors.ErrTemplateRender.Message,
			emailtemplateerrors.ErrTemplateRender.HTTPStatus,
		)
	}

	return RenderedMail{
		Subject: subject,
		Body:    body,
		CC:      t.Metadata.CC,
	}, nil
}

func renderText(name, text string, data map[string]interface{}) (string, error) {
	tpl, err := template.New(name).Option("missingkey=error").Parse(text)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
