package emailtemplateerrors

import (
	"net/http"

	"github.com/servicein2it/leave-in2it-sub000/internal/shared/apperror"
)

var (
	ErrInvalidTemplateID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid email template id",
		http.StatusBadRequest,
	)
	ErrTemplateNotFound = apperror.New(
		apperror.CodeNotFound,
		"email template not found",
		http.StatusNotFound,
	)
	ErrTemplateNameTaken = apperror.New(
		apperror.CodeConflict,
		"email template name is already taken",
		http.StatusBadRequest,
	)
	ErrUnknownEvent = apperror.New(
		apperror.CodeInvalidInput,
		"unknown notification event",
		http.StatusBadRequest,
	)
	ErrTemplateRender = apperror.New(
		apperror.CodeInternalError,
		"email template failed to render",
		http.StatusInternalServerError,
	)
)
