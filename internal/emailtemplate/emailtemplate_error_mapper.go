package emailtemplate

import (
	"errors"

	emailtemplateerrors "github.com/servicein2it/leave-in2it-sub000/internal/emailtemplate/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return emailtemplateerrors.ErrTemplateNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_email_templates_name" {
			return emailtemplateerrors.ErrTemplateNameTaken
		}
	}

	return err
}
