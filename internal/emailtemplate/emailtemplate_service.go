package emailtemplate

import (
	"context"

	emailtemplateerrors "github.com/servicein2it/leave-in2it-sub000/internal/emailtemplate/errors"
	"github.com/servicein2it/leave-in2it-sub000/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, req CreateTemplateRequest) (TemplateResponse, error)
	GetAll(ctx context.Context) ([]TemplateResponse, error)
	GetByID(ctx context.Context, id string) (TemplateResponse, error)
	Update(ctx context.Context, id string, req UpdateTemplateRequest) (TemplateResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("emailtemplate.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("emailtemplate.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateTemplateRequest) (TemplateResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	if !IsValidEvent(req.Event) {
		return TemplateResponse{}, emailtemplateerrors.ErrUnknownEvent
	}

	metadata := TemplateMetadata{Enabled: true}
	if req.Metadata != nil {
		metadata = *req.Metadata
	}

	t := &EmailTemplate{
		ID:       uuid.New(),
		Name:     req.Name,
		Subject:  req.Subject,
		Body:     req.Body,
		Event:    req.Event,
		Metadata: metadata,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		s.logger.Error("create email template failed", zap.String("request_id", rid), zap.Error(err))
		return TemplateResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("create email template success",
		zap.String("request_id", rid),
		zap.String("template_id", t.ID.String()),
		zap.String("event", t.Event),
	)
	return mapToResponse(*t), nil
}

func (s *service) GetAll(ctx context.Context) ([]TemplateResponse, error) {
	templates, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all email templates failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	resp := make([]TemplateResponse, 0, len(templates))
	for _, t := range templates {
		resp = append(resp, mapToResponse(t))
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (TemplateResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return TemplateResponse{}, emailtemplateerrors.ErrInvalidTemplateID
	}

	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return TemplateResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*t), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateTemplateRequest) (TemplateResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	if _, err := uuid.Parse(id); err != nil {
		return TemplateResponse{}, emailtemplateerrors.ErrInvalidTemplateID
	}

	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return TemplateResponse{}, mapRepositoryError(err)
	}

	if req.Name != nil {
		t.Name = *req.Name
	}
	if req.Subject != nil {
		t.Subject = *req.Subject
	}
	if req.Body != nil {
		t.Body = *req.Body
	}
	if req.Event != nil {
		if !IsValidEvent(*req.Event) {
			return TemplateResponse{}, emailtemplateerrors.ErrUnknownEvent
		}
		t.Event = *req.Event
	}
	if req.Metadata != nil {
		t.Metadata = *req.Metadata
	}

	if err := s.repo.Update(ctx, t); err != nil {
		s.logger.Error("update email template failed", zap.String("request_id", rid), zap.Error(err))
		return TemplateResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("update email template success",
		zap.String("request_id", rid),
		zap.String("template_id", t.ID.String()),
	)
	return mapToResponse(*t), nil
}

func mapToResponse(t EmailTemplate) TemplateResponse {
	return TemplateResponse{
		ID:        t.ID.String(),
		Name:      t.Name,
		Subject:   t.Subject,
		Body:      t.Body,
		Event:     t.Event,
		Metadata:  t.Metadata,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
