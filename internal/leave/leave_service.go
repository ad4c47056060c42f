package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/servicein2it/leave-in2it-sub000/internal/events"
	leaveerrors "github.com/servicein2it/leave-in2it-sub000/internal/leave/errors"
	"github.com/servicein2it/leave-in2it-sub000/internal/messaging/kafka"
	"github.com/servicein2it/leave-in2it-sub000/internal/shared/contextutil"
	"github.com/servicein2it/leave-in2it-sub000/internal/shared/counter"
	"github.com/servicein2it/leave-in2it-sub000/internal/shared/thaidate"
	"github.com/servicein2it/leave-in2it-sub000/internal/user"
	usererrors "github.com/servicein2it/leave-in2it-sub000/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

const documentCounterType = "leave_request"

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorID string, req CreateLeaveRequest) (LeaveRequestResponse, error)
	GetAll(ctx context.Context, actorID, role string) ([]LeaveRequestResponse, error)
	GetByID(ctx context.Context, actorID, role, id string) (LeaveRequestResponse, error)
	Update(ctx context.Context, actorID, role, id string, req UpdateLeaveRequest) (LeaveRequestResponse, error)
	Delete(ctx context.Context, actorID, role, id string) error
}

type service struct {
	db      *sql.DB
	repo    Repository
	users   user.Repository
	outbox  kafka.OutboxRepository
	counter counter.Repository
	logger  *zap.Logger
}

func NewService(db *sql.DB, repo Repository, users user.Repository, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, users, nil, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	users user.Repository,
	outboxRepo kafka.OutboxRepository,
	counterRepo counter.Repository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		users:   users,
		outbox:  outboxRepo,
		counter: counterRepo,
		logger:  l,
	}
}

func (s *service) Create(ctx context.Context, actorID string, req CreateLeaveRequest) (LeaveRequestResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create leave request requested",
		zap.String("request_id", rid),
		zap.String("actor_id", actorID),
		zap.String("leave_type", req.LeaveType),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidActorID
	}
	if !IsValidType(req.LeaveType) {
		return LeaveRequestResponse{}, leaveerrors.ErrUnknownLeaveType
	}
	startDate, endDate, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		s.logger.Warn("create leave request validation failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave request begin tx failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	qusers := s.users.WithTx(tx)

	u, err := qusers.FindByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, usererrors.ErrUserNotFound
		}
		return LeaveRequestResponse{}, err
	}

	overlap, err := qtx.HasOverlappingPeriod(ctx, actorID, startDate, endDate, nil)
	if err != nil {
		s.logger.Error("create leave request overlap check failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	if overlap {
		s.logger.Warn("create leave request overlap detected",
			zap.String("actor_id", actorID),
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
		)
		return LeaveRequestResponse{}, leaveerrors.ErrLeaveOverlap
	}

	var documentNo string
	if s.counter != nil {
		year := thaidate.BuddhistYear(startDate)
		nextVal, err := s.counter.GetNextValue(ctx, documentCounterType, year)
		if err != nil {
			s.logger.Error("create leave request document number failed", zap.Error(err))
			return LeaveRequestResponse{}, err
		}
		documentNo = fmt.Sprintf("%d/%d", nextVal, year)
	}

	l := &LeaveRequest{
		ID:            uuid.New(),
		DocumentNo:    documentNo,
		UserID:        actorUUID,
		EmployeeName:  u.FullName(),
		LeaveType:     req.LeaveType,
		StartDate:     startDate,
		EndDate:       endDate,
		TotalDays:     totalDays(startDate, endDate),
		Reason:        req.Reason,
		ContactNumber: req.ContactNumber,
		Status:        StatusPending,
		RequestDate:   time.Now().UTC(),
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("create leave request persist failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	if s.outbox != nil {
		event := events.LeaveSubmittedEvent{
			EventType:     events.EventLeaveSubmitted,
			RequestID:     rid,
			LeaveID:       l.ID.String(),
			DocumentNo:    l.DocumentNo,
			UserID:        l.UserID.String(),
			EmployeeName:  l.EmployeeName,
			LeaveType:     l.LeaveType,
			StartDate:     l.StartDate.Format("2006-01-02"),
			EndDate:       l.EndDate.Format("2006-01-02"),
			TotalDays:     l.TotalDays,
			Reason:        l.Reason,
			ContactNumber: l.ContactNumber,
			OccurredAt:    time.Now().UTC(),
		}
		if err := s.queueEvent(ctx, tx, rid, l.ID.String(), event.EventType, event); err != nil {
			return LeaveRequestResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create leave request commit failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	s.logger.Info("create leave request success",
		zap.String("request_id", rid),
		zap.String("leave_id", l.ID.String()),
		zap.String("document_no", l.DocumentNo),
	)

	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context, actorID, role string) ([]LeaveRequestResponse, error) {
	var (
		requests []LeaveRequest
		err      error
	)
	if role == user.RoleAdmin {
		requests, err = s.repo.FindAll(ctx)
	} else {
		requests, err = s.repo.FindAllByUser(ctx, actorID)
	}
	if err != nil {
		return nil, err
	}
	return mapToListResponse(requests), nil
}

func (s *service) GetByID(ctx context.Context, actorID, role, id string) (LeaveRequestResponse, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveRequestResponse{}, err
	}
	if role != user.RoleAdmin && l.UserID.String() != actorID {
		return LeaveRequestResponse{}, leaveerrors.ErrNotRequestOwner
	}
	return mapToResponse(*l), nil
}

func (s *service) Update(ctx context.Context, actorID, role, id string, req UpdateLeaveRequest) (LeaveRequestResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update leave request requested",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
		zap.String("actor_id", actorID),
		zap.String("target_status", req.Status),
	)

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidActorID
	}
	if !IsValidType(req.LeaveType) {
		return LeaveRequestResponse{}, leaveerrors.ErrUnknownLeaveType
	}
	startDate, endDate, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return LeaveRequestResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update leave request begin tx failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	qusers := s.users.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveRequestResponse{}, err
	}

	if req.Status != l.Status {
		if err := s.transition(ctx, qusers, l, actorUUID, role, req, startDate, endDate); err != nil {
			return LeaveRequestResponse{}, err
		}
	} else {
		if err := s.editDetails(ctx, qtx, l, actorUUID, role, req, startDate, endDate); err != nil {
			return LeaveRequestResponse{}, err
		}
	}

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("update leave request persist failed",
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return LeaveRequestResponse{}, err
	}

	if s.outbox != nil && req.Status != StatusPending {
		event := events.LeaveStatusChangedEvent{
			EventType:    events.EventLeaveStatusChanged,
			RequestID:    rid,
			LeaveID:      l.ID.String(),
			DocumentNo:   l.DocumentNo,
			UserID:       l.UserID.String(),
			EmployeeName: l.EmployeeName,
			LeaveType:    l.LeaveType,
			StartDate:    l.StartDate.Format("2006-01-02"),
			EndDate:      l.EndDate.Format("2006-01-02"),
			TotalDays:    l.TotalDays,
			Status:       l.Status,
			OccurredAt:   time.Now().UTC(),
		}
		if l.ApprovedBy != nil {
			event.ApprovedBy = l.ApprovedBy.String()
		}
		if err := s.queueEvent(ctx, tx, rid, l.ID.String(), event.EventType, event); err != nil {
			return LeaveRequestResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update leave request commit failed",
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return LeaveRequestResponse{}, err
	}
	s.logger.Info("update leave request success",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
		zap.String("status", l.Status),
	)

	return mapToResponse(*l), nil
}

// transition moves a PENDING request to APPROVED or REJECTED. Only
// administrators may do this, and the stored request details must match the
// payload so nothing changes mid-approval.
func (s *service) transition(
	ctx context.Context,
	qusers user.Repository,
	l *LeaveRequest,
	actorUUID uuid.UUID,
	role string,
	req UpdateLeaveRequest,
	startDate, endDate time.Time,
) error {
	if role != user.RoleAdmin {
		return leaveerrors.ErrNotRequestOwner
	}
	if !isAllowedStatusTransition(l.Status, req.Status) {
		s.logger.Warn("leave status transition invalid",
			zap.String("leave_id", l.ID.String()),
			zap.String("from_status", l.Status),
			zap.String("to_status", req.Status),
		)
		return leaveerrors.ErrInvalidStatusTransition
	}
	if req.LeaveType != l.LeaveType ||
		!startDate.Equal(l.StartDate) ||
		!endDate.Equal(l.EndDate) ||
		req.Reason != l.Reason {
		return leaveerrors.ErrPendingDetailsLocked
	}

	l.Status = req.Status
	switch req.Status {
	case StatusApproved:
		l.ApprovedBy = &actorUUID
		now := time.Now().UTC()
		l.ApprovedAt = &now
		if err := s.deductBalance(ctx, qusers, l); err != nil {
			return err
		}
	case StatusRejected:
		l.ApprovedBy = nil
		l.ApprovedAt = nil
	}
	return nil
}

// editDetails rewrites the leave details of a still-pending request. The
// owner may edit their own request; administrators may edit any.
func (s *service) editDetails(
	ctx context.Context,
	qtx Repository,
	l *LeaveRequest,
	actorUUID uuid.UUID,
	role string,
	req UpdateLeaveRequest,
	startDate, endDate time.Time,
) error {
	if l.Status != StatusPending {
		return leaveerrors.ErrEditNonPending
	}
	if role != user.RoleAdmin && l.UserID != actorUUID {
		return leaveerrors.ErrNotRequestOwner
	}

	id := l.ID.String()
	overlap, err := qtx.HasOverlappingPeriod(ctx, l.UserID.String(), startDate, endDate, &id)
	if err != nil {
		return err
	}
	if overlap {
		return leaveerrors.ErrLeaveOverlap
	}

	l.LeaveType = req.LeaveType
	l.StartDate = startDate
	l.EndDate = endDate
	l.TotalDays = totalDays(startDate, endDate)
	l.Reason = req.Reason
	l.ContactNumber = req.ContactNumber
	return nil
}

func (s *service) Delete(ctx context.Context, actorID, role, id string) error {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("delete leave request requested",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
		zap.String("actor_id", actorID),
	)

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return leaveerrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete leave request begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	qusers := s.users.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return leaveerrors.ErrLeaveNotFound
		}
		return err
	}

	// Employees may drop their own pending or rejected requests; approved
	// requests are only deletable by an administrator.
	if role != user.RoleAdmin {
		if l.UserID != actorUUID {
			return leaveerrors.ErrNotRequestOwner
		}
		if l.Status == StatusApproved {
			return leaveerrors.ErrEmployeeDeleteApproved
		}
	}

	if l.Status == StatusApproved {
		if err := s.restoreBalance(ctx, qusers, l); err != nil {
			return err
		}
	}

	if err := qtx.Delete(ctx, id); err != nil {
		s.logger.Error("delete leave request persist failed", zap.String("leave_id", id), zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete leave request commit failed", zap.String("leave_id", id), zap.Error(err))
		return err
	}
	s.logger.Info("delete leave request success",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
		zap.String("status", l.Status),
	)
	return nil
}

// deductBalance draws the request's days from the owner's balance counter,
// clamping at zero. A missing owner is logged and skipped; the approval
// itself still goes through.
func (s *service) deductBalance(ctx context.Context, qusers user.Repository, l *LeaveRequest) error {
	key, ok := BalanceKey(l.LeaveType)
	if !ok {
		return leaveerrors.ErrUnknownLeaveType
	}

	u, err := qusers.FindByID(ctx, l.UserID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("balance deduction skipped, user not found",
				zap.String("leave_id", l.ID.String()),
				zap.String("user_id", l.UserID.String()),
			)
			return nil
		}
		return err
	}

	balance, ok := u.LeaveBalances.Counter(key)
	if !ok {
		return usererrors.ErrUnknownBalanceKey
	}

	*balance -= l.TotalDays
	if *balance < 0 {
		s.logger.Warn("balance clamped to zero on approval",
			zap.String("leave_id", l.ID.String()),
			zap.String("user_id", l.UserID.String()),
			zap.String("balance_key", key),
			zap.Int("total_days", l.TotalDays),
		)
		*balance = 0
	}

	return qusers.Update(ctx, u)
}

// restoreBalance gives back the days of a deleted approved request. The
// increment is unconditional; restoration may exceed the original allotment.
func (s *service) restoreBalance(ctx context.Context, qusers user.Repository, l *LeaveRequest) error {
	key, ok := BalanceKey(l.LeaveType)
	if !ok {
		return leaveerrors.ErrUnknownLeaveType
	}

	u, err := qusers.FindByID(ctx, l.UserID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("balance restoration skipped, user not found",
				zap.String("leave_id", l.ID.String()),
				zap.String("user_id", l.UserID.String()),
			)
			return nil
		}
		return err
	}

	balance, ok := u.LeaveBalances.Counter(key)
	if !ok {
		return usererrors.ErrUnknownBalanceKey
	}

	*balance += l.TotalDays

	return qusers.Update(ctx, u)
}

func (s *service) queueEvent(ctx context.Context, tx *sql.Tx, rid, leaveID, eventType string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal leave event failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}

	outboxRepo := s.outbox.WithTx(tx)
	if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "leave_request",
		AggregateID:   leaveID,
		EventType:     eventType,
		Topic:         events.LeaveLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("leave outbox persist failed",
			zap.String("leave_id", leaveID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func isAllowedStatusTransition(currentStatus, targetStatus string) bool {
	if currentStatus != StatusPending {
		return false
	}
	return targetStatus == StatusApproved || targetStatus == StatusRejected
}

func totalDays(startDate, endDate time.Time) int {
	return int(endDate.Sub(startDate).Hours()/24) + 1
}

func parseDateRange(start, end string) (time.Time, time.Time, error) {
	startDate, err := parseDate(start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	endDate, err := parseDate(end)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if startDate.After(endDate) {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateRange
	}
	return startDate, endDate, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(l LeaveRequest) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:             l.ID.String(),
		DocumentNo:     l.DocumentNo,
		UserID:         l.UserID.String(),
		EmployeeName:   l.EmployeeName,
		LeaveType:      l.LeaveType,
		LeaveTypeLabel: TypeLabelTH(l.LeaveType),
		StartDate:      l.StartDate.Format("2006-01-02"),
		EndDate:        l.EndDate.Format("2006-01-02"),
		TotalDays:      l.TotalDays,
		Reason:         l.Reason,
		ContactNumber:  l.ContactNumber,
		Status:         l.Status,
		RequestDate:    l.RequestDate.Format("2006-01-02"),
	}
	if l.ApprovedBy != nil {
		v := l.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if l.ApprovedAt != nil {
		v := l.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	return resp
}

func mapToListResponse(requests []LeaveRequest) []LeaveRequestResponse {
	resp := make([]LeaveRequestResponse, len(requests))
	for i, l := range requests {
		resp[i] = mapToResponse(l)
	}
	return resp
}
