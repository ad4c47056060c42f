package notification

import (
	"context"
	"encoding/json"
	"time"

	"github.com/servicein2it/leave-in2it-sub000/internal/emailtemplate"
	"github.com/servicein2it/leave-in2it-sub000/internal/events"
	"github.com/servicein2it/leave-in2it-sub000/internal/leave"
	"github.com/servicein2it/leave-in2it-sub000/internal/shared/thaidate"
	"github.com/servicein2it/leave-in2it-sub000/internal/user"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Consumer turns leave lifecycle events into emails. Delivery is
// fire-and-forget: every failure is logged and the message committed, so
// a broken template or unreachable SMTP host never wedges the partition.
type Consumer struct {
	reader     *kafkago.Reader
	templates  emailtemplate.Repository
	users      user.Repository
	mailer     Mailer
	adminEmail string
	logger     *zap.Logger
}

func NewConsumer(
	reader *kafkago.Reader,
	templates emailtemplate.Repository,
	users user.Repository,
	mailer Mailer,
	adminEmail string,
	logger ...*zap.Logger,
) *Consumer {
	l := zap.L().Named("notification.consumer")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.consumer")
	}

	return &Consumer{
		reader:     reader,
		templates:  templates,
		users:      users,
		mailer:     mailer,
		adminEmail: adminEmail,
		logger:     l,
	}
}

func (c *Consumer) Run(ctx context.Context) {
	c.logger.Info("leave lifecycle consumer started")

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.logger.Info("leave lifecycle consumer stopped")
				return
			}
			c.logger.Error("fetch leave lifecycle message failed", zap.Error(err))
			continue
		}

		c.handleMessage(ctx, msg)

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			c.logger.Error("commit leave lifecycle message failed", zap.Error(err))
		}
	}
}

func (c *Consumer) handleMessage(ctx context.Context, msg kafkago.Message) {
	var envelope struct {
		EventType string `json:"event_type"`
	}
	if err := json.Unmarshal(msg.Value, &envelope); err != nil {
		c.logger.Error("decode leave lifecycle event failed", zap.Error(err))
		return
	}

	switch envelope.EventType {
	case events.EventLeaveSubmitted:
		var event events.LeaveSubmittedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			c.logger.Error("decode leave_request_submitted event failed", zap.Error(err))
			return
		}
		c.notifySubmitted(ctx, event)

	case events.EventLeaveStatusChanged:
		var event events.LeaveStatusChangedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			c.logger.Error("decode leave_request_status_changed event failed", zap.Error(err))
			return
		}
		c.notifyStatusChanged(ctx, event)

	default:
		c.logger.Warn("unknown leave lifecycle event, skipping",
			zap.String("event_type", envelope.EventType),
		)
	}
}

// notifySubmitted mails the administrator inbox about a new request.
func (c *Consumer) notifySubmitted(ctx context.Context, event events.LeaveSubmittedEvent) {
	data := map[string]interface{}{
		"EmployeeName":  event.EmployeeName,
		"DocumentNo":    event.DocumentNo,
		"LeaveType":     leave.TypeLabelTH(event.LeaveType),
		"Period":        formatPeriod(event.StartDate, event.EndDate),
		"TotalDays":     event.TotalDays,
		"Reason":        event.Reason,
		"ContactNumber": event.ContactNumber,
	}

	c.sendFromTemplate(ctx, emailtemplate.EventLeaveSubmitted, c.adminEmail, data,
		zap.String("leave_id", event.LeaveID),
		zap.String("document_no", event.DocumentNo),
	)
}

// notifyStatusChanged mails the owning employee about an approval or
// rejection.
func (c *Consumer) notifyStatusChanged(ctx context.Context, event events.LeaveStatusChangedEvent) {
	templateEvent := emailtemplate.EventLeaveApproved
	if event.Status == leave.StatusRejected {
		templateEvent = emailtemplate.EventLeaveRejected
	}

	u, err := c.users.FindByID(ctx, event.UserID)
	if err != nil {
		c.logger.Error("lookup employee for status notification failed",
			zap.String("leave_id", event.LeaveID),
			zap.String("user_id", event.UserID),
			zap.Error(err),
		)
		return
	}
	if u.Email == "" {
		c.logger.Warn("employee has no email, skipping status notification",
			zap.String("leave_id", event.LeaveID),
			zap.String("user_id", event.UserID),
		)
		return
	}

	data := map[string]interface{}{
		"EmployeeName": event.EmployeeName,
		"DocumentNo":   event.DocumentNo,
		"LeaveType":    leave.TypeLabelTH(event.LeaveType),
		"Period":       formatPeriod(event.StartDate, event.EndDate),
		"TotalDays":    event.TotalDays,
		"Status":       leave.StatusLabelTH(event.Status),
	}

	c.sendFromTemplate(ctx, templateEvent, u.Email, data,
		zap.String("leave_id", event.LeaveID),
		zap.String("document_no", event.DocumentNo),
		zap.String("status", event.Status),
	)
}

func (c *Consumer) sendFromTemplate(
	ctx context.Context,
	templateEvent, to string,
	data map[string]interface{},
	fields ...zap.Field,
) {
	tpl, err := c.templates.FindEnabledByEvent(ctx, templateEvent)
	if err != nil {
		c.logger.Warn("no enabled template for event, skipping notification",
			append(fields, zap.String("event", templateEvent), zap.Error(err))...,
		)
		return
	}

	rendered, err := emailtemplate.Render(tpl, data)
	if err != nil {
		c.logger.Error("render notification template failed",
			append(fields, zap.String("template_id", tpl.ID.String()), zap.Error(err))...,
		)
		return
	}

	if err := c.mailer.Send(to, rendered.CC, rendered.Subject, rendered.Body); err != nil {
		c.logger.Error("send notification email failed",
			append(fields, zap.String("to", to), zap.Error(err))...,
		)
		return
	}

	c.logger.Info("notification email sent",
		append(fields, zap.String("event", templateEvent), zap.String("to", to))...,
	)
}

func formatPeriod(startDate, endDate string) string {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return startDate + " - " + endDate
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return startDate + " - " + endDate
	}
	return thaidate.FormatRange(start, end)
}
