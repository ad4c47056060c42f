package notification

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/servicein2it/leave-in2it-sub000/internal/emailtemplate"
	"github.com/servicein2it/leave-in2it-sub000/internal/events"
	"github.com/servicein2it/leave-in2it-sub000/internal/leave"
	"github.com/servicein2it/leave-in2it-sub000/internal/user"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeMailer struct {
	sendFn func(to string, cc []string, subject, htmlBody string) error
	sent   []sentMail
}

type sentMail struct {
	To      string
	CC      []string
	Subject string
	Body    string
}

func (f *fakeMailer) Send(to string, cc []string, subject, htmlBody string) error {
	if f.sendFn != nil {
		if err := f.sendFn(to, cc, subject, htmlBody); err != nil {
			return err
		}
	}
	f.sent = append(f.sent, sentMail{To: to, CC: cc, Subject: subject, Body: htmlBody})
	return nil
}

type fakeTemplateRepo struct {
	findEnabledByEventFn func(ctx context.Context, event string) (*emailtemplate.EmailTemplate, error)
}

func (f *fakeTemplateRepo) Create(ctx context.Context, t *emailtemplate.EmailTemplate) error {
	return nil
}
func (f *fakeTemplateRepo) FindAll(ctx context.Context) ([]emailtemplate.EmailTemplate, error) {
	return nil, nil
}
func (f *fakeTemplateRepo) FindByID(ctx context.Context, id string) (*emailtemplate.EmailTemplate, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeTemplateRepo) FindEnabledByEvent(ctx context.Context, event string) (*emailtemplate.EmailTemplate, error) {
	if f.findEnabledByEventFn != nil {
		return f.findEnabledByEventFn(ctx, event)
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeTemplateRepo) Update(ctx context.Context, t *emailtemplate.EmailTemplate) error {
	return nil
}

type fakeUserRepo struct {
	findByIDFn func(ctx context.Context, id string) (*user.User, error)
}

func (f *fakeUserRepo) WithTx(tx *sql.Tx) user.Repository { return f }
func (f *fakeUserRepo) Create(ctx context.Context, u *user.User) error {
	return nil
}
func (f *fakeUserRepo) FindAll(ctx context.Context) ([]user.User, error)     { return nil, nil }
func (f *fakeUserRepo) FindOptions(ctx context.Context) ([]user.User, error) { return nil, nil }
func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*user.User, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeUserRepo) Update(ctx context.Context, u *user.User) error { return nil }
func (f *fakeUserRepo) Delete(ctx context.Context, id string) error    { return nil }

func submittedMessage(t *testing.T, event events.LeaveSubmittedEvent) kafkago.Message {
	t.Helper()
	payload, err := json.Marshal(event)
	assert.NoError(t, err)
	return kafkago.Message{Value: payload}
}

func TestConsumer_HandleSubmitted(t *testing.T) {
	ctx := context.Background()

	t.Run("renders Thai labels and mails the admin", func(t *testing.T) {
		templates := &fakeTemplateRepo{
			findEnabledByEventFn: func(ctx context.Context, event string) (*emailtemplate.EmailTemplate, error) {
				assert.Equal(t, emailtemplate.EventLeaveSubmitted, event)
				return &emailtemplate.EmailTemplate{
					ID:      uuid.New(),
					Subject: "คำขอลาใหม่: {{.EmployeeName}}",
					Body:    "<p>{{.EmployeeName}} ขอ{{.LeaveType}} ช่วง {{.Period}}</p>",
					Event:   event,
					Metadata: emailtemplate.TemplateMetadata{
						Enabled: true,
						CC:      []string{"hr@example.co.th"},
					},
				}, nil
			},
		}
		mailer := &fakeMailer{}
		c := NewConsumer(nil, templates, &fakeUserRepo{}, mailer, "admin@example.co.th")

		c.handleMessage(ctx, submittedMessage(t, events.LeaveSubmittedEvent{
			EventType:    events.EventLeaveSubmitted,
			LeaveID:      uuid.NewString(),
			DocumentNo:   "1/2569",
			UserID:       uuid.NewString(),
			EmployeeName: "นายสมชาย ใจดี",
			LeaveType:    leave.TypeSick,
			StartDate:    "2026-03-02",
			EndDate:      "2026-03-04",
			TotalDays:    3,
			OccurredAt:   time.Now().UTC(),
		}))

		assert.Len(t, mailer.sent, 1)
		assert.Equal(t, "admin@example.co.th", mailer.sent[0].To)
		assert.Equal(t, []string{"hr@example.co.th"}, mailer.sent[0].CC)
		assert.Equal(t, "คำขอลาใหม่: นายสมชาย ใจดี", mailer.sent[0].Subject)
		assert.Contains(t, mailer.sent[0].Body, "ลาป่วย")
		assert.Contains(t, mailer.sent[0].Body, "2 มีนาคม 2569")
	})

	t.Run("missing template is skipped quietly", func(t *testing.T) {
		mailer := &fakeMailer{}
		c := NewConsumer(nil, &fakeTemplateRepo{}, &fakeUserRepo{}, mailer, "admin@example.co.th")

		c.handleMessage(ctx, submittedMessage(t, events.LeaveSubmittedEvent{
			EventType:    events.EventLeaveSubmitted,
			LeaveID:      uuid.NewString(),
			EmployeeName: "นายสมชาย ใจดี",
			LeaveType:    leave.TypeSick,
		}))

		assert.Empty(t, mailer.sent)
	})

	t.Run("send failure does not panic", func(t *testing.T) {
		templates := &fakeTemplateRepo{
			findEnabledByEventFn: func(ctx context.Context, event string) (*emailtemplate.EmailTemplate, error) {
				return &emailtemplate.EmailTemplate{Subject: "s", Body: "b"}, nil
			},
		}
		mailer := &fakeMailer{
			sendFn: func(to string, cc []string, subject, htmlBody string) error {
				return errors.New("smtp down")
			},
		}
		c := NewConsumer(nil, templates, &fakeUserRepo{}, mailer, "admin@example.co.th")

		c.handleMessage(ctx, submittedMessage(t, events.LeaveSubmittedEvent{
			EventType: events.EventLeaveSubmitted,
			LeaveID:   uuid.NewString(),
		}))

		assert.Empty(t, mailer.sent)
	})
}

func TestConsumer_HandleStatusChanged(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	statusMessage := func(t *testing.T, status string) kafkago.Message {
		t.Helper()
		payload, err := json.Marshal(events.LeaveStatusChangedEvent{
			EventType:    events.EventLeaveStatusChanged,
			LeaveID:      uuid.NewString(),
			DocumentNo:   "2/2569",
			UserID:       ownerID.String(),
			EmployeeName: "นายสมชาย ใจดี",
			LeaveType:    leave.TypeVacation,
			StartDate:    "2026-04-06",
			EndDate:      "2026-04-08",
			TotalDays:    3,
			Status:       status,
			OccurredAt:   time.Now().UTC(),
		})
		assert.NoError(t, err)
		return kafkago.Message{Value: payload}
	}

	t.Run("approval mails the employee with the approved template", func(t *testing.T) {
		templates := &fakeTemplateRepo{
			findEnabledByEventFn: func(ctx context.Context, event string) (*emailtemplate.EmailTemplate, error) {
				assert.Equal(t, emailtemplate.EventLeaveApproved, event)
				return &emailtemplate.EmailTemplate{
					Subject: "{{.Status}}: {{.DocumentNo}}",
					Body:    "<p>คำขอ{{.LeaveType}}ของคุณ{{.Status}}</p>",
				}, nil
			},
		}
		users := &fakeUserRepo{
			findByIDFn: func(ctx context.Context, id string) (*user.User, error) {
				assert.Equal(t, ownerID.String(), id)
				return &user.User{ID: ownerID, Email: "somchai@example.co.th"}, nil
			},
		}
		mailer := &fakeMailer{}
		c := NewConsumer(nil, templates, users, mailer, "admin@example.co.th")

		c.handleMessage(ctx, statusMessage(t, leave.StatusApproved))

		assert.Len(t, mailer.sent, 1)
		assert.Equal(t, "somchai@example.co.th", mailer.sent[0].To)
		assert.Equal(t, "อนุมัติ: 2/2569", mailer.sent[0].Subject)
		assert.Contains(t, mailer.sent[0].Body, "ลาพักร้อน")
	})

	t.Run("rejection selects the rejected template", func(t *testing.T) {
		var requestedEvent string
		templates := &fakeTemplateRepo{
			findEnabledByEventFn: func(ctx context.Context, event string) (*emailtemplate.EmailTemplate, error) {
				requestedEvent = event
				return &emailtemplate.EmailTemplate{Subject: "{{.Status}}", Body: "b"}, nil
			},
		}
		users := &fakeUserRepo{
			findByIDFn: func(ctx context.Context, id string) (*user.User, error) {
				return &user.User{ID: ownerID, Email: "somchai@example.co.th"}, nil
			},
		}
		mailer := &fakeMailer{}
		c := NewConsumer(nil, templates, users, mailer, "admin@example.co.th")

		c.handleMessage(ctx, statusMessage(t, leave.StatusRejected))

		assert.Equal(t, emailtemplate.EventLeaveRejected, requestedEvent)
		assert.Len(t, mailer.sent, 1)
		assert.Equal(t, "ไม่อนุมัติ", mailer.sent[0].Subject)
	})

	t.Run("missing employee is skipped", func(t *testing.T) {
		mailer := &fakeMailer{}
		c := NewConsumer(nil, &fakeTemplateRepo{}, &fakeUserRepo{}, mailer, "admin@example.co.th")

		c.handleMessage(ctx, statusMessage(t, leave.StatusApproved))

		assert.Empty(t, mailer.sent)
	})
}
