package user_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/servicein2it/leave-in2it-sub000/internal/user"
	usererrors "github.com/servicein2it/leave-in2it-sub000/internal/user/errors"
	mock_user "github.com/servicein2it/leave-in2it-sub000/internal/user/mock"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success hashes password and applies defaults", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := mock_user.NewMockRepository(ctrl)
		svc := user.NewService(mockRepo, nil)

		var created *user.User
		mockRepo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, u *user.User) error {
				created = u
				return nil
			})

		resp, err := svc.Create(ctx, user.CreateUserRequest{
			Username:  "somchai",
			Password:  "secretpass",
			Role:      user.RoleEmployee,
			TitleTH:   "นาย",
			FirstName: "สมชาย",
			LastName:  "ใจดี",
			Email:     "somchai@example.co.th",
		})

		assert.NoError(t, err)
		assert.NotNil(t, created)
		assert.NotEqual(t, "secretpass", created.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("secretpass")))
		assert.True(t, created.IsActive)
		assert.Equal(t, user.DefaultLeaveBalances(), created.LeaveBalances)
		assert.Equal(t, "นายสมชาย ใจดี", resp.FullName)
		assert.Equal(t, 30, resp.LeaveBalances.Sick)
		assert.Equal(t, 6, resp.LeaveBalances.Personal)
		assert.Equal(t, 10, resp.LeaveBalances.Vacation)
	})

	t.Run("explicit balances override defaults", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := mock_user.NewMockRepository(ctrl)
		svc := user.NewService(mockRepo, nil)

		mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		balances := user.DefaultLeaveBalances()
		balances.Vacation = 20

		resp, err := svc.Create(ctx, user.CreateUserRequest{
			Username:      "somsri",
			Password:      "secretpass",
			Role:          user.RoleAdmin,
			FirstName:     "สมศรี",
			LastName:      "มีสุข",
			Email:         "somsri@example.co.th",
			LeaveBalances: &balances,
		})

		assert.NoError(t, err)
		assert.Equal(t, 20, resp.LeaveBalances.Vacation)
	})

	t.Run("negative duplicate username", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := mock_user.NewMockRepository(ctrl)
		svc := user.NewService(mockRepo, nil)

		mockRepo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_users_username"})

		_, err := svc.Create(ctx, user.CreateUserRequest{
			Username:  "somchai",
			Password:  "secretpass",
			Role:      user.RoleEmployee,
			FirstName: "สมชาย",
			LastName:  "ใจดี",
			Email:     "somchai@example.co.th",
		})

		assert.ErrorIs(t, err, usererrors.ErrUsernameTaken)
	})
}

func TestUserService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := mock_user.NewMockRepository(ctrl)
		svc := user.NewService(mockRepo, nil)

		id := uuid.New()
		mockRepo.EXPECT().
			FindByID(gomock.Any(), id.String()).
			Return(&user.User{ID: id, Username: "somchai", LeaveBalances: user.DefaultLeaveBalances()}, nil)

		resp, err := svc.GetByID(ctx, id.String())

		assert.NoError(t, err)
		assert.Equal(t, id.String(), resp.ID)
		assert.Equal(t, "somchai", resp.Username)
	})

	t.Run("negative invalid id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := mock_user.NewMockRepository(ctrl)
		svc := user.NewService(mockRepo, nil)

		_, err := svc.GetByID(ctx, "not-a-uuid")

		assert.ErrorIs(t, err, usererrors.ErrInvalidUserID)
	})

	t.Run("negative not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := mock_user.NewMockRepository(ctrl)
		svc := user.NewService(mockRepo, nil)

		id := uuid.New().String()
		mockRepo.EXPECT().FindByID(gomock.Any(), id).Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.GetByID(ctx, id)

		assert.ErrorIs(t, err, usererrors.ErrUserNotFound)
	})
}

func TestUserService_Patch(t *testing.T) {
	ctx := context.Background()

	t.Run("patch balances only", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := mock_user.NewMockRepository(ctrl)
		svc := user.NewService(mockRepo, nil)

		id := uuid.New()
		existing := &user.User{
			ID:            id,
			Username:      "somchai",
			FirstName:     "สมชาย",
			LastName:      "ใจดี",
			LeaveBalances: user.DefaultLeaveBalances(),
			IsActive:      true,
		}

		mockRepo.EXPECT().FindByID(gomock.Any(), id.String()).Return(existing, nil)
		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, u *user.User) error {
				assert.Equal(t, 5, u.LeaveBalances.Sick)
				assert.Equal(t, "somchai", u.Username)
				return nil
			})

		balances := user.DefaultLeaveBalances()
		balances.Sick = 5

		resp, err := svc.Patch(ctx, id.String(), user.PatchUserRequest{
			LeaveBalances: &balances,
		})

		assert.NoError(t, err)
		assert.Equal(t, 5, resp.LeaveBalances.Sick)
		assert.Equal(t, "สมชาย", resp.FirstName)
	})

	t.Run("patch password rehashes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := mock_user.NewMockRepository(ctrl)
		svc := user.NewService(mockRepo, nil)

		id := uuid.New()
		existing := &user.User{ID: id, Username: "somchai", Password: "old-hash"}

		mockRepo.EXPECT().FindByID(gomock.Any(), id.String()).Return(existing, nil)

		var saved *user.User
		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, u *user.User) error {
				saved = u
				return nil
			})

		newPassword := "newsecret123"
		_, err := svc.Patch(ctx, id.String(), user.PatchUserRequest{Password: &newPassword})

		assert.NoError(t, err)
		assert.NotNil(t, saved)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.Password), []byte(newPassword)))
	})
}

func TestUserService_GetOptions(t *testing.T) {
	ctx := context.Background()

	t.Run("cache miss falls through to the repository and fills cache", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		rdb, rmock := redismock.NewClientMock()
		mockRepo := mock_user.NewMockRepository(ctrl)
		svc := user.NewService(mockRepo, rdb)

		id := uuid.New()
		mockRepo.EXPECT().
			FindOptions(gomock.Any()).
			Return([]user.User{{ID: id, TitleTH: "นาย", FirstName: "สมชาย", LastName: "ใจดี"}}, nil)

		rmock.ExpectGet(user.UserOptionsCacheKey).RedisNil()
		expected, _ := json.Marshal([]user.UserOption{{ID: id.String(), FullName: "นายสมชาย ใจดี"}})
		rmock.ExpectSet(user.UserOptionsCacheKey, expected, 1*time.Hour).SetVal("OK")

		resp, err := svc.GetOptions(ctx)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "นายสมชาย ใจดี", resp[0].FullName)
		assert.NoError(t, rmock.ExpectationsWereMet())
	})

	t.Run("cache hit skips the repository", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		rdb, rmock := redismock.NewClientMock()
		mockRepo := mock_user.NewMockRepository(ctrl)
		svc := user.NewService(mockRepo, rdb)

		cached, _ := json.Marshal([]user.UserOption{{ID: uuid.New().String(), FullName: "นางสมศรี มีสุข"}})
		rmock.ExpectGet(user.UserOptionsCacheKey).SetVal(string(cached))

		resp, err := svc.GetOptions(ctx)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "นางสมศรี มีสุข", resp[0].FullName)
		assert.NoError(t, rmock.ExpectationsWereMet())
	})
}

func TestUserService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := mock_user.NewMockRepository(ctrl)
		svc := user.NewService(mockRepo, nil)

		id := uuid.New().String()
		mockRepo.EXPECT().FindByID(gomock.Any(), id).Return(&user.User{ID: uuid.MustParse(id)}, nil)
		mockRepo.EXPECT().Delete(gomock.Any(), id).Return(nil)

		assert.NoError(t, svc.Delete(ctx, id))
	})

	t.Run("negative repo error surfaces", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := mock_user.NewMockRepository(ctrl)
		svc := user.NewService(mockRepo, nil)

		id := uuid.New().String()
		mockRepo.EXPECT().FindByID(gomock.Any(), id).Return(&user.User{}, nil)
		mockRepo.EXPECT().Delete(gomock.Any(), id).Return(errors.New("db error"))

		assert.Error(t, svc.Delete(ctx, id))
	})
}
