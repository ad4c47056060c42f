package user_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/servicein2it/leave-in2it-sub000/internal/user"
	usererrors "github.com/servicein2it/leave-in2it-sub000/internal/user/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeUserService struct {
	createFn     func(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error)
	getAllFn     func(ctx context.Context) ([]user.UserResponse, error)
	getOptionsFn func(ctx context.Context) ([]user.UserOption, error)
	getByIDFn    func(ctx context.Context, id string) (user.UserResponse, error)
	updateFn     func(ctx context.Context, id string, req user.UpdateUserRequest) (user.UserResponse, error)
	patchFn      func(ctx context.Context, id string, req user.PatchUserRequest) (user.UserResponse, error)
	deleteFn     func(ctx context.Context, id string) error
}

func (f *fakeUserService) Create(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	return f.createFn(ctx, req)
}
func (f *fakeUserService) GetAll(ctx context.Context) ([]user.UserResponse, error) {
	return f.getAllFn(ctx)
}
func (f *fakeUserService) GetOptions(ctx context.Context) ([]user.UserOption, error) {
	return f.getOptionsFn(ctx)
}
func (f *fakeUserService) GetByID(ctx context.Context, id string) (user.UserResponse, error) {
	return f.getByIDFn(ctx, id)
}
func (f *fakeUserService) Update(ctx context.Context, id string, req user.UpdateUserRequest) (user.UserResponse, error) {
	return f.updateFn(ctx, id, req)
}
func (f *fakeUserService) Patch(ctx context.Context, id string, req user.PatchUserRequest) (user.UserResponse, error) {
	return f.patchFn(ctx, id, req)
}
func (f *fakeUserService) Delete(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}

func TestUserHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeUserService{
			createFn: func(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
				assert.Equal(t, "somchai", req.Username)
				assert.Equal(t, user.RoleEmployee, req.Role)
				return user.UserResponse{
					ID:       uuid.New().String(),
					Username: req.Username,
					Role:     req.Role,
					FullName: "นายสมชาย ใจดี",
				}, nil
			},
		}

		h := user.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"username":"somchai","password":"secretpass","role":"EMPLOYEE","title_th":"นาย","first_name":"สมชาย","last_name":"ใจดี","email":"somchai@example.co.th"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
	})

	t.Run("negative short password rejected by binding", func(t *testing.T) {
		h := user.NewHandler(&fakeUserService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"username":"somchai","password":"short","role":"EMPLOYEE","first_name":"สมชาย","last_name":"ใจดี","email":"somchai@example.co.th"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
	})

	t.Run("negative duplicate username maps to conflict", func(t *testing.T) {
		svc := &fakeUserService{
			createFn: func(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
				return user.UserResponse{}, usererrors.ErrUsernameTaken
			},
		}

		h := user.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"username":"somchai","password":"secretpass","role":"EMPLOYEE","first_name":"สมชาย","last_name":"ใจดี","email":"somchai@example.co.th"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "CONFLICT", env.Error.Code)
	})
}

func TestUserHandler_GetById(t *testing.T) {
	t.Run("employee reads own record", func(t *testing.T) {
		id := uuid.New().String()
		svc := &fakeUserService{
			getByIDFn: func(ctx context.Context, targetID string) (user.UserResponse, error) {
				assert.Equal(t, id, targetID)
				return user.UserResponse{ID: targetID}, nil
			},
		}

		h := user.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/users/"+id, nil)
		c.Params = gin.Params{{Key: "id", Value: id}}
		c.Set("user_id", id)
		c.Set("role", user.RoleEmployee)

		h.GetById(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("negative employee reads another record", func(t *testing.T) {
		h := user.NewHandler(&fakeUserService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		id := uuid.New().String()
		c.Request = httptest.NewRequest(http.MethodGet, "/users/"+id, nil)
		c.Params = gin.Params{{Key: "id", Value: id}}
		c.Set("user_id", uuid.New().String())
		c.Set("role", user.RoleEmployee)

		h.GetById(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin reads any record", func(t *testing.T) {
		id := uuid.New().String()
		svc := &fakeUserService{
			getByIDFn: func(ctx context.Context, targetID string) (user.UserResponse, error) {
				return user.UserResponse{ID: targetID}, nil
			},
		}

		h := user.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/users/"+id, nil)
		c.Params = gin.Params{{Key: "id", Value: id}}
		c.Set("user_id", uuid.New().String())
		c.Set("role", user.RoleAdmin)

		h.GetById(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestUserHandler_GetAll(t *testing.T) {
	t.Run("success with pagination meta", func(t *testing.T) {
		all := make([]user.UserResponse, 25)
		for i := range all {
			all[i] = user.UserResponse{ID: uuid.New().String()}
		}
		svc := &fakeUserService{
			getAllFn: func(ctx context.Context) ([]user.UserResponse, error) {
				return all, nil
			},
		}

		h := user.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/users?page=2&page_size=20", nil)

		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		var got []user.UserResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Len(t, got, 5)
	})
}

func TestUserHandler_Delete(t *testing.T) {
	t.Run("negative not found", func(t *testing.T) {
		svc := &fakeUserService{
			deleteFn: func(ctx context.Context, id string) error {
				return usererrors.ErrUserNotFound
			},
		}

		h := user.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		id := uuid.New().String()
		c.Request = httptest.NewRequest(http.MethodDelete, "/users/"+id, nil)
		c.Params = gin.Params{{Key: "id", Value: id}}

		h.Delete(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
