package leaveerrors

import (
	"net/http"

	"github.com/servicein2it/leave-in2it-sub000/internal/shared/apperror"
)

var (
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)
	ErrUnknownLeaveType = apperror.New(
		apperror.CodeInvalidInput,
		"unknown leave type",
		http.StatusBadRequest,
	)
	ErrLeaveOverlap = apperror.New(
		apperror.CodeInvalidState,
		"a leave request already exists in this period",
		http.StatusBadRequest,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"only pending requests can be approved or rejected",
		http.StatusBadRequest,
	)
	ErrPendingDetailsLocked = apperror.New(
		apperror.CodeInvalidState,
		"request details cannot be changed during approval",
		http.StatusBadRequest,
	)
	ErrNotRequestOwner = apperror.New(
		apperror.CodeForbidden,
		"you may only access your own leave requests",
		http.StatusForbidden,
	)
	ErrEditNonPending = apperror.New(
		apperror.CodeInvalidState,
		"only pending requests can be edited",
		http.StatusBadRequest,
	)
	ErrEmployeeDeleteApproved = apperror.New(
		apperror.CodeInvalidState,
		"approved requests can only be deleted by an administrator",
		http.StatusBadRequest,
	)
)
