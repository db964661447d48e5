package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

// Errors returned when database constraints are violated. The callbacks in
// database.go translate the driver messages into these.
var (
	ErrUserEmailNotUnique        = errors.New("a user with this email address already exists")
	ErrPaymentMonthNotUnique     = errors.New("you can not create multiple payments for the same tenant and month")
	ErrSpendingTitleNotUnique    = errors.New("a spending category with this title already exists for this property")
	ErrReportMonthNotUnique      = errors.New("you can not create multiple monthly reports for the same property and month")
	ErrPaymentAmountNotPositive  = errors.New("payment amounts must be larger than zero")
	ErrPaymentStatusInvalid      = errors.New("the payment status must be one of paid, pending, overdue")
	ErrComplaintStatusInvalid    = errors.New("the complaint status must be one of open, in_progress, resolved")
	ErrUserRoleInvalid           = errors.New("the user role must be one of admin, manager, tenant")
	ErrReportGeneratedByRequired = errors.New("monthly reports must reference the user who generated them")
)
