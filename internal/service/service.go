// Package service implements the SharedShop Connect services.
//
// Every handler resolves the verified caller first, validates the request,
// checks the caller's access to the budget involved, and only then writes.
// Failures that are not the caller's fault are logged with their cause and
// returned as a bare internal error.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"connectrpc.com/connect"
	"github.com/go-playground/validator/v10"

	"github.com/MacDuki/sharedShop/internal/middleware"
	"github.com/MacDuki/sharedShop/internal/models"
	"github.com/MacDuki/sharedShop/internal/storage"
	"github.com/MacDuki/sharedShop/pkg/api/apiconnect"
)

var (
	_ apiconnect.AuthServiceHandler         = (*AuthService)(nil)
	_ apiconnect.UserServiceHandler         = (*UserService)(nil)
	_ apiconnect.BudgetServiceHandler       = (*BudgetService)(nil)
	_ apiconnect.MembershipServiceHandler   = (*MembershipService)(nil)
	_ apiconnect.ItemServiceHandler         = (*ItemService)(nil)
	_ apiconnect.HistoryServiceHandler      = (*HistoryService)(nil)
	_ apiconnect.NotificationServiceHandler = (*NotificationService)(nil)
)

var errInternal = errors.New("internal error")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateRequest checks msg's validate tags and reports every failing field.
func validateRequest(msg any) error {
	err := validate.Struct(msg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return connect.NewError(connect.CodeInvalidArgument, err)
	}
	problems := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		problems = append(problems, describeFieldError(fe))
	}
	return connect.NewError(connect.CodeInvalidArgument, errors.New(strings.Join(problems, "; ")))
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	case "email":
		return fe.Field() + " must be a valid email address"
	default:
		return fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag())
	}
}

// callerID returns the authenticated user or an unauthenticated error.
func callerID(ctx context.Context) (string, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, errors.New("user must be authenticated"))
	}
	return userID, nil
}

func invalidArgument(msg string) error {
	return connect.NewError(connect.CodeInvalidArgument, errors.New(msg))
}

func notFound(msg string) error {
	return connect.NewError(connect.CodeNotFound, errors.New(msg))
}

func permissionDenied(msg string) error {
	return connect.NewError(connect.CodePermissionDenied, errors.New(msg))
}

// internalError logs err with attrs and returns an error that hides it.
func internalError(msg string, err error, attrs ...any) error {
	slog.Error(msg, append(attrs, "error", err)...)
	return connect.NewError(connect.CodeInternal, errInternal)
}

// access is the role a caller needs on a budget.
type access int

const (
	memberAccess access = iota
	ownerAccess
)

// loadBudget fetches budgetID and checks the caller holds need on it.
// denied is the message used when they do not.
func loadBudget(ctx context.Context, store storage.BudgetStore, budgetID, caller string, need access, denied string) (*models.Budget, error) {
	budget, err := store.GetBudget(ctx, budgetID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, notFound("budget not found")
	}
	if err != nil {
		return nil, internalError("Failed to load budget", err, "budget_id", budgetID)
	}

	switch need {
	case ownerAccess:
		if !budget.IsOwner(caller) {
			return nil, permissionDenied(denied)
		}
	default:
		if !budget.IsMember(caller) {
			return nil, permissionDenied(denied)
		}
	}
	return budget, nil
}

// trimmed returns the trimmed value and whether anything is left.
func trimmed(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != ""
}
