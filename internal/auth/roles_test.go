package auth

import (
	"testing"

	"github.com/spec-kit/leave-service/internal/domain"
	apperrors "github.com/spec-kit/leave-service/pkg/util"
)

func TestRequireRole(t *testing.T) {
	admin := &domain.User{ID: "u1", Role: domain.RoleAdmin}
	employee := &domain.User{ID: "u2", Role: domain.RoleEmployee}

	if err := RequireRole(admin, domain.RoleAdmin); err != nil {
		t.Fatalf("admin should pass admin check: %v", err)
	}
	if err := RequireRole(employee, domain.RoleEmployee); err != nil {
		t.Fatalf("employee should pass employee check: %v", err)
	}
	if err := RequireRole(employee, domain.RoleAdmin); !apperrors.IsCode(err, "FORBIDDEN") {
		t.Fatalf("expected FORBIDDEN, got %v", err)
	}
	if err := RequireRole(nil, domain.RoleAdmin); !apperrors.IsCode(err, "UNAUTHORIZED") {
		t.Fatalf("expected UNAUTHORIZED for missing principal, got %v", err)
	}
}
