package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/leave-service/internal/api/dto"
	"github.com/spec-kit/leave-service/internal/auth"
	"github.com/spec-kit/leave-service/internal/domain"
	"github.com/spec-kit/leave-service/internal/service"
	apperrors "github.com/spec-kit/leave-service/pkg/util"
)

// LeavesHandler manages leave request endpoints.
type LeavesHandler struct {
	service *service.LeaveService
}

// NewLeavesHandler constructs handler.
func NewLeavesHandler(leaveService *service.LeaveService) *LeavesHandler {
	return &LeavesHandler{service: leaveService}
}

// Create POST /leaves.
func (h *LeavesHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateLeaveRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.LeaveType == "" || req.StartDate == "" || req.EndDate == "" || req.Reason == "" {
		return apperrors.NewValidationError("leave_type, start_date, end_date, reason required", nil)
	}
	startDate, err := time.Parse(dto.DateFormat, req.StartDate)
	if err != nil {
		return apperrors.NewValidationError("start_date must be YYYY-MM-DD", nil)
	}
	endDate, err := time.Parse(dto.DateFormat, req.EndDate)
	if err != nil {
		return apperrors.NewValidationError("end_date must be YYYY-MM-DD", nil)
	}

	leave, err := h.service.Create(c.Context(), principal.User, service.LeaveCreateInput{
		LeaveType: req.LeaveType,
		StartDate: startDate,
		EndDate:   endDate,
		Reason:    req.Reason,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": leaveResponse(leave)})
}

// ListAll GET /leaves.
func (h *LeavesHandler) ListAll(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	leaves, err := h.service.ListAll(c.Context(), principal.User)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": leaveResponses(leaves)})
}

// ListMine GET /leaves/me.
func (h *LeavesHandler) ListMine(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	leaves, err := h.service.ListMine(c.Context(), principal.User)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": leaveResponses(leaves)})
}

// Get GET /leaves/:id.
func (h *LeavesHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	leave, history, err := h.service.Get(c.Context(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": leaveDetail(leave, history)})
}

// SetStatus PUT /leaves/:id/status.
func (h *LeavesHandler) SetStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.SetLeaveStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	target, err := domain.ParseDecision(req.Status)
	if err != nil {
		return apperrors.NewValidationError("status must be approved or rejected", nil)
	}

	leave, err := h.service.Decide(c.Context(), principal.User, c.Params("id"), target)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": leaveResponse(leave)})
}

func leaveResponse(leave *domain.LeaveRequest) dto.LeaveResponse {
	resp := dto.LeaveResponse{
		ID:        leave.ID,
		OwnerID:   leave.OwnerID,
		LeaveType: leave.LeaveType,
		StartDate: leave.StartDate.Format(dto.DateFormat),
		EndDate:   leave.EndDate.Format(dto.DateFormat),
		Reason:    leave.Reason,
		Status:    leave.Status,
		DecidedBy: leave.DecidedBy,
		CreatedAt: leave.CreatedAt,
	}
	if leave.Owner != nil {
		resp.Owner = &dto.LeaveOwnerResponse{
			ID:       leave.Owner.ID,
			Username: leave.Owner.Username,
		}
	}
	return resp
}

func leaveResponses(leaves []domain.LeaveRequest) []dto.LeaveResponse {
	items := make([]dto.LeaveResponse, 0, len(leaves))
	for i := range leaves {
		items = append(items, leaveResponse(&leaves[i]))
	}
	return items
}

func leaveDetail(leave *domain.LeaveRequest, history []domain.LeaveHistory) dto.LeaveDetailResponse {
	entries := make([]dto.LeaveHistoryResponse, 0, len(history))
	for _, entry := range history {
		entries = append(entries, dto.LeaveHistoryResponse{
			ID:        entry.ID,
			ChangedBy: entry.ChangedBy,
			OldStatus: entry.OldStatus,
			NewStatus: entry.NewStatus,
			CreatedAt: entry.CreatedAt,
		})
	}
	return dto.LeaveDetailResponse{
		LeaveResponse: leaveResponse(leave),
		History:       entries,
	}
}
