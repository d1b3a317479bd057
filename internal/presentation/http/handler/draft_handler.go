package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sevderk/lavash-bakery-supabase/internal/application/service"
	"github.com/sevderk/lavash-bakery-supabase/internal/domain/entity"
	"github.com/sevderk/lavash-bakery-supabase/internal/domain/pricing"
	"github.com/sevderk/lavash-bakery-supabase/internal/presentation/http/dto/response"
	"github.com/sevderk/lavash-bakery-supabase/pkg/apperror"
)

// DraftHandler handles draft cart HTTP requests
type DraftHandler struct {
	draftService    *service.DraftService
	orderService    *service.OrderService
	customerService *service.CustomerService
}

// NewDraftHandler creates a new draft handler
func NewDraftHandler(
	draftService *service.DraftService,
	orderService *service.OrderService,
	customerService *service.CustomerService,
) *DraftHandler {
	return &DraftHandler{
		draftService:    draftService,
		orderService:    orderService,
		customerService: customerService,
	}
}

// guardSubmitting rejects draft edits while a batch submission is in flight
func (h *DraftHandler) guardSubmitting(c *gin.Context) bool {
	if h.orderService.Submitting() {
		response.Conflict(c, "A batch submission is in progress")
		return false
	}
	return true
}

// List handles listing all draft carts keyed by customer ID
func (h *DraftHandler) List(c *gin.Context) {
	response.OK(c, "Drafts retrieved successfully", h.draftService.Drafts())
}

// GetCart handles getting a single customer's draft cart
func (h *DraftHandler) GetCart(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("customerId"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	draft, ok := h.draftService.Cart(customerID)
	if !ok {
		response.NotFound(c, "No draft for this customer")
		return
	}

	response.OK(c, "Draft retrieved successfully", draft)
}

// SetCart handles replacing a customer's draft cart wholesale
func (h *DraftHandler) SetCart(c *gin.Context) {
	if !h.guardSubmitting(c) {
		return
	}

	customerID, err := uuid.Parse(c.Param("customerId"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	var req struct {
		Items          []entity.CartLine `json:"items"`
		DiscountAmount *float64          `json:"discountAmount"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	var fieldErrors []apperror.FieldError
	for _, line := range req.Items {
		if line.Quantity < 0 {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field: "items.quantity", Message: "quantity must not be negative",
			})
			break
		}
	}
	for _, line := range req.Items {
		if line.UnitPrice < 0 {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field: "items.unitPrice", Message: "unit price must not be negative",
			})
			break
		}
	}
	if req.DiscountAmount != nil && *req.DiscountAmount < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field: "discountAmount", Message: "discount must not be negative",
		})
	}
	if len(fieldErrors) > 0 {
		response.ValidationError(c, fieldErrors)
		return
	}

	// An omitted discount is derived from the customer's stored policy
	var discount float64
	if req.DiscountAmount != nil {
		discount = *req.DiscountAmount
	} else {
		customer, err := h.customerService.GetCustomer(c.Request.Context(), customerID)
		if err != nil {
			response.Error(c, err)
			return
		}
		discount = pricing.DiscountFor(pricing.Subtotal(req.Items), customer)
	}

	h.draftService.SetCart(customerID, req.Items, discount)

	if draft, ok := h.draftService.Cart(customerID); ok {
		response.OK(c, "Draft updated successfully", draft)
		return
	}
	// The cart totalled zero quantity and was removed
	response.OK(c, "Draft removed", nil)
}

// SetQuantity handles the quantity shortcut for single-line drafts
func (h *DraftHandler) SetQuantity(c *gin.Context) {
	if !h.guardSubmitting(c) {
		return
	}

	customerID, err := uuid.Parse(c.Param("customerId"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	h.draftService.SetQuantity(customerID, req.Quantity)

	if draft, ok := h.draftService.Cart(customerID); ok {
		response.OK(c, "Draft updated successfully", draft)
		return
	}
	response.OK(c, "Draft removed", nil)
}

// SetUnitPrice handles the unit price shortcut for single-line drafts
func (h *DraftHandler) SetUnitPrice(c *gin.Context) {
	if !h.guardSubmitting(c) {
		return
	}

	customerID, err := uuid.Parse(c.Param("customerId"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	var req struct {
		UnitPrice float64 `json:"unitPrice"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if req.UnitPrice < 0 {
		response.ValidationError(c, []apperror.FieldError{
			{Field: "unitPrice", Message: "unit price must not be negative"},
		})
		return
	}

	h.draftService.SetUnitPrice(customerID, req.UnitPrice)

	if draft, ok := h.draftService.Cart(customerID); ok {
		response.OK(c, "Draft updated successfully", draft)
		return
	}
	// Absent drafts are left untouched; setting a price alone never creates one
	response.OK(c, "No draft for this customer", nil)
}

// ClearCart handles removing a single customer's draft
func (h *DraftHandler) ClearCart(c *gin.Context) {
	if !h.guardSubmitting(c) {
		return
	}

	customerID, err := uuid.Parse(c.Param("customerId"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	h.draftService.ClearCart(customerID)
	response.NoContent(c)
}

// ClearAll handles wiping every draft
func (h *DraftHandler) ClearAll(c *gin.Context) {
	if !h.guardSubmitting(c) {
		return
	}

	h.draftService.ClearDrafts()
	response.NoContent(c)
}

// Summary handles the pre-submission batch summary
func (h *DraftHandler) Summary(c *gin.Context) {
	customers, err := h.customerService.ListAllCustomers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Draft summary retrieved successfully", h.draftService.Summary(customers))
}
