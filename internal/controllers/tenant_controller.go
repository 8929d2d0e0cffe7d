package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/japetto/rental-portal-managment-backend-sub002/internal/dtos"
	"github.com/japetto/rental-portal-managment-backend-sub002/internal/services"
	"github.com/japetto/rental-portal-managment-backend-sub002/internal/utils"
)

type TenantController struct {
	tenantService *services.TenantService
	validate      *validator.Validate
}

func NewTenantController(tenantService *services.TenantService) *TenantController {
	return &TenantController{
		tenantService: tenantService,
		validate:      validator.New(),
	}
}

// POST /api/v1/admin/tenants/invite
func (c *TenantController) InviteHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.InviteTenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}

	if err := c.validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	tenant, err := c.tenantService.Invite(r.Context(), req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, tenant)
}

// GET /api/v1/admin/tenants
func (c *TenantController) ListHandler(w http.ResponseWriter, r *http.Request) {
	tenants, err := c.tenantService.List(r.Context())
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, tenants)
}

// POST /api/v1/admin/tenants/{tenantId}/revoke-invite
func (c *TenantController) RevokeInviteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathID(r, "tenantId")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	if err := c.tenantService.RevokeInvite(r.Context(), id); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /api/v1/tenants/accept-invite
//
// Public: the invite token is the credential.
func (c *TenantController) AcceptInviteHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.AcceptInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}

	if err := c.validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	tenant, err := c.tenantService.AcceptInvite(r.Context(), req.Token)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, tenant)
}
