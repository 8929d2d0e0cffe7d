package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/japetto/rental-portal-managment-backend-sub002/internal/dtos"
	"github.com/japetto/rental-portal-managment-backend-sub002/internal/services"
	"github.com/japetto/rental-portal-managment-backend-sub002/internal/utils"
)

type ServiceRequestController struct {
	requestService *services.ServiceRequestService
	validate       *validator.Validate
}

func NewServiceRequestController(requestService *services.ServiceRequestService) *ServiceRequestController {
	return &ServiceRequestController{
		requestService: requestService,
		validate:       validator.New(),
	}
}

// POST /api/v1/admin/service-requests
func (c *ServiceRequestController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateServiceRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}

	if err := c.validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	sr, err := c.requestService.Create(r.Context(), req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, sr)
}

// GET /api/v1/admin/service-requests
func (c *ServiceRequestController) ListHandler(w http.ResponseWriter, r *http.Request) {
	reqs, err := c.requestService.List(r.Context())
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, reqs)
}

// GET /api/v1/admin/service-requests/{requestId}
func (c *ServiceRequestController) GetHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathID(r, "requestId")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	sr, err := c.requestService.GetByID(r.Context(), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, sr)
}

// PATCH /api/v1/admin/service-requests/{requestId}
func (c *ServiceRequestController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathID(r, "requestId")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	var req dtos.UpdateServiceRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}

	if err := c.validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	sr, err := c.requestService.Update(r.Context(), id, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, sr)
}
