package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/japetto/rental-portal-managment-backend-sub002/internal/dtos"
	"github.com/japetto/rental-portal-managment-backend-sub002/internal/services"
	"github.com/japetto/rental-portal-managment-backend-sub002/internal/utils"
)

type PropertyController struct {
	propertyService *services.PropertyService
	validate        *validator.Validate
}

func NewPropertyController(propertyService *services.PropertyService) *PropertyController {
	return &PropertyController{
		propertyService: propertyService,
		validate:        validator.New(),
	}
}

func parsePathID(r *http.Request, name string) (uuid.UUID, error) {
	raw := mux.Vars(r)[name]
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeInvalidPayload,
			Message:    "Invalid " + name + " format",
			Err:        err,
		}
	}
	return id, nil
}

// POST /api/v1/admin/properties
func (c *PropertyController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreatePropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}

	if err := c.validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	prop, err := c.propertyService.Create(r.Context(), req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, prop)
}

// GET /api/v1/admin/properties
func (c *PropertyController) ListHandler(w http.ResponseWriter, r *http.Request) {
	props, err := c.propertyService.List(r.Context())
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, props)
}

// GET /api/v1/admin/properties/{propertyId}
func (c *PropertyController) GetHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathID(r, "propertyId")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	prop, err := c.propertyService.GetByID(r.Context(), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, prop)
}

// PATCH /api/v1/admin/properties/{propertyId}
func (c *PropertyController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathID(r, "propertyId")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	var req dtos.UpdatePropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}

	if err := c.validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	prop, err := c.propertyService.Update(r.Context(), id, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, prop)
}

// DELETE /api/v1/admin/properties/{propertyId}
func (c *PropertyController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathID(r, "propertyId")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	if err := c.propertyService.SoftDelete(r.Context(), id); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
