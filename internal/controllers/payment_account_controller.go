package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/japetto/rental-portal-managment-backend-sub002/internal/dtos"
	"github.com/japetto/rental-portal-managment-backend-sub002/internal/services"
	"github.com/japetto/rental-portal-managment-backend-sub002/internal/utils"
)

type PaymentAccountController struct {
	accountService *services.PaymentAccountService
	validate       *validator.Validate
}

func NewPaymentAccountController(accountService *services.PaymentAccountService) *PaymentAccountController {
	return &PaymentAccountController{
		accountService: accountService,
		validate:       validator.New(),
	}
}

// POST /api/v1/admin/payment-accounts
func (c *PaymentAccountController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreatePaymentAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}

	if err := c.validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	acct, err := c.accountService.Create(r.Context(), req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, acct)
}

// GET /api/v1/admin/payment-accounts
func (c *PaymentAccountController) ListHandler(w http.ResponseWriter, r *http.Request) {
	accounts, err := c.accountService.List(r.Context())
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, accounts)
}

// GET /api/v1/admin/payment-accounts/{accountId}
func (c *PaymentAccountController) GetHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathID(r, "accountId")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	acct, err := c.accountService.GetByID(r.Context(), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, acct)
}

// PATCH /api/v1/admin/payment-accounts/{accountId}
func (c *PaymentAccountController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathID(r, "accountId")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	var req dtos.UpdatePaymentAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}

	if err := c.validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	acct, err := c.accountService.Update(r.Context(), id, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, acct)
}

// DELETE /api/v1/admin/payment-accounts/{accountId}
func (c *PaymentAccountController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathID(r, "accountId")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	if err := c.accountService.SoftDelete(r.Context(), id); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
