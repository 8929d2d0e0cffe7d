package controllers

import (
	"net/http"

	"github.com/japetto/rental-portal-managment-backend-sub002/internal/services"
	"github.com/japetto/rental-portal-managment-backend-sub002/internal/utils"
)

// AssignmentController exposes the read-only views joining properties with
// the payment accounts that serve them.
type AssignmentController struct {
	assignmentService *services.AssignmentService
}

func NewAssignmentController(assignmentService *services.AssignmentService) *AssignmentController {
	return &AssignmentController{
		assignmentService: assignmentService,
	}
}

// GET /api/v1/admin/properties/with-accounts
func (c *AssignmentController) ListWithAccountsHandler(w http.ResponseWriter, r *http.Request) {
	views, err := c.assignmentService.ListPropertiesWithAccounts(r.Context())
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, views)
}

// GET /api/v1/admin/properties/available-accounts
func (c *AssignmentController) ListAvailableAccountsHandler(w http.ResponseWriter, r *http.Request) {
	views, err := c.assignmentService.ListAvailableAccounts(r.Context())
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, views)
}

// GET /api/v1/admin/properties/without-accounts
func (c *AssignmentController) ListWithoutAccountsHandler(w http.ResponseWriter, r *http.Request) {
	views, err := c.assignmentService.ListPropertiesWithoutAccounts(r.Context())
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, views)
}
