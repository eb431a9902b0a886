package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/deelaka-ransilu/bridal-shop-backend/internal/constants"
	"github.com/deelaka-ransilu/bridal-shop-backend/internal/dto"
	"github.com/deelaka-ransilu/bridal-shop-backend/internal/model"
	ctxutil "github.com/deelaka-ransilu/bridal-shop-backend/pkg/context"
	"github.com/deelaka-ransilu/bridal-shop-backend/pkg/logger"
)

type UserHandler struct {
	userService UserAPI
}

func NewUserHandler(userService UserAPI) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) GetMe(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "GetMe")

	auth, ok := callerOrAbort(c)
	if !ok {
		return
	}

	user, err := h.userService.GetMe(ctx, auth)
	if err != nil {
		respondError(c, ctx, "Get current user", err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) CreateEmployee(c *gin.Context) {
	h.createStaff(c, "CreateEmployee", model.RoleEmployee)
}

func (h *UserHandler) CreateAdmin(c *gin.Context) {
	h.createStaff(c, "CreateAdmin", model.RoleAdmin)
}

func (h *UserHandler) createStaff(c *gin.Context, function string, role model.Role) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", function)

	var req dto.CreateEmployeeRequest
	if !bindJSON(c, ctx, &req) {
		return
	}

	user, err := h.userService.CreateStaff(ctx, &req, role)
	if err != nil {
		respondError(c, ctx, "Create staff account", err)
		return
	}

	logger.InfoWithContext(ctx, "Staff account created").
		Uint("user_id", user.UserID).
		String("role", string(role)).
		Log()

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Activate(c *gin.Context) {
	h.setActive(c, "ActivateUser", true, constants.MsgUserActivated)
}

func (h *UserHandler) Deactivate(c *gin.Context) {
	h.setActive(c, "DeactivateUser", false, constants.MsgUserDeactivated)
}

func (h *UserHandler) setActive(c *gin.Context, function string, active bool, message string) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", function)

	userID, ok := pathID(c, ctx, "userId")
	if !ok {
		return
	}

	if err := h.userService.SetActive(ctx, userID, active); err != nil {
		respondError(c, ctx, function, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: message})
}
