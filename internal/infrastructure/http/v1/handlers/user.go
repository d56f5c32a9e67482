package handlers

import (
	"github.com/gin-gonic/gin"

	"retailcore/internal/domain/users"
	"retailcore/internal/infrastructure/http/v1/dto"
)

// UserHandler serves the user management endpoints.
type UserHandler struct {
	*BaseHandler
	service *users.Service
}

func NewUserHandler(service *users.Service) *UserHandler {
	return &UserHandler{BaseHandler: NewBaseHandler(), service: service}
}

func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if !h.BindJSON(c, &req) {
		return
	}

	u, err := h.service.Create(c.Request.Context(), users.CreateInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     users.Role(req.Role),
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, "User created successfully", u)
}

func (h *UserHandler) List(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	message := "Users retrieved successfully"
	if len(list) == 0 {
		message = "No users found"
	}
	h.OK(c, message, list)
}

func (h *UserHandler) Get(c *gin.Context) {
	userID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	u, err := h.service.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, "User retrieved successfully", u)
}

func (h *UserHandler) Update(c *gin.Context) {
	userID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if !h.BindJSON(c, &req) {
		return
	}

	input := users.UpdateInput{Name: req.Name, Password: req.Password}
	if req.Role != nil {
		role := users.Role(*req.Role)
		input.Role = &role
	}

	u, err := h.service.Update(c.Request.Context(), userID, input)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, "User updated successfully", u)
}

func (h *UserHandler) Delete(c *gin.Context) {
	userID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, "User deleted successfully", nil)
}
