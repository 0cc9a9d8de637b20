package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/user-service/internal/api/metrics"
	"github.com/99minutos/user-service/internal/core/ports"
)

// UserHandler handles HTTP requests for user CRUD operations.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Create handles POST /user/.
//
// @Summary      Create a user
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        body  body      createUserRequest  true  "User details"
// @Success      200   {object}  userResponse
// @Failure      422   {object}  map[string]string
// @Failure      503   {object}  map[string]string
// @Router       /user/ [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.service.CreateUser(c.Request().Context(), ports.CreateUserInput{
		Name:     req.Name,
		Surname:  req.Surname,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	metrics.UsersCreatedTotal.Inc()
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Get handles GET /user/?user_id=.
//
// @Summary      Get a user by id
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  query     string  true  "User id (UUID)"
// @Success      200      {object}  userResponse
// @Failure      401      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Failure      422      {object}  map[string]string
// @Router       /user/ [get]
func (h *UserHandler) Get(c echo.Context) error {
	id, err := userIDParam(c)
	if err != nil {
		return err
	}

	user, err := h.service.GetUser(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Update handles PATCH /user/?user_id=.
//
// @Summary      Partially update a user
// @Tags         user
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  query     string             true  "User id (UUID)"
// @Param        body     body      updateUserRequest  true  "Fields to change"
// @Success      200      {object}  updateUserResponse
// @Failure      401      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Failure      422      {object}  map[string]string
// @Failure      503      {object}  map[string]string
// @Router       /user/ [patch]
func (h *UserHandler) Update(c echo.Context) error {
	id, err := userIDParam(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	updated, err := h.service.UpdateUser(c.Request().Context(), id, req.toPatch())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updateUserResponse{UpdatedUserID: updated})
}

// Delete handles DELETE /user/?user_id=.
//
// @Summary      Deactivate a user
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  query     string  true  "User id (UUID)"
// @Success      200      {object}  deleteUserResponse
// @Failure      401      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Failure      422      {object}  map[string]string
// @Router       /user/ [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := userIDParam(c)
	if err != nil {
		return err
	}

	deleted, err := h.service.DeleteUser(c.Request().Context(), id)
	if err != nil {
		return err
	}

	metrics.UsersDeletedTotal.Inc()
	return c.JSON(http.StatusOK, deleteUserResponse{DeletedUserID: deleted})
}
