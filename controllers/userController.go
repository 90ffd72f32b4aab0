package controllers

import (
	"errors"

	"loanportal-backend/database"
	"loanportal-backend/middlewares"
	"loanportal-backend/models"
	"loanportal-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type UserCreateDTO struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"omitempty,oneof=ADMIN FIELD_AGENT"`
}

type UserUpdateDTO struct {
	FullName *string `json:"full_name" validate:"omitempty,min=1"`
	Role     *string `json:"role" validate:"omitempty,oneof=ADMIN FIELD_AGENT"`
	Status   *string `json:"status" validate:"omitempty,min=1"`
}

// GET /api/users
// Readable by any authenticated caller: report rows are labeled with
// creator names everywhere, so names/roles are not treated as scoped data.
func ListUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := database.GetDB(c).Order("full_name ASC").Find(&users).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not fetch users")
	}
	return c.JSON(fiber.Map{
		"users":   users,
		"message": "success",
	})
}

// POST /api/users (admin)
func CreateUser(c *fiber.Ctx) error {
	var in UserCreateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	db := database.GetDB(c)

	var mailExist models.User
	db.Where("email = ?", in.Email).First(&mailExist)
	if mailExist.Email != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "email already exists",
		})
	}

	role := in.Role
	if role == "" {
		role = models.RoleFieldAgent
	}

	user := models.User{
		FullName: in.FullName,
		Email:    in.Email,
		Role:     role,
		Status:   "Active",
	}
	user.SetPassword(in.Password)

	if err := db.Create(&user).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not create user",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// PUT /api/users/:id (admin)
// Role/status/name changes only; there is no delete path for users.
func UpdateUser(c *fiber.Ctx) error {
	id := c.Params("id")

	var in UserUpdateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&in)

	db := database.GetDB(c)

	var existing models.User
	if err := db.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "user not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	updates := utils.UpdatesFromPtrDTO(&in, nil)
	if len(updates) > 0 {
		if err := db.Model(&models.User{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Could not update user",
				"error":   err.Error(),
			})
		}
	}

	var out models.User
	if err := db.First(&out, "id = ?", id).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to reload user")
	}
	return c.JSON(out)
}
