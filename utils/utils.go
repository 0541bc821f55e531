package utils

import (
	"errors"
	"strconv"
	"time"

	"activity-tracker/logger"
	"activity-tracker/models/user"
	"activity-tracker/services/query"
	"activity-tracker/types"
	"activity-tracker/types/apperrors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// queryDateLayout is the wire format for date query parameters.
const queryDateLayout = "2006-01-02"

// CurrentUser resolves the authenticated user row from the JWT claims
// placed in Locals by the auth middleware. The identity provider puts
// the numeric user id in the "sub" claim.
func CurrentUser(c *fiber.Ctx, db *gorm.DB) (*user.User, error) {
	claims, ok := c.Locals("user").(map[string]interface{})
	if !ok {
		return nil, errors.New("invalid user claims")
	}

	var id uint64
	switch sub := claims["sub"].(type) {
	case float64:
		id = uint64(sub)
	case string:
		parsed, err := strconv.ParseUint(sub, 10, 64)
		if err != nil {
			return nil, errors.New("user id not found in token")
		}
		id = parsed
	default:
		return nil, errors.New("user id not found in token")
	}

	var u user.User
	if err := db.First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, err
	}
	return &u, nil
}

// ParseUintParam reads a path parameter as an unsigned integer.
func ParseUintParam(c *fiber.Ctx, name string) (uint, error) {
	parsed, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil {
		return 0, apperrors.NewValidation(name, name+" must be a positive integer")
	}
	return uint(parsed), nil
}

// ParseUintQuery reads an optional unsigned-integer query parameter.
func ParseUintQuery(c *fiber.Ctx, name string) (*uint, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, apperrors.NewValidation(name, name+" must be a positive integer")
	}
	value := uint(parsed)
	return &value, nil
}

// ParseDateQuery reads an optional YYYY-MM-DD query parameter.
func ParseDateQuery(c *fiber.Ctx, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.ParseInLocation(queryDateLayout, raw, time.Local)
	if err != nil {
		return nil, apperrors.NewValidation(name, name+" must be a date in YYYY-MM-DD format")
	}
	return &parsed, nil
}

// ParsePagination reads page/per_page with the caller's default page
// size. Range checks happen in query.Pagination.Validate.
func ParsePagination(c *fiber.Ctx, defaultPerPage int) (query.Pagination, error) {
	p := query.Pagination{Page: 1, PerPage: defaultPerPage}

	if raw := c.Query("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return p, apperrors.NewValidation("page", "page must be an integer")
		}
		p.Page = parsed
	}
	if raw := c.Query("per_page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return p, apperrors.NewValidation("per_page", "per_page must be an integer")
		}
		p.PerPage = parsed
	}
	return p, nil
}

// ErrorResponse maps the core error taxonomy onto HTTP statuses:
// ValidationError -> 422 with the offending fields, ErrNotFound -> 404,
// anything else -> 500.
func ErrorResponse(c *fiber.Ctx, err error) error {
	if ve := apperrors.AsValidation(err); ve != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(types.ApiResponse{
			Status:  fiber.StatusUnprocessableEntity,
			Message: "Validation failed",
			Data:    fiber.Map{"errors": ve.Fields},
		})
	}
	if errors.Is(err, apperrors.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Resource not found",
		})
	}
	logger.Error("Internal server error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
		Status:  fiber.StatusInternalServerError,
		Message: "Internal server error",
	})
}

// LogRequest pushes a request/response snapshot to the async logger.
func LogRequest(al *logger.AsyncLogger, c *fiber.Ctx, statusCode int, userID *uint) {
	if al == nil {
		return
	}
	al.Log(types.LogEntry{
		Method:          c.Method(),
		URL:             c.OriginalURL(),
		RequestBody:     string(c.Body()),
		RequestHeaders:  c.Request().Header.String(),
		ResponseBody:    string(c.Response().Body()),
		ResponseHeaders: c.Response().Header.String(),
		StatusCode:      statusCode,
		UserID:          userID,
		CreatedAt:       time.Now(),
	})
}
