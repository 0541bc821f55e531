package utils

import (
	"activity-tracker/services/query"

	"github.com/gofiber/fiber/v2"
)

// ParseUpdateFilter reads the optional update-filter query parameters
// (date, start_date, end_date, user_id, status_id) shared by every
// update-listing endpoint. Defaulting and precedence live in the
// filter itself.
func ParseUpdateFilter(c *fiber.Ctx) (query.UpdateFilter, error) {
	var f query.UpdateFilter

	date, err := ParseDateQuery(c, "date")
	if err != nil {
		return f, err
	}
	start, err := ParseDateQuery(c, "start_date")
	if err != nil {
		return f, err
	}
	end, err := ParseDateQuery(c, "end_date")
	if err != nil {
		return f, err
	}
	userID, err := ParseUintQuery(c, "user_id")
	if err != nil {
		return f, err
	}
	statusID, err := ParseUintQuery(c, "status_id")
	if err != nil {
		return f, err
	}

	f.Date = date
	f.StartDate = start
	f.EndDate = end
	f.UserID = userID
	f.StatusID = statusID
	return f, nil
}
