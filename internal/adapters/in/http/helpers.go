package http

import (
	"fmt"
	"time"

	"settlement/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

const dateLayout = "2006-01-02"

func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(ctx.Param(name))
	if err != nil {
		return kernel.UUID{}, fmt.Errorf("invalid %s: %w", name, err)
	}
	return id, nil
}

func parseDate(value string) (time.Time, error) {
	date, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return date, nil
}
