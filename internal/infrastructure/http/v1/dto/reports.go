package dto

import "time"

// DateRangeQuery binds the optional report date filters.
type DateRangeQuery struct {
	StartDate *time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate   *time.Time `form:"end_date" time_format:"2006-01-02"`
}
