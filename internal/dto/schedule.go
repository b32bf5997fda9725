package dto

// CreateCoordinatorScheduleRequest adds a block to a coordinator's calendar.
type CreateCoordinatorScheduleRequest struct {
	UserID      string  `json:"user_id" binding:"required,uuid"`
	DayOfWeek   int     `json:"day_of_week" binding:"min=0,max=6"`
	StartTime   string  `json:"start_time" binding:"required"`
	EndTime     string  `json:"end_time" binding:"required"`
	Kind        string  `json:"kind" binding:"omitempty,oneof=free busy"`
	Description *string `json:"description" binding:"omitempty,max=100"`
}

// CreateAreaScheduleRequest adds a block to an area's calendar.
type CreateAreaScheduleRequest struct {
	Area        string  `json:"area" binding:"required,max=50"`
	DayOfWeek   int     `json:"day_of_week" binding:"min=0,max=6"`
	StartTime   string  `json:"start_time" binding:"required"`
	EndTime     string  `json:"end_time" binding:"required"`
	Kind        string  `json:"kind" binding:"omitempty,oneof=free busy"`
	Description *string `json:"description" binding:"omitempty,max=100"`
}

// UpdateScheduleRequest is the partial-update payload for either block type.
type UpdateScheduleRequest struct {
	DayOfWeek   *int    `json:"day_of_week" binding:"omitempty,min=0,max=6"`
	StartTime   *string `json:"start_time"`
	EndTime     *string `json:"end_time"`
	Kind        *string `json:"kind" binding:"omitempty,oneof=free busy"`
	Description *string `json:"description" binding:"omitempty,max=100"`
}

// AvailabilityRequest queries whether a coordinator or area is free.
type AvailabilityRequest struct {
	UserID    string `form:"user_id"`
	Area      string `form:"area"`
	DayOfWeek int    `form:"day_of_week" binding:"min=0,max=6"`
	Time      string `form:"time" binding:"required"`
}

// AvailabilityResponse reports the covering block, if any.
type AvailabilityResponse struct {
	Available   bool   `json:"available"`
	Status      string `json:"status"` // "available" | "unavailable"
	Description string `json:"description,omitempty"`
}

// ScheduleResponse is the public view of a schedule block.
type ScheduleResponse struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id,omitempty"`
	Area        string `json:"area,omitempty"`
	DayOfWeek   int    `json:"day_of_week"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Kind        string `json:"kind"`
	Description string `json:"description,omitempty"`
}
