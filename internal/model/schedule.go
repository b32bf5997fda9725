package model

import "gorm.io/gorm"

// Schedule block kinds.
const (
	ScheduleFree = "free" // available for appointments
	ScheduleBusy = "busy" // class or other activity
)

// CoordinatorSchedule is an availability block on a coordinator's weekly
// calendar. Day 0 is Monday, 6 is Sunday. [StartTime, EndTime) is half-open.
type CoordinatorSchedule struct {
	ScheduleID  string  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"schedule_id"`
	UserID      string  `gorm:"type:uuid;not null"                                       json:"user_id"`
	DayOfWeek   int     `gorm:"not null"                                                 json:"day_of_week"`
	StartTime   string  `gorm:"type:time;not null"                                       json:"start_time"`
	EndTime     string  `gorm:"type:time;not null"                                       json:"end_time"`
	Kind        string  `gorm:"type:varchar(20);not null;default:'free'"                 json:"kind"`
	Description *string `gorm:"type:varchar(100)"                                        json:"description,omitempty"`
	BaseModel

	Owner *User `gorm:"foreignKey:UserID;references:UserID" json:"owner,omitempty"`
}

// TableName sets the table name.
func (CoordinatorSchedule) TableName() string { return "coordinator_schedules" }

// AfterFind folds the TIME column renderings back to TimeLayout.
func (s *CoordinatorSchedule) AfterFind(_ *gorm.DB) error {
	if t, err := CanonicalClock(s.StartTime); err == nil {
		s.StartTime = t
	}
	if t, err := CanonicalClock(s.EndTime); err == nil {
		s.EndTime = t
	}
	return nil
}

// AreaSchedule is an availability block scoped to an area instead of a user.
type AreaSchedule struct {
	ScheduleID  string  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"schedule_id"`
	Area        string  `gorm:"type:varchar(50);not null"                                json:"area"`
	DayOfWeek   int     `gorm:"not null"                                                 json:"day_of_week"`
	StartTime   string  `gorm:"type:time;not null"                                       json:"start_time"`
	EndTime     string  `gorm:"type:time;not null"                                       json:"end_time"`
	Kind        string  `gorm:"type:varchar(20);not null;default:'free'"                 json:"kind"`
	Description *string `gorm:"type:varchar(100)"                                        json:"description,omitempty"`
	BaseModel
}

// TableName sets the table name.
func (AreaSchedule) TableName() string { return "area_schedules" }

// AfterFind folds the TIME column renderings back to TimeLayout.
func (s *AreaSchedule) AfterFind(_ *gorm.DB) error {
	if t, err := CanonicalClock(s.StartTime); err == nil {
		s.StartTime = t
	}
	if t, err := CanonicalClock(s.EndTime); err == nil {
		s.EndTime = t
	}
	return nil
}
