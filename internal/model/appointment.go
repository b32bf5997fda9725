package model

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Appointment status values.
const (
	AppointmentActive    = "active"
	AppointmentCompleted = "completed"
)

// Date and time-of-day layouts used across the module.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Appointment is a scheduled visit. Date and Time are stored as DATE and
// TIME columns and handled as strings in their canonical layouts.
type Appointment struct {
	AppointmentID     string  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"appointment_id"`
	VisitorID         string  `gorm:"type:uuid;not null"                                       json:"visitor_id"`
	VisitedPersonName *string `gorm:"type:varchar(100)"                                        json:"visited_person_name,omitempty"`
	VehicleID         *string `gorm:"type:uuid"                                                json:"vehicle_id,omitempty"`
	CreatedBy         string  `gorm:"type:uuid;not null"                                       json:"created_by"`
	Date              string  `gorm:"type:date;not null"                                       json:"date"`
	Time              string  `gorm:"type:time;not null"                                       json:"time"`
	Area              string  `gorm:"type:varchar(50);not null"                                json:"area"`
	Status            string  `gorm:"type:varchar(20);not null;default:'active'"               json:"status"`
	BaseModel

	Visitor *Visitor `gorm:"foreignKey:VisitorID;references:VisitorID" json:"visitor,omitempty"`
	Vehicle *Vehicle `gorm:"foreignKey:VehicleID;references:VehicleID" json:"vehicle,omitempty"`
	Creator *User    `gorm:"foreignKey:CreatedBy;references:UserID"    json:"creator,omitempty"`
}

// TableName sets the table name.
func (Appointment) TableName() string { return "appointments" }

// AfterFind folds the driver's column renderings back into the canonical
// layouts. A TIME column comes back as "10:00:00" and a DATE column as an
// RFC3339 midnight timestamp; every comparison in the services assumes
// DateLayout and TimeLayout.
func (a *Appointment) AfterFind(_ *gorm.DB) error {
	if d, err := CanonicalDate(a.Date); err == nil {
		a.Date = d
	}
	if t, err := CanonicalClock(a.Time); err == nil {
		a.Time = t
	}
	return nil
}

// clockLayouts lists the accepted time-of-day renderings: the canonical
// layout plus what the driver produces for TIME columns.
var clockLayouts = []string{TimeLayout, "15:04:05.999999999"}

// dateLayouts lists the accepted date renderings: the canonical layout
// plus the RFC3339 timestamp a scanned DATE column arrives as.
var dateLayouts = []string{DateLayout, time.RFC3339}

// CanonicalDate normalizes a date string to DateLayout.
func CanonicalDate(s string) (string, error) {
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			return parsed.Format(DateLayout), nil
		}
	}
	return "", fmt.Errorf("invalid date %q", s)
}

// CanonicalClock normalizes a time-of-day string to TimeLayout.
func CanonicalClock(s string) (string, error) {
	for _, layout := range clockLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			return parsed.Format(TimeLayout), nil
		}
	}
	return "", fmt.Errorf("invalid time %q", s)
}

// MinutesOfDay converts a time-of-day value to minutes since midnight.
// Both "10:00" and the column rendering "10:00:00" are accepted.
func MinutesOfDay(t string) (int, error) {
	for _, layout := range clockLayouts {
		if parsed, err := time.Parse(layout, t); err == nil {
			return parsed.Hour()*60 + parsed.Minute(), nil
		}
	}
	return 0, fmt.Errorf("invalid time %q", t)
}
