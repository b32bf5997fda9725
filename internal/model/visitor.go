package model

import "time"

// Visitor is a registered person allowed to book appointments.
// The document number (INE) is unique per person; email and phone may repeat.
type Visitor struct {
	VisitorID       string     `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"visitor_id"`
	Name            string     `gorm:"type:varchar(30);not null"                                json:"name"`
	Gender          string     `gorm:"type:varchar(30);not null;default:''"                     json:"gender"`
	PaternalSurname string     `gorm:"type:varchar(30);not null"                                json:"paternal_surname"`
	MaternalSurname string     `gorm:"type:varchar(30);not null;default:''"                     json:"maternal_surname"`
	BirthDate       *time.Time `gorm:"type:date"                                                json:"birth_date,omitempty"`
	DocumentNumber  string     `gorm:"type:varchar(18);not null;uniqueIndex"                    json:"document_number"`
	Email           string     `gorm:"type:varchar(150);not null"                               json:"email"`
	Phone           string     `gorm:"type:varchar(12);not null;default:''"                     json:"phone"`
	EntryType       string     `gorm:"type:varchar(15);not null;default:''"                     json:"entry_type"`
	BaseModel
}

// TableName sets the table name.
func (Visitor) TableName() string { return "visitors" }

// FullName joins the name parts for display.
func (v *Visitor) FullName() string {
	s := v.Name + " " + v.PaternalSurname
	if v.MaternalSurname != "" {
		s += " " + v.MaternalSurname
	}
	return s
}

// AgeAt computes the whole-year age at the given instant.
// Returns -1 when the birth date is unknown.
func (v *Visitor) AgeAt(now time.Time) int {
	if v.BirthDate == nil {
		return -1
	}
	b := *v.BirthDate
	age := now.Year() - b.Year()
	if now.Month() < b.Month() || (now.Month() == b.Month() && now.Day() < b.Day()) {
		age--
	}
	return age
}
