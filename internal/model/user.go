package model

// User is a staff/admin/guard account.
type User struct {
	UserID          string `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Name            string `gorm:"type:varchar(30);not null"                                json:"name"`
	PaternalSurname string `gorm:"type:varchar(30);not null"                                json:"paternal_surname"`
	MaternalSurname string `gorm:"type:varchar(30);not null;default:''"                     json:"maternal_surname"`
	Email           string `gorm:"type:varchar(150);not null;uniqueIndex"                   json:"email"`
	PasswordHash    string `gorm:"column:password_hash;type:varchar(255);not null"          json:"-"`
	Role            Role   `gorm:"type:varchar(30);not null"                                json:"role"`
	Area            string `gorm:"type:varchar(50);not null;default:''"                     json:"area"`
	BaseModel

	Schedules []CoordinatorSchedule `gorm:"foreignKey:UserID;references:UserID" json:"schedules,omitempty"`
}

// TableName sets the table name.
func (User) TableName() string { return "users" }

// FullName joins the name parts for display.
func (u *User) FullName() string {
	s := u.Name + " " + u.PaternalSurname
	if u.MaternalSurname != "" {
		s += " " + u.MaternalSurname
	}
	return s
}
