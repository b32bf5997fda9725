package model

// Vehicle is a visitor vehicle identified by its plate.
type Vehicle struct {
	VehicleID string `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"vehicle_id"`
	Plate     string `gorm:"type:varchar(12);not null;uniqueIndex"                    json:"plate"`
	Make      string `gorm:"type:varchar(20);not null;default:''"                     json:"make"`
	Model     string `gorm:"type:varchar(20);not null;default:''"                     json:"model"`
	Color     string `gorm:"type:varchar(20);not null;default:''"                     json:"color"`
	BaseModel
}

// TableName sets the table name.
func (Vehicle) TableName() string { return "vehicles" }
