package dto

// CreateAppointmentRequest books a visit. The visitor is identified by name
// parts and must already be registered. Date is "2006-01-02", Time "15:04".
type CreateAppointmentRequest struct {
	VisitorName            string `json:"visitor_name" binding:"required,max=30"`
	VisitorPaternalSurname string `json:"visitor_paternal_surname" binding:"required,max=30"`
	VisitorMaternalSurname string `json:"visitor_maternal_surname" binding:"max=30"`
	VisitedPersonName      string `json:"visited_person_name" binding:"max=100"`
	Plate                  string `json:"plate" binding:"max=12"`
	Date                   string `json:"date" binding:"required"`
	Time                   string `json:"time" binding:"required"`
	Area                   string `json:"area" binding:"required,max=50"`
}

// UpdateAppointmentRequest reschedules; nil fields keep their value.
type UpdateAppointmentRequest struct {
	Date *string `json:"date"`
	Time *string `json:"time"`
}

// AppointmentListRequest filters the appointment listing.
type AppointmentListRequest struct {
	Date    string `form:"date"`
	Area    string `form:"area"`
	Visited string `form:"visited"`
}

// AppointmentResponse is the public view of an appointment.
type AppointmentResponse struct {
	ID                string           `json:"id"`
	Visitor           *VisitorResponse `json:"visitor,omitempty"`
	VisitedPersonName string           `json:"visited_person_name,omitempty"`
	Vehicle           *VehicleResponse `json:"vehicle,omitempty"`
	CreatedBy         string           `json:"created_by"`
	Date              string           `json:"date"`
	Time              string           `json:"time"`
	Area              string           `json:"area"`
	Status            string           `json:"status"`
	CreatedAt         string           `json:"created_at"`
}
