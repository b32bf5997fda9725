package dto

// CreateVisitorRequest registers a visitor ahead of any booking.
// BirthDate uses "2006-01-02".
type CreateVisitorRequest struct {
	Name            string `json:"name" binding:"required,max=30"`
	Gender          string `json:"gender" binding:"max=30"`
	PaternalSurname string `json:"paternal_surname" binding:"required,max=30"`
	MaternalSurname string `json:"maternal_surname" binding:"max=30"`
	BirthDate       string `json:"birth_date" binding:"omitempty"`
	DocumentNumber  string `json:"document_number" binding:"required,max=18"`
	Email           string `json:"email" binding:"required,email,max=150"`
	Phone           string `json:"phone" binding:"max=12"`
	EntryType       string `json:"entry_type" binding:"max=15"`
}

// UpdateVisitorRequest is the partial-update payload.
type UpdateVisitorRequest struct {
	Name            *string `json:"name" binding:"omitempty,max=30"`
	Gender          *string `json:"gender" binding:"omitempty,max=30"`
	PaternalSurname *string `json:"paternal_surname" binding:"omitempty,max=30"`
	MaternalSurname *string `json:"maternal_surname" binding:"omitempty,max=30"`
	BirthDate       *string `json:"birth_date"`
	DocumentNumber  *string `json:"document_number" binding:"omitempty,max=18"`
	Email           *string `json:"email" binding:"omitempty,email,max=150"`
	Phone           *string `json:"phone" binding:"omitempty,max=12"`
	EntryType       *string `json:"entry_type" binding:"omitempty,max=15"`
}

// VisitorResponse is the public view of a visitor.
type VisitorResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Gender          string `json:"gender"`
	PaternalSurname string `json:"paternal_surname"`
	MaternalSurname string `json:"maternal_surname"`
	BirthDate       string `json:"birth_date,omitempty"`
	DocumentNumber  string `json:"document_number"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	EntryType       string `json:"entry_type"`
}
