package dto

// CreateVehicleRequest registers a vehicle by plate.
type CreateVehicleRequest struct {
	Plate string `json:"plate" binding:"required,max=12"`
	Make  string `json:"make" binding:"max=20"`
	Model string `json:"model" binding:"max=20"`
	Color string `json:"color" binding:"max=20"`
}

// VehicleResponse is the public view of a vehicle.
type VehicleResponse struct {
	ID    string `json:"id"`
	Plate string `json:"plate"`
	Make  string `json:"make"`
	Model string `json:"model"`
	Color string `json:"color"`
}
