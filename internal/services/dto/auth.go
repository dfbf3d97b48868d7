package dto

type LoginRequest struct {
	Email    string `json:"admin_email" validate:"required,email"`
	Password string `json:"admin_password" validate:"required"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	Admin AdminProfile `json:"admin"`
}

type AdminProfile struct {
	ID        uint   `json:"adminId"`
	FirstName string `json:"admin_firstname"`
	LastName  string `json:"admin_lastname"`
	Email     string `json:"admin_email"`
}

type UpdateAdminNameRequest struct {
	FirstName string `json:"admin_firstname" validate:"required,min=1,max=100"`
	LastName  string `json:"admin_lastname" validate:"required,min=1,max=100"`
}
