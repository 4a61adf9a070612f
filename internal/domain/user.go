package domain

type User struct {
	ID           int32  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	PasswordHash string `json:"-"`
	Point        int32  `json:"point"`
	IsAdmin      bool   `json:"is_admin"`
	CreatedOn    string `json:"created_on"`
	UpdatedOn    string `json:"updated_on"`
}
