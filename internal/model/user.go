package model

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSupervisor Role = "supervisor"
	RoleCashier    Role = "kasir"
)

type User struct {
	BaseModel
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	PINHash  string `json:"pin_hash"`
	IsActive bool   `json:"is_active"`
}
