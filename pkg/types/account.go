package types

import "time"

type Role string

const (
	RoleVolunteer Role = "volunteer"
	RoleManager   Role = "manager"
	RoleAdmin     Role = "admin"
)

// Account is a login-capable identity. One can exist only if a volunteer
// application with the same email was approved at signup time; managers and
// admins are provisioned directly. Password always holds a bcrypt hash.
type Account struct {
	ID        string    `db:"id"`
	Username  string    `db:"username"`
	Email     string    `db:"email"`
	Password  string    `db:"password"`
	Role      Role      `db:"role"`
	Phone     string    `db:"phone"`
	CreatedAt time.Time `db:"created_at"`
}
