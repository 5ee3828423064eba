package entity

import (
	"strings"
	"time"
)

// Roles válidos para User.
const (
	RoleAdministrator = "ADMINISTRATOR" // escritura sobre empresas, productos e inventario
	RoleExternal      = "EXTERNAL"      // sólo lectura
)

// User representa un usuario del sistema. El email es único.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	FirstName    string
	LastName     string
	Role         string // ADMINISTRATOR, EXTERNAL
	IsActive     bool
	CreatedAt    time.Time
}

// IsAdministrator informa si el usuario tiene permisos de escritura.
func (u *User) IsAdministrator() bool { return u.Role == RoleAdministrator }

// FullName nombre para mostrar; cae en el email si no hay nombre.
func (u *User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Email
	}
	return name
}

// ValidRole informa si role pertenece al conjunto de roles conocido.
func ValidRole(role string) bool {
	return role == RoleAdministrator || role == RoleExternal
}
