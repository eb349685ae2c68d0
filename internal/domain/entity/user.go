package entity

import "time"

// User representa un usuario registrado del sistema.
type User struct {
	ID           string
	Nombre       string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
