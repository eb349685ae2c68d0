package repository

import "github.com/jcolmenar/colavirtual-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User.
type UserRepository interface {
	Crear(user *entity.User) error
	BuscarPorID(id string) (*entity.User, error)
	BuscarPorEmail(email string) (*entity.User, error)
}
