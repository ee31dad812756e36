package postgres

import (
	"database/sql"

	"shiftmarket-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.ShiftRequestRepository
	repository.ShiftRepository
	repository.RoleRepository
	repository.UserRepository
	repository.PermissionRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		ShiftRequestRepository: NewShiftRequestRepository(db),
		ShiftRepository:        NewShiftRepository(db),
		RoleRepository:         NewRoleRepository(db),
		UserRepository:         NewUserRepository(db),
		PermissionRepository:   NewPermissionRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}
