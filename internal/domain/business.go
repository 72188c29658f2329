package domain

import "time"

// RoleBusinessAdmin роль владельца бизнеса
const RoleBusinessAdmin = "business_admin"

// Business граница арендатора: все услуги и слоты принадлежат ровно одному бизнесу
type Business struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

// User учетная запись владельца бизнеса
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	FullName     string
	Role         string
	BusinessID   int64
	CreatedAt    time.Time
}

// Principal аутентифицированный вызывающий, извлеченный из токена
type Principal struct {
	UserID     int64
	BusinessID int64
	Email      string
	Role       string
}
