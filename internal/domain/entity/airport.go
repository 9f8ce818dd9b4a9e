package entity

import (
	"time"

	"gorm.io/gorm"
)

// Airport represents airport reference data used to render route names
type Airport struct {
	ID        uint
	Code      string
	Name      string
	CityCode  string
	CityName  string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt
}
