package repository

import (
	"gorm.io/gorm"
)

type Repos struct {
	Application ApplicationRepo
}

func NewRepositories(db *gorm.DB) *Repos {
	return &Repos{
		Application: NewApplicationRepo(db),
	}
}
