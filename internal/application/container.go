package application

import (
	"github.com/linskybing/programhub/internal/repository"
)

type Services struct {
	Lifecycle *LifecycleService
	Sessions  *Sessions
}

func New(repos *repository.Repos, validator Validator, notifier Notifier) *Services {
	return &Services{
		Lifecycle: NewLifecycleService(repos.Application, validator, notifier),
		Sessions:  NewSessions(repos.Application),
	}
}
