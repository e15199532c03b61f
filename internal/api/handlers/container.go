package handlers

import (
	"github.com/linskybing/programhub/internal/application"
	"github.com/linskybing/programhub/pkg/notify"
)

type Handlers struct {
	Application  *ApplicationHandler
	Notification *NotificationHandler
}

func New(svc *application.Services, hub *notify.Hub) *Handlers {
	return &Handlers{
		Application:  NewApplicationHandler(svc.Lifecycle, svc.Sessions),
		Notification: NewNotificationHandler(hub),
	}
}
