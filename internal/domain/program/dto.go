package program

import "gorm.io/datatypes"

type CreateDraftDTO struct {
	ProgramName string         `json:"program_name" binding:"required,max=200" example:"S3 Incubator"`
	FormData    datatypes.JSON `json:"form_data" swaggertype:"object"`
}

// UpdateDraftDTO replaces the form payload; ProgramName is optional.
type UpdateDraftDTO struct {
	ProgramName *string        `json:"program_name" binding:"omitempty,max=200" example:"S3 Incubator Application"`
	FormData    datatypes.JSON `json:"form_data" binding:"required" swaggertype:"object"`
}

type DecisionDTO struct {
	Status string `json:"status" binding:"required,oneof=accepted rejected" example:"accepted"`
	Note   string `json:"note" example:"Strong founding team"`
}

type QueryDTO struct {
	Q      string `form:"q" example:"incubator"`
	Status string `form:"status" example:"all"`
}

// BucketsDTO is the grouped view returned to clients.
type BucketsDTO struct {
	Drafts    []Application `json:"drafts"`
	Active    []Application `json:"active"`
	Completed []Application `json:"completed"`
	Total     int           `json:"total"`
}
