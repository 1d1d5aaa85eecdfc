// FILE: internal/dto/reflection_dto.go
package dto

import "reflect360-be/pkg/mapstate"

type SaveMapRequest struct {
	Map mapstate.MapData `json:"map"`
}

type MapResponse struct {
	Map mapstate.MapData `json:"map"`
}

type UpdateSlotRequest struct {
	ColumnId int      `json:"column_id" validate:"required,min=1,max=4"`
	Text     string   `json:"text"`
	Entries  []string `json:"entries"`
	Worries  string   `json:"worries"`
}

type TranscriptResponse struct {
	Turns []mapstate.Turn `json:"turns"`
}

type InsightsResponse struct {
	Insights map[int]string `json:"insights"`
}
