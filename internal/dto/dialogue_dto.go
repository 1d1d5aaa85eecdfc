package dto

import "reflect360-be/pkg/mapstate"

type DialogueRequest struct {
	Message string           `json:"message" validate:"required"`
	Map     mapstate.MapData `json:"map_data"`
}

type DialogueResponse struct {
	Text          string `json:"text"`
	FocusedColumn int    `json:"focusedColumn"`
}

type InsightRequest struct {
	ColumnId int              `json:"column_id" validate:"required,min=1,max=5"`
	Map      mapstate.MapData `json:"map_data"`
}
