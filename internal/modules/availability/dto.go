package availability

import "hotelops/internal/domain"

type SearchQuery struct {
	CheckIn  string `form:"check_in" binding:"required"`
	CheckOut string `form:"check_out" binding:"required"`
	RoomType string `form:"room_type"`
}

type SearchResponse struct {
	CheckIn  string        `json:"check_in"`
	CheckOut string        `json:"check_out"`
	Nights   int           `json:"nights"`
	Rooms    []domain.Room `json:"rooms"`
}
