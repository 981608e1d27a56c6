package models

// Room represents one bookable unit within a property.
type Room struct {
	ID           string `bson:"id" json:"id"`
	PropertyID   string `bson:"property_id" json:"property_id"`
	RoomNo       string `bson:"room_no" json:"room_no"`
	RoomType     string `bson:"room_type,omitempty" json:"room_type,omitempty"`
	MaxOccupancy int    `bson:"max_occupancy" json:"max_occupancy"`
}

// RoomOption is the trimmed room view offered to the guest during room selection.
type RoomOption struct {
	RoomID   string `json:"roomId"`
	RoomNo   string `json:"roomNo"`
	RoomType string `json:"roomType,omitempty"`
}
