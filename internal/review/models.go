package review

import "time"

type Review struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"userID"`
	OwnerName string    `json:"userName"`
	TrailID   string    `json:"routeID"`
	Rating    int       `json:"rating"`
	Content   string    `json:"content"`
	Date      time.Time `json:"date"`
}
