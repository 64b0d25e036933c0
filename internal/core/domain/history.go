package domain

import (
	"errors"
	"time"
)

// History records one IP search performed by a user. Location holds the
// serialized geolocation payload exactly as the client submitted it; the
// server never interprets it, the client re-parses it on display.
type History struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	UserID    string    `json:"userId" bson:"user_id"`
	IPAddress string    `json:"ipAddress" bson:"ip_address"`
	Location  string    `json:"location" bson:"location"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}

var ErrHistoryNotFound = errors.New("history not found")
