package domain

import (
	"time"
)

type Booking struct {
	ID             int64     `json:"id"`
	PractitionerID int64     `json:"practitioner_id"`
	ClientID       int64     `json:"client_id"`
	Date           string    `json:"date"`
	StartTime      string    `json:"start_time"`
	EndTime        string    `json:"end_time"`
	CreatedAt      time.Time `json:"created_at"`
}

type CreateBookingDTO struct {
	PractitionerID int64  `json:"practitioner_id" binding:"required"`
	Date           string `json:"date" binding:"required,isodate"`
	StartTime      string `json:"start_time" binding:"required,hhmm"`
	EndTime        string `json:"end_time" binding:"required,hhmm"`
}

type BookingEventType string

const (
	BookingEventCreated   BookingEventType = "booking.created"
	BookingEventCancelled BookingEventType = "booking.cancelled"
)

type BookingEvent struct {
	Type       BookingEventType `json:"type"`
	Booking    Booking          `json:"booking"`
	OccurredAt time.Time        `json:"occurred_at"`
}
