package model

type NotificationEvent string

const (
	EventReservationCreated   NotificationEvent = "reservation.created"
	EventReservationModified  NotificationEvent = "reservation.modified"
	EventReservationCancelled NotificationEvent = "reservation.cancelled"
)

// Notification is what the reservation core hands to the notification
// collaborator after a successful write.
type Notification struct {
	Event            NotificationEvent `json:"event"`
	ConfirmationCode string            `json:"confirmation_number"`
	Recipient        string            `json:"recipient"`
	Subject          string            `json:"subject"`
	Body             string            `json:"body"`
}
