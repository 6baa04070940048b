package email

import (
	"context"
	"fmt"

	"github.com/Domenick1991/carrental/internal/kafka"
)

type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.ReservationEvent) error {
	fmt.Printf("send email to user %d about %s for reservation %d (vehicle %d, %s - %s)\n",
		event.UserID, event.Type, event.ReservationID, event.VehicleID,
		event.PickUpTime.Format("2006-01-02 15:04"), event.DropOffTime.Format("2006-01-02 15:04"))
	return nil
}
