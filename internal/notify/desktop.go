package notify

import "github.com/gen2brain/beeep"

// Desktop raises native desktop notifications.
type Desktop struct{}

func (Desktop) Notify(title, message string) error {
	return beeep.Notify(title, message, "")
}
