// Package notify delivers local completion notifications. Delivery is
// best effort: a failed notification is logged by the caller and never
// affects ledger state.
package notify

import "github.com/gen2brain/beeep"

// Notifier announces a completed transfer to the operator.
type Notifier interface {
	Notify(title, message string) error
}

// Desktop shows a desktop notification and plays the system beep.
type Desktop struct{}

func NewDesktop() *Desktop {
	return &Desktop{}
}

func (d *Desktop) Notify(title, message string) error {
	if err := beeep.Notify(title, message, ""); err != nil {
		return err
	}
	// The beep matters for operators who keep the window in the
	// background; its failure alone is not worth reporting.
	_ = beeep.Beep(beeep.DefaultFreq, beeep.DefaultDuration)
	return nil
}

// Noop discards notifications. Used with -q and in tests.
type Noop struct{}

func (Noop) Notify(title, message string) error { return nil }
