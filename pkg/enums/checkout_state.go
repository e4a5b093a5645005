package enums

// CheckoutState tracks a checkout attempt while it is in flight.
type CheckoutState string

const (
	CheckoutStateIdle       CheckoutState = "idle"
	CheckoutStateSubmitting CheckoutState = "submitting"
	CheckoutStateSucceeded  CheckoutState = "succeeded"
	CheckoutStateFailed     CheckoutState = "failed"
)

// String implements fmt.Stringer.
func (s CheckoutState) String() string {
	return string(s)
}
