package tracking

import "context"

// Dispatcher receives built events. *Sink implements it.
type Dispatcher interface {
	Dispatch(ctx context.Context, e Event)
}

// Compile-time interface check
var _ Dispatcher = (*Sink)(nil)

const (
	CategoryEngagement = "engagement"
	CategoryConversion = "conversion"
)

// Trackers is the catalog of named tracking calls. None of them checks consent:
// gating happens when backends are activated.
type Trackers struct {
	d Dispatcher
}

// NewTrackers creates the catalog over d. A nil d makes every call a no-op.
func NewTrackers(d Dispatcher) *Trackers {
	return &Trackers{d: d}
}

// ServiceView records a view of a service page.
func (t *Trackers) ServiceView(ctx context.Context, serviceName string) {
	t.send(ctx, NewEvent("view_service", CategoryEngagement, WithLabel(serviceName)))
}

// CTAClick records a call-to-action click on page.
func (t *Trackers) CTAClick(ctx context.Context, ctaType, page string) {
	t.send(ctx, NewEvent("cta_click", CategoryConversion, WithLabel(ctaType+"_"+page)))
}

// ContactForm records a contact form submission.
func (t *Trackers) ContactForm(ctx context.Context, formType string) {
	t.send(ctx, NewEvent("contact_form_submit", CategoryConversion, WithLabel(formType)))
}

// ProjectView records a view of a portfolio project.
func (t *Trackers) ProjectView(ctx context.Context, id, name string) {
	t.send(ctx, NewEvent("view_project", CategoryEngagement, WithLabel(id+"_"+name)))
}

// CalendlyBooking records a booked discovery call.
func (t *Trackers) CalendlyBooking(ctx context.Context) {
	t.send(ctx, NewEvent("calendly_booking", CategoryConversion, WithLabel("discovery_call")))
}

// Custom records an arbitrary event.
func (t *Trackers) Custom(ctx context.Context, action, category string, opts ...EventOption) {
	t.send(ctx, NewEvent(action, category, opts...))
}

func (t *Trackers) send(ctx context.Context, e Event) {
	if t == nil || t.d == nil {
		return
	}
	t.d.Dispatch(ctx, e)
}
