package portal

import "strings"

// ColorCategory is the finite set of status colors the dashboards use.
type ColorCategory string

const (
	ColorTeal  ColorCategory = "teal"
	ColorGreen ColorCategory = "green"
	ColorRed   ColorCategory = "red"
)

// CSS returns the hex value rendered inline for the category.
func (c ColorCategory) CSS() string {
	switch c {
	case ColorGreen:
		return "#28a745"
	case ColorRed:
		return "#dc3545"
	default:
		return "#00b8b8"
	}
}

// DefaultAppointmentStatus is assumed when the collaborator sends an empty
// or unrecognized status.
const DefaultAppointmentStatus = "Scheduled"

// AppointmentStatusOptions is the full enumeration the admin edit form
// offers, in display order.
var AppointmentStatusOptions = []string{
	"Scheduled",
	"Confirmed",
	"Rescheduled",
	"Completed",
	"Cancelled by Admin",
	"Cancelled by Patient",
	"No Show",
	"Pending Payment",
	"Rejected",
}

// AppointmentStatusColor normalizes a raw status and maps it to its color
// category. The mapping is total: every enumerated status maps to exactly
// one category and anything else falls back to Scheduled/teal.
func AppointmentStatusColor(raw string) (status string, color ColorCategory) {
	status = strings.TrimSpace(raw)
	if status == "" {
		status = DefaultAppointmentStatus
	}
	switch {
	case status == "Confirmed":
		return status, ColorGreen
	case strings.EqualFold(status, "Rescheduled"):
		return status, ColorRed
	case strings.Contains(status, "Cancelled"),
		status == "Rejected",
		status == "No Show":
		return status, ColorRed
	default:
		// Scheduled, Completed, Pending Payment and anything unknown.
		return status, ColorTeal
	}
}
