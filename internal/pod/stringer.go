package pod

import (
	"fmt"
	"strings"
)

// String returns a human-readable representation of the pod.
func (p Pod) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s:\n", p.Model)

	b.WriteString("  Left:  ")
	b.WriteString(p.Left.String())
	b.WriteString("\n  Right: ")
	b.WriteString(p.Right.String())

	// Single earpiece models never have a case, so don't print one.
	if !p.Model.Single() {
		b.WriteString("\n  Case:  ")
		b.WriteString(p.Case.String())
	}
	return b.String()
}

// String formats the device as "50% (Charging) [In Ear]", or "Disconnected"
// for a nil device.
func (d *Device) String() string {
	if d == nil {
		return "Disconnected"
	}
	result := fmt.Sprintf("%d%%", d.Battery)
	if d.Charging {
		result += " (Charging)"
	}
	if d.InEar != nil && *d.InEar {
		result += " [In Ear]"
	}
	return result
}
