// Package templates renders passenger-facing notification texts for
// report status changes. Arabic is the primary language; English is
// kept for the self-service kiosk mode.
package templates

import "baggage-service/internal/domain/entity"

// statusTextMap carries the Arabic display labels for every status.
var statusTextMap = map[string]string{
	entity.StatusUrgent:           "عاجل",
	entity.StatusInProgress:       "قيد المتابعة",
	entity.StatusResolved:         "تم الحل",
	entity.StatusNeedsStaffReview: "تحتاج مراجعة",
	entity.StatusOutForDelivery:   "خرجت للتوصيل",
	entity.StatusDelivered:        "تم التسليم",
	entity.StatusFoundAwaiting:    "معثور عليها",
}

// StatusLabel returns the Arabic display label for a status. Unknown
// statuses fall through unchanged so nothing renders blank.
func StatusLabel(status string) string {
	if label, ok := statusTextMap[status]; ok {
		return label
	}
	return status
}
