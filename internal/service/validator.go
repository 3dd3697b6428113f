package service

import (
	"strings"
	"time"
)

// Validation messages mirror what the booking form shows inline.
const (
	msgVehicleRequired = "Please select a vehicle"
	msgVehicleUnknown  = "vehicle not found"
	msgNameRequired    = "Name is required"
	msgEmailRequired   = "Email is required"
	msgEmailInvalid    = "Please enter a valid email address"
	msgPhoneRequired   = "Phone number is required"
	msgPhoneTooShort   = "Phone number must have at least 10 digits"
	msgStartRequired   = "Start date is required"
	msgStartInPast     = "Start date must be today or later"
	msgEndRequired     = "End date is required"
	msgEndNotAfter     = "End date must be after start date"
	msgTermsRequired   = "You must accept the rental terms"
)

// ValidateBookingDraft checks a guest-submitted draft and returns a map of
// field name to error message; an empty map means the draft is acceptable.
// Fields are evaluated independently, not short-circuited, so the UI can
// show every problem at once. vehicleKnown reports whether the draft's slug
// resolved to a vehicle at submit time. today is the operator's local
// calendar day as YYYY-MM-DD.
func ValidateBookingDraft(draft BookingDraftFields, vehicleKnown bool, today string) map[string]string {
	errs := map[string]string{}

	if draft.VehicleSlug == "" {
		errs["vehicle_slug"] = msgVehicleRequired
	} else if !vehicleKnown {
		errs["vehicle_slug"] = msgVehicleUnknown
	}

	if strings.TrimSpace(draft.GuestName) == "" {
		errs["guest_name"] = msgNameRequired
	}

	email := strings.TrimSpace(draft.GuestEmail)
	if email == "" {
		errs["guest_email"] = msgEmailRequired
	} else if !validEmail(email) {
		errs["guest_email"] = msgEmailInvalid
	}

	if strings.TrimSpace(draft.GuestPhone) == "" {
		errs["guest_phone"] = msgPhoneRequired
	} else if countDigits(draft.GuestPhone) < 10 {
		errs["guest_phone"] = msgPhoneTooShort
	}

	// ISO dates compare correctly as strings.
	if draft.StartDate == "" {
		errs["start_date"] = msgStartRequired
	} else if draft.StartDate < today {
		errs["start_date"] = msgStartInPast
	}

	if draft.EndDate == "" {
		errs["end_date"] = msgEndRequired
	} else if draft.StartDate != "" && draft.EndDate <= draft.StartDate {
		errs["end_date"] = msgEndNotAfter
	}

	if !draft.TermsAccepted {
		errs["terms_accepted"] = msgTermsRequired
	}

	return errs
}

// BookingDraftFields is the subset of the draft the validator inspects.
type BookingDraftFields struct {
	VehicleSlug   string
	GuestName     string
	GuestEmail    string
	GuestPhone    string
	StartDate     string
	EndDate       string
	TermsAccepted bool
}

// validEmail enforces a simple local@domain.tld shape: an at-sign, at least
// one dot in the domain part, and no whitespace.
func validEmail(email string) bool {
	if strings.ContainsAny(email, " \t\n") {
		return false
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	if strings.Contains(email[at+1:], "@") {
		return false
	}
	domain := email[at+1:]
	dot := strings.Index(domain, ".")
	return dot > 0 && dot < len(domain)-1
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

// RentalDays computes the whole-day length of a stay, rounding partial days
// up and flooring at 0. Used both for the display estimate and, clamped to
// a minimum of 1, for the server-side hold amount.
func RentalDays(startDate, endDate string) int {
	start, err1 := time.Parse("2006-01-02", startDate)
	end, err2 := time.Parse("2006-01-02", endDate)
	if err1 != nil || err2 != nil {
		return 0
	}
	secs := end.Sub(start).Seconds()
	if secs <= 0 {
		return 0
	}
	days := int(secs / 86400)
	if secs > float64(days)*86400 {
		days++
	}
	return days
}

// EstimateCents is the display-only rental estimate shown in the form. It
// is never authoritative: the hold flow recomputes the amount from the
// vehicle's canonical price.
func EstimateCents(dailyPriceCents int64, startDate, endDate string) int64 {
	return dailyPriceCents * int64(RentalDays(startDate, endDate))
}
