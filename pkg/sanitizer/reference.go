package sanitizer

import (
	"strings"

	"laundry/pkg/model"
)

// NormalizeHouse normalizes a house in place.
func NormalizeHouse(h *model.House) {
	h.StreetAddress = TrimAndNormalize(h.StreetAddress)
	h.HouseNumber = TrimAndNormalize(h.HouseNumber)
	h.City = NormalizeCity(h.City)
	h.State = NormalizeState(h.State)
	h.ZipCode = NormalizeZipCode(h.ZipCode)
	h.ContactNumber = NormalizePhone(h.ContactNumber)
}

// NormalizeLaundryRoom normalizes a laundry room in place. An unknown time
// zone is kept as given so that validation rejects it.
func NormalizeLaundryRoom(r *model.LaundryRoom) {
	r.Name = NormalizeName(r.Name)
	tz := strings.TrimSpace(r.TimeZone)
	if normalized := NormalizeTimeZone(tz); normalized != "" || strings.EqualFold(tz, "UTC") {
		tz = normalized
	}
	r.TimeZone = tz
}
