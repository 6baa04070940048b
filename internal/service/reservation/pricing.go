package reservation

// TotalPriceCents computes the price of a window at the given hourly rate.
// Every started hour is billed in full: a 61-minute rental costs two
// hours. Expects a window that already passed Validate.
func TotalPriceCents(w Window, pricePerHourCents int64) int64 {
	hours := (w.Minutes() + 59) / 60
	return hours * pricePerHourCents
}
