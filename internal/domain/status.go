package domain

// Status classifies a domain from a scan record. The three values are
// ordered: available < registered < website.
type Status string

const (
	StatusAvailable  Status = "available"  // not registered
	StatusRegistered Status = "registered" // registered, no website
	StatusWebsite    Status = "website"    // registered, website present
)

// DeriveStatus maps a scan record onto its Status.
func DeriveStatus(r Record) Status {
	switch {
	case !r.Registered:
		return StatusAvailable
	case r.Website.Present:
		return StatusWebsite
	default:
		return StatusRegistered
	}
}
