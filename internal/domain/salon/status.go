package salon

// ===============================
// Contact Status
// ===============================

type ContactStatus string

const (
	StatusNotContacted  ContactStatus = "notContacted"
	StatusContacted     ContactStatus = "contacted"
	StatusInterested    ContactStatus = "interested"
	StatusNotInterested ContactStatus = "notInterested"
	StatusSubscribed    ContactStatus = "subscribed"
)

func InitialContactStatus() ContactStatus {
	return StatusNotContacted
}

func IsValidContactStatus(s ContactStatus) bool {
	switch s {
	case StatusNotContacted, StatusContacted, StatusInterested,
		StatusNotInterested, StatusSubscribed:
		return true
	}
	return false
}
