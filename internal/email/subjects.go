package email

const (
	subjectLeadCreatedFmt = "New Lead: %s %s (%s)"
)
