package pricing

// Draft is the complete booking form as assembled for submission.
type Draft struct {
	Name          string
	Phone         string
	Email         string
	Address       string
	Province      string
	Ward          string
	DepartureDate string
	TotalPrice    int64

	Seats         int
	HasAdditional bool
	TotalPeople   int
}

// Validate runs every check independently and reports each failure through
// the supplied reporter. Checks are not short-circuited; a fully broken
// draft yields one message per failing rule.
func Validate(d Draft, report func(message string)) {
	if d.Name == "" {
		report("customer name is required")
	}
	if d.Phone == "" {
		report("phone number is required")
	}
	if d.Email == "" {
		report("email is required")
	}
	if d.Address == "" {
		report("address is required")
	}
	if d.Province == "" {
		report("province is required")
	}
	if d.Ward == "" {
		report("ward is required")
	}
	if d.DepartureDate == "" {
		report("departure date is required")
	}
	if d.TotalPrice <= 0 {
		report("total price is invalid")
	}
	if !d.HasAdditional && d.Seats > 0 && d.TotalPeople > d.Seats {
		report("this tour does not allow exceeding seat capacity")
	}
}

// ValidateDraft collects all validation failures into a message list.
func ValidateDraft(d Draft) []string {
	var errs []string
	Validate(d, func(msg string) {
		errs = append(errs, msg)
	})
	return errs
}
