package entity

// Departments is the closed set of hospital departments a doctor can belong
// to. Appointment booking validates the submitted department against the
// resolved doctor's department, so the list must match what the clients offer.
var Departments = []string{
	"Pediatrics",
	"Orthopedics",
	"Cardiology",
	"Neurology",
	"Oncology",
	"Radiology",
	"Physical Therapy",
	"Dermatology",
	"ENT",
}

// IsValidDepartment reports whether name is one of the fixed departments.
func IsValidDepartment(name string) bool {
	for _, d := range Departments {
		if d == name {
			return true
		}
	}
	return false
}
