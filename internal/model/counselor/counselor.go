package counselor

// Counselor is a licensed professional students can book a session with.
type Counselor struct {
	ID             string  `json:"id" yaml:"id"`
	Name           string  `json:"name" yaml:"name"`
	Specialization string  `json:"specialization" yaml:"specialization"`
	Experience     string  `json:"experience" yaml:"experience"`
	Availability   string  `json:"availability" yaml:"availability"`
	Rating         float64 `json:"rating" yaml:"rating"`
}
