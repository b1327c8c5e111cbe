// Package letter generates cover letters for job applications. The OpenAI
// generator produces a tailored letter; the template generator is the
// deterministic fallback used when no API key is configured or the model
// call fails.
package letter

// Profile describes the candidate the letters are written for.
type Profile struct {
	Name           string
	Email          string
	Phone          string
	GitHub         string
	LinkedIn       string
	Education      string
	KeyProject     string
	Skills         []string
	Certifications []string
}
