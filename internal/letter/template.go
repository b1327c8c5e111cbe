package letter

import (
	"context"
	"fmt"
	"strings"
)

// Template writes letters from a fixed form with the candidate's details
// filled in. It never fails, which makes it the terminal generator in a
// fallback chain.
type Template struct {
	profile Profile
}

func NewTemplate(profile Profile) *Template {
	return &Template{profile: profile}
}

func (t *Template) CoverLetter(_ context.Context, title, company, _ string) (string, error) {
	p := t.profile
	return fmt.Sprintf(`Dear Hiring Team at %s,

I am writing to express my strong interest in the %s position at %s. As a %s with hands-on experience in cybersecurity operations and full-stack development, I am excited about the opportunity to contribute to your team.

My technical foundation includes %s, with %s certifications. I recently developed %s, which demonstrates my ability to build security-focused applications and my understanding of threat detection principles.

Through extensive practical labs and real-world project development, I have gained strong skills in threat analysis, incident response, and secure application design. I am particularly drawn to %s because of your commitment to innovation.

I am eager to bring my technical skills, security-first mindset, and enthusiasm to %s. I am available to start immediately and would welcome the opportunity to discuss how I can contribute to your team's success.

Please feel free to contact me at %s to schedule a discussion. I have attached my CV for your review.

Thank you for considering my application.

Best regards,
%s
%s
%s`,
		company,
		title, company, orDefault(p.Education, "motivated candidate"),
		joinFirst(p.Skills, 4), strings.Join(p.Certifications, ", "), orDefault(p.KeyProject, "several personal projects"),
		company,
		company,
		p.Email,
		p.Name,
		p.Email,
		p.GitHub,
	), nil
}

func joinFirst(items []string, n int) string {
	if len(items) > n {
		items = items[:n]
	}
	return strings.Join(items, ", ")
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
