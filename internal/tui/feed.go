package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/colonyops/hirewatch/internal/core/styles"
)

// Candidate is one row of the match feed.
type Candidate struct {
	Name   string
	Role   string
	Score  int // match score 0-100
	Status string
}

var (
	sampleFirst  = []string{"Ada", "Grace", "Linus", "Margaret", "Ken", "Barbara", "Dennis", "Frances", "Edsger", "Radia", "Donald", "Hedy"}
	sampleLast   = []string{"Okafor", "Lindqvist", "Tanaka", "Moreau", "Silva", "Novak", "Haddad", "Kowalski", "Brennan", "Ivanova"}
	sampleRoles  = []string{"Backend Engineer", "SRE", "Data Engineer", "Platform Engineer", "Security Engineer", "Engineering Manager", "Frontend Engineer"}
	sampleStages = []string{"applied", "screening", "phone screen", "onsite", "offer", "hired"}
)

// SampleCandidates returns n deterministic demo candidates.
func SampleCandidates(n int) []Candidate {
	out := make([]Candidate, n)
	for i := range out {
		out[i] = Candidate{
			Name:   sampleFirst[i%len(sampleFirst)] + " " + sampleLast[(i*7)%len(sampleLast)],
			Role:   sampleRoles[(i*3)%len(sampleRoles)],
			Score:  40 + (i*37)%61,
			Status: sampleStages[(i*5)%len(sampleStages)],
		}
	}
	return out
}

// feed is a scrollable list of candidates. offset is the index of the first
// visible row and doubles as the scroll offset reported to the header.
type feed struct {
	rows   []Candidate
	offset int
}

// maxOffset returns the largest offset that still fills a viewport of the
// given height.
func (f *feed) maxOffset(viewport int) int {
	return max(len(f.rows)-viewport, 0)
}

// scrollTo clamps and applies an offset. It reports whether the offset moved.
func (f *feed) scrollTo(offset, viewport int) bool {
	offset = min(max(offset, 0), f.maxOffset(viewport))
	if offset == f.offset {
		return false
	}
	f.offset = offset
	return true
}

func (f *feed) render(width, height int) string {
	lines := make([]string, 0, height)
	for i := f.offset; i < len(f.rows) && len(lines) < height; i++ {
		lines = append(lines, ansi.Truncate(renderCandidate(f.rows[i]), width, "…"))
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func renderCandidate(c Candidate) string {
	score := styles.FeedScoreLow
	switch {
	case c.Score >= 80:
		score = styles.FeedScoreHigh
	case c.Score >= 60:
		score = styles.FeedScoreMid
	}

	return fmt.Sprintf(" %s %s %s %s",
		styles.FeedNameStyle.Render(pad(c.Name, 20)),
		styles.FeedRoleStyle.Render(pad(c.Role, 22)),
		score.Render(fmt.Sprintf("%3d%%", c.Score)),
		styles.FeedStatusStyle.Render(c.Status),
	)
}

func pad(s string, w int) string {
	s = ansi.Truncate(s, w, "…")
	return s + strings.Repeat(" ", max(w-ansi.StringWidth(s), 0))
}
