package services

import (
	"strconv"
	"strings"

	"confdata/internal/adapters/textutil"
	"confdata/internal/domain"
)

// sponsorUsageLimits is the number of tickets an access code unlocks per level.
var sponsorUsageLimits = map[string]int{
	"diamond":  8,
	"platinum": 8,
	"gold":     4,
	"silver":   2,
	"bronze":   1,
}

// AccessCode fills template with the sponsor's slugified name, slugified level
// name, and id. An empty template uses domain.DefaultAccessCodeTemplate.
func AccessCode(template string, sponsor *domain.Sponsor) string {
	if template == "" {
		template = domain.DefaultAccessCodeTemplate
	}
	r := strings.NewReplacer(
		"{sponsor_name}", textutil.Slugify(sponsor.Name),
		"{level_name}", textutil.Slugify(sponsor.Level.Name),
		"{sponsor_id}", strconv.FormatInt(sponsor.ID, 10),
	)
	return r.Replace(template)
}

// UsageLimit returns the ticket allowance for a sponsorship level; unknown levels get 0.
func UsageLimit(levelName string) int {
	return sponsorUsageLimits[strings.ToLower(levelName)]
}

// splitContactName returns the text before the first space and after the last space.
func splitContactName(name string) (first, last string) {
	parts := strings.Split(name, " ")
	return parts[0], parts[len(parts)-1]
}
