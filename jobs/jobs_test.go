package jobs

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobFromForm(t *testing.T) {
	form := url.Values{
		"title":       {"Welder"},
		"company":     {"Kaisha KK"},
		"location":    {"Osaka"},
		"type":        {"Full-time"},
		"description": {"MIG welding on site"},
		"skills":      {"MIG, TIG"},
		"requirements": {
			"N4 Japanese",
			"2 years experience",
		},
		"salary":        {"280000 JPY"},
		"age_limit_min": {"18"},
		"age_limit_max": {"45"},
		"expires_at":    {"2026-12-31"},
	}

	r := httptest.NewRequest("POST", "/api/jobs", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	require.NoError(t, r.ParseForm())

	job, missing := jobFromForm(r)
	assert.Empty(t, missing)
	assert.Equal(t, "Welder", job.Title)
	assert.Equal(t, "Osaka", job.Location)

	// comma-joined and repeated list fields both normalize
	assert.Equal(t, []string{"MIG", "TIG"}, job.Skills)
	assert.Equal(t, []string{"N4 Japanese", "2 years experience"}, job.Requirements)

	assert.Equal(t, 18, job.AgeLimitMin)
	assert.Equal(t, 45, job.AgeLimitMax)
	assert.Equal(t, 2026, job.ExpiresAt.Year())
}

func TestJobFromFormMissingFields(t *testing.T) {
	form := url.Values{
		"title": {"Welder"},
		"type":  {"Freelance-ish"},
	}

	r := httptest.NewRequest("POST", "/api/jobs", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	require.NoError(t, r.ParseForm())

	_, missing := jobFromForm(r)
	assert.Contains(t, missing, "company")
	assert.Contains(t, missing, "location")
	assert.Contains(t, missing, "description")

	// unknown job type is flagged, not silently stored
	assert.Contains(t, missing, "type")
}
