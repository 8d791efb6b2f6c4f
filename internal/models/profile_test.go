package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProfile() UserProfile {
	return UserProfile{
		Occupation:  "Software Developer",
		IncomeLevel: IncomeMiddle,
		Location:    LocationUrban,
		Transport:   []string{"Personal Car"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *UserProfile)
		wantErr bool
	}{
		{"valid", func(p *UserProfile) {}, false},
		{"blank occupation", func(p *UserProfile) { p.Occupation = "  " }, true},
		{"bad income", func(p *UserProfile) { p.IncomeLevel = "rich" }, true},
		{"bad location", func(p *UserProfile) { p.Location = "suburban" }, true},
		{"negative dependents", func(p *UserProfile) { p.Dependents = -1 }, true},
		{"unknown transport", func(p *UserProfile) { p.Transport = []string{"Helicopter"} }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProfile()
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidProfile)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestOccupationContains(t *testing.T) {
	p := validProfile()
	p.Occupation = "Digital Marketer"
	assert.True(t, p.OccupationContains("tech", "digital"))
	assert.False(t, p.OccupationContains("farmer"))
}

func TestCloneDoesNotShareSlices(t *testing.T) {
	p := validProfile()
	c := p.Clone()
	c.Transport[0] = "Matatu/Bus"
	assert.Equal(t, "Personal Car", p.Transport[0])
}

func TestWithEditsKeepsOriginal(t *testing.T) {
	d := EmailDraft{To: []string{"a@example.com"}, Subject: "s", Body: "b"}
	e := d.WithEdits("new subject", "new body")
	e.To[0] = "changed@example.com"

	assert.Equal(t, "s", d.Subject)
	assert.Equal(t, "a@example.com", d.To[0])
	assert.Equal(t, "new subject", e.Subject)
	assert.Equal(t, "new body", e.Body)
}
