package models

import (
	"errors"
	"fmt"
	"strings"
)

type IncomeLevel string

const (
	IncomeLow    IncomeLevel = "low"
	IncomeMiddle IncomeLevel = "middle"
	IncomeHigh   IncomeLevel = "high"
)

type Location string

const (
	LocationUrban Location = "urban"
	LocationRural Location = "rural"
)

// Transport and consumption values offered by the profiling form.
var (
	TransportOptions = []string{
		"Personal Car",
		"Matatu/Bus",
		"Uber/Taxi",
		"Motorcycle/Boda Boda",
		"Walking/Cycling",
	}
	ConsumptionOptions = []string{
		"Basic foodstuffs",
		"Imported goods",
		"Digital services",
		"Mobile money",
		"Fuel",
		"Alcohol/Tobacco",
	}
)

type UserProfile struct {
	Occupation        string      `json:"occupation"`
	IncomeLevel       IncomeLevel `json:"incomeLevel"`
	Location          Location    `json:"location"`
	Transport         []string    `json:"transport"`
	PropertyOwner     bool        `json:"propertyOwner"`
	BusinessOwner     bool        `json:"businessOwner"`
	Dependents        int         `json:"dependents"`
	ConsumptionHabits []string    `json:"consumptionHabits"`
	Concerns          []string    `json:"concerns"`
}

var ErrInvalidProfile = errors.New("invalid profile")

// Validate reports the first field that breaks the profile's enums or bounds.
func (p *UserProfile) Validate() error {
	if strings.TrimSpace(p.Occupation) == "" {
		return fmt.Errorf("%w: occupation is required", ErrInvalidProfile)
	}
	switch p.IncomeLevel {
	case IncomeLow, IncomeMiddle, IncomeHigh:
	default:
		return fmt.Errorf("%w: unknown income level %q", ErrInvalidProfile, p.IncomeLevel)
	}
	switch p.Location {
	case LocationUrban, LocationRural:
	default:
		return fmt.Errorf("%w: unknown location %q", ErrInvalidProfile, p.Location)
	}
	if p.Dependents < 0 {
		return fmt.Errorf("%w: dependents must not be negative", ErrInvalidProfile)
	}
	for _, t := range p.Transport {
		if !contains(TransportOptions, t) {
			return fmt.Errorf("%w: unknown transport option %q", ErrInvalidProfile, t)
		}
	}
	return nil
}

// UsesTransport reports whether mode is among the profile's transport choices.
func (p *UserProfile) UsesTransport(mode string) bool {
	return contains(p.Transport, mode)
}

func (p *UserProfile) Consumes(habit string) bool {
	return contains(p.ConsumptionHabits, habit)
}

// OccupationContains does a case-insensitive substring match on the occupation.
func (p *UserProfile) OccupationContains(keywords ...string) bool {
	occupation := strings.ToLower(p.Occupation)
	for _, k := range keywords {
		if strings.Contains(occupation, strings.ToLower(k)) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers can hand the profile to a request
// without sharing slices with the session.
func (p *UserProfile) Clone() *UserProfile {
	if p == nil {
		return nil
	}
	c := *p
	c.Transport = append([]string(nil), p.Transport...)
	c.ConsumptionHabits = append([]string(nil), p.ConsumptionHabits...)
	c.Concerns = append([]string(nil), p.Concerns...)
	return &c
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
