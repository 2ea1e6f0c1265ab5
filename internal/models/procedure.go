// Package models defines catalog records and classification results.
package models

import (
	"fmt"
	"slices"
	"strings"
)

// Urgency ranks how quickly a procedure has to be started.
type Urgency string

// Urgency levels, lowest first.
const (
	UrgencyLow      Urgency = "LOW"
	UrgencyModerate Urgency = "MODERATE"
	UrgencyHigh     Urgency = "HIGH"
	UrgencyCritical Urgency = "CRITICAL"
)

// ParseUrgency converts a case-insensitive level name into an Urgency.
func ParseUrgency(s string) (Urgency, error) {
	u := Urgency(strings.ToUpper(strings.TrimSpace(s)))
	switch u {
	case UrgencyLow, UrgencyModerate, UrgencyHigh, UrgencyCritical:
		return u, nil
	default:
		return "", fmt.Errorf("unknown urgency level: %q", s)
	}
}

// Procedure is a first-aid procedure record. Catalog-owned and read-only.
type Procedure struct {
	ID           string   `yaml:"id" json:"id"`
	Title        string   `yaml:"title" json:"title"`
	Category     string   `yaml:"category" json:"category"`
	Source       string   `yaml:"source" json:"source"`
	Steps        []string `yaml:"steps" json:"steps"`
	Warnings     []string `yaml:"warnings" json:"warnings,omitempty"`
	Supplies     []string `yaml:"supplies" json:"supplies,omitempty"`
	SeekHelpWhen []string `yaml:"seek_help_when" json:"seek_help_when,omitempty"`
	Urgency      Urgency  `yaml:"urgency" json:"urgency"`
	TimeCritical bool     `yaml:"time_critical" json:"time_critical"`
}

// Clone returns a copy that shares no slices with p.
func (p Procedure) Clone() Procedure {
	p.Steps = slices.Clone(p.Steps)
	p.Warnings = slices.Clone(p.Warnings)
	p.Supplies = slices.Clone(p.Supplies)
	p.SeekHelpWhen = slices.Clone(p.SeekHelpWhen)
	return p
}
