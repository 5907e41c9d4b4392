package entity

import (
	"fmt"
	"strings"
)

// Kind identifies which intake form produced a record.
type Kind string

const (
	KindOnboarding Kind = "onboarding"
	KindProspect   Kind = "prospect"
)

// DefaultStatus is the workflow label every new record starts with.
const DefaultStatus = "New"

func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindOnboarding, "onboardings":
		return KindOnboarding, nil
	case KindProspect, "prospects":
		return KindProspect, nil
	}
	return "", fmt.Errorf("unknown record kind %q", s)
}

// Table returns the storage table backing the kind.
func (k Kind) Table() string {
	switch k {
	case KindOnboarding:
		return "proposals_onboarding"
	case KindProspect:
		return "proposals_prospects"
	}
	return ""
}

// Record is the closed set of stored intake records: *Onboarding or *Prospect.
type Record interface {
	isRecord()
}

func (*Onboarding) isRecord() {}
func (*Prospect) isRecord()   {}

// KindOf reports the kind of a record. It panics on a nil interface, which
// is a programming error.
func KindOf(r Record) Kind {
	switch r.(type) {
	case *Onboarding:
		return KindOnboarding
	case *Prospect:
		return KindProspect
	}
	panic(fmt.Sprintf("entity: unknown record type %T", r))
}

// StatusOrDefault returns status, or DefaultStatus when it is blank.
func StatusOrDefault(status string) string {
	if strings.TrimSpace(status) == "" {
		return DefaultStatus
	}
	return status
}
