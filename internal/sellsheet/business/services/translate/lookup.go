package translate

import "sellsheet_api/internal/sellsheet/models"

// LookupKey identifies a parameter in the translation store. It is either an
// identified parameter (external catalog id) or a bare name.
type LookupKey interface {
	Identity() string
	Name() string
	Value() string
	lookupKey()
}

type identifiedParameter struct {
	externalID string
	name       string
	value      string
}

func ByExternalID(externalID, name, value string) LookupKey {
	return identifiedParameter{externalID: externalID, name: name, value: value}
}

func (p identifiedParameter) Identity() string { return p.externalID }
func (p identifiedParameter) Name() string     { return p.name }
func (p identifiedParameter) Value() string    { return p.value }
func (identifiedParameter) lookupKey()         {}

type namedParameter struct {
	name  string
	value string
}

func ByName(name, value string) LookupKey {
	return namedParameter{name: name, value: value}
}

func (p namedParameter) Identity() string { return p.name }
func (p namedParameter) Name() string     { return p.name }
func (p namedParameter) Value() string    { return p.value }
func (namedParameter) lookupKey()         {}

func KeyFor(f models.Feature) LookupKey {
	if f.ExternalID != "" {
		return ByExternalID(f.ExternalID, f.Name, f.Value)
	}
	return ByName(f.Name, f.Value)
}
