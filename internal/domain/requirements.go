package domain

// AreaKind says which area measurements a property type carries.
type AreaKind int

const (
	AreaNone         AreaKind = iota // no area recorded
	AreaExclusive                    // exclusive (unit) area only
	AreaLandBuilding                 // land area then building area
	AreaLandOnly                     // land area only
)

// FieldRequirements is the single lookup for type-dependent fields. The
// engine's branching, the edit menu, and the confirm summary all consult it
// so the three cannot drift apart.
type FieldRequirements struct {
	ApartmentFields bool // building name and room number
	AreaKind        AreaKind
	YearBuilt       bool
}

var requirementsByType = map[PropertyType]FieldRequirements{
	TypeApartment: {ApartmentFields: true, AreaKind: AreaExclusive},
	TypeHouse:     {AreaKind: AreaLandBuilding, YearBuilt: true},
	TypeLand:      {AreaKind: AreaLandOnly},
	TypeOther:     {AreaKind: AreaNone},
}

// Requirements returns the field requirements for the given property type.
// An unset type yields the zero requirements.
func Requirements(t PropertyType) FieldRequirements {
	return requirementsByType[t]
}
