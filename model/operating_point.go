package model

// OperatingPointExcitation is the per-winding electrical excitation at
// one operating point (spec §3).
type OperatingPointExcitation struct {
	Frequency           float64
	Current             *SignalDescriptor
	Voltage             *SignalDescriptor
	MagnetizingCurrent  *SignalDescriptor
	MagneticFluxDensity *SignalDescriptor
}

// Conditions is the environment an OperatingPoint is evaluated under.
type Conditions struct {
	AmbientTemperature float64
	Cooling            *string
}

// OperatingPoint bundles the excitation of every winding plus the
// ambient conditions for one design point (spec §3).
type OperatingPoint struct {
	ExcitationsPerWinding []OperatingPointExcitation
	Conditions            Conditions
	Name                  string
}

// DimensionWithTolerance is a minimum/nominal/maximum requirement, used
// for the magnetizing-inductance target and similar bounded quantities.
type DimensionWithTolerance struct {
	Minimum *float64
	Nominal *float64
	Maximum *float64
}

// DesignRequirements is the designer's target for the magnetic (spec §3).
type DesignRequirements struct {
	TurnsRatios           []float64
	MagnetizingInductance DimensionWithTolerance
	IsolationSides        []string
	Application           *string
	SubApplication        *string
	Topology              *string
	MaximumDimensions     *Vec3
	MinimumImpedance      *float64
}

// Inputs is the top-level request the whole stack is driven from.
type Inputs struct {
	DesignRequirements DesignRequirements
	OperatingPoints    []OperatingPoint
}

// PrimaryExcitation returns the first winding's excitation, the
// reference signal most single-pass calculations key off.
func (op OperatingPoint) PrimaryExcitation() (OperatingPointExcitation, bool) {
	if len(op.ExcitationsPerWinding) == 0 {
		return OperatingPointExcitation{}, false
	}
	return op.ExcitationsPerWinding[0], true
}
