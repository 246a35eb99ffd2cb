// Package crossref is the cross-referencing adviser (spec §4.8,
// component C8): given a reference core and a candidate set, it ranks
// substitutes under configurable, weighted filters. Grounded on
// _examples/original_source/src/advisers/CoreCrossReferencer.cpp.
package crossref

import (
	"math"
	"sort"

	"github.com/edp1096/magcore/config"
	"github.com/edp1096/magcore/coreloss"
	"github.com/edp1096/magcore/inductance"
	"github.com/edp1096/magcore/magerr"
	"github.com/edp1096/magcore/material"
	"github.com/edp1096/magcore/model"
	"github.com/edp1096/magcore/reluctance"
	"github.com/edp1096/magcore/waveform"
)

// FilterKind names one of the cross-referencer's five scoring filters.
type FilterKind int

const (
	FilterPermeance FilterKind = iota
	FilterWindingWindowArea
	FilterEffectiveArea
	FilterEnvelopingVolume
	FilterCoreLosses
)

// FilterSettings is the per-filter normalisation mode (spec §4.8).
type FilterSettings struct {
	Log    bool
	Invert bool
}

// Config is the cross-referencer's tunable weighting and normalisation
// per filter, plus how many results to stop at.
type Config struct {
	Weights              map[FilterKind]float64
	Settings             map[FilterKind]FilterSettings
	MaximumNumberResults int
	GapReluctanceModel   config.GapReluctanceModel
	EngineSettings       config.Settings
}

// Candidate is one core under consideration, carrying its resolved
// material (the core-losses filter needs both).
type Candidate struct {
	Name     string
	Core     model.Core
	Material material.CoreMaterial
}

// Ranked is one scored, ranked candidate.
type Ranked struct {
	Candidate Candidate
	Score     float64
}

// limitSequence yields the widening relative-error limit spec §4.8
// names: step 0.25 below 1, 2.5 below 10, 25 above.
func limitSequence() func() float64 {
	limit := 0.0
	return func() float64 {
		switch {
		case limit < 1:
			limit += 0.25
		case limit < 10:
			limit += 2.5
		default:
			limit += 25
		}
		return limit
	}
}

// Rank implements spec §4.8's procedure: widen the shared limit until
// the ranked list holds at least cfg.MaximumNumberResults candidates,
// applying the cheap geometric filters first and the core-losses
// filter last (truncating the field beforehand since it is the most
// expensive).
func Rank(referenceCore Candidate, candidates []Candidate, inputs model.Inputs, referenceNumberTurns int, lookups model.Lookups, cfg Config) ([]Ranked, error) {
	if cfg.MaximumNumberResults <= 0 {
		return nil, magerr.New(magerr.InvalidInput, "maximumNumberResults must be positive")
	}

	const hardLimit = 1000.0
	next := limitSequence()

	var ranked []Ranked
	for limit := next(); limit <= hardLimit; limit = next() {
		var err error
		ranked, err = applyFilters(referenceCore, candidates, inputs, referenceNumberTurns, lookups, cfg, limit)
		if err != nil {
			return nil, err
		}
		if len(ranked) >= cfg.MaximumNumberResults {
			break
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })
	if len(ranked) > cfg.MaximumNumberResults {
		ranked = ranked[:cfg.MaximumNumberResults]
	}
	return ranked, nil
}

// applyFilters runs the geometric filters, truncates to 1.1x the
// target before the expensive core-losses filter, then runs it last.
func applyFilters(referenceCore Candidate, candidates []Candidate, inputs model.Inputs, referenceNumberTurns int, lookups model.Lookups, cfg Config, limit float64) ([]Ranked, error) {
	ranked := make([]Ranked, len(candidates))
	for i, c := range candidates {
		ranked[i] = Ranked{Candidate: c}
	}

	var err error
	ranked, err = filterEnvelopingVolume(referenceCore, ranked, lookups, cfg, limit)
	if err != nil {
		return nil, err
	}
	ranked, err = filterWindingWindowArea(referenceCore, ranked, lookups, cfg, limit)
	if err != nil {
		return nil, err
	}
	ranked, err = filterEffectiveArea(referenceCore, ranked, lookups, cfg, limit)
	if err != nil {
		return nil, err
	}
	ranked, err = filterPermeance(referenceCore, ranked, inputs, lookups, cfg, limit)
	if err != nil {
		return nil, err
	}

	truncateTo := int(1.1 * float64(cfg.MaximumNumberResults))
	if truncateTo > 0 && len(ranked) > truncateTo {
		ranked = ranked[:truncateTo]
	}

	ranked, err = filterCoreLosses(referenceCore, ranked, inputs, referenceNumberTurns, lookups, cfg, limit)
	if err != nil {
		return nil, err
	}
	return ranked, nil
}

// relativeError is |ref - candidate| / ref, the metric every geometric
// filter's `limit` threshold is tested against.
func relativeError(reference, candidate float64) float64 {
	if reference == 0 {
		return math.Inf(1)
	}
	return math.Abs(reference-candidate) / reference
}

// accumulateScore normalises rawScores into [0,1] per the filter's
// log/invert settings and adds weight*normalised onto each survivor's
// running Score, per spec §4.8's NaN-to-worst and max==min fallback
// rules.
func accumulateScore(ranked []Ranked, rawScores []float64, weight float64, settings FilterSettings) {
	if weight <= 0 || len(ranked) == 0 {
		return
	}

	maximum := math.Inf(-1)
	minimum := math.Inf(1)
	for _, s := range rawScores {
		if math.IsNaN(s) {
			continue
		}
		v := math.Max(0.0001, s)
		if v > maximum {
			maximum = v
		}
		if v < minimum {
			minimum = v
		}
	}
	if math.IsInf(maximum, -1) {
		maximum, minimum = 1, 1
	}

	for i := range ranked {
		value := rawScores[i]
		if math.IsNaN(value) {
			value = maximum
		} else {
			value = math.Max(0.0001, value)
		}

		var normalised float64
		if maximum == minimum {
			ranked[i].Score += 1
			continue
		}
		if settings.Log {
			normalised = (math.Log10(value) - math.Log10(minimum)) / (math.Log10(maximum) - math.Log10(minimum))
		} else {
			normalised = (value - minimum) / (maximum - minimum)
		}
		if settings.Invert {
			normalised = 1 - normalised
		}
		ranked[i].Score += weight * normalised
	}
}

func settingsFor(cfg Config, kind FilterKind) FilterSettings {
	if s, ok := cfg.Settings[kind]; ok {
		return s
	}
	return FilterSettings{}
}

func weightFor(cfg Config, kind FilterKind) float64 {
	return cfg.Weights[kind]
}

func processedDims(candidate Candidate, lookups model.Lookups) (model.ProcessedDescription, error) {
	_, processed, err := model.Processed(candidate.Core, lookups)
	if err != nil {
		return model.ProcessedDescription{}, magerr.Wrap(magerr.CoreNotProcessed, err, "processing candidate core %q", candidate.Name)
	}
	return processed, nil
}

func filterEffectiveArea(reference Candidate, ranked []Ranked, lookups model.Lookups, cfg Config, limit float64) ([]Ranked, error) {
	weight := weightFor(cfg, FilterEffectiveArea)
	if weight <= 0 {
		return ranked, nil
	}
	_, referenceProcessed, err := model.Processed(reference.Core, lookups)
	if err != nil {
		return nil, magerr.Wrap(magerr.CoreNotProcessed, err, "processing reference core for effective area filter")
	}

	var survivors []Ranked
	var scores []float64
	for _, r := range ranked {
		processed, err := processedDims(r.Candidate, lookups)
		if err != nil {
			return nil, err
		}
		if relativeError(referenceProcessed.EffectiveArea, processed.EffectiveArea) >= limit {
			continue
		}
		survivors = append(survivors, r)
		scores = append(scores, math.Abs(referenceProcessed.EffectiveArea-processed.EffectiveArea))
	}
	accumulateScore(survivors, scores, weight, settingsFor(cfg, FilterEffectiveArea))
	return survivors, nil
}

func filterWindingWindowArea(reference Candidate, ranked []Ranked, lookups model.Lookups, cfg Config, limit float64) ([]Ranked, error) {
	weight := weightFor(cfg, FilterWindingWindowArea)
	if weight <= 0 {
		return ranked, nil
	}
	_, referenceProcessed, err := model.Processed(reference.Core, lookups)
	if err != nil {
		return nil, magerr.Wrap(magerr.CoreNotProcessed, err, "processing reference core for winding window filter")
	}
	referenceArea := windingWindowArea(referenceProcessed)

	var survivors []Ranked
	var scores []float64
	for _, r := range ranked {
		processed, err := processedDims(r.Candidate, lookups)
		if err != nil {
			return nil, err
		}
		area := windingWindowArea(processed)
		if relativeError(referenceArea, area) >= limit {
			continue
		}
		survivors = append(survivors, r)
		scores = append(scores, math.Abs(referenceArea-area))
	}
	accumulateScore(survivors, scores, weight, settingsFor(cfg, FilterWindingWindowArea))
	return survivors, nil
}

func windingWindowArea(processed model.ProcessedDescription) float64 {
	var total float64
	for _, w := range processed.WindingWindows {
		total += w.Area
	}
	return total
}

func filterEnvelopingVolume(reference Candidate, ranked []Ranked, lookups model.Lookups, cfg Config, limit float64) ([]Ranked, error) {
	weight := weightFor(cfg, FilterEnvelopingVolume)
	if weight <= 0 {
		return ranked, nil
	}
	_, referenceProcessed, err := model.Processed(reference.Core, lookups)
	if err != nil {
		return nil, magerr.Wrap(magerr.CoreNotProcessed, err, "processing reference core for enveloping volume filter")
	}

	var survivors []Ranked
	var scores []float64
	for _, r := range ranked {
		processed, err := processedDims(r.Candidate, lookups)
		if err != nil {
			return nil, err
		}
		// All three dimensions must jointly stay within limit, matching
		// the reference's joint width/height/depth test.
		if relativeError(referenceProcessed.Width, processed.Width) >= limit ||
			relativeError(referenceProcessed.Height, processed.Height) >= limit ||
			relativeError(referenceProcessed.Depth, processed.Depth) >= limit {
			continue
		}
		referenceVolume := referenceProcessed.Width * referenceProcessed.Height * referenceProcessed.Depth
		candidateVolume := processed.Width * processed.Height * processed.Depth
		survivors = append(survivors, r)
		scores = append(scores, math.Abs(referenceVolume-candidateVolume))
	}
	accumulateScore(survivors, scores, weight, settingsFor(cfg, FilterEnvelopingVolume))
	return survivors, nil
}

func permeance(core model.Core, processed model.ProcessedDescription, mat material.CoreMaterial, modelName config.GapReluctanceModel) (float64, error) {
	permeability, err := material.InitialPermeability(mat, 25, nil, nil)
	if err != nil {
		return 0, err
	}
	out, err := reluctance.CoreReluctance(core, processed, permeability, modelName)
	if err != nil {
		return 0, err
	}
	if out.CoreReluctance == 0 {
		return 0, magerr.New(magerr.CalculationNaNResult, "core reluctance is zero, cannot compute permeance")
	}
	return 1 / out.CoreReluctance, nil
}

func filterPermeance(reference Candidate, ranked []Ranked, inputs model.Inputs, lookups model.Lookups, cfg Config, limit float64) ([]Ranked, error) {
	weight := weightFor(cfg, FilterPermeance)
	if weight <= 0 {
		return ranked, nil
	}
	_, referenceProcessed, err := model.Processed(reference.Core, lookups)
	if err != nil {
		return nil, magerr.Wrap(magerr.CoreNotProcessed, err, "processing reference core for permeance filter")
	}
	referencePermeance, err := permeance(reference.Core, referenceProcessed, reference.Material, cfg.GapReluctanceModel)
	if err != nil {
		return nil, err
	}

	var survivors []Ranked
	var scores []float64
	for _, r := range ranked {
		processed, err := processedDims(r.Candidate, lookups)
		if err != nil {
			return nil, err
		}
		candidatePermeance, err := permeance(r.Candidate.Core, processed, r.Candidate.Material, cfg.GapReluctanceModel)
		if err != nil {
			return nil, err
		}
		if relativeError(referencePermeance, candidatePermeance) >= limit {
			continue
		}
		survivors = append(survivors, r)
		scores = append(scores, math.Abs(referencePermeance-candidatePermeance))
	}
	accumulateScore(survivors, scores, weight, settingsFor(cfg, FilterPermeance))
	return survivors, nil
}

// coreLossesAt runs the magnetizing-inductance solver and core-loss
// engine across every operating point at a fixed turns count, returning
// the total losses and the worst-case saturation margin (peak B minus
// material saturation, positive meaning saturated).
func coreLossesAt(core model.Core, processed model.ProcessedDescription, mat material.CoreMaterial, numberTurns int, inputs model.Inputs, settings config.Settings) (totalLosses float64, saturationMargin float64, err error) {
	resolved := inductance.Resolved{
		Core:               core,
		Processed:          processed,
		Material:           mat,
		NumberTurnsPrimary: numberTurns,
		NumberWindings:     1,
	}

	saturationMargin = math.Inf(-1)
	for i := range inputs.OperatingPoints {
		op := inputs.OperatingPoints[i]
		_, fluxDensity, err := inductance.CalculateInductanceAndFluxDensity(resolved, &op, settings)
		if err != nil {
			return 0, 0, err
		}
		if fluxDensity == nil || fluxDensity.Waveform == nil {
			continue
		}

		excitation, _ := op.PrimaryExcitation()
		saturationFlux, err := material.SaturationFluxDensity(mat, op.Conditions.AmbientTemperature, false)
		if err != nil {
			return 0, 0, err
		}
		processedB := waveform.ProcessSignal(*fluxDensity.Waveform, "magnetic_flux_density")
		peak := processedB.Peak
		if margin := peak - saturationFlux; margin > saturationMargin {
			saturationMargin = margin
		}

		losses, err := coreloss.CoreLosses(mat, config.CoreLossesSteinmetz, coreloss.Excitation{
			MagneticFluxDensity: *fluxDensity.Waveform,
			Frequency:           excitation.Frequency,
		}, op.Conditions.AmbientTemperature, coreloss.Geometry{
			EffectiveVolume: processed.EffectiveVolume,
			ColumnArea:      processed.EffectiveArea,
		})
		if err != nil {
			return 0, 0, err
		}
		totalLosses += losses.CoreLosses
	}
	return totalLosses, saturationMargin, nil
}

// filterCoreLosses implements spec §4.8's linked core-losses+saturation
// filter: a candidate is rejected outright if it saturates, and
// otherwise scored by |P_ref - P_cand| once the relative error is below
// limit (or limit has widened to cover everything, limit >= 1).
func filterCoreLosses(reference Candidate, ranked []Ranked, inputs model.Inputs, referenceNumberTurns int, lookups model.Lookups, cfg Config, limit float64) ([]Ranked, error) {
	weight := weightFor(cfg, FilterCoreLosses)
	if weight <= 0 {
		return ranked, nil
	}
	_, referenceProcessed, err := model.Processed(reference.Core, lookups)
	if err != nil {
		return nil, magerr.Wrap(magerr.CoreNotProcessed, err, "processing reference core for core losses filter")
	}
	referenceLosses, _, err := coreLossesAt(reference.Core, referenceProcessed, reference.Material, referenceNumberTurns, inputs, cfg.EngineSettings)
	if err != nil {
		return nil, err
	}

	var survivors []Ranked
	var scores []float64
	for _, r := range ranked {
		processed, err := processedDims(r.Candidate, lookups)
		if err != nil {
			return nil, err
		}
		losses, saturationMargin, err := coreLossesAt(r.Candidate.Core, processed, r.Candidate.Material, referenceNumberTurns, inputs, cfg.EngineSettings)
		if err != nil {
			return nil, err
		}
		if saturationMargin >= 0 {
			continue // candidate saturates at the reference turns count.
		}
		if relativeError(referenceLosses, losses) >= limit && limit < 1 {
			continue
		}
		survivors = append(survivors, r)
		scores = append(scores, math.Abs(referenceLosses-losses))
	}
	accumulateScore(survivors, scores, weight, settingsFor(cfg, FilterCoreLosses))
	return survivors, nil
}
