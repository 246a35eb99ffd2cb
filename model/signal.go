package model

import "github.com/edp1096/magcore/waveform"

// SignalDescriptor is a per-winding electrical signal: it may carry a
// sampled waveform, its harmonic decomposition, and/or its scalar
// summary; physical models fill in whichever views they need (spec §3).
type SignalDescriptor struct {
	Waveform  *waveform.Signal
	Harmonics *waveform.Harmonics
	Processed *waveform.Processed
}
