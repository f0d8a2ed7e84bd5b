// Package analysis computes diagnostics over recorded voyage traces.
//
//   - [SettleFrame], [PeakSpeed], [Overshoot], [Distance]: scalar metrics
//   - [VelocitySpectrum], [DominantFrequency]: FFT of the velocity series,
//     useful for spotting hunting around a target
//
// [Summary] bundles the scalars stored alongside a run.
package analysis
