// Package physio provides the crop-physiology formulas behind every chart.
//
// Each formula is a pure function of at most four scalars, with a slice
// variant for parameter sweeps:
//
//   - [GrowthRespiration]: R_g = m · GTW
//   - [MaintenanceRespiration]: R_m = Σ r_{m,i} · W_i
//   - [NetPhotosynthesis]: A_n = V_c - 0.5·V_o - R_d
//   - [NitrogenCoefficient]: r'_{m,i} = r_ref · (N_i / N_ref)
//   - [RespirationRatio]: R_p = α · P_g
//   - [RubiscoRp]: R_p = R_pmax · (O₂/K_s) / ((CO₂/K_c) + 1 + O₂/K_o)
//   - [TemperatureRespiration]: R_m(T) = R_m0 · Q10^((T-T0)/10)
//
// # Non-finite values
//
// Reference constants are not validated. A zero N_ref or Michaelis constant
// yields ±Inf or NaN following IEEE-754, exactly as the arithmetic does.
// Callers that want a diagnosis use [ErrDivisionByZero] through
// config.Validate; the numbers themselves are never altered.
package physio
