package scheduler

import "github.com/edu-sched/bwm-ilp-api/internal/models"

// The three penalty formulas below are shared, byte-for-byte, between the
// model builder's objective assembly and the projector's post-solve
// recomputation. Keeping them in one place is what guarantees the two never
// drift apart (see the BwmIlpResult.ObjectiveValue godoc for the
// dropped-zero-term caveat this still leaves).

// lecturerPreferencePenalty is the LECTURER_PREFERENCE contribution of one
// w[c,t,ℓ] variable.
func lecturerPreferencePenalty(weight, preferenceScore float64) float64 {
	return weight * (1 - preferenceScore)
}

// peakTimeAvoidancePenalty is the PEAK_TIME_AVOIDANCE contribution of one
// w[c,t,ℓ] variable.
func peakTimeAvoidancePenalty(weight float64, isPeak bool) float64 {
	if !isPeak {
		return 0
	}
	return weight
}

// roomUtilizationPenalty is the ROOM_UTILIZATION contribution of one
// x[c,t,r] variable. A zero-capacity room contributes nothing.
func roomUtilizationPenalty(weight float64, capacity, effectiveCapacity int) float64 {
	if capacity <= 0 {
		return 0
	}
	slack := capacity - effectiveCapacity
	if slack < 0 {
		slack = 0
	}
	return weight * float64(slack) / float64(capacity)
}

// wPenaltyBreakdown returns the non-zero soft-constraint contributions of
// assigning class c to (timeslot t, lecturer ℓ), keyed by the recognised
// soft-constraint identifiers.
func wPenaltyBreakdown(bundle models.DatasetBundle, lecturerID, timeslotID int64, timeslot models.Timeslot) map[string]float64 {
	out := make(map[string]float64, 2)
	if w := bundle.Weight(models.SoftConstraintLecturerPreference); w != 0 {
		if v := lecturerPreferencePenalty(w, bundle.PreferenceScore(lecturerID, timeslotID)); v != 0 {
			out[models.SoftConstraintLecturerPreference] = v
		}
	}
	if w := bundle.Weight(models.SoftConstraintPeakTimeAvoidance); w != 0 {
		if v := peakTimeAvoidancePenalty(w, timeslot.IsPeak); v != 0 {
			out[models.SoftConstraintPeakTimeAvoidance] = v
		}
	}
	return out
}

// xPenaltyBreakdown returns the non-zero soft-constraint contributions of
// assigning class c to room r, keyed by the recognised soft-constraint
// identifiers.
func xPenaltyBreakdown(bundle models.DatasetBundle, room models.Room, effectiveCapacity int) map[string]float64 {
	out := make(map[string]float64, 1)
	if w := bundle.Weight(models.SoftConstraintRoomUtilization); w != 0 {
		if v := roomUtilizationPenalty(w, room.Capacity, effectiveCapacity); v != 0 {
			out[models.SoftConstraintRoomUtilization] = v
		}
	}
	return out
}

func mergeBreakdowns(dst map[string]float64, src map[string]float64) {
	for k, v := range src {
		dst[k] += v
	}
}

func sumBreakdown(m map[string]float64) float64 {
	total := 0.0
	for _, v := range m {
		total += v
	}
	return total
}
