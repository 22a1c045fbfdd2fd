package retained

import "math"

// SmoothDamp moves current toward target like a critically damped spring
// that reaches the target in roughly smoothTime seconds and never overshoots.
// velocity is read and written across calls. maxSpeed <= 0 means unbounded.
func SmoothDamp(current, target float32, velocity *float32, smoothTime, maxSpeed, dt float32) float32 {
	smoothTime = max(0.0001, smoothTime)
	if dt <= 0 {
		return current
	}
	omega := 2 / smoothTime
	x := omega * dt
	exp := 1 / (1 + x + 0.48*x*x + 0.235*x*x*x)

	change := current - target
	original := target
	if maxSpeed > 0 {
		maxChange := maxSpeed * smoothTime
		change = clamp(change, -maxChange, maxChange)
	}
	target = current - change

	temp := (*velocity + omega*change) * dt
	*velocity = (*velocity - omega*temp) * exp
	out := target + (change+temp)*exp

	// Prevent overshooting
	if (original-current > 0) == (out > original) {
		out = original
		*velocity = (out - original) / dt
	}
	return out
}

// Ceil rounds v up to a whole unit, used to keep resting positions off sub-pixel offsets.
func Ceil(v float32) float32 {
	return float32(math.Ceil(float64(v)))
}
