package main

// clampCoord constrains v to lie within the inclusive [min, max] range.
func clampCoord(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// clamp01 constrains a channel value to the target [0,1] convention.
func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// channelByte quantizes a target-domain channel value for the byte pixel
// buffer handed to WritePixels.
func channelByte(v float32) byte {
	return byte(clamp01(v)*legacyChannelMax + 0.5)
}
