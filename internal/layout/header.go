package layout

// Header pixel encoding. Point and frame counts are split into base-4096
// digits biased by -2048 so every channel is an integer in [-2048, 2047],
// a range 16-bit float pixel formats represent exactly even at the
// MaxPointCount/MaxFrameCount limits:
//
//	R = points % 4096 - 2048    G = points / 4096 - 2048
//	B = frames % 4096 - 2048    A = frames / 4096 - 2048
//
// The same pixel value is written into both the displacement and the
// rotation map, so a decoder can recover (N, F) from either file alone.

const (
	headerBase = 4096
	headerBias = 2048
)

// EncodeHeader packs point and frame counts into header pixel channels.
func EncodeHeader(points, frames int) [4]float32 {
	return [4]float32{
		float32(points%headerBase - headerBias),
		float32(points/headerBase - headerBias),
		float32(frames%headerBase - headerBias),
		float32(frames/headerBase - headerBias),
	}
}

// DecodeHeader recovers point and frame counts from a header pixel.
func DecodeHeader(px [4]float32) (points, frames int) {
	points = (int(px[1])+headerBias)*headerBase + int(px[0]) + headerBias
	frames = (int(px[3])+headerBias)*headerBase + int(px[2]) + headerBias
	return points, frames
}
