package blend

// Porter-Duff operators on premultiplied words.

// over: S + D * (1 - Sa)
func over(s, d uint32) uint32 {
	return addUn8x4(mulUn8x4(d, 255-s>>24), s)
}

// in: S * Da
func in(s, d uint32) uint32 {
	return mulUn8x4(s, d>>24)
}

// out: S * (1 - Da)
func out(s, d uint32) uint32 {
	return mulUn8x4(s, 255-d>>24)
}

// atop: S * Da + D * (1 - Sa)
func atop(s, d uint32) uint32 {
	return mulAddUn8x4(s, d>>24, d, 255-s>>24)
}

// destOver: S * (1 - Da) + D
func destOver(s, d uint32) uint32 {
	return addUn8x4(mulUn8x4(s, 255-d>>24), d)
}

// destIn: D * Sa
func destIn(s, d uint32) uint32 {
	return mulUn8x4(d, s>>24)
}

// destOut: D * (1 - Sa)
func destOut(s, d uint32) uint32 {
	return mulUn8x4(d, 255-s>>24)
}

// destAtop: S * (1 - Da) + D * Sa
func destAtop(s, d uint32) uint32 {
	return mulAddUn8x4(s, 255-d>>24, d, s>>24)
}

// xor: S * (1 - Da) + D * (1 - Sa)
func xor(s, d uint32) uint32 {
	return mulAddUn8x4(s, 255-d>>24, d, 255-s>>24)
}
