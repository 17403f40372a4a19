package exif

// Field types defined by TIFF 6.0.
const (
	TypeByte      = 1
	TypeASCII     = 2
	TypeShort     = 3
	TypeLong      = 4
	TypeRational  = 5
	TypeSByte     = 6
	TypeUndefined = 7
	TypeSShort    = 8
	TypeSLong     = 9
	TypeSRational = 10
	TypeFloat     = 11
	TypeDouble    = 12
)

// IFD0 tags read by this module.
const (
	TagImageWidth                = 0x0100
	TagImageLength               = 0x0101
	TagBitsPerSample             = 0x0102
	TagPhotometricInterpretation = 0x0106
	TagOrientation               = 0x0112
	TagSamplesPerPixel           = 0x0115
	TagExtraSamples              = 0x0152
	TagExifIFD                   = 0x8769
	TagGPSIFD                    = 0x8825
	TagICCProfile                = 0x8773
)
