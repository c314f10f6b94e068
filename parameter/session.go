package parameter

// Session tick loop
const (
	// SessionTickRate is the default logical tick frequency (Hz)
	SessionTickRate = 60
)
