package common

const (
	BaseWidth  = 1000
	BaseHeight = 600
	Title      = "Find the keys"

	// TPS is the fixed simulation rate. Speeds and gravity are expressed in
	// pixels per frame at this rate.
	TPS = 60
)
