package model

import "time"

// Platform is the access method an account was last seen on.
//
// The numeric values are stable and double as the iteration order of every
// per-platform table in the service.
type Platform uint8

const (
	PlatformNone Platform = iota
	PlatformMobileSite
	PlatformIPhone
	PlatformIPad
	PlatformAndroid
	PlatformWindowsPhone
	PlatformWindowsApp
	PlatformFullSite

	platformCount = 8
)

var platformNames = [platformCount]string{
	"NONE",
	"MOBILE_SITE",
	"IPHONE",
	"IPAD",
	"ANDROID",
	"WINDOWS_PHONE",
	"WINDOWS_APP",
	"FULL_SITE",
}

// Platforms lists every platform in table order.
func Platforms() []Platform {
	return []Platform{
		PlatformNone,
		PlatformMobileSite,
		PlatformIPhone,
		PlatformIPad,
		PlatformAndroid,
		PlatformWindowsPhone,
		PlatformWindowsApp,
		PlatformFullSite,
	}
}

func (p Platform) Valid() bool {
	return p < platformCount
}

func (p Platform) String() string {
	if !p.Valid() {
		return "UNKNOWN"
	}

	return platformNames[p]
}

// DeviceClass is the legacy two-bucket split of platforms.
type DeviceClass uint8

const (
	DeviceClassNone DeviceClass = iota
	DeviceClassSite
	DeviceClassApp
)

func (p Platform) DeviceClass() DeviceClass {
	switch p {
	case PlatformMobileSite, PlatformFullSite:
		return DeviceClassSite
	case PlatformIPhone, PlatformIPad, PlatformAndroid, PlatformWindowsPhone, PlatformWindowsApp:
		return DeviceClassApp
	default:
		return DeviceClassNone
	}
}

// PlatformDurations holds one duration per platform, indexed by Platform.
type PlatformDurations [platformCount]time.Duration

func (d *PlatformDurations) Add(p Platform, v time.Duration) {
	if !p.Valid() {
		return
	}

	d[p] += v
}

func (d PlatformDurations) Get(p Platform) time.Duration {
	if !p.Valid() {
		return 0
	}

	return d[p]
}

func (d PlatformDurations) Total() time.Duration {
	var total time.Duration
	for _, v := range d {
		total += v
	}

	return total
}

// NonZero returns the platforms with a positive duration, in table order.
func (d PlatformDurations) NonZero() []Platform {
	result := []Platform{}

	for _, p := range Platforms() {
		if d[p] > 0 {
			result = append(result, p)
		}
	}

	return result
}
