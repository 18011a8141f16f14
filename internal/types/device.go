package types

import "strings"

// DeviceType is the canonical device dimension. Raw platform strings reported
// by clients drift over time, so everything is funnelled through
// NormalizeDevice before it reaches a statistics row.
type DeviceType string

const (
	DeviceWeb         DeviceType = "web"
	DeviceIOS         DeviceType = "ios"
	DeviceAndroid     DeviceType = "android"
	DeviceWap         DeviceType = "wap"
	DeviceMiniProgram DeviceType = "miniprogram"
	DeviceOther       DeviceType = "other"
)

func (d DeviceType) String() string {
	return string(d)
}

func (d DeviceType) Validate() bool {
	switch d {
	case DeviceWeb, DeviceIOS, DeviceAndroid, DeviceWap, DeviceMiniProgram, DeviceOther:
		return true
	default:
		return false
	}
}

// AllDeviceTypes returns every canonical device value.
func AllDeviceTypes() []DeviceType {
	return []DeviceType{DeviceWeb, DeviceIOS, DeviceAndroid, DeviceWap, DeviceMiniProgram, DeviceOther}
}

// NormalizeDevice canonicalizes a free-text platform identifier. It is total:
// any input, including the empty string, maps to a member of the enum.
func NormalizeDevice(raw string) DeviceType {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return DeviceOther
	}

	// Exact matches first so canonical values pass through untouched.
	switch DeviceType(s) {
	case DeviceWeb, DeviceIOS, DeviceAndroid, DeviceWap, DeviceMiniProgram, DeviceOther:
		return DeviceType(s)
	}

	switch {
	case strings.Contains(s, "iphone"), strings.Contains(s, "ipad"), strings.Contains(s, "ios"):
		return DeviceIOS
	case strings.Contains(s, "android"):
		return DeviceAndroid
	case strings.Contains(s, "mini"), strings.Contains(s, "weapp"), strings.Contains(s, "wxapp"):
		return DeviceMiniProgram
	case strings.Contains(s, "wap"), strings.Contains(s, "mobile"), strings.Contains(s, "h5"):
		return DeviceWap
	case strings.Contains(s, "web"), strings.Contains(s, "pc"), strings.Contains(s, "mac"),
		strings.Contains(s, "windows"), strings.Contains(s, "desktop"):
		return DeviceWeb
	default:
		return DeviceOther
	}
}
