package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDevice(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected DeviceType
	}{
		{"exact web", "web", DeviceWeb},
		{"exact ios", "ios", DeviceIOS},
		{"exact android", "android", DeviceAndroid},
		{"exact wap", "wap", DeviceWap},
		{"exact miniprogram", "miniprogram", DeviceMiniProgram},
		{"uppercase", "WEB", DeviceWeb},
		{"padded", "  ios  ", DeviceIOS},
		{"iphone", "iPhone 12", DeviceIOS},
		{"ipad", "ipad-pro", DeviceIOS},
		{"android vendor string", "android_huawei", DeviceAndroid},
		{"weapp", "weapp", DeviceMiniProgram},
		{"wxapp", "wxapp_v2", DeviceMiniProgram},
		{"mini prefix", "mini_program", DeviceMiniProgram},
		{"mobile web", "mobile_safari", DeviceWap},
		{"h5", "h5", DeviceWap},
		{"pc", "pc_chrome", DeviceWeb},
		{"mac", "macos", DeviceWeb},
		{"windows", "windows_edge", DeviceWeb},
		{"desktop", "desktop", DeviceWeb},
		{"empty", "", DeviceOther},
		{"whitespace", "   ", DeviceOther},
		{"garbage", "!!!@@@###", DeviceOther},
		{"unknown platform", "symbian", DeviceOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeDevice(tt.input))
		})
	}
}

// Every output must be a member of the enum, whatever the input.
func TestNormalizeDeviceTotality(t *testing.T) {
	inputs := []string{"", " ", "\t\n", "ios android", "💥", "null", "undefined", "0", "Ios-WEB-wap"}
	for _, input := range inputs {
		result := NormalizeDevice(input)
		assert.True(t, result.Validate(), "input %q produced %q", input, result)
	}
}

func TestDeviceTypeValidate(t *testing.T) {
	for _, d := range AllDeviceTypes() {
		assert.True(t, d.Validate())
	}
	assert.False(t, DeviceType("tablet").Validate())
	assert.False(t, DeviceType("").Validate())
}
