package meshmodel

import (
	"fmt"
	"strconv"
)

func itoa(n int) string { return strconv.Itoa(n) }

func onOff(state bool) string {
	if state {
		return "ON"
	}
	return "OFF"
}

func hexRGB(r, g, b uint8) string {
	return fmt.Sprintf("%02x%02x%02x", r, g, b)
}
