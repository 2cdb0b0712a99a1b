package assets

import "fmt"

const (
	unknownSizeLabelConstant       = "n/a"
	wholeBytesTemplateConstant     = "%d %s"
	fractionalSizeTemplateConstant = "%.1f %s"
	byteUnitBaseConstant           = 1024
)

var byteUnitLabels = []string{"Bytes", "KB", "MB", "GB", "TB"}

// FormatBytes renders a byte count using base-1024 units.
//
// Zero renders as "n/a". Counts below one kilobyte render as whole bytes;
// larger counts render with one decimal place. Counts beyond the terabyte
// range are clamped to terabytes.
func FormatBytes(byteCount int64) string {
	if byteCount <= 0 {
		return unknownSizeLabelConstant
	}

	// Integer division keeps exact powers of 1024 on the larger unit.
	unitIndex := 0
	unitDivisor := int64(1)
	for unitIndex < len(byteUnitLabels)-1 && byteCount/unitDivisor >= byteUnitBaseConstant {
		unitDivisor *= byteUnitBaseConstant
		unitIndex++
	}

	if unitIndex == 0 {
		return fmt.Sprintf(wholeBytesTemplateConstant, byteCount, byteUnitLabels[unitIndex])
	}

	scaledValue := float64(byteCount) / float64(unitDivisor)
	return fmt.Sprintf(fractionalSizeTemplateConstant, scaledValue, byteUnitLabels[unitIndex])
}
