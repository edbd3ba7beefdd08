package svgtree

import (
	"strings"

	"github.com/benoitkugler/svgtrace/svgpath"
)

// ParseViewBox parses the 'minX minY width height' attribute.
// It returns false if the value does not have exactly four numbers,
// or has a non positive size.
func ParseViewBox(v string) (ViewBox, bool) {
	nums, err := svgpath.ReadNumbers(v)
	if err != nil || len(nums) != 4 {
		return ViewBox{}, false
	}
	vb := ViewBox{MinX: nums[0], MinY: nums[1], Width: nums[2], Height: nums[3]}
	if vb.Width <= 0 || vb.Height <= 0 {
		return ViewBox{}, false
	}
	return vb, true
}

// ParsePoints parses a 'points' attribute, made of coordinates separated
// by whitespace or commas. A trailing unpaired coordinate is ignored.
// On invalid input, the points read so far are returned with the error.
func ParsePoints(v string) ([]svgpath.Point, error) {
	fields := strings.Fields(strings.ReplaceAll(v, ",", " "))
	var (
		nums []float64
		err  error
	)
	for _, field := range fields {
		var f float64
		f, err = parseFloat(field)
		if err != nil {
			break
		}
		nums = append(nums, f)
	}
	pts := make([]svgpath.Point, 0, len(nums)/2)
	for i := 0; i+1 < len(nums); i += 2 {
		pts = append(pts, svgpath.Point{X: nums[i], Y: nums[i+1]})
	}
	return pts, err
}
