// Package visualization exports 2D grayscale slice images from an
// interpolated 3D volume, for inspecting interpolation results without a
// dedicated volume renderer.
package visualization

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/floats"

	"naturalneighbor/internal/models"
)

// Viewer extracts and saves 2D slices of a 3D volume. Pixel intensities are
// normalized to the volume's global [min, max] range so slices from the same
// volume share a consistent gray scale.
type Viewer struct {
	volume   *models.Volume
	min, max float64
}

// NewViewer creates a viewer over the given volume.
func NewViewer(volume *models.Volume) *Viewer {
	v := &Viewer{volume: volume}
	if len(volume.Data) > 0 {
		v.min = floats.Min(volume.Data)
		v.max = floats.Max(volume.Data)
	}
	return v
}

// gray quantizes a volume value to 16-bit grayscale using the volume's
// global range. A uniform volume maps everywhere to black.
func (v *Viewer) gray(value float64) color.Gray16 {
	span := v.max - v.min
	if span == 0 {
		return color.Gray16{}
	}
	norm := (value - v.min) / span
	return color.Gray16{Y: uint16(math.Max(0, math.Min(65535, norm*65535)))}
}

// ExtractSlice extracts the 2D slice of the volume perpendicular to the
// given axis at the given index position.
func (v *Viewer) ExtractSlice(axis string, position int) (image.Image, error) {
	if position < 0 {
		return nil, fmt.Errorf("position must be non-negative, got %d", position)
	}

	var img *image.Gray16

	switch axis {
	case "x", "X":
		// Slice in the jk plane
		if position >= v.volume.Ni {
			return nil, fmt.Errorf("position %d exceeds i extent %d", position, v.volume.Ni)
		}
		img = image.NewGray16(image.Rect(0, 0, v.volume.Nj, v.volume.Nk))
		for j := 0; j < v.volume.Nj; j++ {
			for k := 0; k < v.volume.Nk; k++ {
				img.SetGray16(j, k, v.gray(v.volume.At(position, j, k)))
			}
		}

	case "y", "Y":
		// Slice in the ik plane
		if position >= v.volume.Nj {
			return nil, fmt.Errorf("position %d exceeds j extent %d", position, v.volume.Nj)
		}
		img = image.NewGray16(image.Rect(0, 0, v.volume.Ni, v.volume.Nk))
		for i := 0; i < v.volume.Ni; i++ {
			for k := 0; k < v.volume.Nk; k++ {
				img.SetGray16(i, k, v.gray(v.volume.At(i, position, k)))
			}
		}

	case "z", "Z":
		// Slice in the ij plane
		if position >= v.volume.Nk {
			return nil, fmt.Errorf("position %d exceeds k extent %d", position, v.volume.Nk)
		}
		img = image.NewGray16(image.Rect(0, 0, v.volume.Ni, v.volume.Nj))
		for i := 0; i < v.volume.Ni; i++ {
			for j := 0; j < v.volume.Nj; j++ {
				img.SetGray16(i, j, v.gray(v.volume.At(i, j, position)))
			}
		}

	default:
		return nil, fmt.Errorf("invalid axis: %s (must be x, y, or z)", axis)
	}

	return img, nil
}

// SaveSlice saves an extracted slice as a PNG image
func (v *Viewer) SaveSlice(img image.Image, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, img)
}

// SaveSliceSequence extracts and saves the full sequence of slices along the
// specified axis into outputDir, one PNG per index position.
func (v *Viewer) SaveSliceSequence(axis string, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}

	var maxPos int
	switch axis {
	case "x", "X":
		maxPos = v.volume.Ni
	case "y", "Y":
		maxPos = v.volume.Nj
	case "z", "Z":
		maxPos = v.volume.Nk
	default:
		return fmt.Errorf("invalid axis: %s (must be x, y, or z)", axis)
	}

	for pos := 0; pos < maxPos; pos++ {
		img, err := v.ExtractSlice(axis, pos)
		if err != nil {
			return err
		}

		filename := filepath.Join(outputDir, fmt.Sprintf("slice_%s_%03d.png", axis, pos))
		if err := v.SaveSlice(img, filename); err != nil {
			return err
		}
	}

	return nil
}
