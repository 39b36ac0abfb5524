package bundle

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/LinusVanElswijk/mve/internal/filesystem"
)

// Signature is the first line of every bundle file.
const Signature = "MVE bundle file"

var (
	// ErrMissing indicates that the bundle file does not exist
	ErrMissing = errors.New("bundle file missing")

	// ErrCorrupt indicates that the bundle file exists but could not be parsed
	ErrCorrupt = errors.New("bundle file corrupt")
)

// Load reads a bundle file from disk. The returned bundle is clean.
func Load(fs filesystem.FileSystem, path string) (*Bundle, error) {
	if !fs.Exists(path) {
		return nil, fmt.Errorf("%w: %s", ErrMissing, path)
	}

	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bundle file %s: %w", path, err)
	}

	b, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return b, nil
}

// Save writes the bundle to disk and clears its dirty flag on success.
// The file is written to a temporary name first and moved into place, so
// a failed write never truncates an existing bundle file.
func Save(fs filesystem.FileSystem, b *Bundle, path string) error {
	suffix, err := gonanoid.Generate("0123456789abcdefghijklmnopqrstuvwxyz", 8)
	if err != nil {
		return fmt.Errorf("failed to generate temp file suffix: %w", err)
	}

	tmpPath := path + ".tmp_" + suffix
	if err := fs.WriteFile(tmpPath, encode(b), 0644); err != nil {
		return fmt.Errorf("failed to write bundle file %s: %w", path, err)
	}

	if err := fs.Rename(tmpPath, path); err != nil {
		_ = fs.Remove(tmpPath)
		return fmt.Errorf("failed to replace bundle file %s: %w", path, err)
	}

	b.dirty = false
	return nil
}

func encode(b *Bundle) []byte {
	var buf bytes.Buffer

	buf.WriteString(Signature)
	buf.WriteByte('\n')
	fmt.Fprintf(&buf, "%d %d\n", len(b.Cameras), len(b.Features))

	for i := range b.Cameras {
		cam := &b.Cameras[i]
		writeFloats(&buf,
			cam.FocalLength, cam.Distortion[0], cam.Distortion[1],
			cam.PixelAspect, cam.PrincipalPoint[0], cam.PrincipalPoint[1])
		writeFloats(&buf, cam.Rotation[:]...)
		writeFloats(&buf, cam.Translation[:]...)
	}

	for i := range b.Features {
		feat := &b.Features[i]
		writeFloats(&buf,
			feat.Position[0], feat.Position[1], feat.Position[2],
			feat.Color[0], feat.Color[1], feat.Color[2])

		fmt.Fprintf(&buf, "%d", len(feat.Refs))
		for _, ref := range feat.Refs {
			fmt.Fprintf(&buf, " %d %d", ref.ViewID, ref.FeatureID)
		}
		buf.WriteByte('\n')
	}

	return buf.Bytes()
}

func decode(data []byte) (*Bundle, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))

	sig, err := nextLine(scanner)
	if err != nil || sig != Signature {
		return nil, fmt.Errorf("%w: invalid signature", ErrCorrupt)
	}

	header, err := nextLine(scanner)
	if err != nil {
		return nil, fmt.Errorf("%w: missing element counts", ErrCorrupt)
	}

	var numCameras, numFeatures int
	if _, err := fmt.Sscanf(header, "%d %d", &numCameras, &numFeatures); err != nil {
		return nil, fmt.Errorf("%w: invalid element counts %q", ErrCorrupt, header)
	}
	if numCameras < 0 || numFeatures < 0 {
		return nil, fmt.Errorf("%w: negative element count", ErrCorrupt)
	}

	b := New()
	b.Cameras = make([]CameraInfo, 0, numCameras)
	for i := 0; i < numCameras; i++ {
		cam, err := decodeCamera(scanner)
		if err != nil {
			return nil, fmt.Errorf("camera %d: %w", i, err)
		}
		b.Cameras = append(b.Cameras, cam)
	}

	b.Features = make([]Feature, 0, numFeatures)
	for i := 0; i < numFeatures; i++ {
		feat, err := decodeFeature(scanner)
		if err != nil {
			return nil, fmt.Errorf("feature %d: %w", i, err)
		}
		b.Features = append(b.Features, feat)
	}

	return b, nil
}

func decodeCamera(scanner *bufio.Scanner) (CameraInfo, error) {
	cam := NewCameraInfo()

	intrinsics, err := readFloats(scanner, 6)
	if err != nil {
		return cam, err
	}
	cam.FocalLength = intrinsics[0]
	cam.Distortion = [2]float32{intrinsics[1], intrinsics[2]}
	cam.PixelAspect = intrinsics[3]
	cam.PrincipalPoint = [2]float32{intrinsics[4], intrinsics[5]}

	rotation, err := readFloats(scanner, 9)
	if err != nil {
		return cam, err
	}
	copy(cam.Rotation[:], rotation)

	translation, err := readFloats(scanner, 3)
	if err != nil {
		return cam, err
	}
	copy(cam.Translation[:], translation)

	return cam, nil
}

func decodeFeature(scanner *bufio.Scanner) (Feature, error) {
	var feat Feature

	values, err := readFloats(scanner, 6)
	if err != nil {
		return feat, err
	}
	feat.Position = [3]float32{values[0], values[1], values[2]}
	feat.Color = [3]float32{values[3], values[4], values[5]}

	line, err := nextLine(scanner)
	if err != nil {
		return feat, fmt.Errorf("%w: missing feature refs", ErrCorrupt)
	}

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return feat, fmt.Errorf("%w: missing feature ref count", ErrCorrupt)
	}

	count, err := strconv.Atoi(fields[0])
	if err != nil || count < 0 || len(fields) != 1+2*count {
		return feat, fmt.Errorf("%w: invalid feature refs %q", ErrCorrupt, line)
	}

	for i := 0; i < count; i++ {
		viewID, err1 := strconv.Atoi(fields[1+2*i])
		featureID, err2 := strconv.Atoi(fields[2+2*i])
		if err1 != nil || err2 != nil {
			return feat, fmt.Errorf("%w: invalid feature ref %q", ErrCorrupt, line)
		}
		feat.Refs = append(feat.Refs, FeatureRef{ViewID: viewID, FeatureID: featureID})
	}

	return feat, nil
}

func nextLine(scanner *bufio.Scanner) (string, error) {
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", err
		}
		return "", fmt.Errorf("%w: unexpected end of file", ErrCorrupt)
	}
	return strings.TrimRight(scanner.Text(), "\r"), nil
}

func readFloats(scanner *bufio.Scanner, count int) ([]float32, error) {
	line, err := nextLine(scanner)
	if err != nil {
		return nil, err
	}

	fields := strings.Fields(line)
	if len(fields) != count {
		return nil, fmt.Errorf("%w: expected %d values, got %d", ErrCorrupt, count, len(fields))
	}

	values := make([]float32, count)
	for i, field := range fields {
		v, err := strconv.ParseFloat(field, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid float %q", ErrCorrupt, field)
		}
		values[i] = float32(v)
	}

	return values, nil
}

func writeFloats(buf *bytes.Buffer, values ...float32) {
	for i, v := range values {
		if i > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(strconv.FormatFloat(float64(v), 'g', -1, 32))
	}
	buf.WriteByte('\n')
}
