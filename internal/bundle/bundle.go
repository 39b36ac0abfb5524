package bundle

// CameraInfo holds the calibration of a single camera. A focal length of
// zero marks the camera as invalid.
type CameraInfo struct {
	// FocalLength is the focal length normalized by the larger image dimension
	FocalLength float32

	// Distortion holds the two radial distortion coefficients
	Distortion [2]float32

	// PrincipalPoint is the principal point in normalized image coordinates
	PrincipalPoint [2]float32

	// Translation is the camera translation vector
	Translation [3]float32

	// Rotation is the camera rotation matrix in row-major order
	Rotation [9]float32

	// PixelAspect is the pixel aspect ratio
	PixelAspect float32
}

// NewCameraInfo creates a camera with an invalid focal length and
// neutral calibration defaults.
func NewCameraInfo() CameraInfo {
	return CameraInfo{
		FocalLength:    0.0,
		PrincipalPoint: [2]float32{0.5, 0.5},
		Rotation:       [9]float32{1, 0, 0, 0, 1, 0, 0, 0, 1},
		PixelAspect:    1.0,
	}
}

// IsValid reports whether the camera has a usable focal length.
func (c *CameraInfo) IsValid() bool {
	return c.FocalLength != 0.0
}

// FeatureRef links a feature to the view it was observed in.
type FeatureRef struct {
	ViewID    int
	FeatureID int
}

// Feature is a sparse 3D feature point with the views that observed it.
type Feature struct {
	Position [3]float32
	Color    [3]float32
	Refs     []FeatureRef
}

// Bundle holds the per-project camera calibration together with the sparse
// feature records. It is loaded and saved as a single unit.
type Bundle struct {
	Cameras  []CameraInfo
	Features []Feature

	dirty bool
}

// New creates an empty bundle. A fresh bundle is clean; installing it into
// a scene via SetBundle is what marks it dirty.
func New() *Bundle {
	return &Bundle{}
}

// IsDirty reports whether the bundle has unsaved changes.
func (b *Bundle) IsDirty() bool {
	return b.dirty
}

// MarkDirty flags the bundle as having unsaved changes. Callers that mutate
// Cameras or Features in place are responsible for calling this.
func (b *Bundle) MarkDirty() {
	b.dirty = true
}
