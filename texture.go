package sscene

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/gekko3d/sscene/gpu"
	"github.com/google/uuid"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// AssetID identifies a GPU-resident asset in logs.
type AssetID string

func makeAssetID() AssetID {
	return AssetID(uuid.NewString())
}

// Texture is an uploaded image.
type Texture struct {
	ID     AssetID
	Width  int
	Height int
	handle gpu.TextureID
}

// LoadImage decodes any registered image format from path.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAssetLoad, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", ErrAssetLoad, path, err)
	}
	return img, nil
}

// textureRGBA converts img to RGBA with the bottom row first, the row order
// GL samples texture coordinate v=0 from.
func textureRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)

	row := make([]uint8, rgba.Stride)
	for y := 0; y < b.Dy()/2; y++ {
		top := rgba.Pix[y*rgba.Stride : (y+1)*rgba.Stride]
		bottom := rgba.Pix[(b.Dy()-1-y)*rgba.Stride : (b.Dy()-y)*rgba.Stride]
		copy(row, top)
		copy(top, bottom)
		copy(bottom, row)
	}
	return rgba
}

func newTexture(backend gpu.Backend, img image.Image) (*Texture, error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("%w: empty image", ErrAssetLoad)
	}
	handle, err := backend.CreateTexture(textureRGBA(img))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAssetLoad, err)
	}
	return &Texture{
		ID:     makeAssetID(),
		Width:  b.Dx(),
		Height: b.Dy(),
		handle: handle,
	}, nil
}

func (t *Texture) release(backend gpu.Backend) {
	backend.DeleteTexture(t.handle)
}
